// models/principal.go
package models

// Principal is the authenticated actor behind a request, or the absence of
// one. It is derived from a validated bearer token by the auth middleware;
// it is never persisted.
type Principal struct {
	UserID        uint   `json:"user_id"`
	Username      string `json:"username"`
	Authenticated bool   `json:"authenticated"`

	// RequestID ties trail entries written on behalf of this principal back
	// to the access log line for the same request. Empty outside a request.
	RequestID string `json:"-"`
}

// Anonymous is the principal used when no valid token accompanied the
// request. Membership checks always fail closed for it.
func Anonymous() Principal {
	return Principal{}
}
