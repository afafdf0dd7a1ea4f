// middleware/requestid.go
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDMiddleware tags every request with a UUID. The id is echoed in the
// X-Request-ID response header and picked up by the audit logger so trail
// entries can be correlated with access logs.
func RequestIDMiddleware(c *fiber.Ctx) error {
	id := c.Get("X-Request-ID")
	if id == "" {
		id = uuid.NewString()
	}

	c.Locals("requestId", id)
	c.Set("X-Request-ID", id)
	return c.Next()
}

// GetRequestID returns the request id set by RequestIDMiddleware, or "".
func GetRequestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestId").(string); ok {
		return id
	}
	return ""
}
