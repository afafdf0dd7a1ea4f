// middleware/auth.go
package middleware

import (
	"os"
	"strings"
	"time"

	"collabsphere/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token issued by the external identity
// provider and stores the resulting principal in request locals. Token
// issuance is not this service's job; only HMAC validation happens here.
func AuthMiddleware(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Missing authorization header"})
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid authorization header format"})
	}

	tokenString := parts[1]
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return c.Status(500).JSON(fiber.Map{"success": false, "error": "Server auth not configured"})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(401, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})

	if err != nil || !token.Valid {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token claims"})
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Token expired"})
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return c.Status(401).JSON(fiber.Map{"success": false, "error": "Invalid token subject"})
	}

	username, _ := claims["username"].(string)

	c.Locals("principal", models.Principal{
		UserID:        uint(userID),
		Username:      username,
		Authenticated: true,
		RequestID:     GetRequestID(c),
	})

	return c.Next()
}

// GetPrincipal returns the principal stored by AuthMiddleware. On routes
// without the middleware it yields the anonymous principal, which fails every
// membership check.
func GetPrincipal(c *fiber.Ctx) models.Principal {
	if p, ok := c.Locals("principal").(models.Principal); ok {
		return p
	}
	return models.Anonymous()
}
