/**
 * @description
 * Static bearer authentication for the status API.
 *
 * @notes
 * - An empty STATUS_TOKEN leaves the routes open; the server binds to
 *   localhost by default.
 */

package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Protected requires "Authorization: Bearer <token>" when token is non-empty
func Protected(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing authorization header"})
		}

		provided := strings.TrimPrefix(authHeader, "Bearer ")
		if provided == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		return c.Next()
	}
}
