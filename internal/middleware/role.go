package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireUserType gates a route to the given account types. Runs after
// AttachLocals.
func RequireUserType(allowed ...string) fiber.Handler {
	allowedSet := map[string]bool{}
	for _, t := range allowed {
		allowedSet[t] = true
	}

	return func(c *fiber.Ctx) error {
		userType, ok := c.Locals("userType").(string)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized",
			})
		}
		if !allowedSet[userType] {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Forbidden",
			})
		}
		return c.Next()
	}
}
