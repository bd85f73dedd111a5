package auth

import "github.com/gofiber/fiber/v2"

// New returns a middleware guarding mutating requests with a static API
// key. Reads stay open; an empty configured key disables the check
// entirely.
func New(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if apiKey == "" || c.Method() == fiber.MethodGet {
			return c.Next()
		}
		if c.Get("X-Api-Key") != apiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid api key",
			})
		}
		return c.Next()
	}
}
