package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the HTTP header carrying the ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns each request a ray id for log
// correlation. An id supplied by the caller is kept; otherwise a fresh
// UUID is generated. The id is stored in locals and echoed in the
// response header.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
