package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CurrentAPIVersion is served when the client does not pin one.
const CurrentAPIVersion = "1.0.0"

// VersionMiddleware resolves the X-Api-Version header and stores the
// normalized version in the request context. Short forms like "1" or "1.0"
// expand to their full semver.
func VersionMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", CurrentAPIVersion)

		switch strings.Count(version, ".") {
		case 0:
			version += ".0.0"
		case 1:
			version += ".0"
		}

		c.Locals("apiVersion", version)
		return c.Next()
	}
}
