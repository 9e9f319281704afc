package middleware

import (
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"
	"github.com/gofiber/fiber/v2"
)

// ActorKey is the fiber.Ctx Locals key holding the authenticated actor.
const ActorKey = "actor"

// AuthAdmin validates that the request has administrator authorization
func AuthAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, []string{services.RoleAdmin})
	}
}

// AuthUser validates that the request has user role authorization
func AuthUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, []string{services.RoleUser, services.RoleAdmin})
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, roles []string) error {
	session := c.Cookies("cookie_session")
	if session == "" {
		return types.Authorizationf("authorizer cookie %q not found", "cookie_session")
	}

	actor, err := services.ValidateSession(session, roles)
	if err != nil {
		return types.Authorizationf("invalid session: %v", err)
	}

	c.Locals(ActorKey, actor)
	return c.Next()
}

// ActorFromCtx returns the actor placed in Locals by the auth middleware.
func ActorFromCtx(c *fiber.Ctx) services.Actor {
	if a, ok := c.Locals(ActorKey).(services.Actor); ok {
		return a
	}
	return services.Actor{}
}
