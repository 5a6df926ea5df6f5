package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/service/auth"
)

const (
	localToken = "auth_token"
	localUser  = "auth_user"
)

// AuthRequired validates the Bearer token against the auth service.
// On success the token and *auth.User are stored in locals.
func AuthRequired(svc auth.Service) fiber.Handler {
	return func(c fiber.Ctx) error {
		h := c.Get("Authorization")
		if h == "" {
			return unauthorized(c)
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c)
		}

		token := strings.TrimSpace(parts[1])
		user, err := svc.Authenticate(c.Context(), token)
		if err != nil {
			return unauthorized(c)
		}

		c.Locals(localToken, token)
		c.Locals(localUser, user)
		return c.Next()
	}
}

func TokenFromFiber(c fiber.Ctx) (string, bool) {
	s, ok := c.Locals(localToken).(string)
	return s, ok && s != ""
}

func UserFromFiber(c fiber.Ctx) (*auth.User, bool) {
	u, ok := c.Locals(localUser).(*auth.User)
	return u, ok && u != nil
}

func unauthorized(c fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
}
