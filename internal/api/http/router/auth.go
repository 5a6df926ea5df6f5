package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/api/http/handler"
)

func (r *Router) registerAuthRoutes(api fiber.Router, h *handler.AuthHandler, authRequired fiber.Handler) {
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/logout", authRequired, h.Logout)
}
