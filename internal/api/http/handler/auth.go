package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/api/http/middleware"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/service/auth"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /register
func (h *AuthHandler) Register(c fiber.Ctx) error {
	var body model.RegisterRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.svc.Register(c.Context(), auth.RegisterRequest{
		Email:     body.Email,
		Password:  body.Password,
		FirstName: body.FirstName,
		LastName:  body.LastName,
	})
	if err != nil {
		return mapAuthError(c, err)
	}

	return created(c, model.AuthResponse{Token: token})
}

// POST /login
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body model.LoginRequest
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	token, err := h.svc.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return mapAuthError(c, err)
	}

	return ok(c, model.AuthResponse{Token: token})
}

// POST /logout  (requires AuthRequired middleware)
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	token, found := middleware.TokenFromFiber(c)
	if !found {
		return unauthorized(c, auth.ErrInvalidToken.Error())
	}
	h.svc.Revoke(c.Context(), token)
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapAuthError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		return conflict(c, "Email already in use")
	case errors.Is(err, auth.ErrInvalidEmail),
		errors.Is(err, auth.ErrPasswordTooShort),
		errors.Is(err, auth.ErrNameRequired):
		return badRequest(c, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		return unauthorized(c, err.Error())
	default:
		return internalError(c)
	}
}
