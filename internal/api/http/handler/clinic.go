package handler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/service/clinic"
)

// ClinicHandler serves the record collections: doctors, patients,
// appointments, diagnoses and prescriptions.
type ClinicHandler struct {
	svc clinic.Service
}

func NewClinicHandler(svc clinic.Service) *ClinicHandler {
	return &ClinicHandler{svc: svc}
}

// ---------------------------------------------------------------------------
// Shared request flow
// ---------------------------------------------------------------------------

func listAll[T any](c fiber.Ctx, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(c.Context())
	if err != nil {
		return mapClinicError(c, err)
	}
	if items == nil {
		items = []T{}
	}
	return ok(c, items)
}

func getOne[T any](c fiber.Ctx, fetch func(context.Context, int64) (*T, error)) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid id")
	}
	item, err := fetch(c.Context(), id)
	if err != nil {
		return mapClinicError(c, err)
	}
	return ok(c, item)
}

func createOne[In, T any](c fiber.Ctx, save func(context.Context, In) (*T, error)) error {
	var body In
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	item, err := save(c.Context(), body)
	if err != nil {
		return mapClinicError(c, err)
	}
	return created(c, item)
}

func updateOne[In, T any](c fiber.Ctx, save func(context.Context, int64, In) (*T, error)) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid id")
	}
	var body In
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	item, err := save(c.Context(), id, body)
	if err != nil {
		return mapClinicError(c, err)
	}
	return ok(c, item)
}

func deleteOne(c fiber.Ctx, remove func(context.Context, int64) error) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid id")
	}
	if err := remove(c.Context(), id); err != nil {
		return mapClinicError(c, err)
	}
	return noContent(c)
}

// ---------------------------------------------------------------------------
// Error mapping
// ---------------------------------------------------------------------------

func mapClinicError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, clinic.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, clinic.ErrAlreadyExists):
		// The console inspects this text to tell email clashes from phone
		// clashes, so the constraint name is passed through.
		return conflict(c, err.Error())
	case errors.Is(err, clinic.ErrInvalidReference),
		errors.Is(err, clinic.ErrInvalidInput):
		return badRequest(c, err.Error())
	default:
		slog.ErrorContext(c.Context(), "clinic handler failed", "path", c.Path(), "error", err)
		return internalError(c)
	}
}
