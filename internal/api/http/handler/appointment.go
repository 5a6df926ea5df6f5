package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// GET /appointments
func (h *ClinicHandler) ListAppointments(c fiber.Ctx) error {
	return listAll(c, h.svc.ListAppointments)
}

// POST /appointments
func (h *ClinicHandler) CreateAppointment(c fiber.Ctx) error {
	return createOne[model.AppointmentInput](c, h.svc.CreateAppointment)
}

// PATCH /appointments/:id
func (h *ClinicHandler) UpdateAppointment(c fiber.Ctx) error {
	return updateOne[model.AppointmentInput](c, h.svc.UpdateAppointment)
}

// DELETE /appointments/:id
func (h *ClinicHandler) DeleteAppointment(c fiber.Ctx) error {
	return deleteOne(c, h.svc.DeleteAppointment)
}
