package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// GET /patients
func (h *ClinicHandler) ListPatients(c fiber.Ctx) error {
	return listAll(c, h.svc.ListPatients)
}

// GET /patients/:id
func (h *ClinicHandler) GetPatient(c fiber.Ctx) error {
	return getOne(c, h.svc.GetPatient)
}

// POST /patients
func (h *ClinicHandler) CreatePatient(c fiber.Ctx) error {
	return createOne[model.PatientInput](c, h.svc.CreatePatient)
}

// PATCH /patients/:id
func (h *ClinicHandler) UpdatePatient(c fiber.Ctx) error {
	return updateOne[model.PatientInput](c, h.svc.UpdatePatient)
}

// DELETE /patients/:id
func (h *ClinicHandler) DeletePatient(c fiber.Ctx) error {
	return deleteOne(c, h.svc.DeletePatient)
}

// GET /patients/:id/appointments
func (h *ClinicHandler) ListPatientAppointments(c fiber.Ctx) error {
	id, valid := idParam(c)
	if !valid {
		return badRequest(c, "invalid id")
	}
	items, err := h.svc.ListPatientAppointments(c.Context(), id)
	if err != nil {
		return mapClinicError(c, err)
	}
	if items == nil {
		items = []model.Appointment{}
	}
	return ok(c, items)
}
