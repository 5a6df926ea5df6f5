package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// GET /prescriptions
func (h *ClinicHandler) ListPrescriptions(c fiber.Ctx) error {
	return listAll(c, h.svc.ListPrescriptions)
}

// POST /prescriptions
func (h *ClinicHandler) CreatePrescription(c fiber.Ctx) error {
	return createOne[model.PrescriptionInput](c, h.svc.CreatePrescription)
}

// PATCH /prescriptions/:id
func (h *ClinicHandler) UpdatePrescription(c fiber.Ctx) error {
	return updateOne[model.PrescriptionInput](c, h.svc.UpdatePrescription)
}

// DELETE /prescriptions/:id
func (h *ClinicHandler) DeletePrescription(c fiber.Ctx) error {
	return deleteOne(c, h.svc.DeletePrescription)
}
