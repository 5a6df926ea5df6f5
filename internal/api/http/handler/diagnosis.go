package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// GET /diagnoses
func (h *ClinicHandler) ListDiagnoses(c fiber.Ctx) error {
	return listAll(c, h.svc.ListDiagnoses)
}

// POST /diagnoses
func (h *ClinicHandler) CreateDiagnosis(c fiber.Ctx) error {
	return createOne[model.DiagnosisInput](c, h.svc.CreateDiagnosis)
}

// PATCH /diagnoses/:id
func (h *ClinicHandler) UpdateDiagnosis(c fiber.Ctx) error {
	return updateOne[model.DiagnosisInput](c, h.svc.UpdateDiagnosis)
}

// DELETE /diagnoses/:id
func (h *ClinicHandler) DeleteDiagnosis(c fiber.Ctx) error {
	return deleteOne(c, h.svc.DeleteDiagnosis)
}
