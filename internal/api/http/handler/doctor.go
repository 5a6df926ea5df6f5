package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// GET /doctors
func (h *ClinicHandler) ListDoctors(c fiber.Ctx) error {
	return listAll(c, h.svc.ListDoctors)
}

// GET /doctors/:id
func (h *ClinicHandler) GetDoctor(c fiber.Ctx) error {
	return getOne(c, h.svc.GetDoctor)
}

// POST /doctors
func (h *ClinicHandler) CreateDoctor(c fiber.Ctx) error {
	return createOne[model.DoctorInput](c, h.svc.CreateDoctor)
}

// PATCH /doctors/:id
func (h *ClinicHandler) UpdateDoctor(c fiber.Ctx) error {
	return updateOne[model.DoctorInput](c, h.svc.UpdateDoctor)
}

// DELETE /doctors/:id
func (h *ClinicHandler) DeleteDoctor(c fiber.Ctx) error {
	return deleteOne(c, h.svc.DeleteDoctor)
}
