package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/clinic_console/internal/api/http/handler"
)

func (r *Router) registerClinicRoutes(api fiber.Router, h *handler.ClinicHandler, authRequired fiber.Handler) {
	doctors := api.Group("/doctors", authRequired)
	doctors.Get("/", h.ListDoctors)
	doctors.Post("/", h.CreateDoctor)
	doctors.Get("/:id", h.GetDoctor)
	doctors.Patch("/:id", h.UpdateDoctor)
	doctors.Delete("/:id", h.DeleteDoctor)

	patients := api.Group("/patients", authRequired)
	patients.Get("/", h.ListPatients)
	patients.Post("/", h.CreatePatient)
	patients.Get("/:id", h.GetPatient)
	patients.Patch("/:id", h.UpdatePatient)
	patients.Delete("/:id", h.DeletePatient)
	patients.Get("/:id/appointments", h.ListPatientAppointments)

	appointments := api.Group("/appointments", authRequired)
	appointments.Get("/", h.ListAppointments)
	appointments.Post("/", h.CreateAppointment)
	appointments.Patch("/:id", h.UpdateAppointment)
	appointments.Delete("/:id", h.DeleteAppointment)

	diagnoses := api.Group("/diagnoses", authRequired)
	diagnoses.Get("/", h.ListDiagnoses)
	diagnoses.Post("/", h.CreateDiagnosis)
	diagnoses.Patch("/:id", h.UpdateDiagnosis)
	diagnoses.Delete("/:id", h.DeleteDiagnosis)

	prescriptions := api.Group("/prescriptions", authRequired)
	prescriptions.Get("/", h.ListPrescriptions)
	prescriptions.Post("/", h.CreatePrescription)
	prescriptions.Patch("/:id", h.UpdatePrescription)
	prescriptions.Delete("/:id", h.DeletePrescription)
}
