package views

import "github.com/Alijeyrad/clinic_console/internal/model"

// Rows embed the entity and add the resolved display names.

type DoctorRow struct {
	model.Doctor
	Name string `json:"name"`
}

type PatientRow struct {
	model.Patient
	Name string `json:"name"`
}

type AppointmentRow struct {
	model.Appointment
	DoctorName  string `json:"doctor_name"`
	PatientName string `json:"patient_name"`
}

type DiagnosisRow struct {
	model.Diagnosis
	PatientName string `json:"patient_name"`
}

type PrescriptionRow struct {
	model.Prescription
	PatientName        string `json:"patient_name"`
	DoctorName         string `json:"doctor_name"`
	DiagnosisCondition string `json:"diagnosis_condition"`
}

func doctorRowID(r DoctorRow) int64             { return r.ID }
func patientRowID(r PatientRow) int64           { return r.ID }
func appointmentRowID(r AppointmentRow) int64   { return r.ID }
func diagnosisRowID(r DiagnosisRow) int64       { return r.ID }
func prescriptionRowID(r PrescriptionRow) int64 { return r.ID }

// Newest first.
func appointmentsByDateDesc(a, b AppointmentRow) bool {
	return a.AppointmentDate > b.AppointmentDate
}

func prescriptionsByStartDesc(a, b PrescriptionRow) bool {
	return a.StartDate > b.StartDate
}
