package present

import (
	"strconv"

	"github.com/samber/lo"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/views"
)

func id(v int64) string { return strconv.FormatInt(v, 10) }

func Doctors(rows []views.DoctorRow) Table {
	return Table{
		Plural: "doctors",
		Header: []string{"ID", "Name", "Email", "Phone", "Specialisation"},
		Rows: lo.Map(rows, func(r views.DoctorRow, _ int) []string {
			return []string{id(r.ID), r.Name, r.Email, r.Phone, string(r.Specialisation)}
		}),
	}
}

func Patients(rows []views.PatientRow, f views.Formatter) Table {
	return Table{
		Plural: "patients",
		Header: []string{"ID", "Name", "Email", "Phone", "Date of birth", "Address"},
		Rows: lo.Map(rows, func(r views.PatientRow, _ int) []string {
			return []string{id(r.ID), r.Name, r.Email, r.Phone, f.Date(r.DateOfBirth), r.Address}
		}),
	}
}

func Appointments(rows []views.AppointmentRow, f views.Formatter) Table {
	return Table{
		Plural: "appointments",
		Header: []string{"ID", "Date", "Doctor", "Patient", "Booked"},
		Rows: lo.Map(rows, func(r views.AppointmentRow, _ int) []string {
			return []string{id(r.ID), f.DateTime(r.AppointmentDate), r.DoctorName, r.PatientName, f.Timestamp(r.CreatedAt)}
		}),
	}
}

func Diagnoses(rows []views.DiagnosisRow, f views.Formatter) Table {
	return Table{
		Plural: "diagnoses",
		Header: []string{"ID", "Patient", "Condition", "Diagnosed"},
		Rows: lo.Map(rows, func(r views.DiagnosisRow, _ int) []string {
			return []string{id(r.ID), r.PatientName, r.Condition, f.Date(r.DiagnosisDate)}
		}),
	}
}

func Prescriptions(rows []views.PrescriptionRow, f views.Formatter) Table {
	return Table{
		Plural: "prescriptions",
		Header: []string{"ID", "Patient", "Doctor", "Condition", "Medication", "Dosage", "Start", "End"},
		Rows: lo.Map(rows, func(r views.PrescriptionRow, _ int) []string {
			return []string{
				id(r.ID), r.PatientName, r.DoctorName, r.DiagnosisCondition,
				r.Medication, r.Dosage, f.Date(r.StartDate), f.Date(r.EndDate),
			}
		}),
	}
}

// Specialisations lists the accepted values, numbered for prompts.
func Specialisations() Table {
	return Table{
		Plural: "specialisations",
		Header: []string{"#", "Specialisation"},
		Rows: lo.Map(model.Specialisations, func(s model.Specialisation, i int) []string {
			return []string{strconv.Itoa(i + 1), string(s)}
		}),
	}
}
