package model

// Input schemas double as request payloads: a value that passes validation
// is sent to the API unchanged. Tags are checked by internal/forms.

type DoctorInput struct {
	FirstName      string         `json:"first_name" validate:"required"`
	LastName       string         `json:"last_name" validate:"required"`
	Email          string         `json:"email" validate:"required,email"`
	Phone          string         `json:"phone" validate:"required,numeric,len=10"`
	Specialisation Specialisation `json:"specialisation" validate:"required,specialisation"`
}

func DoctorInputFrom(d Doctor) DoctorInput {
	return DoctorInput{
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		Phone:          d.Phone,
		Specialisation: d.Specialisation,
	}
}

type PatientInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required,numeric,len=10"`
	DateOfBirth int64  `json:"date_of_birth" validate:"required,gt=0"`
	Address     string `json:"address" validate:"required"`
}

func PatientInputFrom(p Patient) PatientInput {
	return PatientInput{
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: p.DateOfBirth,
		Address:     p.Address,
	}
}

type AppointmentInput struct {
	DoctorID        int64 `json:"doctor_id" validate:"required,gt=0"`
	PatientID       int64 `json:"patient_id" validate:"required,gt=0"`
	AppointmentDate int64 `json:"appointment_date" validate:"required,gt=0"`
}

func AppointmentInputFrom(a Appointment) AppointmentInput {
	return AppointmentInput{
		DoctorID:        a.DoctorID,
		PatientID:       a.PatientID,
		AppointmentDate: a.AppointmentDate,
	}
}

type DiagnosisInput struct {
	PatientID     int64  `json:"patient_id" validate:"required,gt=0"`
	Condition     string `json:"condition" validate:"required,max=255"`
	DiagnosisDate int64  `json:"diagnosis_date" validate:"required,gt=0"`
}

func DiagnosisInputFrom(d Diagnosis) DiagnosisInput {
	return DiagnosisInput{
		PatientID:     d.PatientID,
		Condition:     d.Condition,
		DiagnosisDate: d.DiagnosisDate,
	}
}

// PrescriptionInput is the payload of POST/PATCH /prescriptions.
type PrescriptionInput struct {
	PatientID   int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID    int64  `json:"doctor_id" validate:"required,gt=0"`
	DiagnosisID int64  `json:"diagnosis_id" validate:"required,gt=0"`
	Medication  string `json:"medication" validate:"required,max=255"`
	Dosage      string `json:"dosage" validate:"required,max=100"`
	StartDate   int64  `json:"start_date" validate:"required,gt=0"`
	EndDate     int64  `json:"end_date" validate:"required,gtefield=StartDate"`
}

// PrescriptionFormInput is what the prescription form collects: the
// prescription itself plus the diagnosis it is written for. When
// DiagnosisID is zero a new diagnosis is created from Condition and
// DiagnosisDate.
type PrescriptionFormInput struct {
	PatientID     int64  `json:"patient_id" validate:"required,gt=0"`
	DoctorID      int64  `json:"doctor_id" validate:"required,gt=0"`
	DiagnosisID   int64  `json:"diagnosis_id" validate:"omitempty,gt=0"`
	Condition     string `json:"condition" validate:"required_without=DiagnosisID,max=255"`
	DiagnosisDate int64  `json:"diagnosis_date" validate:"omitempty,gt=0"`
	Medication    string `json:"medication" validate:"required,max=255"`
	Dosage        string `json:"dosage" validate:"required,max=100"`
	StartDate     int64  `json:"start_date" validate:"required,gt=0"`
	EndDate       int64  `json:"end_date" validate:"required,gtefield=StartDate"`
}

// PrescriptionFormInputFrom pre-populates the form from a prescription and
// the diagnosis it references (nil when the diagnosis is not loaded).
func PrescriptionFormInputFrom(p Prescription, d *Diagnosis) PrescriptionFormInput {
	in := PrescriptionFormInput{
		PatientID:   p.PatientID,
		DoctorID:    p.DoctorID,
		DiagnosisID: p.DiagnosisID,
		Medication:  p.Medication,
		Dosage:      p.Dosage,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
	}
	if d != nil {
		in.Condition = d.Condition
		in.DiagnosisDate = d.DiagnosisDate
	}
	return in
}

// Prescription returns the prescription payload for the given diagnosis.
func (in PrescriptionFormInput) Prescription(diagnosisID int64) PrescriptionInput {
	return PrescriptionInput{
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		DiagnosisID: diagnosisID,
		Medication:  in.Medication,
		Dosage:      in.Dosage,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

// Diagnosis returns the diagnosis payload. The diagnosis date defaults to
// the prescription start date.
func (in PrescriptionFormInput) Diagnosis() DiagnosisInput {
	date := in.DiagnosisDate
	if date == 0 {
		date = in.StartDate
	}
	return DiagnosisInput{
		PatientID:     in.PatientID,
		Condition:     in.Condition,
		DiagnosisDate: date,
	}
}
