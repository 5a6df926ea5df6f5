// Package model holds the clinic entities exchanged with the REST API and
// the input schemas used to create or update them.
package model

import (
	"fmt"
	"time"
)

type Specialisation string

const (
	SpecialisationGeneralPractitioner Specialisation = "General Practitioner"
	SpecialisationDermatologist       Specialisation = "Dermatologist"
	SpecialisationPaediatrician       Specialisation = "Paediatrician"
	SpecialisationPsychiatrist        Specialisation = "Psychiatrist"
	SpecialisationPodiatrist          Specialisation = "Podiatrist"
)

// Specialisations lists the accepted values in display order.
var Specialisations = []Specialisation{
	SpecialisationGeneralPractitioner,
	SpecialisationDermatologist,
	SpecialisationPaediatrician,
	SpecialisationPsychiatrist,
	SpecialisationPodiatrist,
}

func (s Specialisation) Valid() bool {
	for _, v := range Specialisations {
		if s == v {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

type Doctor struct {
	ID             int64          `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	Specialisation Specialisation `json:"specialisation"`
}

// DisplayName is the name shown wherever a doctor is referenced.
func (d Doctor) DisplayName() string {
	return fmt.Sprintf("Dr %s %s", d.FirstName, d.LastName)
}

type Patient struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth int64  `json:"date_of_birth"` // unix seconds
	Address     string `json:"address"`
}

func (p Patient) DisplayName() string {
	return p.FirstName + " " + p.LastName
}

type Appointment struct {
	ID              int64     `json:"id"`
	DoctorID        int64     `json:"doctor_id"`
	PatientID       int64     `json:"patient_id"`
	AppointmentDate int64     `json:"appointment_date"` // unix seconds
	CreatedAt       time.Time `json:"created_at,omitzero"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

type Diagnosis struct {
	ID            int64  `json:"id"`
	PatientID     int64  `json:"patient_id"`
	Condition     string `json:"condition"`
	DiagnosisDate int64  `json:"diagnosis_date"` // unix seconds
}

type Prescription struct {
	ID          int64  `json:"id"`
	PatientID   int64  `json:"patient_id"`
	DoctorID    int64  `json:"doctor_id"`
	DiagnosisID int64  `json:"diagnosis_id"`
	Medication  string `json:"medication"`
	Dosage      string `json:"dosage"`
	StartDate   int64  `json:"start_date"` // unix seconds
	EndDate     int64  `json:"end_date"`   // unix seconds
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthResponse struct {
	Token string `json:"token"`
}
