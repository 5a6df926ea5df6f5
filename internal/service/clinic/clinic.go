// Package clinic is the in-memory record store behind the mock API. It
// enforces what the real server enforces and the console relies on:
// unique doctor and patient contact details and existing foreign keys.
package clinic

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	GetDoctor(ctx context.Context, id int64) (*model.Doctor, error)
	CreateDoctor(ctx context.Context, in model.DoctorInput) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, in model.DoctorInput) (*model.Doctor, error)
	DeleteDoctor(ctx context.Context, id int64) error

	ListPatients(ctx context.Context) ([]model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	CreatePatient(ctx context.Context, in model.PatientInput) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, in model.PatientInput) (*model.Patient, error)
	DeletePatient(ctx context.Context, id int64) error
	ListPatientAppointments(ctx context.Context, patientID int64) ([]model.Appointment, error)

	ListAppointments(ctx context.Context) ([]model.Appointment, error)
	CreateAppointment(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, in model.AppointmentInput) (*model.Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error

	ListDiagnoses(ctx context.Context) ([]model.Diagnosis, error)
	CreateDiagnosis(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error)
	UpdateDiagnosis(ctx context.Context, id int64, in model.DiagnosisInput) (*model.Diagnosis, error)
	DeleteDiagnosis(ctx context.Context, id int64) error

	ListPrescriptions(ctx context.Context) ([]model.Prescription, error)
	CreatePrescription(ctx context.Context, in model.PrescriptionInput) (*model.Prescription, error)
	UpdatePrescription(ctx context.Context, id int64, in model.PrescriptionInput) (*model.Prescription, error)
	DeletePrescription(ctx context.Context, id int64) error
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type clinicService struct {
	// writes serialises check-then-write sequences across tables.
	writes sync.Mutex
	now    func() time.Time

	doctors       *table[model.Doctor]
	patients      *table[model.Patient]
	appointments  *table[model.Appointment]
	diagnoses     *table[model.Diagnosis]
	prescriptions *table[model.Prescription]
}

func New() Service {
	return &clinicService{
		now:           time.Now,
		doctors:       newTable[model.Doctor](),
		patients:      newTable[model.Patient](),
		appointments:  newTable[model.Appointment](),
		diagnoses:     newTable[model.Diagnosis](),
		prescriptions: newTable[model.Prescription](),
	}
}

// ---------------------------------------------------------------------------
// Doctors
// ---------------------------------------------------------------------------

func (s *clinicService) ListDoctors(_ context.Context) ([]model.Doctor, error) {
	return s.doctors.list(nil), nil
}

func (s *clinicService) GetDoctor(_ context.Context, id int64) (*model.Doctor, error) {
	d, ok := s.doctors.get(id)
	if !ok {
		return nil, fmt.Errorf("doctor %d: %w", id, ErrNotFound)
	}
	return &d, nil
}

func (s *clinicService) CreateDoctor(_ context.Context, in model.DoctorInput) (*model.Doctor, error) {
	if err := checkDoctor(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.uniqueDoctor(0, in); err != nil {
		return nil, err
	}
	d := s.doctors.insert(func(id int64) model.Doctor { return doctorFrom(id, in) })
	return &d, nil
}

func (s *clinicService) UpdateDoctor(_ context.Context, id int64, in model.DoctorInput) (*model.Doctor, error) {
	if err := checkDoctor(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if !s.doctors.exists(id) {
		return nil, fmt.Errorf("doctor %d: %w", id, ErrNotFound)
	}
	if err := s.uniqueDoctor(id, in); err != nil {
		return nil, err
	}
	d := doctorFrom(id, in)
	s.doctors.put(id, d)
	return &d, nil
}

func (s *clinicService) DeleteDoctor(_ context.Context, id int64) error {
	if !s.doctors.remove(id) {
		return fmt.Errorf("doctor %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *clinicService) uniqueDoctor(id int64, in model.DoctorInput) error {
	if s.doctors.taken(id, func(d model.Doctor) bool { return strings.EqualFold(d.Email, in.Email) }) {
		return &ConstraintError{Table: "doctors", Column: "email"}
	}
	if s.doctors.taken(id, func(d model.Doctor) bool { return d.Phone == in.Phone }) {
		return &ConstraintError{Table: "doctors", Column: "phone"}
	}
	return nil
}

func checkDoctor(in model.DoctorInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return fmt.Errorf("%w: first_name, last_name, email and phone are required", ErrInvalidInput)
	}
	if !in.Specialisation.Valid() {
		return fmt.Errorf("%w: unknown specialisation %q", ErrInvalidInput, in.Specialisation)
	}
	return nil
}

func doctorFrom(id int64, in model.DoctorInput) model.Doctor {
	return model.Doctor{
		ID:             id,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		Phone:          in.Phone,
		Specialisation: in.Specialisation,
	}
}

// ---------------------------------------------------------------------------
// Patients
// ---------------------------------------------------------------------------

func (s *clinicService) ListPatients(_ context.Context) ([]model.Patient, error) {
	return s.patients.list(nil), nil
}

func (s *clinicService) GetPatient(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := s.patients.get(id)
	if !ok {
		return nil, fmt.Errorf("patient %d: %w", id, ErrNotFound)
	}
	return &p, nil
}

func (s *clinicService) CreatePatient(_ context.Context, in model.PatientInput) (*model.Patient, error) {
	if err := checkPatient(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.uniquePatient(0, in); err != nil {
		return nil, err
	}
	p := s.patients.insert(func(id int64) model.Patient { return patientFrom(id, in) })
	return &p, nil
}

func (s *clinicService) UpdatePatient(_ context.Context, id int64, in model.PatientInput) (*model.Patient, error) {
	if err := checkPatient(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if !s.patients.exists(id) {
		return nil, fmt.Errorf("patient %d: %w", id, ErrNotFound)
	}
	if err := s.uniquePatient(id, in); err != nil {
		return nil, err
	}
	p := patientFrom(id, in)
	s.patients.put(id, p)
	return &p, nil
}

func (s *clinicService) DeletePatient(_ context.Context, id int64) error {
	if !s.patients.remove(id) {
		return fmt.Errorf("patient %d: %w", id, ErrNotFound)
	}
	return nil
}

func (s *clinicService) ListPatientAppointments(_ context.Context, patientID int64) ([]model.Appointment, error) {
	if !s.patients.exists(patientID) {
		return nil, fmt.Errorf("patient %d: %w", patientID, ErrNotFound)
	}
	return s.appointments.list(func(a model.Appointment) bool { return a.PatientID == patientID }), nil
}

func (s *clinicService) uniquePatient(id int64, in model.PatientInput) error {
	if s.patients.taken(id, func(p model.Patient) bool { return strings.EqualFold(p.Email, in.Email) }) {
		return &ConstraintError{Table: "patients", Column: "email"}
	}
	if s.patients.taken(id, func(p model.Patient) bool { return p.Phone == in.Phone }) {
		return &ConstraintError{Table: "patients", Column: "phone"}
	}
	return nil
}

func checkPatient(in model.PatientInput) error {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return fmt.Errorf("%w: first_name, last_name, email and phone are required", ErrInvalidInput)
	}
	return nil
}

func patientFrom(id int64, in model.PatientInput) model.Patient {
	return model.Patient{
		ID:          id,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Email:       in.Email,
		Phone:       in.Phone,
		DateOfBirth: in.DateOfBirth,
		Address:     in.Address,
	}
}

// ---------------------------------------------------------------------------
// Appointments
// ---------------------------------------------------------------------------

func (s *clinicService) ListAppointments(_ context.Context) ([]model.Appointment, error) {
	return s.appointments.list(nil), nil
}

func (s *clinicService) CreateAppointment(_ context.Context, in model.AppointmentInput) (*model.Appointment, error) {
	if err := checkAppointment(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.checkRefs(in.DoctorID, in.PatientID, 0); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	a := s.appointments.insert(func(id int64) model.Appointment {
		return model.Appointment{
			ID:              id,
			DoctorID:        in.DoctorID,
			PatientID:       in.PatientID,
			AppointmentDate: in.AppointmentDate,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
	})
	return &a, nil
}

func (s *clinicService) UpdateAppointment(_ context.Context, id int64, in model.AppointmentInput) (*model.Appointment, error) {
	if err := checkAppointment(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	a, ok := s.appointments.get(id)
	if !ok {
		return nil, fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	if err := s.checkRefs(in.DoctorID, in.PatientID, 0); err != nil {
		return nil, err
	}
	a.DoctorID = in.DoctorID
	a.PatientID = in.PatientID
	a.AppointmentDate = in.AppointmentDate
	a.UpdatedAt = s.now().UTC()
	s.appointments.put(id, a)
	return &a, nil
}

func checkAppointment(in model.AppointmentInput) error {
	if in.DoctorID == 0 || in.AppointmentDate == 0 {
		return fmt.Errorf("%w: doctor_id and appointment_date are required", ErrInvalidInput)
	}
	return nil
}

func (s *clinicService) DeleteAppointment(_ context.Context, id int64) error {
	if !s.appointments.remove(id) {
		return fmt.Errorf("appointment %d: %w", id, ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Diagnoses
// ---------------------------------------------------------------------------

func (s *clinicService) ListDiagnoses(_ context.Context) ([]model.Diagnosis, error) {
	return s.diagnoses.list(nil), nil
}

func (s *clinicService) CreateDiagnosis(_ context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
	if strings.TrimSpace(in.Condition) == "" {
		return nil, fmt.Errorf("%w: condition is required", ErrInvalidInput)
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.checkRefs(0, in.PatientID, 0); err != nil {
		return nil, err
	}
	d := s.diagnoses.insert(func(id int64) model.Diagnosis { return diagnosisFrom(id, in) })
	return &d, nil
}

func (s *clinicService) UpdateDiagnosis(_ context.Context, id int64, in model.DiagnosisInput) (*model.Diagnosis, error) {
	s.writes.Lock()
	defer s.writes.Unlock()

	if !s.diagnoses.exists(id) {
		return nil, fmt.Errorf("diagnosis %d: %w", id, ErrNotFound)
	}
	if err := s.checkRefs(0, in.PatientID, 0); err != nil {
		return nil, err
	}
	d := diagnosisFrom(id, in)
	s.diagnoses.put(id, d)
	return &d, nil
}

func (s *clinicService) DeleteDiagnosis(_ context.Context, id int64) error {
	if !s.diagnoses.remove(id) {
		return fmt.Errorf("diagnosis %d: %w", id, ErrNotFound)
	}
	return nil
}

func diagnosisFrom(id int64, in model.DiagnosisInput) model.Diagnosis {
	return model.Diagnosis{
		ID:            id,
		PatientID:     in.PatientID,
		Condition:     in.Condition,
		DiagnosisDate: in.DiagnosisDate,
	}
}

// ---------------------------------------------------------------------------
// Prescriptions
// ---------------------------------------------------------------------------

func (s *clinicService) ListPrescriptions(_ context.Context) ([]model.Prescription, error) {
	return s.prescriptions.list(nil), nil
}

func (s *clinicService) CreatePrescription(_ context.Context, in model.PrescriptionInput) (*model.Prescription, error) {
	if err := checkPrescription(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if err := s.checkRefs(in.DoctorID, in.PatientID, in.DiagnosisID); err != nil {
		return nil, err
	}
	p := s.prescriptions.insert(func(id int64) model.Prescription { return prescriptionFrom(id, in) })
	return &p, nil
}

func (s *clinicService) UpdatePrescription(_ context.Context, id int64, in model.PrescriptionInput) (*model.Prescription, error) {
	if err := checkPrescription(in); err != nil {
		return nil, err
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	if !s.prescriptions.exists(id) {
		return nil, fmt.Errorf("prescription %d: %w", id, ErrNotFound)
	}
	if err := s.checkRefs(in.DoctorID, in.PatientID, in.DiagnosisID); err != nil {
		return nil, err
	}
	p := prescriptionFrom(id, in)
	s.prescriptions.put(id, p)
	return &p, nil
}

func (s *clinicService) DeletePrescription(_ context.Context, id int64) error {
	if !s.prescriptions.remove(id) {
		return fmt.Errorf("prescription %d: %w", id, ErrNotFound)
	}
	return nil
}

func checkPrescription(in model.PrescriptionInput) error {
	if in.DoctorID == 0 || in.DiagnosisID == 0 {
		return fmt.Errorf("%w: doctor_id and diagnosis_id are required", ErrInvalidInput)
	}
	if in.Medication == "" || in.Dosage == "" {
		return fmt.Errorf("%w: medication and dosage are required", ErrInvalidInput)
	}
	if in.EndDate < in.StartDate {
		return fmt.Errorf("%w: end_date is before start_date", ErrInvalidInput)
	}
	return nil
}

func prescriptionFrom(id int64, in model.PrescriptionInput) model.Prescription {
	return model.Prescription{
		ID:          id,
		PatientID:   in.PatientID,
		DoctorID:    in.DoctorID,
		DiagnosisID: in.DiagnosisID,
		Medication:  in.Medication,
		Dosage:      in.Dosage,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// checkRefs verifies every non-zero foreign key. The patient is always
// required.
func (s *clinicService) checkRefs(doctorID, patientID, diagnosisID int64) error {
	if !s.patients.exists(patientID) {
		return fmt.Errorf("%w: patient %d", ErrInvalidReference, patientID)
	}
	if doctorID != 0 && !s.doctors.exists(doctorID) {
		return fmt.Errorf("%w: doctor %d", ErrInvalidReference, doctorID)
	}
	if diagnosisID != 0 && !s.diagnoses.exists(diagnosisID) {
		return fmt.Errorf("%w: diagnosis %d", ErrInvalidReference, diagnosisID)
	}
	return nil
}
