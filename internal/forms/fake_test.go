package forms

import (
	"context"

	"github.com/Alijeyrad/clinic_console/internal/model"
)

// fakeAPI records every call in order and fails the methods listed in errs.
type fakeAPI struct {
	calls  []string
	errs   map[string]error
	nextID int64

	doctorInputs        []model.DoctorInput
	diagnosisInputs     []model.DiagnosisInput
	prescriptionInputs  []model.PrescriptionInput
	deletedDiagnoses    []int64
	updatedPrescription int64
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{errs: map[string]error{}, nextID: 100}
}

func (f *fakeAPI) record(name string) error {
	f.calls = append(f.calls, name)
	return f.errs[name]
}

func (f *fakeAPI) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeAPI) CreateDoctor(_ context.Context, in model.DoctorInput) (*model.Doctor, error) {
	f.doctorInputs = append(f.doctorInputs, in)
	if err := f.record("CreateDoctor"); err != nil {
		return nil, err
	}
	return &model.Doctor{ID: f.id(), FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, Specialisation: in.Specialisation}, nil
}

func (f *fakeAPI) UpdateDoctor(_ context.Context, id int64, in model.DoctorInput) (*model.Doctor, error) {
	f.doctorInputs = append(f.doctorInputs, in)
	if err := f.record("UpdateDoctor"); err != nil {
		return nil, err
	}
	return &model.Doctor{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, Specialisation: in.Specialisation}, nil
}

func (f *fakeAPI) CreatePatient(_ context.Context, in model.PatientInput) (*model.Patient, error) {
	if err := f.record("CreatePatient"); err != nil {
		return nil, err
	}
	return &model.Patient{ID: f.id(), FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, DateOfBirth: in.DateOfBirth, Address: in.Address}, nil
}

func (f *fakeAPI) UpdatePatient(_ context.Context, id int64, in model.PatientInput) (*model.Patient, error) {
	if err := f.record("UpdatePatient"); err != nil {
		return nil, err
	}
	return &model.Patient{ID: id, FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, DateOfBirth: in.DateOfBirth, Address: in.Address}, nil
}

func (f *fakeAPI) CreateAppointment(_ context.Context, in model.AppointmentInput) (*model.Appointment, error) {
	if err := f.record("CreateAppointment"); err != nil {
		return nil, err
	}
	return &model.Appointment{ID: f.id(), DoctorID: in.DoctorID, PatientID: in.PatientID, AppointmentDate: in.AppointmentDate}, nil
}

func (f *fakeAPI) UpdateAppointment(_ context.Context, id int64, in model.AppointmentInput) (*model.Appointment, error) {
	if err := f.record("UpdateAppointment"); err != nil {
		return nil, err
	}
	return &model.Appointment{ID: id, DoctorID: in.DoctorID, PatientID: in.PatientID, AppointmentDate: in.AppointmentDate}, nil
}

func (f *fakeAPI) CreateDiagnosis(_ context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
	f.diagnosisInputs = append(f.diagnosisInputs, in)
	if err := f.record("CreateDiagnosis"); err != nil {
		return nil, err
	}
	return &model.Diagnosis{ID: f.id(), PatientID: in.PatientID, Condition: in.Condition, DiagnosisDate: in.DiagnosisDate}, nil
}

func (f *fakeAPI) UpdateDiagnosis(_ context.Context, id int64, in model.DiagnosisInput) (*model.Diagnosis, error) {
	f.diagnosisInputs = append(f.diagnosisInputs, in)
	if err := f.record("UpdateDiagnosis"); err != nil {
		return nil, err
	}
	return &model.Diagnosis{ID: id, PatientID: in.PatientID, Condition: in.Condition, DiagnosisDate: in.DiagnosisDate}, nil
}

func (f *fakeAPI) DeleteDiagnosis(_ context.Context, id int64) error {
	if err := f.record("DeleteDiagnosis"); err != nil {
		return err
	}
	f.deletedDiagnoses = append(f.deletedDiagnoses, id)
	return nil
}

func (f *fakeAPI) CreatePrescription(_ context.Context, in model.PrescriptionInput) (*model.Prescription, error) {
	f.prescriptionInputs = append(f.prescriptionInputs, in)
	if err := f.record("CreatePrescription"); err != nil {
		return nil, err
	}
	return &model.Prescription{ID: f.id(), PatientID: in.PatientID, DoctorID: in.DoctorID, DiagnosisID: in.DiagnosisID, Medication: in.Medication, Dosage: in.Dosage, StartDate: in.StartDate, EndDate: in.EndDate}, nil
}

func (f *fakeAPI) UpdatePrescription(_ context.Context, id int64, in model.PrescriptionInput) (*model.Prescription, error) {
	f.prescriptionInputs = append(f.prescriptionInputs, in)
	f.updatedPrescription = id
	if err := f.record("UpdatePrescription"); err != nil {
		return nil, err
	}
	return &model.Prescription{ID: id, PatientID: in.PatientID, DoctorID: in.DoctorID, DiagnosisID: in.DiagnosisID, Medication: in.Medication, Dosage: in.Dosage, StartDate: in.StartDate, EndDate: in.EndDate}, nil
}
