package forms

import (
	"context"
	"errors"
	"net/http"
	"reflect"
	"testing"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

func newPrescriptionInput() model.PrescriptionFormInput {
	return model.PrescriptionFormInput{
		PatientID:  1,
		DoctorID:   2,
		Condition:  "Migraine",
		Medication: "Ibuprofen",
		Dosage:     "200mg",
		StartDate:  1_700_000_000,
		EndDate:    1_700_864_000,
	}
}

func TestPrescriptionForm_CreateWithNewDiagnosis(t *testing.T) {
	api := newFakeAPI()
	deps, rec := newDeps(api)

	var got []PrescriptionResult
	form := NewPrescriptionForm(deps, nil, nil, Callbacks[PrescriptionResult]{
		OnCreate: func(r PrescriptionResult) { got = append(got, r) },
	})

	res, err := form.Submit(context.Background(), newPrescriptionInput())
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if !reflect.DeepEqual(api.calls, []string{"CreateDiagnosis", "CreatePrescription"}) {
		t.Fatalf("unexpected call order %v", api.calls)
	}
	if res.Diagnosis == nil || res.Diagnosis.Condition != "Migraine" {
		t.Fatalf("expected created diagnosis in result, got %+v", res.Diagnosis)
	}
	if api.diagnosisInputs[0].DiagnosisDate != newPrescriptionInput().StartDate {
		t.Errorf("diagnosis date should default to start date, got %d", api.diagnosisInputs[0].DiagnosisDate)
	}
	if res.Prescription.DiagnosisID != res.Diagnosis.ID {
		t.Errorf("prescription references %d, diagnosis is %d", res.Prescription.DiagnosisID, res.Diagnosis.ID)
	}
	if len(got) != 1 || got[0].Prescription.ID != res.Prescription.ID {
		t.Errorf("OnCreate called with %v", got)
	}
	if len(rec.Errors()) != 0 {
		t.Errorf("unexpected errors %v", rec.Errors())
	}
}

func TestPrescriptionForm_CreateWithExistingDiagnosis(t *testing.T) {
	api := newFakeAPI()
	deps, _ := newDeps(api)
	form := NewPrescriptionForm(deps, nil, nil, Callbacks[PrescriptionResult]{})

	in := newPrescriptionInput()
	in.DiagnosisID = 42
	in.Condition = ""

	res, err := form.Submit(context.Background(), in)
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !reflect.DeepEqual(api.calls, []string{"CreatePrescription"}) {
		t.Fatalf("unexpected calls %v", api.calls)
	}
	if res.Prescription.DiagnosisID != 42 || res.Diagnosis != nil {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestPrescriptionForm_DiagnosisFailureStops(t *testing.T) {
	api := newFakeAPI()
	api.errs["CreateDiagnosis"] = &apiclient.Error{StatusCode: http.StatusBadRequest, Message: "condition too vague"}
	deps, rec := newDeps(api)
	form := NewPrescriptionForm(deps, nil, nil, Callbacks[PrescriptionResult]{})

	if _, err := form.Submit(context.Background(), newPrescriptionInput()); err == nil {
		t.Fatal("expected error")
	}
	if !reflect.DeepEqual(api.calls, []string{"CreateDiagnosis"}) {
		t.Fatalf("prescription must not be attempted, calls %v", api.calls)
	}
	if errs := rec.Errors(); len(errs) != 1 || errs[0] != "condition too vague" {
		t.Errorf("notifications %v", errs)
	}
}

func TestPrescriptionForm_Compensation(t *testing.T) {
	prescriptionErr := &apiclient.Error{StatusCode: http.StatusUnprocessableEntity, Message: "dosage rejected"}

	tests := []struct {
		name        string
		deleteErr   error
		wantDeleted int
	}{
		{name: "orphan removed", wantDeleted: 1},
		{name: "cleanup fails", deleteErr: &apiclient.Error{StatusCode: http.StatusInternalServerError, Message: "boom"}, wantDeleted: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.errs["CreatePrescription"] = prescriptionErr
			if tt.deleteErr != nil {
				api.errs["DeleteDiagnosis"] = tt.deleteErr
			}
			deps, rec := newDeps(api)
			called := false
			form := NewPrescriptionForm(deps, nil, nil, Callbacks[PrescriptionResult]{OnCreate: func(PrescriptionResult) { called = true }})

			_, err := form.Submit(context.Background(), newPrescriptionInput())
			if !errors.Is(err, prescriptionErr) {
				t.Fatalf("expected prescription error in chain, got %v", err)
			}
			if tt.deleteErr != nil && !errors.Is(err, tt.deleteErr) {
				t.Errorf("expected cleanup error in chain, got %v", err)
			}
			if called {
				t.Error("callback must not run")
			}

			want := []string{"CreateDiagnosis", "CreatePrescription", "DeleteDiagnosis"}
			if !reflect.DeepEqual(api.calls, want) {
				t.Fatalf("calls = %v, want %v", api.calls, want)
			}
			if len(api.deletedDiagnoses) != tt.wantDeleted {
				t.Errorf("deleted diagnoses %v", api.deletedDiagnoses)
			}
			if errs := rec.Errors(); len(errs) != 1 || errs[0] != "dosage rejected" {
				t.Errorf("notifications %v", errs)
			}
		})
	}
}

func TestPrescriptionForm_Update(t *testing.T) {
	existing := &model.Prescription{
		ID: 9, PatientID: 1, DoctorID: 2, DiagnosisID: 30,
		Medication: "Ibuprofen", Dosage: "200mg",
		StartDate: 1_700_000_000, EndDate: 1_700_864_000,
	}
	diagnosis := &model.Diagnosis{ID: 30, PatientID: 1, Condition: "Migraine", DiagnosisDate: 1_699_000_000}

	tests := []struct {
		name      string
		mutate    func(in *model.PrescriptionFormInput)
		wantCalls []string
	}{
		{
			name:      "unchanged diagnosis is skipped",
			mutate:    func(in *model.PrescriptionFormInput) {},
			wantCalls: []string{"UpdatePrescription"},
		},
		{
			name:      "dosage only",
			mutate:    func(in *model.PrescriptionFormInput) { in.Dosage = "400mg" },
			wantCalls: []string{"UpdatePrescription"},
		},
		{
			name:      "condition changed",
			mutate:    func(in *model.PrescriptionFormInput) { in.Condition = "Cluster headache" },
			wantCalls: []string{"UpdateDiagnosis", "UpdatePrescription"},
		},
		{
			name:      "diagnosis date changed",
			mutate:    func(in *model.PrescriptionFormInput) { in.DiagnosisDate = 1_699_500_000 },
			wantCalls: []string{"UpdateDiagnosis", "UpdatePrescription"},
		},
		{
			name:      "switched to another diagnosis",
			mutate:    func(in *model.PrescriptionFormInput) { in.DiagnosisID = 31; in.Condition = "Other" },
			wantCalls: []string{"UpdatePrescription"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			deps, _ := newDeps(api)

			var updated []PrescriptionResult
			form := NewPrescriptionForm(deps, existing, diagnosis, Callbacks[PrescriptionResult]{
				OnUpdate: func(r PrescriptionResult) { updated = append(updated, r) },
			})

			in := form.Initial()
			tt.mutate(&in)
			res, err := form.Submit(context.Background(), in)
			if err != nil {
				t.Fatalf("Submit() error = %v", err)
			}
			if !reflect.DeepEqual(api.calls, tt.wantCalls) {
				t.Fatalf("calls = %v, want %v", api.calls, tt.wantCalls)
			}
			if api.updatedPrescription != existing.ID {
				t.Errorf("updated prescription %d", api.updatedPrescription)
			}
			if len(updated) != 1 {
				t.Fatalf("OnUpdate called %d times", len(updated))
			}
			if (res.Diagnosis != nil) != (len(tt.wantCalls) == 2) {
				t.Errorf("result diagnosis %+v", res.Diagnosis)
			}
		})
	}
}

func TestPrescriptionForm_RoundTripPayload(t *testing.T) {
	existing := &model.Prescription{
		ID: 9, PatientID: 1, DoctorID: 2, DiagnosisID: 30,
		Medication: "Ibuprofen", Dosage: "200mg",
		StartDate: 1_700_000_000, EndDate: 1_700_864_000,
	}
	diagnosis := &model.Diagnosis{ID: 30, PatientID: 1, Condition: "Migraine", DiagnosisDate: 1_699_000_000}

	api := newFakeAPI()
	deps, _ := newDeps(api)
	form := NewPrescriptionForm(deps, existing, diagnosis, Callbacks[PrescriptionResult]{})

	if _, err := form.Submit(context.Background(), form.Initial()); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	want := model.PrescriptionInput{
		PatientID: 1, DoctorID: 2, DiagnosisID: 30,
		Medication: "Ibuprofen", Dosage: "200mg",
		StartDate: 1_700_000_000, EndDate: 1_700_864_000,
	}
	if api.prescriptionInputs[0] != want {
		t.Errorf("payload = %+v, want %+v", api.prescriptionInputs[0], want)
	}
}
