package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

// PrescriptionResult is handed to the prescription callbacks. Diagnosis is
// set when the submit created or changed the diagnosis, so a list can
// resolve the condition without fetching it.
type PrescriptionResult struct {
	Prescription model.Prescription
	Diagnosis    *model.Diagnosis
}

// PrescriptionForm writes a prescription together with its diagnosis.
// Creating without a diagnosis id first creates the diagnosis; if the
// prescription is then rejected, that diagnosis is deleted again.
type PrescriptionForm struct {
	deps      Deps
	existing  *model.Prescription
	diagnosis *model.Diagnosis
	callbacks Callbacks[PrescriptionResult]
}

// NewPrescriptionForm edits existing when non-nil. diagnosis is the
// diagnosis existing references, if it is known.
func NewPrescriptionForm(deps Deps, existing *model.Prescription, diagnosis *model.Diagnosis, cb Callbacks[PrescriptionResult]) *PrescriptionForm {
	return &PrescriptionForm{
		deps:      deps.withDefaults(),
		existing:  existing,
		diagnosis: diagnosis,
		callbacks: cb,
	}
}

func (f *PrescriptionForm) Initial() model.PrescriptionFormInput {
	if f.existing == nil {
		return model.PrescriptionFormInput{}
	}
	return model.PrescriptionFormInputFrom(*f.existing, f.diagnosis)
}

func (f *PrescriptionForm) Submit(ctx context.Context, in model.PrescriptionFormInput) (*PrescriptionResult, error) {
	in.Condition = strings.TrimSpace(in.Condition)
	in.Medication = strings.TrimSpace(in.Medication)
	in.Dosage = strings.TrimSpace(in.Dosage)

	if err := f.deps.Validator.Struct(in); err != nil {
		return nil, err
	}

	var (
		res *PrescriptionResult
		err error
	)
	if f.existing == nil {
		res, err = f.create(ctx, in)
	} else {
		res, err = f.update(ctx, in)
	}
	if err != nil {
		f.deps.Notifier.Error(apiclient.Message(err, fallbackErrorMessage))
		return nil, err
	}

	if f.existing == nil {
		f.deps.Notifier.Success("Prescription created successfully")
		if f.callbacks.OnCreate != nil {
			f.callbacks.OnCreate(*res)
		}
	} else {
		f.deps.Notifier.Success("Prescription updated successfully")
		if f.callbacks.OnUpdate != nil {
			f.callbacks.OnUpdate(*res)
		}
	}
	return res, nil
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func (f *PrescriptionForm) create(ctx context.Context, in model.PrescriptionFormInput) (*PrescriptionResult, error) {
	var created *model.Diagnosis
	diagnosisID := in.DiagnosisID

	if diagnosisID == 0 {
		d, err := f.deps.API.CreateDiagnosis(ctx, in.Diagnosis())
		if err != nil {
			return nil, fmt.Errorf("create diagnosis: %w", err)
		}
		created = d
		diagnosisID = d.ID
	}

	p, err := f.deps.API.CreatePrescription(ctx, in.Prescription(diagnosisID))
	if err != nil {
		err = fmt.Errorf("create prescription: %w", err)
		if created != nil {
			err = f.compensate(ctx, created.ID, err)
		}
		return nil, err
	}

	return &PrescriptionResult{Prescription: *p, Diagnosis: created}, nil
}

// compensate removes a diagnosis created for a prescription that was then
// rejected. The original failure is always part of the returned error.
func (f *PrescriptionForm) compensate(ctx context.Context, diagnosisID int64, cause error) error {
	// The caller's context may already be done; the cleanup still has to run.
	cleanupCtx := context.WithoutCancel(ctx)
	if err := f.deps.API.DeleteDiagnosis(cleanupCtx, diagnosisID); err != nil {
		f.deps.Logger.ErrorContext(cleanupCtx, "failed to remove orphaned diagnosis",
			"diagnosis_id", diagnosisID,
			"error", err,
		)
		return errors.Join(cause, fmt.Errorf("delete orphaned diagnosis %d: %w", diagnosisID, err))
	}
	f.deps.Logger.InfoContext(cleanupCtx, "removed orphaned diagnosis", "diagnosis_id", diagnosisID)
	return cause
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (f *PrescriptionForm) update(ctx context.Context, in model.PrescriptionFormInput) (*PrescriptionResult, error) {
	diagnosisID := in.DiagnosisID
	if diagnosisID == 0 {
		diagnosisID = f.existing.DiagnosisID
	}

	var updated *model.Diagnosis
	if diagnosisID == f.existing.DiagnosisID && f.diagnosisChanged(in) {
		d, err := f.deps.API.UpdateDiagnosis(ctx, diagnosisID, in.Diagnosis())
		if err != nil {
			return nil, fmt.Errorf("update diagnosis: %w", err)
		}
		updated = d
	}

	p, err := f.deps.API.UpdatePrescription(ctx, f.existing.ID, in.Prescription(diagnosisID))
	if err != nil {
		err = fmt.Errorf("update prescription: %w", err)
		if updated != nil {
			return nil, f.restore(ctx, diagnosisID, err)
		}
		return nil, err
	}

	return &PrescriptionResult{Prescription: *p, Diagnosis: updated}, nil
}

// restore puts back the diagnosis the form was opened with after the
// prescription half of an update was rejected. The original failure is
// always part of the returned error.
func (f *PrescriptionForm) restore(ctx context.Context, diagnosisID int64, cause error) error {
	cleanupCtx := context.WithoutCancel(ctx)
	if f.diagnosis == nil {
		f.deps.Logger.ErrorContext(cleanupCtx, "cannot restore diagnosis, previous values unknown", "diagnosis_id", diagnosisID)
		return cause
	}
	if _, err := f.deps.API.UpdateDiagnosis(cleanupCtx, diagnosisID, model.DiagnosisInputFrom(*f.diagnosis)); err != nil {
		f.deps.Logger.ErrorContext(cleanupCtx, "failed to restore diagnosis",
			"diagnosis_id", diagnosisID,
			"error", err,
		)
		return errors.Join(cause, fmt.Errorf("restore diagnosis %d: %w", diagnosisID, err))
	}
	f.deps.Logger.InfoContext(cleanupCtx, "restored diagnosis", "diagnosis_id", diagnosisID)
	return cause
}

// diagnosisChanged reports whether the diagnosis fields differ from the
// diagnosis the form was opened with.
func (f *PrescriptionForm) diagnosisChanged(in model.PrescriptionFormInput) bool {
	if f.diagnosis == nil {
		return in.Condition != ""
	}
	next := in.Diagnosis()
	return next.Condition != f.diagnosis.Condition ||
		next.DiagnosisDate != f.diagnosis.DiagnosisDate ||
		next.PatientID != f.diagnosis.PatientID
}
