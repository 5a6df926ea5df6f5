// Package forms implements the create/update forms for every clinic
// entity. A form validates its input locally, calls the API, and hands the
// server's entity to exactly one of its callbacks. Reconciling any list is
// left to the caller.
package forms

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/notify"
	"github.com/Alijeyrad/clinic_console/pkg/apiclient"
)

const fallbackErrorMessage = "Something went wrong. Please try again."

// API is the slice of the REST client the forms call. *apiclient.Client
// satisfies it.
type API interface {
	CreateDoctor(ctx context.Context, in model.DoctorInput) (*model.Doctor, error)
	UpdateDoctor(ctx context.Context, id int64, in model.DoctorInput) (*model.Doctor, error)
	CreatePatient(ctx context.Context, in model.PatientInput) (*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, in model.PatientInput) (*model.Patient, error)
	CreateAppointment(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, in model.AppointmentInput) (*model.Appointment, error)
	CreateDiagnosis(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error)
	UpdateDiagnosis(ctx context.Context, id int64, in model.DiagnosisInput) (*model.Diagnosis, error)
	DeleteDiagnosis(ctx context.Context, id int64) error
	CreatePrescription(ctx context.Context, in model.PrescriptionInput) (*model.Prescription, error)
	UpdatePrescription(ctx context.Context, id int64, in model.PrescriptionInput) (*model.Prescription, error)
}

// Deps are shared by every form.
type Deps struct {
	API       API
	Notifier  notify.Notifier
	Validator *Validator
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = notify.Discard{}
	}
	if d.Validator == nil {
		d.Validator = NewValidator()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	return d
}

// Callbacks receive the server entity after a successful submit. Either may
// be nil.
type Callbacks[T any] struct {
	OnCreate func(T)
	OnUpdate func(T)
}

// ---------------------------------------------------------------------------
// Shared submit flow
// ---------------------------------------------------------------------------

type entityForm[In, T any] struct {
	deps      Deps
	noun      string
	editing   bool
	create    func(ctx context.Context, in In) (*T, error)
	update    func(ctx context.Context, in In) (*T, error)
	normalize func(in *In)
	unique    bool
	callbacks Callbacks[T]
}

func (f *entityForm[In, T]) submit(ctx context.Context, in In) (*T, error) {
	if f.normalize != nil {
		f.normalize(&in)
	}
	if err := f.deps.Validator.Struct(in); err != nil {
		return nil, err
	}

	action, call := "create", f.create
	if f.editing {
		action, call = "update", f.update
	}

	out, err := call(ctx, in)
	if err != nil {
		return nil, f.fail(action, err)
	}

	if f.editing {
		f.deps.Notifier.Success(f.noun + " updated successfully")
		if f.callbacks.OnUpdate != nil {
			f.callbacks.OnUpdate(*out)
		}
	} else {
		f.deps.Notifier.Success(f.noun + " created successfully")
		if f.callbacks.OnCreate != nil {
			f.callbacks.OnCreate(*out)
		}
	}
	return out, nil
}

// fail notifies the user and returns the error handed back to the caller.
// Uniqueness conflicts become a field error.
func (f *entityForm[In, T]) fail(action string, err error) error {
	f.deps.Logger.Debug("form submit failed", "entity", f.noun, "action", action, "error", err)

	if f.unique {
		if field, msg := duplicateField(err); field != "" {
			f.deps.Notifier.Error(msg)
			return &ValidationError{Fields: map[string]string{field: msg}}
		}
	}

	f.deps.Notifier.Error(apiclient.Message(err, fallbackErrorMessage))
	return fmt.Errorf("%s %s: %w", action, strings.ToLower(f.noun), err)
}

// duplicateField recognises the server's unique-constraint failures on
// email or phone.
func duplicateField(err error) (field, msg string) {
	e, ok := apiclient.AsError(err)
	if !ok || e.StatusCode == 0 {
		return "", ""
	}
	text := strings.ToLower(e.Message)
	conflict := e.StatusCode == http.StatusConflict ||
		strings.Contains(text, "unique") ||
		strings.Contains(text, "already") ||
		strings.Contains(text, "duplicate")
	if !conflict {
		return "", ""
	}

	switch {
	case strings.Contains(text, "email"):
		return "email", "Email already in use"
	case strings.Contains(text, "phone"):
		return "phone", "Phone number already in use"
	default:
		return "", ""
	}
}

// ---------------------------------------------------------------------------
// Doctor
// ---------------------------------------------------------------------------

type DoctorForm struct {
	entityForm[model.DoctorInput, model.Doctor]
	existing *model.Doctor
}

// NewDoctorForm edits existing when non-nil and creates otherwise.
func NewDoctorForm(deps Deps, existing *model.Doctor, cb Callbacks[model.Doctor]) *DoctorForm {
	deps = deps.withDefaults()
	f := &DoctorForm{existing: existing}
	f.entityForm = entityForm[model.DoctorInput, model.Doctor]{
		deps:      deps,
		noun:      "Doctor",
		editing:   existing != nil,
		create:    deps.API.CreateDoctor,
		normalize: func(in *model.DoctorInput) { normalizeContact(&in.Email, &in.Phone) },
		unique:    true,
		callbacks: cb,
	}
	if existing != nil {
		id := existing.ID
		f.update = func(ctx context.Context, in model.DoctorInput) (*model.Doctor, error) {
			return deps.API.UpdateDoctor(ctx, id, in)
		}
	}
	return f
}

func (f *DoctorForm) Initial() model.DoctorInput {
	if f.existing == nil {
		return model.DoctorInput{}
	}
	return model.DoctorInputFrom(*f.existing)
}

func (f *DoctorForm) Submit(ctx context.Context, in model.DoctorInput) (*model.Doctor, error) {
	return f.submit(ctx, in)
}

// ---------------------------------------------------------------------------
// Patient
// ---------------------------------------------------------------------------

type PatientForm struct {
	entityForm[model.PatientInput, model.Patient]
	existing *model.Patient
}

func NewPatientForm(deps Deps, existing *model.Patient, cb Callbacks[model.Patient]) *PatientForm {
	deps = deps.withDefaults()
	f := &PatientForm{existing: existing}
	f.entityForm = entityForm[model.PatientInput, model.Patient]{
		deps:    deps,
		noun:    "Patient",
		editing: existing != nil,
		create:  deps.API.CreatePatient,
		normalize: func(in *model.PatientInput) {
			normalizeContact(&in.Email, &in.Phone)
			in.Address = strings.TrimSpace(in.Address)
		},
		unique:    true,
		callbacks: cb,
	}
	if existing != nil {
		id := existing.ID
		f.update = func(ctx context.Context, in model.PatientInput) (*model.Patient, error) {
			return deps.API.UpdatePatient(ctx, id, in)
		}
	}
	return f
}

func (f *PatientForm) Initial() model.PatientInput {
	if f.existing == nil {
		return model.PatientInput{}
	}
	return model.PatientInputFrom(*f.existing)
}

func (f *PatientForm) Submit(ctx context.Context, in model.PatientInput) (*model.Patient, error) {
	return f.submit(ctx, in)
}

// ---------------------------------------------------------------------------
// Appointment
// ---------------------------------------------------------------------------

type AppointmentForm struct {
	entityForm[model.AppointmentInput, model.Appointment]
	existing *model.Appointment
}

func NewAppointmentForm(deps Deps, existing *model.Appointment, cb Callbacks[model.Appointment]) *AppointmentForm {
	deps = deps.withDefaults()
	f := &AppointmentForm{existing: existing}
	f.entityForm = entityForm[model.AppointmentInput, model.Appointment]{
		deps:      deps,
		noun:      "Appointment",
		editing:   existing != nil,
		create:    deps.API.CreateAppointment,
		callbacks: cb,
	}
	if existing != nil {
		id := existing.ID
		f.update = func(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error) {
			return deps.API.UpdateAppointment(ctx, id, in)
		}
	}
	return f
}

func (f *AppointmentForm) Initial() model.AppointmentInput {
	if f.existing == nil {
		return model.AppointmentInput{}
	}
	return model.AppointmentInputFrom(*f.existing)
}

func (f *AppointmentForm) Submit(ctx context.Context, in model.AppointmentInput) (*model.Appointment, error) {
	return f.submit(ctx, in)
}

// ---------------------------------------------------------------------------
// Diagnosis
// ---------------------------------------------------------------------------

type DiagnosisForm struct {
	entityForm[model.DiagnosisInput, model.Diagnosis]
	existing *model.Diagnosis
}

func NewDiagnosisForm(deps Deps, existing *model.Diagnosis, cb Callbacks[model.Diagnosis]) *DiagnosisForm {
	deps = deps.withDefaults()
	f := &DiagnosisForm{existing: existing}
	f.entityForm = entityForm[model.DiagnosisInput, model.Diagnosis]{
		deps:      deps,
		noun:      "Diagnosis",
		editing:   existing != nil,
		create:    deps.API.CreateDiagnosis,
		normalize: func(in *model.DiagnosisInput) { in.Condition = strings.TrimSpace(in.Condition) },
		callbacks: cb,
	}
	if existing != nil {
		id := existing.ID
		f.update = func(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
			return deps.API.UpdateDiagnosis(ctx, id, in)
		}
	}
	return f
}

func (f *DiagnosisForm) Initial() model.DiagnosisInput {
	if f.existing == nil {
		return model.DiagnosisInput{}
	}
	return model.DiagnosisInputFrom(*f.existing)
}

func (f *DiagnosisForm) Submit(ctx context.Context, in model.DiagnosisInput) (*model.Diagnosis, error) {
	return f.submit(ctx, in)
}

func normalizeContact(email, phone *string) {
	*email = strings.TrimSpace(*email)
	*phone = NormalizePhone(*phone)
}
