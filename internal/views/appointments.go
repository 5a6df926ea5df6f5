package views

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

// AppointmentsView lists every appointment, newest first, with doctor and
// patient names resolved.
type AppointmentsView struct {
	listView[AppointmentRow]

	doctors  *lookup[model.Doctor]
	patients *lookup[model.Patient]
}

func NewAppointmentsView(deps Deps) *AppointmentsView {
	deps = deps.withDefaults()
	v := &AppointmentsView{
		doctors:  newLookup(doctorKey),
		patients: newLookup(patientKey),
	}
	v.listView = newListView(deps, "appointment", "appointments",
		NewCollection(appointmentRowID, appointmentsByDateDesc),
		appointmentFields(deps.Formatter),
		deps.API.DeleteAppointment,
	)
	return v
}

func appointmentFields(f Formatter) func(AppointmentRow) []string {
	return func(r AppointmentRow) []string {
		return []string{r.DoctorName, r.PatientName, f.DateTime(r.AppointmentDate), f.Timestamp(r.CreatedAt)}
	}
}

func (v *AppointmentsView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		var (
			appointments []model.Appointment
			doctors      []model.Doctor
			patients     []model.Patient
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			appointments, err = v.deps.API.ListAppointments(gctx)
			return err
		})
		g.Go(func() (err error) {
			doctors, err = v.deps.API.ListDoctors(gctx)
			return err
		})
		g.Go(func() (err error) {
			patients, err = v.deps.API.ListPatients(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return func() {
			v.doctors.set(doctors)
			v.patients.set(patients)
			v.rows.Set(lo.Map(appointments, v.project))
		}, nil
	})
}

func (v *AppointmentsView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *AppointmentsView) project(a model.Appointment, _ int) AppointmentRow {
	return AppointmentRow{
		Appointment: a,
		DoctorName:  name(v.doctors, a.DoctorID, doctorName),
		PatientName: name(v.patients, a.PatientID, patientName),
	}
}

func (v *AppointmentsView) Created(a model.Appointment) { v.rows.Insert(v.project(a, 0)) }

func (v *AppointmentsView) Updated(a model.Appointment) {
	if !v.rows.Replace(v.project(a, 0)) {
		v.deps.Logger.Debug("updated appointment not in view", "id", a.ID)
	}
}

func (v *AppointmentsView) Appointment(id int64) (*model.Appointment, bool) {
	r, ok := v.rows.Get(id)
	if !ok {
		return nil, false
	}
	return &r.Appointment, true
}

// Doctors and Patients are the sibling snapshots taken at load time, in id
// order, for pickers.
func (v *AppointmentsView) Doctors() []model.Doctor   { return v.doctors.values() }
func (v *AppointmentsView) Patients() []model.Patient { return v.patients.values() }

func (v *AppointmentsView) FormCallbacks() forms.Callbacks[model.Appointment] {
	return forms.Callbacks[model.Appointment]{OnCreate: v.Created, OnUpdate: v.Updated}
}
