package views

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

// PatientAppointmentsView is one patient's appointment history, read from
// the nested /patients/:id/appointments route.
type PatientAppointmentsView struct {
	listView[AppointmentRow]

	patientID int64
	patient   *lookup[model.Patient]
	doctors   *lookup[model.Doctor]
}

func NewPatientAppointmentsView(deps Deps, pid int64) *PatientAppointmentsView {
	deps = deps.withDefaults()
	v := &PatientAppointmentsView{
		patientID: pid,
		patient:   newLookup(patientKey),
		doctors:   newLookup(doctorKey),
	}
	v.listView = newListView(deps, "appointment", "appointments",
		NewCollection(appointmentRowID, appointmentsByDateDesc),
		appointmentFields(deps.Formatter),
		deps.API.DeleteAppointment,
	)
	return v
}

func (v *PatientAppointmentsView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		var (
			appointments []model.Appointment
			patient      *model.Patient
			doctors      []model.Doctor
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			appointments, err = v.deps.API.ListPatientAppointments(gctx, v.patientID)
			return err
		})
		g.Go(func() (err error) {
			patient, err = v.deps.API.GetPatient(gctx, v.patientID)
			return err
		})
		g.Go(func() (err error) {
			doctors, err = v.deps.API.ListDoctors(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return func() {
			v.patient.set([]model.Patient{*patient})
			v.doctors.set(doctors)
			v.rows.Set(lo.Map(appointments, v.project))
		}, nil
	})
}

func (v *PatientAppointmentsView) Reload(ctx context.Context) error { return v.Load(ctx) }

// Patient is the patient whose history this is, once loaded.
func (v *PatientAppointmentsView) Patient() (*model.Patient, bool) {
	p, ok := v.patient.get(v.patientID)
	if !ok {
		return nil, false
	}
	return &p, true
}

func (v *PatientAppointmentsView) project(a model.Appointment, _ int) AppointmentRow {
	return AppointmentRow{
		Appointment: a,
		DoctorName:  name(v.doctors, a.DoctorID, doctorName),
		PatientName: name(v.patient, a.PatientID, patientName),
	}
}

// Created ignores appointments booked for somebody else.
func (v *PatientAppointmentsView) Created(a model.Appointment) {
	if a.PatientID != v.patientID {
		return
	}
	v.rows.Insert(v.project(a, 0))
}

// Updated drops the row when the appointment moved to another patient.
func (v *PatientAppointmentsView) Updated(a model.Appointment) {
	if a.PatientID != v.patientID {
		v.rows.Remove(a.ID)
		return
	}
	v.rows.Replace(v.project(a, 0))
}

func (v *PatientAppointmentsView) FormCallbacks() forms.Callbacks[model.Appointment] {
	return forms.Callbacks[model.Appointment]{OnCreate: v.Created, OnUpdate: v.Updated}
}
