package views

import (
	"context"

	"github.com/samber/lo"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

type PatientsView struct {
	listView[PatientRow]
}

func NewPatientsView(deps Deps) *PatientsView {
	deps = deps.withDefaults()
	v := &PatientsView{}
	v.listView = newListView(deps, "patient", "patients",
		NewCollection[PatientRow](patientRowID, nil),
		func(r PatientRow) []string {
			return []string{r.Name, r.Email, r.Phone, r.Address, deps.Formatter.Date(r.DateOfBirth)}
		},
		deps.API.DeletePatient,
	)
	return v
}

func (v *PatientsView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		patients, err := v.deps.API.ListPatients(ctx)
		if err != nil {
			return nil, err
		}
		return func() { v.rows.Set(lo.Map(patients, v.project)) }, nil
	})
}

func (v *PatientsView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *PatientsView) project(p model.Patient, _ int) PatientRow {
	return PatientRow{Patient: p, Name: p.DisplayName()}
}

func (v *PatientsView) Created(p model.Patient) { v.rows.Insert(v.project(p, 0)) }

func (v *PatientsView) Updated(p model.Patient) {
	if !v.rows.Replace(v.project(p, 0)) {
		v.deps.Logger.Debug("updated patient not in view", "id", p.ID)
	}
}

func (v *PatientsView) Patient(id int64) (*model.Patient, bool) {
	r, ok := v.rows.Get(id)
	if !ok {
		return nil, false
	}
	return &r.Patient, true
}

func (v *PatientsView) FormCallbacks() forms.Callbacks[model.Patient] {
	return forms.Callbacks[model.Patient]{OnCreate: v.Created, OnUpdate: v.Updated}
}
