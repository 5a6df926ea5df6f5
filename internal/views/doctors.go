package views

import (
	"context"

	"github.com/samber/lo"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

type DoctorsView struct {
	listView[DoctorRow]
}

func NewDoctorsView(deps Deps) *DoctorsView {
	deps = deps.withDefaults()
	v := &DoctorsView{}
	v.listView = newListView(deps, "doctor", "doctors",
		NewCollection[DoctorRow](doctorRowID, nil),
		func(r DoctorRow) []string {
			return []string{r.Name, r.Email, r.Phone, string(r.Specialisation)}
		},
		deps.API.DeleteDoctor,
	)
	return v
}

func (v *DoctorsView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		doctors, err := v.deps.API.ListDoctors(ctx)
		if err != nil {
			return nil, err
		}
		return func() { v.rows.Set(lo.Map(doctors, v.project)) }, nil
	})
}

// Reload fetches everything again.
func (v *DoctorsView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *DoctorsView) project(d model.Doctor, _ int) DoctorRow {
	return DoctorRow{Doctor: d, Name: d.DisplayName()}
}

func (v *DoctorsView) Created(d model.Doctor) { v.rows.Insert(v.project(d, 0)) }

func (v *DoctorsView) Updated(d model.Doctor) {
	if !v.rows.Replace(v.project(d, 0)) {
		v.deps.Logger.Debug("updated doctor not in view", "id", d.ID)
	}
}

// Doctor returns the entity behind a row, for pre-populating a form.
func (v *DoctorsView) Doctor(id int64) (*model.Doctor, bool) {
	r, ok := v.rows.Get(id)
	if !ok {
		return nil, false
	}
	return &r.Doctor, true
}

// FormCallbacks wires a doctor form to this view.
func (v *DoctorsView) FormCallbacks() forms.Callbacks[model.Doctor] {
	return forms.Callbacks[model.Doctor]{OnCreate: v.Created, OnUpdate: v.Updated}
}
