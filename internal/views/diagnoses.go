package views

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

type DiagnosesView struct {
	listView[DiagnosisRow]

	patients *lookup[model.Patient]
}

func NewDiagnosesView(deps Deps) *DiagnosesView {
	deps = deps.withDefaults()
	v := &DiagnosesView{patients: newLookup(patientKey)}
	v.listView = newListView(deps, "diagnosis", "diagnoses",
		NewCollection[DiagnosisRow](diagnosisRowID, nil),
		func(r DiagnosisRow) []string {
			return []string{r.PatientName, r.Condition, deps.Formatter.Date(r.DiagnosisDate)}
		},
		deps.API.DeleteDiagnosis,
	)
	return v
}

func (v *DiagnosesView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		var (
			diagnoses []model.Diagnosis
			patients  []model.Patient
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			diagnoses, err = v.deps.API.ListDiagnoses(gctx)
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
			v.patients.set(patients)
			v.rows.Set(lo.Map(diagnoses, v.project))
		}, nil
	})
}

func (v *DiagnosesView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *DiagnosesView) project(d model.Diagnosis, _ int) DiagnosisRow {
	return DiagnosisRow{
		Diagnosis:   d,
		PatientName: name(v.patients, d.PatientID, patientName),
	}
}

func (v *DiagnosesView) Created(d model.Diagnosis) { v.rows.Insert(v.project(d, 0)) }

func (v *DiagnosesView) Updated(d model.Diagnosis) {
	if !v.rows.Replace(v.project(d, 0)) {
		v.deps.Logger.Debug("updated diagnosis not in view", "id", d.ID)
	}
}

func (v *DiagnosesView) Diagnosis(id int64) (*model.Diagnosis, bool) {
	r, ok := v.rows.Get(id)
	if !ok {
		return nil, false
	}
	return &r.Diagnosis, true
}

func (v *DiagnosesView) Patients() []model.Patient { return v.patients.values() }

func (v *DiagnosesView) FormCallbacks() forms.Callbacks[model.Diagnosis] {
	return forms.Callbacks[model.Diagnosis]{OnCreate: v.Created, OnUpdate: v.Updated}
}
