package views

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
)

// PrescriptionsView lists prescriptions, latest start date first, with
// patient, doctor and diagnosis resolved. Diagnoses created or changed by
// the prescription form are folded into the diagnosis snapshot so the
// condition resolves without a reload.
type PrescriptionsView struct {
	listView[PrescriptionRow]

	patients  *lookup[model.Patient]
	doctors   *lookup[model.Doctor]
	diagnoses *lookup[model.Diagnosis]
}

func NewPrescriptionsView(deps Deps) *PrescriptionsView {
	deps = deps.withDefaults()
	v := &PrescriptionsView{
		patients:  newLookup(patientKey),
		doctors:   newLookup(doctorKey),
		diagnoses: newLookup(diagnosisKey),
	}
	f := deps.Formatter
	v.listView = newListView(deps, "prescription", "prescriptions",
		NewCollection(prescriptionRowID, prescriptionsByStartDesc),
		func(r PrescriptionRow) []string {
			return []string{
				r.PatientName, r.DoctorName, r.DiagnosisCondition,
				r.Medication, r.Dosage,
				f.Date(r.StartDate), f.Date(r.EndDate),
			}
		},
		deps.API.DeletePrescription,
	)
	return v
}

func (v *PrescriptionsView) Load(ctx context.Context) error {
	return v.load(ctx, func(ctx context.Context) (func(), error) {
		var (
			prescriptions []model.Prescription
			patients      []model.Patient
			doctors       []model.Doctor
			diagnoses     []model.Diagnosis
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			prescriptions, err = v.deps.API.ListPrescriptions(gctx)
			return err
		})
		g.Go(func() (err error) {
			patients, err = v.deps.API.ListPatients(gctx)
			return err
		})
		g.Go(func() (err error) {
			doctors, err = v.deps.API.ListDoctors(gctx)
			return err
		})
		g.Go(func() (err error) {
			diagnoses, err = v.deps.API.ListDiagnoses(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		return func() {
			v.patients.set(patients)
			v.doctors.set(doctors)
			v.diagnoses.set(diagnoses)
			v.rows.Set(lo.Map(prescriptions, v.project))
		}, nil
	})
}

func (v *PrescriptionsView) Reload(ctx context.Context) error { return v.Load(ctx) }

func (v *PrescriptionsView) project(p model.Prescription, _ int) PrescriptionRow {
	return PrescriptionRow{
		Prescription:       p,
		PatientName:        name(v.patients, p.PatientID, patientName),
		DoctorName:         name(v.doctors, p.DoctorID, doctorName),
		DiagnosisCondition: name(v.diagnoses, p.DiagnosisID, diagnosisCondition),
	}
}

func (v *PrescriptionsView) Created(res forms.PrescriptionResult) {
	if res.Diagnosis != nil {
		v.diagnoses.put(*res.Diagnosis)
	}
	v.rows.Insert(v.project(res.Prescription, 0))
}

func (v *PrescriptionsView) Updated(res forms.PrescriptionResult) {
	if res.Diagnosis != nil {
		v.diagnoses.put(*res.Diagnosis)
	}
	if !v.rows.Replace(v.project(res.Prescription, 0)) {
		v.deps.Logger.Debug("updated prescription not in view", "id", res.Prescription.ID)
	}
}

func (v *PrescriptionsView) Prescription(id int64) (*model.Prescription, bool) {
	r, ok := v.rows.Get(id)
	if !ok {
		return nil, false
	}
	return &r.Prescription, true
}

// Diagnosis returns the loaded diagnosis with id.
func (v *PrescriptionsView) Diagnosis(id int64) (*model.Diagnosis, bool) {
	d, ok := v.diagnoses.get(id)
	if !ok {
		return nil, false
	}
	return &d, true
}

func (v *PrescriptionsView) Patients() []model.Patient    { return v.patients.values() }
func (v *PrescriptionsView) Doctors() []model.Doctor      { return v.doctors.values() }
func (v *PrescriptionsView) Diagnoses() []model.Diagnosis { return v.diagnoses.values() }

func (v *PrescriptionsView) FormCallbacks() forms.Callbacks[forms.PrescriptionResult] {
	return forms.Callbacks[forms.PrescriptionResult]{OnCreate: v.Created, OnUpdate: v.Updated}
}
