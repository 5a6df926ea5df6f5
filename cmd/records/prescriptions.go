package records

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/present"
	"github.com/Alijeyrad/clinic_console/internal/views"
)

func NewPrescriptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "prescriptions",
		Aliases: []string{"prescription"},
		Short:   "Manage prescriptions",
	}

	cmd.AddCommand(listCommand("prescriptions", func(ctx context.Context, env *cmdutil.Env, filter string) error {
		v := views.NewPrescriptionsView(env.ViewDeps())
		if err := load(ctx, v); err != nil {
			return err
		}
		rows := v.Filter(filter)
		return env.Printer.List(present.Prescriptions(rows, env.Formatter), rows)
	}))
	cmd.AddCommand(newPrescriptionSaveCommand(false))
	cmd.AddCommand(newPrescriptionSaveCommand(true))
	cmd.AddCommand(deleteCommand("prescription",
		func(deps views.Deps) deleter { return views.NewPrescriptionsView(deps) },
		func(v deleter, id int64) string {
			r, _ := v.(*views.PrescriptionsView).Row(id)
			return r.Medication + " for " + r.PatientName
		},
	))

	return cmd
}

type prescriptionFlags struct {
	patientID     int64
	doctorID      int64
	diagnosisID   int64
	condition     string
	diagnosisDate string
	medication    string
	dosage        string
	start         string
	end           string
}

func (f *prescriptionFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.patientID, "patient-id", 0, "patient id")
	cmd.Flags().Int64Var(&f.doctorID, "doctor-id", 0, "prescribing doctor id")
	cmd.Flags().Int64Var(&f.diagnosisID, "diagnosis-id", 0, "existing diagnosis id; omit to record a new diagnosis from --condition")
	cmd.Flags().StringVar(&f.condition, "condition", "", "condition of the new diagnosis")
	cmd.Flags().StringVar(&f.diagnosisDate, "diagnosis-date", "", "date of the new diagnosis (defaults to --start)")
	cmd.Flags().StringVar(&f.medication, "medication", "", "medication")
	cmd.Flags().StringVar(&f.dosage, "dosage", "", "dosage")
	cmd.Flags().StringVar(&f.start, "start", "", "first day, in display.date_format")
	cmd.Flags().StringVar(&f.end, "end", "", "last day, in display.date_format")
}

func (f *prescriptionFlags) apply(cmd *cobra.Command, fmtr views.Formatter, in *model.PrescriptionFormInput) error {
	fl := cmd.Flags()
	if fl.Changed("patient-id") {
		in.PatientID = f.patientID
	}
	if fl.Changed("doctor-id") {
		in.DoctorID = f.doctorID
	}
	if fl.Changed("diagnosis-id") {
		in.DiagnosisID = f.diagnosisID
	}
	if fl.Changed("condition") {
		in.Condition = f.condition
	}
	if fl.Changed("medication") {
		in.Medication = f.medication
	}
	if fl.Changed("dosage") {
		in.Dosage = f.dosage
	}

	dates := []struct {
		name  string
		value string
		dst   *int64
	}{
		{"diagnosis-date", f.diagnosisDate, &in.DiagnosisDate},
		{"start", f.start, &in.StartDate},
		{"end", f.end, &in.EndDate},
	}
	for _, d := range dates {
		if !fl.Changed(d.name) {
			continue
		}
		unix, err := dateFlag(d.name, d.value, fmtr.ParseDate)
		if err != nil {
			return err
		}
		*d.dst = unix
	}
	return nil
}

func newPrescriptionSaveCommand(update bool) *cobra.Command {
	var flags prescriptionFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Write a prescription, recording its diagnosis when new",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Change a prescription; only the given flags are changed", cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
			v := views.NewPrescriptionsView(env.ViewDeps())
			if err := load(ctx, v); err != nil {
				return err
			}

			var (
				existing  *model.Prescription
				diagnosis *model.Diagnosis
			)
			if update {
				id, err := lookupID(args)
				if err != nil {
					return err
				}
				p, ok := v.Prescription(id)
				if !ok {
					return fmt.Errorf("prescription %d not found", id)
				}
				existing = p
				diagnosis, _ = v.Diagnosis(p.DiagnosisID)
			}

			form := forms.NewPrescriptionForm(env.FormDeps(), existing, diagnosis, v.FormCallbacks())
			in := form.Initial()
			if err := flags.apply(cmd, env.Formatter, &in); err != nil {
				return err
			}
			if _, err := form.Submit(ctx, in); err != nil {
				return env.SubmitError(err)
			}

			rows := v.Rows()
			return env.Printer.List(present.Prescriptions(rows, env.Formatter), rows)
		})
	}

	flags.bind(cmd)

	return cmd
}
