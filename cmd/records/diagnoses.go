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

func NewDiagnosesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "diagnoses",
		Aliases: []string{"diagnosis"},
		Short:   "Manage diagnoses",
	}

	cmd.AddCommand(listCommand("diagnoses", func(ctx context.Context, env *cmdutil.Env, filter string) error {
		v := views.NewDiagnosesView(env.ViewDeps())
		if err := load(ctx, v); err != nil {
			return err
		}
		rows := v.Filter(filter)
		return env.Printer.List(present.Diagnoses(rows, env.Formatter), rows)
	}))
	cmd.AddCommand(newDiagnosisSaveCommand(false))
	cmd.AddCommand(newDiagnosisSaveCommand(true))
	cmd.AddCommand(deleteCommand("diagnosis",
		func(deps views.Deps) deleter { return views.NewDiagnosesView(deps) },
		func(v deleter, id int64) string {
			r, _ := v.(*views.DiagnosesView).Row(id)
			return r.Condition + " for " + r.PatientName
		},
	))

	return cmd
}

type diagnosisFlags struct {
	patientID int64
	condition string
	date      string
}

func (f *diagnosisFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.patientID, "patient-id", 0, "patient id")
	cmd.Flags().StringVar(&f.condition, "condition", "", "diagnosed condition")
	cmd.Flags().StringVar(&f.date, "date", "", "diagnosis date, in display.date_format")
}

func (f *diagnosisFlags) apply(cmd *cobra.Command, fmtr views.Formatter, in *model.DiagnosisInput) error {
	fl := cmd.Flags()
	if fl.Changed("patient-id") {
		in.PatientID = f.patientID
	}
	if fl.Changed("condition") {
		in.Condition = f.condition
	}
	if fl.Changed("date") {
		date, err := dateFlag("date", f.date, fmtr.ParseDate)
		if err != nil {
			return err
		}
		in.DiagnosisDate = date
	}
	return nil
}

func newDiagnosisSaveCommand(update bool) *cobra.Command {
	var flags diagnosisFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Record a diagnosis",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Change a diagnosis; only the given flags are changed", cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
			v := views.NewDiagnosesView(env.ViewDeps())
			if err := load(ctx, v); err != nil {
				return err
			}

			var existing *model.Diagnosis
			if update {
				id, err := lookupID(args)
				if err != nil {
					return err
				}
				d, ok := v.Diagnosis(id)
				if !ok {
					return fmt.Errorf("diagnosis %d not found", id)
				}
				existing = d
			}

			form := forms.NewDiagnosisForm(env.FormDeps(), existing, v.FormCallbacks())
			in := form.Initial()
			if err := flags.apply(cmd, env.Formatter, &in); err != nil {
				return err
			}
			if _, err := form.Submit(ctx, in); err != nil {
				return env.SubmitError(err)
			}

			rows := v.Rows()
			return env.Printer.List(present.Diagnoses(rows, env.Formatter), rows)
		})
	}

	flags.bind(cmd)

	return cmd
}
