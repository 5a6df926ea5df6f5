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

func NewPatientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patients",
		Aliases: []string{"patient"},
		Short:   "Manage patients",
	}

	cmd.AddCommand(listCommand("patients", func(ctx context.Context, env *cmdutil.Env, filter string) error {
		v := views.NewPatientsView(env.ViewDeps())
		if err := load(ctx, v); err != nil {
			return err
		}
		rows := v.Filter(filter)
		return env.Printer.List(present.Patients(rows, env.Formatter), rows)
	}))
	cmd.AddCommand(newPatientSaveCommand(false))
	cmd.AddCommand(newPatientSaveCommand(true))
	cmd.AddCommand(deleteCommand("patient",
		func(deps views.Deps) deleter { return views.NewPatientsView(deps) },
		func(v deleter, id int64) string {
			r, _ := v.(*views.PatientsView).Row(id)
			return r.Name
		},
	))
	cmd.AddCommand(newPatientAppointmentsCommand())

	return cmd
}

type patientFlags struct {
	firstName   string
	lastName    string
	email       string
	phone       string
	dateOfBirth string
	address     string
}

func (f *patientFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "10 digit phone number")
	cmd.Flags().StringVar(&f.dateOfBirth, "dob", "", "date of birth, in display.date_format")
	cmd.Flags().StringVar(&f.address, "address", "", "postal address")
}

func (f *patientFlags) apply(cmd *cobra.Command, fmtr views.Formatter, in *model.PatientInput) error {
	fl := cmd.Flags()
	if fl.Changed("first-name") {
		in.FirstName = f.firstName
	}
	if fl.Changed("last-name") {
		in.LastName = f.lastName
	}
	if fl.Changed("email") {
		in.Email = f.email
	}
	if fl.Changed("phone") {
		in.Phone = f.phone
	}
	if fl.Changed("dob") {
		dob, err := dateFlag("dob", f.dateOfBirth, fmtr.ParseDate)
		if err != nil {
			return err
		}
		in.DateOfBirth = dob
	}
	if fl.Changed("address") {
		in.Address = f.address
	}
	return nil
}

func newPatientSaveCommand(update bool) *cobra.Command {
	var flags patientFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a patient",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Change a patient; only the given flags are changed", cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
			v := views.NewPatientsView(env.ViewDeps())
			if err := load(ctx, v); err != nil {
				return err
			}

			var existing *model.Patient
			if update {
				id, err := lookupID(args)
				if err != nil {
					return err
				}
				p, ok := v.Patient(id)
				if !ok {
					return fmt.Errorf("patient %d not found", id)
				}
				existing = p
			}

			form := forms.NewPatientForm(env.FormDeps(), existing, v.FormCallbacks())
			in := form.Initial()
			if err := flags.apply(cmd, env.Formatter, &in); err != nil {
				return err
			}
			if _, err := form.Submit(ctx, in); err != nil {
				return env.SubmitError(err)
			}

			rows := v.Rows()
			return env.Printer.List(present.Patients(rows, env.Formatter), rows)
		})
	}

	flags.bind(cmd)

	return cmd
}

func newPatientAppointmentsCommand() *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "appointments <id>",
		Short: "List one patient's appointments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				v := views.NewPatientAppointmentsView(env.ViewDeps(), id)
				if err := load(ctx, v); err != nil {
					return err
				}
				if p, ok := v.Patient(); ok && env.Printer.Format() == present.FormatTable {
					env.Printer.Line("Appointments for %s", p.DisplayName())
				}
				rows := v.Filter(filter)
				return env.Printer.List(present.Appointments(rows, env.Formatter), rows)
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show rows containing this text (case-insensitive)")

	return cmd
}
