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

func NewAppointmentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointments",
		Aliases: []string{"appointment"},
		Short:   "Manage appointments",
	}

	cmd.AddCommand(listCommand("appointments", func(ctx context.Context, env *cmdutil.Env, filter string) error {
		v := views.NewAppointmentsView(env.ViewDeps())
		if err := load(ctx, v); err != nil {
			return err
		}
		rows := v.Filter(filter)
		return env.Printer.List(present.Appointments(rows, env.Formatter), rows)
	}))
	cmd.AddCommand(newAppointmentSaveCommand(false))
	cmd.AddCommand(newAppointmentSaveCommand(true))
	cmd.AddCommand(deleteCommand("appointment",
		func(deps views.Deps) deleter { return views.NewAppointmentsView(deps) },
		func(v deleter, id int64) string {
			r, _ := v.(*views.AppointmentsView).Row(id)
			return r.PatientName + " with " + r.DoctorName
		},
	))

	return cmd
}

type appointmentFlags struct {
	doctorID  int64
	patientID int64
	date      string
}

func (f *appointmentFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.doctorID, "doctor-id", 0, "doctor id")
	cmd.Flags().Int64Var(&f.patientID, "patient-id", 0, "patient id")
	cmd.Flags().StringVar(&f.date, "date", "", "appointment time, in display.datetime_format")
}

func (f *appointmentFlags) apply(cmd *cobra.Command, fmtr views.Formatter, in *model.AppointmentInput) error {
	fl := cmd.Flags()
	if fl.Changed("doctor-id") {
		in.DoctorID = f.doctorID
	}
	if fl.Changed("patient-id") {
		in.PatientID = f.patientID
	}
	if fl.Changed("date") {
		date, err := dateFlag("date", f.date, fmtr.ParseDateTime)
		if err != nil {
			return err
		}
		in.AppointmentDate = date
	}
	return nil
}

func newAppointmentSaveCommand(update bool) *cobra.Command {
	var flags appointmentFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Book an appointment",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Change an appointment; only the given flags are changed", cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
			v := views.NewAppointmentsView(env.ViewDeps())
			if err := load(ctx, v); err != nil {
				return err
			}

			var existing *model.Appointment
			if update {
				id, err := lookupID(args)
				if err != nil {
					return err
				}
				a, ok := v.Appointment(id)
				if !ok {
					return fmt.Errorf("appointment %d not found", id)
				}
				existing = a
			}

			form := forms.NewAppointmentForm(env.FormDeps(), existing, v.FormCallbacks())
			in := form.Initial()
			if err := flags.apply(cmd, env.Formatter, &in); err != nil {
				return err
			}
			if _, err := form.Submit(ctx, in); err != nil {
				return env.SubmitError(err)
			}

			rows := v.Rows()
			return env.Printer.List(present.Appointments(rows, env.Formatter), rows)
		})
	}

	flags.bind(cmd)

	return cmd
}
