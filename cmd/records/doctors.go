package records

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/internal/forms"
	"github.com/Alijeyrad/clinic_console/internal/model"
	"github.com/Alijeyrad/clinic_console/internal/present"
	"github.com/Alijeyrad/clinic_console/internal/views"
)

func NewDoctorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "doctors",
		Aliases: []string{"doctor"},
		Short:   "Manage doctors",
	}

	cmd.AddCommand(listCommand("doctors", func(ctx context.Context, env *cmdutil.Env, filter string) error {
		v := views.NewDoctorsView(env.ViewDeps())
		if err := load(ctx, v); err != nil {
			return err
		}
		rows := v.Filter(filter)
		return env.Printer.List(present.Doctors(rows), rows)
	}))
	cmd.AddCommand(newDoctorSaveCommand(false))
	cmd.AddCommand(newDoctorSaveCommand(true))
	cmd.AddCommand(deleteCommand("doctor",
		func(deps views.Deps) deleter { return views.NewDoctorsView(deps) },
		func(v deleter, id int64) string {
			r, _ := v.(*views.DoctorsView).Row(id)
			return r.Name
		},
	))
	cmd.AddCommand(&cobra.Command{
		Use:   "specialisations",
		Short: "List the accepted specialisations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return present.NewPrinter(cmd.OutOrStdout(), present.FormatTable).List(present.Specialisations(), model.Specialisations)
		},
	})

	return cmd
}

type doctorFlags struct {
	firstName      string
	lastName       string
	email          string
	phone          string
	specialisation string
}

func (f *doctorFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&f.lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.phone, "phone", "", "10 digit phone number")
	cmd.Flags().StringVar(&f.specialisation, "specialisation", "", "specialisation name or number (see `doctors specialisations`)")
}

func (f *doctorFlags) apply(cmd *cobra.Command, in *model.DoctorInput) {
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
	if fl.Changed("specialisation") {
		in.Specialisation = parseSpecialisation(f.specialisation)
	}
}

// parseSpecialisation accepts a 1-based index or a case-insensitive name.
// Anything else is passed through for the validator to reject.
func parseSpecialisation(s string) model.Specialisation {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(model.Specialisations) {
		return model.Specialisations[n-1]
	}
	for _, sp := range model.Specialisations {
		if strings.EqualFold(string(sp), s) {
			return sp
		}
	}
	return model.Specialisation(s)
}

func newDoctorSaveCommand(update bool) *cobra.Command {
	var flags doctorFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a doctor",
		Args:  cobra.NoArgs,
	}
	if update {
		cmd.Use, cmd.Short, cmd.Args = "update <id>", "Change a doctor; only the given flags are changed", cobra.ExactArgs(1)
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
			v := views.NewDoctorsView(env.ViewDeps())
			if err := load(ctx, v); err != nil {
				return err
			}

			var existing *model.Doctor
			if update {
				id, err := lookupID(args)
				if err != nil {
					return err
				}
				d, ok := v.Doctor(id)
				if !ok {
					return fmt.Errorf("doctor %d not found", id)
				}
				existing = d
			}

			form := forms.NewDoctorForm(env.FormDeps(), existing, v.FormCallbacks())
			in := form.Initial()
			flags.apply(cmd, &in)
			if _, err := form.Submit(ctx, in); err != nil {
				return env.SubmitError(err)
			}

			rows := v.Rows()
			return env.Printer.List(present.Doctors(rows), rows)
		})
	}

	flags.bind(cmd)

	return cmd
}
