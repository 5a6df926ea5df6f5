// Package records holds one command group per clinic collection. Each
// group mounts the matching view, runs the form the way the web front end
// ran its modal, and prints the reconciled table.
package records

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/internal/views"
)

// loader is the part of every view the commands drive.
type loader interface {
	Load(ctx context.Context) error
}

type deleter interface {
	loader
	RequestDelete(id int64) error
	CancelDelete(id int64)
	ConfirmDelete(ctx context.Context, id int64) error
}

// load mounts a view. Failures were already notified by the view.
func load(ctx context.Context, v loader) error {
	if err := v.Load(ctx); err != nil {
		return cmdutil.Reported(err)
	}
	return nil
}

func listCommand(plural string, run func(ctx context.Context, env *cmdutil.Env, filter string) error) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + plural,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				return run(ctx, env, filter)
			})
		},
	}

	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show rows containing this text (case-insensitive)")

	return cmd
}

// deleteCommand asks before deleting unless --yes is given. describe
// names the row in the prompt.
func deleteCommand(noun string, open func(views.Deps) deleter, describe func(v deleter, id int64) string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := cmdutil.ParseID(args[0])
			if err != nil {
				return err
			}
			return cmdutil.RunAuthed(cmd, func(ctx context.Context, env *cmdutil.Env) error {
				v := open(env.ViewDeps())
				if err := load(ctx, v); err != nil {
					return err
				}
				if err := v.RequestDelete(id); err != nil {
					return fmt.Errorf("%s %d: %w", noun, id, err)
				}

				if !yes {
					ok, err := env.Confirm(fmt.Sprintf("Delete %s %d (%s)?", noun, id, describe(v, id)))
					if err != nil {
						v.CancelDelete(id)
						return err
					}
					if !ok {
						v.CancelDelete(id)
						env.Printer.Line("Cancelled.")
						return nil
					}
				}

				if err := v.ConfirmDelete(ctx, id); err != nil {
					return cmdutil.Reported(err)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")

	return cmd
}

// lookupID reads the record id argument of update commands.
func lookupID(args []string) (int64, error) {
	return cmdutil.ParseID(args[0])
}

// dateFlag converts a flag value through parse, naming the flag on error.
func dateFlag(name, value string, parse func(string) (int64, error)) (int64, error) {
	unix, err := parse(value)
	if err != nil {
		return 0, fmt.Errorf("--%s: %w", name, err)
	}
	return unix, nil
}
