package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	authcmd "github.com/Alijeyrad/clinic_console/cmd/auth"
	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/cmd/records"
	systemcmd "github.com/Alijeyrad/clinic_console/cmd/system"
)

// NewRootCommand builds the whole command tree.
func NewRootCommand() *cobra.Command {
	var (
		cfgFile string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "clinic",
		Short: "Console for the clinic management API.",
		Long: `clinic manages doctors, patients, appointments, diagnoses and prescriptions
through the clinic REST API. Sign in once with "clinic auth login"; the
session is kept until "clinic auth logout".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags, available for all commands.
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "clinic.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "table", "output format: table or json")

	// Attach top-level command trees.
	cmd.AddCommand(authcmd.NewAuthCommand())
	cmd.AddCommand(records.NewDoctorsCommand())
	cmd.AddCommand(records.NewPatientsCommand())
	cmd.AddCommand(records.NewAppointmentsCommand())
	cmd.AddCommand(records.NewDiagnosesCommand())
	cmd.AddCommand(records.NewPrescriptionsCommand())
	cmd.AddCommand(systemcmd.NewSystemCommand())

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		if !cmdutil.IsReported(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		stop()
		os.Exit(1)
	}
}
