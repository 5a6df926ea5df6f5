package system

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/clinic_console/cmd/cmdutil"
	"github.com/Alijeyrad/clinic_console/internal/api/http"
)

func NewMockAPICommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run an in-memory clinic API for local development",
		Long: `Run an in-memory clinic API on mock_api.port.

Records and accounts live only as long as the process. Point api.base_url
at http://localhost:<port> to use it from the console.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.LoadConfig(cmd)
			if err != nil {
				return err
			}

			http.Start(cfg, shutdownTimeout)
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 10*time.Second, "Maximum time to wait for graceful shutdown")

	return cmd
}
