package system

import "github.com/spf13/cobra"

func NewSystemCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "Development and tooling commands",
	}

	cmd.AddCommand(NewGenDocsCommand())
	cmd.AddCommand(NewMockAPICommand())

	return cmd
}
