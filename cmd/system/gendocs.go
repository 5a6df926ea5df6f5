package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func NewGenDocsCommand() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Generate reference docs for every clinic command",
		Long: `Generate one page per clinic command, as Markdown (default) or man pages.

Pages are written to ./docs/cli unless --outdir is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := filepath.Abs(outDir)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", outDir, err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create docs directory %q: %w", dir, err)
			}

			root := cmd.Root()
			root.DisableAutoGenTag = true

			switch format {
			case "markdown", "md":
				err = doc.GenMarkdownTree(root, dir)
			case "man":
				err = doc.GenManTree(root, &doc.GenManHeader{Title: "CLINIC", Section: "1"}, dir)
			default:
				return fmt.Errorf("unknown docs format %q (want markdown or man)", format)
			}
			if err != nil {
				return fmt.Errorf("generate %s docs: %w", format, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "CLI docs generated in %s\n", dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "docs/cli", "output directory for generated docs")
	cmd.Flags().StringVar(&format, "format", "markdown", "markdown or man")

	return cmd
}
