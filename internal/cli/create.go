package cli

import (
	"fmt"

	"github.com/corral-labs/corral/internal/branding"
	"github.com/corral-labs/corral/internal/scaffold"
	"github.com/spf13/cobra"
)

var (
	createDescription string
	createAuthor      string
	createOutput      string
)

var createCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Scaffold a new plugin package",
	Long: `Generate the file structure for a new plugin package: the plugin.yaml
metadata sidecar, a README, and a starter template tree. The plugin prefix
(` + branding.PluginPrefix() + `) is applied automatically.`,
	Args: cobra.ExactArgs(1),
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringVar(&createDescription, "description", "", "Plugin description")
	createCmd.Flags().StringVar(&createAuthor, "author", "", "Manifest author field")
	createCmd.Flags().StringVar(&createOutput, "output", "", "Output directory (defaults to ./<package-name>)")
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	data := scaffold.NewData(args[0], createDescription, createAuthor)

	outDir := createOutput
	if outDir == "" {
		outDir = data.PackageName
	}

	result, err := scaffold.Generate(data, outDir)
	if err != nil {
		return fmt.Errorf("scaffolding plugin package: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created %s with %d file(s):\n", result.OutputDir, len(result.Files))
	for _, f := range result.Files {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", f)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}
	return nil
}
