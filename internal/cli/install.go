package cli

import (
	"fmt"

	"github.com/corral-labs/corral/internal/config"
	"github.com/corral-labs/corral/internal/installer"
	"github.com/corral-labs/corral/internal/plugin"
	"github.com/spf13/cobra"
)

var installQuiet bool

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install the declared plugin packages",
	Long: `Invoke the configured package manager for every plugin declared in the
configuration. Source-control URLs are pinned to their branch and registry
packages to their version. After a successful install, discovery runs so
the new packages become queryable immediately.`,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installQuiet, "quiet", false, "Pass the package manager's quiet flag")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	inst := installer.New(a.Catalog, a.Scanner, a.Source, config.InstallerCommand())
	inst.Install(installQuiet)

	printInstalled(cmd, a.Catalog)
	return nil
}

func printInstalled(cmd *cobra.Command, cat *plugin.Catalog) {
	if len(cat.Classes) == 0 && len(cat.Instantiated) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugin packages loaded.")
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d plugin package(s).\n", len(cat.Classes))
}
