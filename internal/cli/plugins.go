package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/corral-labs/corral/internal/branding"
	"github.com/corral-labs/corral/internal/config"
	"github.com/corral-labs/corral/internal/installer"
	"github.com/spf13/cobra"
)

var (
	pluginsExportFile string
	pluginsOrg        string
	pluginsJSON       bool
)

var pluginsCmd = &cobra.Command{
	Use:   "plugins",
	Short: "Manage declared plugin packages",
}

var pluginsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the plugins declared in the configuration",
	RunE:  runPluginsList,
}

var pluginsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the declared plugins to a requirements-style file",
	RunE:  runPluginsExport,
}

var pluginsAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List plugin repositories published by a GitHub organization",
	RunE:  runPluginsAvailable,
}

func init() {
	pluginsExportCmd.Flags().StringVar(&pluginsExportFile, "file", "", "Target file (defaults to the configured plugins file)")
	pluginsAvailableCmd.Flags().StringVar(&pluginsOrg, "org", branding.GitHubOrg(), "GitHub organization to list")
	pluginsCmd.PersistentFlags().BoolVar(&pluginsJSON, "json", false, "Output in JSON format")

	pluginsCmd.AddCommand(pluginsListCmd)
	pluginsCmd.AddCommand(pluginsExportCmd)
	pluginsCmd.AddCommand(pluginsAvailableCmd)
	rootCmd.AddCommand(pluginsCmd)
}

func runPluginsList(cmd *cobra.Command, args []string) error {
	declared := config.DeclaredPlugins()
	if len(declared) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugins declared.")
		return nil
	}

	if pluginsJSON {
		data, err := json.MarshalIndent(declared, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	sources := make([]string, 0, len(declared))
	for source := range declared {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "SOURCE\tPIN\tKIND")
	for _, source := range sources {
		pin := declared[source]
		kind := "package"
		if installer.IsSCM(source) {
			kind = "git"
			if pin == "" {
				pin = "main"
			}
		}
		if pin == "" {
			pin = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", source, pin, kind)
	}
	return w.Flush()
}

func runPluginsExport(cmd *cobra.Command, args []string) error {
	path := pluginsExportFile
	if path == "" {
		path = config.PluginsFile()
	}

	declared := config.DeclaredPlugins()
	if err := installer.WritePluginsFile(path, declared); err != nil {
		return fmt.Errorf("exporting plugins file: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d plugin(s) to %s\n", len(declared), path)
	return nil
}

func runPluginsAvailable(cmd *cobra.Command, args []string) error {
	repos, err := installer.NewGitHub().ListOrgPlugins(pluginsOrg)
	if err != nil {
		return fmt.Errorf("listing organization plugins: %w", err)
	}
	if len(repos) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No plugin repositories found in %s.\n", pluginsOrg)
		return nil
	}

	if pluginsJSON {
		data, err := json.MarshalIndent(repos, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tBRANCH\tCLONE URL")
	for _, repo := range repos {
		fmt.Fprintf(w, "%s\t%s\t%s\n", repo.Name, repo.Branch, repo.CloneURL)
	}
	return w.Flush()
}
