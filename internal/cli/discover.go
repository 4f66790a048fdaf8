package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	discoverPaths []string
	discoverJSON  bool
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover installed plugin packages and list what they provide",
	Long: `Scan the installed-packages tree for plugin packages, run their
registration entry points, and list the classes and instances each one
contributed. Additional directories can be scanned with --path.`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().StringArrayVar(&discoverPaths, "path", nil, "Additional plugin directory to scan for instantiated objects")
	discoverCmd.Flags().BoolVar(&discoverJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(discoverCmd)
}

// discoverEntry represents one discovered plugin package for display.
type discoverEntry struct {
	Package   string   `json:"package"`
	Version   string   `json:"version,omitempty"`
	Author    string   `json:"author,omitempty"`
	Classes   []string `json:"classes,omitempty"`
	Instances int      `json:"instances"`
}

func runDiscover(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	for _, path := range discoverPaths {
		if err := a.Scanner.ScanPath(path); err != nil {
			return fmt.Errorf("scanning path %s: %w", path, err)
		}
	}

	entries := collectDiscovered(a)
	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No plugin packages discovered.")
		return nil
	}

	if discoverJSON {
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	return printDiscoverTable(cmd, entries)
}

func collectDiscovered(a *app) []discoverEntry {
	packages := make(map[string]bool)
	for pkg := range a.Catalog.Classes {
		packages[pkg] = true
	}
	for pkg := range a.Catalog.Instantiated {
		packages[pkg] = true
	}

	names := make([]string, 0, len(packages))
	for pkg := range packages {
		names = append(names, pkg)
	}
	sort.Strings(names)

	entries := make([]discoverEntry, 0, len(names))
	for _, pkg := range names {
		entry := discoverEntry{Package: pkg}

		if meta := a.Catalog.Metadata[pkg]; meta != nil {
			entry.Version = meta.Version
			entry.Author = meta.Author
		}

		for class := range a.Catalog.Classes[pkg] {
			entry.Classes = append(entry.Classes, class)
		}
		sort.Strings(entry.Classes)

		for _, objects := range a.Catalog.Instantiated[pkg] {
			entry.Instances += len(objects)
		}

		entries = append(entries, entry)
	}
	return entries
}

func printDiscoverTable(cmd *cobra.Command, entries []discoverEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "PACKAGE\tVERSION\tCLASSES\tINSTANCES")
	for _, e := range entries {
		version := e.Version
		if version == "" {
			version = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", e.Package, version, len(e.Classes), e.Instances)
	}
	return w.Flush()
}
