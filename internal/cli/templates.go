package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/corral-labs/corral/internal/catalog"
	"github.com/corral-labs/corral/internal/config"
	"github.com/corral-labs/corral/internal/template"
	"github.com/spf13/cobra"
)

var (
	templatesRoots []string
	templatesJSON  bool
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Scan for template files and list the registered templates",
	Long: `Walk the installed-packages tree (and any extra --root directories)
for template files under a 'templates' path segment and list the resulting
registry entries. The first path segment after 'templates' becomes the
category tag; the remaining segments form the dot-separated name.`,
	RunE: runTemplates,
}

func init() {
	templatesCmd.Flags().StringArrayVar(&templatesRoots, "root", nil, "Additional directory to scan for templates")
	templatesCmd.Flags().BoolVar(&templatesJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	reg := catalog.New()
	roots := append([]string{config.PackagesRoot()}, templatesRoots...)

	count, err := template.NewScanner(reg).ScanAll(roots)
	if err != nil {
		return fmt.Errorf("scanning templates: %w", err)
	}
	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No templates found.")
		return nil
	}

	results := reg.Find(catalog.FieldEntry, catalog.Query{Category: "template_.*"})

	if templatesJSON {
		type templateEntry struct {
			Name     string   `json:"name"`
			Category string   `json:"category"`
			Tags     []string `json:"tags,omitempty"`
		}
		entries := make([]templateEntry, 0, len(results))
		for _, r := range results {
			entry := r.(*catalog.Entry)
			entries = append(entries, templateEntry{Name: entry.Name, Category: entry.Category, Tags: entry.Tags})
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tTAGS")
	for _, r := range results {
		entry := r.(*catalog.Entry)
		fmt.Fprintf(w, "%s\t%s\t%s\n", entry.Category, entry.Name, strings.Join(entry.Tags, ","))
	}
	return w.Flush()
}
