package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/corral-labs/corral/internal/catalog"
	"github.com/spf13/cobra"
)

var (
	findName     string
	findCategory string
	findTags     string
	findField    string
	findLimit    int
	findJSON     bool
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Query the registry for registered entries",
	Long: `Query the registry populated by installed plugins and scanned templates.

--category is a regular expression matched against the full category string
(e.g. 'template_.*'). --name matches exactly, case-insensitive. --tag passes
entries carrying any of the given tags.`,
	RunE: runFind,
}

func init() {
	findCmd.Flags().StringVar(&findName, "name", "", "Filter by entry name (exact, case-insensitive)")
	findCmd.Flags().StringVar(&findCategory, "category", "", "Filter by category (regular expression)")
	findCmd.Flags().StringVar(&findTags, "tag", "", "Filter by tags (comma-separated, matches any)")
	findCmd.Flags().StringVar(&findField, "field", "*", "Field to project (name, category, type, instances, tags, *)")
	findCmd.Flags().IntVar(&findLimit, "limit", 0, "Stop after this many results (0 = unbounded)")
	findCmd.Flags().BoolVar(&findJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(findCmd)
}

// findEntry represents a registry entry for display.
type findEntry struct {
	Name      string   `json:"name"`
	Category  string   `json:"category"`
	Type      string   `json:"type,omitempty"`
	Instances int      `json:"instances"`
	Tags      []string `json:"tags,omitempty"`
}

func runFind(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	if _, err := a.scanTemplates(); err != nil {
		return fmt.Errorf("scanning templates: %w", err)
	}

	var tags []string
	for _, t := range strings.Split(findTags, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}

	query := catalog.Query{
		Name:     findName,
		Category: findCategory,
		Tags:     tags,
		Limit:    findLimit,
	}

	results := a.Registry.Find(catalog.Field(findField), query)
	if len(results) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching entries.")
		return nil
	}

	if catalog.Field(findField) != catalog.FieldEntry {
		return printProjected(cmd, results)
	}

	var entries []findEntry
	for _, r := range results {
		entry, ok := r.(*catalog.Entry)
		if !ok {
			continue
		}
		fe := findEntry{
			Name:      entry.Name,
			Category:  entry.Category,
			Instances: len(entry.Instances),
			Tags:      entry.Tags,
		}
		if entry.Type != nil {
			fe.Type = fmt.Sprintf("%v", entry.Type)
		}
		entries = append(entries, fe)
	}

	if findJSON {
		return printFindJSON(cmd, entries)
	}
	return printFindTable(cmd, entries)
}

func printProjected(cmd *cobra.Command, results []any) error {
	if findJSON {
		display := make([]string, len(results))
		for i, r := range results {
			display[i] = fmt.Sprintf("%v", r)
		}
		data, err := json.MarshalIndent(display, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%v\n", r)
	}
	return nil
}

func printFindTable(cmd *cobra.Command, entries []findEntry) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tNAME\tTYPE\tINSTANCES\tTAGS")
	for _, e := range entries {
		typ := e.Type
		if typ == "" {
			typ = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", e.Category, e.Name, typ, e.Instances, strings.Join(e.Tags, ","))
	}
	return w.Flush()
}

func printFindJSON(cmd *cobra.Command, entries []findEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
