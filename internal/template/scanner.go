package template

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/corral-labs/corral/internal/catalog"
	"go.yaml.in/yaml/v3"
)

// categoryPrefix is prepended to the category tag to form the registry
// category, e.g. "reports" -> "template_reports".
const categoryPrefix = "template_"

// markerDir is the path segment that marks a template tree.
const markerDir = "templates"

// Scanner walks directory trees and registers template files into a
// registry. Duplicate keys across all scans performed by one Scanner
// are dropped with a debug diagnostic — first writer wins.
type Scanner struct {
	registry *catalog.Registry
	seen     map[string]bool
}

// NewScanner returns a Scanner registering into the given registry.
func NewScanner(reg *catalog.Registry) *Scanner {
	return &Scanner{
		registry: reg,
		seen:     make(map[string]bool),
	}
}

// Scan walks root for YAML files beneath any "templates" path segment
// and registers each as a template entry. It returns the number of
// entries registered by this call. A missing or unreadable root is not
// an error — the scan simply registers nothing.
func (s *Scanner) Scan(root string) (int, error) {
	if _, err := os.Stat(root); err != nil {
		return 0, nil
	}

	registered := 0

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip inaccessible entries
		}
		if d.IsDir() || !isTemplateFile(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		tag, name, ok := splitTemplatePath(rel)
		if !ok {
			return nil
		}

		category := categoryPrefix + tag
		key := catalog.EntryKey(category, name)
		if s.seen[key] {
			slog.Debug("duplicate template, keeping first", "category", category, "name", name, "path", path)
			return nil
		}

		content, err := parseTemplateFile(path)
		if err != nil {
			slog.Warn("skipping unparseable template", "path", path, "error", err)
			return nil
		}

		s.seen[key] = true
		s.registry.Add(category, name, content, nil, []string{tag})
		registered++
		return nil
	})
	if err != nil {
		return registered, err
	}

	return registered, nil
}

// ScanAll scans multiple roots in order and returns the total number of
// entries registered.
func (s *Scanner) ScanAll(roots []string) (int, error) {
	total := 0
	for _, root := range roots {
		n, err := s.Scan(root)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// splitTemplatePath derives the category tag and registration name from
// a root-relative file path. The segments between the first "templates"
// segment and the filename supply the tag (first segment) and the name
// (remaining segments plus the extension-stripped filename, dot-joined).
// Paths without a "templates" segment, and paths with no segment between
// "templates" and the file, are rejected.
func splitTemplatePath(rel string) (tag, name string, ok bool) {
	parts := strings.Split(filepath.ToSlash(rel), "/")

	idx := -1
	for i, part := range parts[:len(parts)-1] {
		if part == markerDir {
			idx = i
			break
		}
	}
	if idx == -1 {
		return "", "", false
	}

	between := parts[idx+1 : len(parts)-1]
	if len(between) == 0 {
		slog.Warn("template file missing category segment", "path", rel)
		return "", "", false
	}

	file := parts[len(parts)-1]
	stem := strings.TrimSuffix(file, filepath.Ext(file))

	tag = between[0]
	name = strings.Join(append(append([]string{}, between[1:]...), stem), ".")
	return tag, name, true
}

// isTemplateFile reports whether the filename carries a YAML extension.
func isTemplateFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// parseTemplateFile loads a YAML file into a generic structure.
func parseTemplateFile(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var content any
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, err
	}
	return content, nil
}
