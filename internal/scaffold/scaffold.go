package scaffold

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/corral-labs/corral/internal/branding"
	"github.com/corral-labs/corral/internal/manifest"
)

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name        string // e.g., "aws"
	PackageName string // Derived: corral-plugin-aws
	Description string // Human-readable description
	Version     string // Semver, e.g., "0.1.0"
	Author      string // Manifest author field
	Year        int    // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates a Data with derived fields populated. The plugin
// prefix is applied to the package name unless already present.
func NewData(name, description, author string) *Data {
	d := &Data{
		Name:        strings.TrimPrefix(name, branding.PluginPrefix()),
		Description: description,
		Author:      author,
		Version:     "0.1.0",
		Year:        time.Now().Year(),
	}

	d.PackageName = branding.PluginPrefix() + d.Name
	if d.Description == "" {
		d.Description = fmt.Sprintf("%s plugin: %s", branding.DisplayName(), d.Name)
	}

	return d
}

// Generate creates a new plugin package from the embedded template set,
// preserving the template tree's directory structure. Files with a
// .tmpl extension are rendered with text/template; everything else is
// copied verbatim.
func Generate(data *Data, outputDir string) (*Result, error) {
	const templatesDir = "scaffolds/plugin"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{OutputDir: outputDir}

	err = fs.WalkDir(scaffoldFS, templatesDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(templatesDir, path)
		if err != nil {
			return err
		}

		content, err := fs.ReadFile(scaffoldFS, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		outName := strings.TrimSuffix(rel, ".tmpl")
		if strings.HasSuffix(rel, ".tmpl") {
			tmpl, err := template.New(entry.Name()).Parse(string(content))
			if err != nil {
				return fmt.Errorf("parsing template %s: %w", entry.Name(), err)
			}
			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				return fmt.Errorf("executing template %s: %w", entry.Name(), err)
			}
			content = buf.Bytes()
		}

		outPath := filepath.Join(outputDir, outName)
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", outName, err)
		}
		if err := os.WriteFile(outPath, content, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, outName)
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Validate the generated manifest against JSON Schema.
	manifestFile := filepath.Join(outputDir, manifest.FileName)
	if _, err := os.Stat(manifestFile); err == nil {
		valResult, valErr := manifest.ValidateFile(manifestFile)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate manifest: %v", valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				msg := issue.Message
				if issue.Path != "" {
					msg = issue.Path + ": " + msg
				}
				result.Warnings = append(result.Warnings, msg)
			}
		}
	}

	return result, nil
}
