package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.yaml.in/yaml/v3"
)

// Parse reads a plugin.yaml file and returns its metadata.
func Parse(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}

	var m Metadata
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}

	return &m, nil
}

// ParseDir reads the metadata sidecar from a plugin package root
// directory.
func ParseDir(dir string) (*Metadata, error) {
	return Parse(filepath.Join(dir, FileName))
}

// SemverOK reports whether the metadata version parses as a semantic
// version. A leading "v" is tolerated.
func (m *Metadata) SemverOK() bool {
	_, err := semver.NewVersion(strings.TrimPrefix(m.Version, "v"))
	return err == nil
}
