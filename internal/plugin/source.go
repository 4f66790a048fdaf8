package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// InstalledPackage identifies one installed plugin package: its name
// and its on-disk root directory.
type InstalledPackage struct {
	Name string
	Dir  string
}

// PackageSource yields the installed plugin packages available for
// discovery. Implementations decide the enumeration strategy, keeping
// the scanner testable without real installed packages.
type PackageSource interface {
	Packages() ([]InstalledPackage, error)
}

// PrefixSource enumerates directories under Root whose names start
// with Prefix — the host's plugin naming convention.
type PrefixSource struct {
	Root   string
	Prefix string
}

// Packages lists prefix-matching package directories under the root.
// A missing root yields no packages rather than an error.
func (s PrefixSource) Packages() ([]InstalledPackage, error) {
	entries, err := os.ReadDir(s.Root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading packages root %s: %w", s.Root, err)
	}

	var pkgs []InstalledPackage
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if s.Prefix != "" && !strings.HasPrefix(name, s.Prefix) {
			continue
		}
		pkgs = append(pkgs, InstalledPackage{
			Name: name,
			Dir:  filepath.Join(s.Root, name),
		})
	}

	return pkgs, nil
}

// StaticSource is a fixed package list. Useful for tests and for hosts
// that already know their plugin set.
type StaticSource []InstalledPackage

// Packages returns the fixed list.
func (s StaticSource) Packages() ([]InstalledPackage, error) {
	return []InstalledPackage(s), nil
}
