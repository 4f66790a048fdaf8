package plugin

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/corral-labs/corral/internal/catalog"
	"github.com/corral-labs/corral/internal/manifest"
)

// Scanner runs plugin discovery against a Catalog and, when a package
// exposes a registration entry point, the object registry. Discovery
// is idempotent: a package already scanned is skipped on re-scan.
// Concurrent scans must be externally serialized.
type Scanner struct {
	Catalog  *Catalog
	Registry *catalog.Registry

	loadedPackages map[string]bool
	loadedPaths    map[string]bool
}

// NewScanner returns a Scanner populating the given catalogs.
func NewScanner(cat *Catalog, reg *catalog.Registry) *Scanner {
	return &Scanner{
		Catalog:        cat,
		Registry:       reg,
		loadedPackages: make(map[string]bool),
		loadedPaths:    make(map[string]bool),
	}
}

// ScanPackages runs package-scan discovery: every package yielded by
// the source that has a registered loader is scanned, its entry point
// run, and every exported class of every module recorded under
// (package, class name). Packages without a loader are skipped
// silently; packages already scanned are skipped. A missing metadata
// sidecar is logged as an error and scanning proceeds without it.
func (s *Scanner) ScanPackages(source PackageSource) error {
	pkgs, err := source.Packages()
	if err != nil {
		return fmt.Errorf("enumerating packages: %w", err)
	}

	for _, pkg := range pkgs {
		if s.loadedPackages[pkg.Name] {
			continue
		}

		p, ok := lookupLoader(pkg.Name)
		if !ok {
			// No registration entry point — not a loadable plugin.
			slog.Debug("skipping package without loader", "package", pkg.Name)
			continue
		}

		if pkg.Dir != "" {
			meta, err := manifest.ParseDir(pkg.Dir)
			if err != nil {
				slog.Error("plugin metadata unavailable", "package", pkg.Name, "error", err)
			} else {
				s.Catalog.Metadata[pkg.Name] = meta
			}
		}

		if p.Setup != nil && s.Registry != nil {
			p.Setup(s.Registry)
		}

		for _, mod := range p.Modules {
			for className, typ := range mod.Classes {
				if !isExported(className) {
					continue
				}
				s.Catalog.addClass(pkg.Name, className, typ)
			}
		}

		s.loadedPackages[pkg.Name] = true
		slog.Info("loaded plugin package", "package", pkg.Name)
	}

	return nil
}

// ScanPath runs path-scan discovery on one explicit package directory:
// the bottom directory name is the package name, and every exported
// object of every module is recorded under (package, module name).
// Modules with an underscore-prefixed name are treated as package
// internals and skipped. Already-scanned paths are skipped.
func (s *Scanner) ScanPath(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path %s: %w", path, err)
	}
	pkgName := filepath.Base(abs)

	if s.loadedPaths[pkgName] {
		return nil
	}

	p, ok := lookupLoader(pkgName)
	if !ok {
		slog.Debug("skipping path without loader", "package", pkgName, "path", abs)
		return nil
	}

	for _, mod := range p.Modules {
		if strings.HasPrefix(mod.Name, "_") {
			continue
		}
		for _, obj := range mod.Objects {
			if obj.Value == nil || !isExported(obj.Name) {
				continue
			}
			s.Catalog.addInstance(pkgName, mod.Name, obj.Value)
		}
	}

	s.loadedPaths[pkgName] = true
	return nil
}

// Reset forgets which packages and paths have been scanned, so the
// next scan reloads everything. Tests call this between runs.
func (s *Scanner) Reset() {
	s.loadedPackages = make(map[string]bool)
	s.loadedPaths = make(map[string]bool)
}
