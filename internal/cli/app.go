package cli

import (
	"fmt"

	"github.com/corral-labs/corral/internal/catalog"
	"github.com/corral-labs/corral/internal/config"
	"github.com/corral-labs/corral/internal/plugin"
	"github.com/corral-labs/corral/internal/template"
)

// app holds the per-invocation wiring: one registry, one plugin
// catalog, and the scanner that fills both from installed packages.
type app struct {
	Registry *catalog.Registry
	Catalog  *plugin.Catalog
	Scanner  *plugin.Scanner
	Source   plugin.PackageSource
}

// newApp builds the application state from the loaded configuration and
// runs package discovery so commands see the current set of plugins.
func newApp() (*app, error) {
	reg := catalog.New()
	cat := plugin.NewCatalog()
	cat.DeclareAll(config.DeclaredPlugins())

	scanner := plugin.NewScanner(cat, reg)
	source := plugin.PrefixSource{Root: config.PackagesRoot(), Prefix: config.PluginPrefix()}
	if err := scanner.ScanPackages(source); err != nil {
		return nil, fmt.Errorf("scanning plugin packages: %w", err)
	}

	return &app{Registry: reg, Catalog: cat, Scanner: scanner, Source: source}, nil
}

// scanTemplates walks the installed-packages tree for template files and
// registers them. Returns the number of templates registered.
func (a *app) scanTemplates() (int, error) {
	return template.NewScanner(a.Registry).Scan(config.PackagesRoot())
}
