package plugin

import (
	"reflect"

	"github.com/corral-labs/corral/internal/manifest"
)

// Catalog is the secondary index maintained by plugin discovery. It is
// not synchronized: discovery runs are serialized by the caller, and
// reads are expected only after the initialization phase completes.
type Catalog struct {
	// Classes maps package name -> class name -> type reference.
	Classes map[string]map[string]reflect.Type

	// Instantiated maps package name -> module name -> ordered list of
	// instance references.
	Instantiated map[string]map[string][]any

	// Declared maps a package source (plain name or source-control URL)
	// to a version or branch pin. The installer consumes this map.
	Declared map[string]string

	// Metadata holds the plugin.yaml identity attached to each scanned
	// package, when the sidecar was present.
	Metadata map[string]*manifest.Metadata
}

// NewCatalog returns an empty plugin catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Classes:      make(map[string]map[string]reflect.Type),
		Instantiated: make(map[string]map[string][]any),
		Declared:     make(map[string]string),
		Metadata:     make(map[string]*manifest.Metadata),
	}
}

// DeclarePlugin records a plugin source and its version-or-branch pin
// for the installer.
func (c *Catalog) DeclarePlugin(source, pin string) {
	c.Declared[source] = pin
}

// DeclareAll merges a declared-plugins mapping (e.g. from config) into
// the catalog.
func (c *Catalog) DeclareAll(declared map[string]string) {
	for source, pin := range declared {
		c.Declared[source] = pin
	}
}

// addClass records a class definition under (package, class name).
func (c *Catalog) addClass(pkg, class string, typ reflect.Type) {
	if c.Classes[pkg] == nil {
		c.Classes[pkg] = make(map[string]reflect.Type)
	}
	c.Classes[pkg][class] = typ
}

// addInstance appends an instance under (package, module).
func (c *Catalog) addInstance(pkg, module string, obj any) {
	if c.Instantiated[pkg] == nil {
		c.Instantiated[pkg] = make(map[string][]any)
	}
	c.Instantiated[pkg][module] = append(c.Instantiated[pkg][module], obj)
}

// Clear empties all catalog maps. Tests call this between runs.
func (c *Catalog) Clear() {
	c.Classes = make(map[string]map[string]reflect.Type)
	c.Instantiated = make(map[string]map[string][]any)
	c.Declared = make(map[string]string)
	c.Metadata = make(map[string]*manifest.Metadata)
}
