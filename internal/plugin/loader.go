package plugin

import (
	"reflect"
	"sort"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/corral-labs/corral/internal/catalog"
)

// Object is a named instantiated member contributed by a module.
type Object struct {
	Name  string
	Value any
}

// Module is one registrable unit within a plugin package: a named
// collection of class definitions and instantiated objects.
type Module struct {
	Name    string
	Classes map[string]reflect.Type
	Objects []Object
}

// Plugin is the compiled-in contribution of a plugin package. Setup is
// the recognized registration entry point: when present, discovery
// runs it before extracting members so the package can self-register
// entries into the object registry.
type Plugin struct {
	Modules []Module
	Setup   func(reg *catalog.Registry)
}

var (
	loadersMu sync.RWMutex
	loaders   = make(map[string]Plugin)
)

// Register records a plugin contribution under its package name.
// Plugin packages call this from an init function; later registrations
// under the same name replace earlier ones.
func Register(name string, p Plugin) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	loaders[name] = p
}

// Unregister removes a registered loader. Intended for tests.
func Unregister(name string) {
	loadersMu.Lock()
	defer loadersMu.Unlock()
	delete(loaders, name)
}

// RegisteredLoaders returns the sorted names of all registered loaders.
func RegisteredLoaders() []string {
	loadersMu.RLock()
	defer loadersMu.RUnlock()

	names := make([]string, 0, len(loaders))
	for name := range loaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupLoader(name string) (Plugin, bool) {
	loadersMu.RLock()
	defer loadersMu.RUnlock()
	p, ok := loaders[name]
	return p, ok
}

// isExported reports whether a member name is public: it must start
// with an uppercase letter and not carry an underscore prefix.
func isExported(name string) bool {
	if name == "" || name[0] == '_' {
		return false
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
