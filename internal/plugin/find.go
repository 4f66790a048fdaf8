package plugin

import (
	"reflect"
	"sort"
)

// ReturnType selects which catalog maps FindClasses searches.
type ReturnType string

// FindClasses search targets.
const (
	ReturnClasses      ReturnType = "classes"
	ReturnInstantiated ReturnType = "instantiated"
	ReturnBoth         ReturnType = "both"
)

// ClassQuery holds the filter criteria for FindClasses. Zero-valued
// criteria are not applied.
type ClassQuery struct {
	// ClassName matches the registered class name exactly.
	ClassName string
	// PackageName restricts the search to one package.
	PackageName string
	// InstanceOf passes entries whose type is assignable to the given
	// type (for instances, the instance's dynamic type is checked).
	InstanceOf reflect.Type
	// SubclassOf passes entries whose type is the given type or
	// assignable to it.
	SubclassOf reflect.Type
	// All returns every match instead of stopping at the first.
	All bool
}

// FindClasses searches the classes and/or instantiated maps for
// entries matching the query. Unless All is set or ret is ReturnBoth,
// only the first match is returned. A miss yields nil — it is a lookup
// signal, not an error. Results are ordered by package then member
// name for determinism.
func (c *Catalog) FindClasses(q ClassQuery, ret ReturnType) []any {
	all := q.All || ret == ReturnBoth

	var result []any

	if ret == ReturnClasses || ret == ReturnBoth {
		result = c.findClassDefs(q, result, all)
		if !all && len(result) > 0 {
			return result
		}
	}

	if ret == ReturnInstantiated || ret == ReturnBoth {
		result = c.findInstances(q, result, all)
		if !all && len(result) > 0 {
			return result[:1]
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}

func (c *Catalog) findClassDefs(q ClassQuery, result []any, all bool) []any {
	for _, pkg := range sortedKeys(c.Classes) {
		if q.PackageName != "" && q.PackageName != pkg {
			continue
		}
		classes := c.Classes[pkg]
		for _, name := range sortedKeys(classes) {
			if q.ClassName != "" && q.ClassName != name {
				continue
			}
			typ := classes[name]
			if !typeSatisfies(typ, q.InstanceOf) || !typeSatisfies(typ, q.SubclassOf) {
				continue
			}
			result = append(result, typ)
			if !all {
				return result
			}
		}
	}
	return result
}

func (c *Catalog) findInstances(q ClassQuery, result []any, all bool) []any {
	for _, pkg := range sortedKeys(c.Instantiated) {
		if q.PackageName != "" && q.PackageName != pkg {
			continue
		}
		modules := c.Instantiated[pkg]
		for _, module := range sortedKeys(modules) {
			for _, obj := range modules[module] {
				typ := reflect.TypeOf(obj)
				if q.ClassName != "" && (typ == nil || typeName(typ) != q.ClassName) {
					continue
				}
				if !typeSatisfies(typ, q.InstanceOf) || !typeSatisfies(typ, q.SubclassOf) {
					continue
				}
				result = append(result, obj)
				if !all {
					return result
				}
			}
		}
	}
	return result
}

// typeSatisfies reports whether got is the wanted type or assignable
// to it. A nil filter always passes.
func typeSatisfies(got, want reflect.Type) bool {
	if want == nil {
		return true
	}
	if got == nil {
		return false
	}
	return got == want || got.AssignableTo(want)
}

// typeName returns the bare type name of a possibly-pointer type, so a
// *FileTask instance matches the class name "FileTask".
func typeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
