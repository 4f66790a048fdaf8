package catalog

import (
	"log/slog"
	"regexp"
	"strings"
	"sync"
)

// Field selects which entry field Find projects into its result list.
type Field string

// Projection fields accepted by Find. FieldEntry ("*") emits the whole
// entry. List-valued fields (instances, tags) are flattened into the
// result rather than appended as single list items.
const (
	FieldName      Field = "name"
	FieldCategory  Field = "category"
	FieldType      Field = "type"
	FieldInstances Field = "instances"
	FieldTags      Field = "tags"
	FieldEntry     Field = "*"
)

// Query holds the filter criteria for Find. Zero-valued criteria are
// not applied.
type Query struct {
	// Name matches exactly, case-insensitive.
	Name string
	// Category is a regular expression matched against the full
	// category string (e.g. "template_.*").
	Category string
	// Type matches entries whose type reference is the given type or
	// assignable to it.
	Type any
	// Tags passes entries carrying at least one of the given tags.
	Tags []string
	// Limit stops the scan once this many results are collected.
	// Zero or negative means unbounded.
	Limit int
}

// Registry is the in-process object catalog. It is safe for concurrent
// use: a single writer lock guards all mutation, and Find iterates
// under a read lock. Iteration follows key insertion order.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	order   []string
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// Add registers an object under (category, name), both lowercase-
// normalized. If the key already exists the entry is extended in place:
// new instances are appended (deduplicated by reference identity) and
// new tags merged. The type reference is fixed at first creation;
// re-registering with a different type logs a duplicate-definition
// warning and keeps the original. Add never fails; it returns the
// resulting entry.
func (r *Registry) Add(category, name string, typeRef any, instances []any, tags []string) *Entry {
	category = strings.ToLower(category)
	name = strings.ToLower(name)
	key := EntryKey(category, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		entry = &Entry{Name: name, Category: category, Type: typeRef}
		r.entries[key] = entry
		r.order = append(r.order, key)
	} else if typeRef != nil {
		if entry.Type == nil {
			// Instance-only registrations may precede the definition.
			entry.Type = typeRef
		} else if !sameRef(entry.Type, typeRef) {
			slog.Warn("duplicate definition conflict: type reference already registered, keeping original",
				"category", category, "name", name)
		}
	}

	entry.addInstances(instances)
	entry.addTags(tags)

	return entry
}

// Get returns the entry at (category, name), or nil if absent.
func (r *Registry) Get(category, name string) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[EntryKey(category, name)]
}

// Has reports whether an entry exists at (category, name).
func (r *Registry) Has(category, name string) bool {
	return r.Get(category, name) != nil
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Find filters entries by the query criteria and projects the given
// field from each match. A miss is not an error: the result is empty.
// Results follow registration order; the scan stops once Limit results
// are collected.
func (r *Registry) Find(field Field, q Query) []any {
	var categoryRe *regexp.Regexp
	if q.Category != "" {
		re, err := regexp.Compile("^(?:" + q.Category + ")$")
		if err != nil {
			slog.Warn("invalid category pattern in registry query", "pattern", q.Category, "error", err)
			return nil
		}
		categoryRe = re
	}

	name := strings.ToLower(q.Name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []any
	for _, key := range r.order {
		entry := r.entries[key]

		if name != "" && name != entry.Name {
			continue
		}
		if categoryRe != nil && !categoryRe.MatchString(entry.Category) {
			continue
		}
		if q.Type != nil && !TypeMatches(entry.Type, q.Type) {
			continue
		}
		if len(q.Tags) > 0 && !anyTagMatch(entry, q.Tags) {
			continue
		}

		result = project(result, entry, field)

		if q.Limit > 0 && len(result) >= q.Limit {
			break
		}
	}

	return result
}

// Remove deletes the entry at the exact (category, name) key. Removing
// a missing key is a no-op.
func (r *Registry) Remove(category, name string) {
	key := EntryKey(category, name)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[key]; !ok {
		return
	}
	delete(r.entries, key)
	r.dropFromOrder(key)
}

// RemoveMatching bulk-removes entries: every entry whose category
// equals the given category (case-insensitive) or whose type reference
// matches typeRef is deleted, and each given instance is stripped from
// every remaining entry's instance list. Zero-valued criteria are
// skipped.
func (r *Registry) RemoveMatching(category string, typeRef any, instances []any) {
	category = strings.ToLower(category)

	r.mu.Lock()
	defer r.mu.Unlock()

	remaining := r.order[:0]
	for _, key := range r.order {
		entry := r.entries[key]

		if category != "" && entry.Category == category {
			delete(r.entries, key)
			continue
		}
		if typeRef != nil && sameRef(entry.Type, typeRef) {
			delete(r.entries, key)
			continue
		}

		for _, inst := range instances {
			entry.removeInstance(inst)
		}
		remaining = append(remaining, key)
	}
	r.order = remaining
}

// Clear empties the registry. Tests and application reloads call this
// to reset process-wide state.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*Entry)
	r.order = nil
}

func (r *Registry) dropFromOrder(key string) {
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			return
		}
	}
}

func (e *Entry) removeInstance(inst any) {
	for i, existing := range e.Instances {
		if sameRef(existing, inst) {
			e.Instances = append(e.Instances[:i], e.Instances[i+1:]...)
			return
		}
	}
}

// anyTagMatch reports whether the entry carries at least one of the
// given tags.
func anyTagMatch(entry *Entry, tags []string) bool {
	for _, tag := range tags {
		if entry.HasTag(tag) {
			return true
		}
	}
	return false
}

// project appends the selected field of the entry to the result list.
// List-valued fields are flattened; empty fields project nothing.
func project(result []any, entry *Entry, field Field) []any {
	switch field {
	case FieldName:
		return append(result, entry.Name)
	case FieldCategory:
		return append(result, entry.Category)
	case FieldType:
		if entry.Type == nil {
			return result
		}
		return append(result, entry.Type)
	case FieldInstances:
		for _, inst := range entry.Instances {
			result = append(result, inst)
		}
		return result
	case FieldTags:
		for _, tag := range entry.Tags {
			result = append(result, tag)
		}
		return result
	case FieldEntry:
		return append(result, entry)
	default:
		return result
	}
}
