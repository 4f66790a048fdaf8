package catalog

import (
	"reflect"
	"strings"
)

// Entry is the record stored per registered object. Name and Category
// are lowercase-normalized; the composite (Category, Name) is unique
// within a Registry. Type is fixed at first registration and never
// replaced. Instances accumulate across Add calls, deduplicated by
// reference identity.
type Entry struct {
	Name      string
	Category  string
	Type      any
	Instances []any
	Tags      []string
}

// Key returns the registry key for the entry: "<category>-<name>".
func (e *Entry) Key() string {
	return EntryKey(e.Category, e.Name)
}

// EntryKey computes the composite registry key from a category and name.
// Both parts are lowercase-normalized.
func EntryKey(category, name string) string {
	return strings.ToLower(category) + "-" + strings.ToLower(name)
}

// HasTag reports whether the entry carries the given tag.
func (e *Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// addInstances appends each instance not already present, compared by
// reference identity.
func (e *Entry) addInstances(instances []any) {
	for _, inst := range instances {
		if !e.hasInstance(inst) {
			e.Instances = append(e.Instances, inst)
		}
	}
}

func (e *Entry) hasInstance(inst any) bool {
	for _, existing := range e.Instances {
		if sameRef(existing, inst) {
			return true
		}
	}
	return false
}

// addTags appends each tag not already present.
func (e *Entry) addTags(tags []string) {
	for _, tag := range tags {
		if !e.HasTag(tag) {
			e.Tags = append(e.Tags, tag)
		}
	}
}

// sameRef reports whether a and b refer to the same object. Pointers
// compare by address; other comparable values compare by equality.
// Uncomparable values never match, so they are always appended.
func sameRef(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Pointer && rb.Kind() == reflect.Pointer {
		return ra.Pointer() == rb.Pointer()
	}
	if ra.Type() != rb.Type() || !ra.Type().Comparable() {
		return false
	}
	return a == b
}

// TypeMatches reports whether got satisfies the want type filter: it is
// the same type reference, or a type assignable to it (which covers
// interface implementation). Non-type references match by identity only.
func TypeMatches(got, want any) bool {
	if want == nil {
		return true
	}
	if got == nil {
		return false
	}

	gt, gok := got.(reflect.Type)
	wt, wok := want.(reflect.Type)
	if gok && wok {
		return gt == wt || gt.AssignableTo(wt)
	}

	return sameRef(got, want)
}
