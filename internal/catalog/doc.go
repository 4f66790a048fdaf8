// Package catalog implements the process-wide object registry: a keyed
// store of named entries holding a type reference, accumulated live
// instances, and tags. Entries are keyed by (category, name) and looked
// up through a multi-criteria query with regex category matching,
// any-match tag filtering, and field projection.
package catalog
