// Package installer drives the external package manager that fetches
// declared plugin packages, and re-runs plugin discovery after a
// successful install so new packages become queryable without a
// restart. It also reads and writes the requirements-style plugins
// file and lists plugin repositories from a GitHub organization.
package installer
