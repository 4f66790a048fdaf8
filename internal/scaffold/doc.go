// Package scaffold generates new plugin packages from embedded templates. It
// powers the "corral create" command, producing the expected file structure
// (plugin.yaml sidecar, README, starter template tree) for a plugin package.
package scaffold
