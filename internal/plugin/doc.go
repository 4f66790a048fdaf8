// Package plugin implements plugin discovery: enumerating installed
// plugin packages, extracting their contributed classes and live
// objects into a plugin catalog, and querying that catalog.
//
// Plugin packages compiled into the host register a loader under their
// package name (typically from an init function). Discovery pairs
// on-disk package directories with registered loaders, so the scanning
// strategy stays testable without real installed packages.
package plugin
