// Package manifest parses and validates the plugin.yaml metadata
// sidecar found at the root of an installed plugin package. Discovery
// attaches this metadata to every class it registers from the package.
package manifest
