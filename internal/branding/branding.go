// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package and rebuild; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	GitHubOrg    string `yaml:"github_org"`
	PluginPrefix string `yaml:"plugin_prefix"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "corral",
			DisplayName:  "Corral",
			Description:  "Plugin catalog and discovery manager for modular host applications",
			HomeDir:      ".corral",
			EnvPrefix:    "CORRAL",
			GoModule:     "github.com/corral-labs/corral",
			GitHubOrg:    "corral-labs",
			PluginPrefix: "corral-plugin-",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "corral").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "Corral").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".corral").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CORRAL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// GitHubOrg returns the GitHub organization that hosts plugin repositories.
func GitHubOrg() string { load(); return defaults.GitHubOrg }

// PluginPrefix returns the naming prefix that marks an installed package
// directory as a plugin candidate (e.g., "corral-plugin-").
func PluginPrefix() string { load(); return defaults.PluginPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CORRAL_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
