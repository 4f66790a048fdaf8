package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/corral-labs/corral/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Viper keys used by the CLI and library.
const (
	KeyPlugins          = "plugins.declared"  // map of package source -> version or branch
	KeyInstallerCommand = "installer.command" // package manager argv prefix
	KeyPackagesRoot     = "packages.root"     // installed-packages location
	KeyPluginPrefix     = "packages.prefix"   // plugin directory naming prefix
	KeyPluginsFile      = "plugins.file"      // requirements-style plugins file
)

// Dir returns the path to the Corral config directory (~/.corral/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.corral/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyInstallerCommand, []string{"pip", "install"})
	viper.SetDefault(KeyPackagesRoot, filepath.Join(Dir(), "packages"))
	viper.SetDefault(KeyPluginPrefix, branding.PluginPrefix())
	viper.SetDefault(KeyPluginsFile, filepath.Join(Dir(), "plugins.txt"))

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// DeclaredPlugins returns the declared-plugins mapping from the config:
// package source (plain name or source-control URL) -> version or branch.
func DeclaredPlugins() map[string]string {
	return viper.GetStringMapString(KeyPlugins)
}

// InstallerCommand returns the package manager argv prefix, e.g.
// ["pip", "install"].
func InstallerCommand() []string {
	return viper.GetStringSlice(KeyInstallerCommand)
}

// PackagesRoot returns the installed-packages location scanned by
// plugin discovery and the template scanner.
func PackagesRoot() string {
	return viper.GetString(KeyPackagesRoot)
}

// PluginPrefix returns the directory naming prefix that marks a
// package as a plugin candidate.
func PluginPrefix() string {
	return viper.GetString(KeyPluginPrefix)
}

// PluginsFile returns the path of the requirements-style plugins file.
func PluginsFile() string {
	return viper.GetString(KeyPluginsFile)
}
