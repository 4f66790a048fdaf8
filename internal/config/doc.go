// Package config manages user-level settings stored at ~/.corral/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the declared-plugins mapping consumed by the installer and the
// installed-packages location scanned by discovery.
package config
