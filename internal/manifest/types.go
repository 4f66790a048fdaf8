package manifest

// FileName is the metadata sidecar filename at a plugin package root.
const FileName = "plugin.yaml"

// Metadata describes plugin identity as declared in plugin.yaml.
type Metadata struct {
	Name        string `yaml:"name" json:"name"`
	Version     string `yaml:"version" json:"version"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Author      string `yaml:"author,omitempty" json:"author,omitempty"`
	URL         string `yaml:"url,omitempty" json:"url,omitempty"`
	License     string `yaml:"license,omitempty" json:"license,omitempty"`
}
