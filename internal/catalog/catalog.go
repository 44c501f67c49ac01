// Package catalog defines which artifacts a setup run generates.
//
// The catalogue is configuration rather than code: the default set is
// embedded from catalog.yml and a project may supply its own file.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	APIVersion = "nest/v1"
	Kind       = "Catalog"
)

// Artifact roles.
const (
	RoleFile       = ""            // plain generated file
	RoleIgnoreList = "ignore_list" // receives the generated top-level entries when ignoring is on
)

//go:embed catalog.yml
var defaultCatalog []byte

// Catalog is the ordered list of artifacts for one project layout.
type Catalog struct {
	APIVersion string     `yaml:"apiVersion"`
	Kind       string     `yaml:"kind"`
	Name       string     `yaml:"name"`
	Artifacts  []Artifact `yaml:"artifacts"`
}

// Artifact describes one generated file, or one per build configuration.
type Artifact struct {
	Path             string            `yaml:"path"`     // output path template, slash-separated
	Template         string            `yaml:"template"` // template id, category/name
	PerConfiguration bool              `yaml:"per_configuration,omitempty"`
	Values           map[string]string `yaml:"values,omitempty"` // static placeholder values
	Role             string            `yaml:"role,omitempty"`
}

// Default returns the embedded catalogue.
func Default() *Catalog {
	c, err := ParseBytes(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded catalog.yml is invalid: %v", err))
	}
	return c
}

// Load returns the catalogue at path, or the default one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	return Parse(path)
}

// Parse reads, parses and validates a catalogue file.
func Parse(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseBytes parses and validates a catalogue.
func ParseBytes(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := Validate(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteBytes marshals a catalogue, e.g. to seed a custom one from the default.
func WriteBytes(c *Catalog) ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal catalog: %w", err)
	}
	return data, nil
}

// IgnoreList returns the artifact with the ignore-list role, if any.
func (c *Catalog) IgnoreList() (Artifact, bool) {
	for _, a := range c.Artifacts {
		if a.Role == RoleIgnoreList {
			return a, true
		}
	}
	return Artifact{}, false
}
