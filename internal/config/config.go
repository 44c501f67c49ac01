// Package config loads nest.yml, the optional per-project configuration.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/simonhull/firebird-suite/nest/internal/scaffold"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FileName is the configuration file looked up in the project root.
const FileName = "nest"

// Config represents nest.yml
type Config struct {
	Engine    EngineConfig
	CMake     CMakeConfig
	License   LicenseConfig
	Templates TemplatesConfig
	Catalog   CatalogConfig
	Write     WriteConfig

	// File is the configuration file that was read, empty for defaults.
	File string
}

// EngineConfig locates the engine library the generated solution builds against.
type EngineConfig struct {
	Name       string
	ScriptPath string
}

// CMakeConfig holds values written into the CMake descriptors.
type CMakeConfig struct {
	MinimumVersion string
	CXXStandard    string
}

// LicenseConfig holds licence settings
type LicenseConfig struct {
	Holder string
}

// TemplatesConfig selects the template source. An empty Dir means the
// templates compiled into the binary.
type TemplatesConfig struct {
	Dir string
}

// CatalogConfig selects the artifact catalogue. An empty Path means the
// built-in one.
type CatalogConfig struct {
	Path string
}

// WriteConfig controls how plans are written
type WriteConfig struct {
	Atomic bool
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"templates": "templates.dir",
	"catalog":   "catalog.path",
	"atomic":    "write.atomic",
}

// DefaultConfig returns the configuration used when no nest.yml exists
func DefaultConfig() *Config {
	s := scaffold.DefaultSettings()
	return &Config{
		Engine:  EngineConfig{Name: s.Engine, ScriptPath: s.ScriptPath},
		CMake:   CMakeConfig{MinimumVersion: s.CMakeVersion, CXXStandard: s.CXXStandard},
		License: LicenseConfig{Holder: s.LicenseHolder},
	}
}

// LoadOptions configures Load.
type LoadOptions struct {
	Root  string         // directory searched for nest.yml
	File  string         // explicit configuration file; must exist when set
	Flags *pflag.FlagSet // changed flags override file values
}

// Load reads the configuration. A missing nest.yml in Root is not an error;
// a missing explicit File is. Environment variables are not consulted.
func Load(opts LoadOptions) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(opts.Root)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if flag := opts.Flags.Lookup(name); flag != nil {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("failed to bind --%s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Engine: EngineConfig{
			Name:       v.GetString("engine.name"),
			ScriptPath: v.GetString("engine.script_path"),
		},
		CMake: CMakeConfig{
			MinimumVersion: v.GetString("cmake.minimum_version"),
			CXXStandard:    v.GetString("cmake.cxx_standard"),
		},
		License:   LicenseConfig{Holder: v.GetString("license.holder")},
		Templates: TemplatesConfig{Dir: v.GetString("templates.dir")},
		Catalog:   CatalogConfig{Path: v.GetString("catalog.path")},
		Write:     WriteConfig{Atomic: v.GetBool("write.atomic")},
		File:      v.ConfigFileUsed(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Relative paths in a config file are relative to the file, not the cwd
	if cfg.File != "" {
		base := filepath.Dir(cfg.File)
		cfg.Templates.Dir = resolve(base, cfg.Templates.Dir, opts.Flags, "templates")
		cfg.Catalog.Path = resolve(base, cfg.Catalog.Path, opts.Flags, "catalog")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("engine.name", cfg.Engine.Name)
	v.SetDefault("engine.script_path", cfg.Engine.ScriptPath)
	v.SetDefault("cmake.minimum_version", cfg.CMake.MinimumVersion)
	v.SetDefault("cmake.cxx_standard", cfg.CMake.CXXStandard)
	v.SetDefault("license.holder", cfg.License.Holder)
	v.SetDefault("templates.dir", cfg.Templates.Dir)
	v.SetDefault("catalog.path", cfg.Catalog.Path)
	v.SetDefault("write.atomic", cfg.Write.Atomic)
}

// resolve anchors a relative path from the config file at base, unless the
// value came from a command-line flag.
func resolve(base, path string, flags *pflag.FlagSet, flag string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if flags != nil && flags.Changed(flag) {
		return path
	}
	return filepath.Join(base, path)
}

// Validate checks required values
func (c *Config) Validate() error {
	if c.Engine.Name == "" {
		return fmt.Errorf("engine.name must not be empty")
	}
	if c.CMake.MinimumVersion == "" {
		return fmt.Errorf("cmake.minimum_version must not be empty")
	}
	if c.CMake.CXXStandard == "" {
		return fmt.Errorf("cmake.cxx_standard must not be empty")
	}
	return nil
}

// Settings returns the template values for the scaffold builder.
func (c *Config) Settings() scaffold.Settings {
	return scaffold.Settings{
		Engine:        c.Engine.Name,
		ScriptPath:    c.Engine.ScriptPath,
		CMakeVersion:  c.CMake.MinimumVersion,
		CXXStandard:   c.CMake.CXXStandard,
		LicenseHolder: c.License.Holder,
	}
}
