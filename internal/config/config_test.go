package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/nest/internal/scaffold"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "nest.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(LoadOptions{Root: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, cfg.File)
	assert.Equal(t, scaffold.DefaultSettings(), cfg.Settings())
	assert.Empty(t, cfg.Templates.Dir)
	assert.Empty(t, cfg.Catalog.Path)
	assert.False(t, cfg.Write.Atomic)
}

func TestLoad_File(t *testing.T) {
	root := t.TempDir()
	path := writeConfig(t, root, `engine:
  name: Forge
  script_path: Forge\Tools
cmake:
  minimum_version: "3.28"
  cxx_standard: 20
license:
  holder: Acme Games
templates:
  dir: tmpl
write:
  atomic: true
`)

	cfg, err := Load(LoadOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.File)
	assert.Equal(t, scaffold.Settings{
		Engine:        "Forge",
		ScriptPath:    `Forge\Tools`,
		CMakeVersion:  "3.28",
		CXXStandard:   "20",
		LicenseHolder: "Acme Games",
	}, cfg.Settings())
	assert.Equal(t, filepath.Join(root, "tmpl"), cfg.Templates.Dir)
	assert.True(t, cfg.Write.Atomic)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "license:\n  holder: Someone\n")

	cfg, err := Load(LoadOptions{Root: root})
	require.NoError(t, err)

	assert.Equal(t, "Someone", cfg.License.Holder)
	assert.Equal(t, "GameMaker", cfg.Engine.Name)
	assert.Equal(t, "3.27", cfg.CMake.MinimumVersion)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(LoadOptions{File: filepath.Join(t.TempDir(), "custom.yml")})
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "engine: [")

	_, err := Load(LoadOptions{Root: root})
	assert.Error(t, err)
}

func TestLoad_EmptyEngineRejected(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "engine:\n  name: \"\"\n")

	_, err := Load(LoadOptions{Root: root})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "engine.name")
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "templates:\n  dir: from-file\nwrite:\n  atomic: false\n")

	flags := pflag.NewFlagSet("setup", pflag.ContinueOnError)
	flags.String("templates", "", "")
	flags.String("catalog", "", "")
	flags.Bool("atomic", false, "")
	require.NoError(t, flags.Parse([]string{"--templates", "from-flag", "--atomic"}))

	cfg, err := Load(LoadOptions{Root: root, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.Templates.Dir)
	assert.True(t, cfg.Write.Atomic)
	assert.Empty(t, cfg.Catalog.Path)
}

func TestLoad_UnchangedFlagsDoNotOverride(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "write:\n  atomic: true\n")

	flags := pflag.NewFlagSet("setup", pflag.ContinueOnError)
	flags.Bool("atomic", false, "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(LoadOptions{Root: root, Flags: flags})
	require.NoError(t, err)
	assert.True(t, cfg.Write.Atomic)
}
