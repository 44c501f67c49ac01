package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTemplatesAreListed(t *testing.T) {
	ids, err := NewStore("").List()
	require.NoError(t, err)

	var names []string
	for _, id := range ids {
		names = append(names, id.String())
	}

	assert.Equal(t, []string{
		"cmake/Project",
		"cmake/Solution",
		"legal/MIT",
		"script/Build",
		"script/GenerateProjectFiles",
		"script/Package",
		"source/Main",
		"vcs/gitignore",
	}, names)
}

func TestDefaultTemplatesRenderCleanly(t *testing.T) {
	store := NewStore("")
	ids, err := store.List()
	require.NoError(t, err)

	for _, id := range ids {
		t.Run(id.String(), func(t *testing.T) {
			text, err := store.Load(id)
			require.NoError(t, err)

			values := generator.PlaceholderSet{}
			for _, m := range generator.Markers(text) {
				values[m] = "X"
			}

			out, err := generator.Render(text, values)
			require.NoError(t, err)
			assert.Empty(t, generator.Markers(out))
		})
	}
}

func TestNewStore_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "script"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "script", "Build.tmpl"), []byte("custom {{MODE}}"), 0644))

	store := NewStore(dir)

	text, err := store.Load(generator.TemplateID{Category: "script", Name: "Build"})
	require.NoError(t, err)
	assert.Equal(t, "custom {{MODE}}", text)

	_, err = store.Load(generator.TemplateID{Category: "source", Name: "Main"})
	assert.ErrorIs(t, err, generator.ErrTemplateNotFound)
}
