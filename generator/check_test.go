package generator_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlan(t *testing.T, root string, paths ...string) *generator.Plan {
	t.Helper()
	entries := make([]generator.Entry, len(paths))
	for i, p := range paths {
		entries[i] = generator.Entry{Path: p, Content: []byte("content of " + p + "\n")}
	}
	plan, err := generator.NewPlan(root, entries)
	require.NoError(t, err)
	return plan
}

func TestCheck_Clear(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "a.txt", "dir/b.txt", "c.txt")

	outcome := generator.Check(plan, generator.CheckOptions{})

	assert.True(t, outcome.Clear())
	assert.NoError(t, outcome.Err())
	assert.Empty(t, outcome.Conflicts())
	assert.Equal(t, []string{"a.txt => Ok", "dir/b.txt => Ok", "c.txt => Ok"}, outcome.Lines())
}

func TestCheck_StopsAtFirstConflict(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "a.txt", "b.txt", "c.txt", "d.txt")

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "d.txt"), []byte("x"), 0644))

	outcome := generator.Check(plan, generator.CheckOptions{})

	assert.False(t, outcome.Clear())
	assert.Equal(t, []string{"a.txt => Ok", "b.txt => Conflict"}, outcome.Lines())
	assert.Equal(t, []string{"b.txt"}, outcome.Conflicts())

	first, ok := outcome.FirstConflict()
	require.True(t, ok)
	assert.Equal(t, "b.txt", first.Path)
	assert.Equal(t, generator.StatusConflict, first.Status)

	err := outcome.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrPreconditionBlocked)

	var blocked *generator.BlockedError
	require.True(t, errors.As(err, &blocked))
	assert.Equal(t, []string{"b.txt"}, blocked.Paths)
}

func TestCheck_Exhaustive(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "a.txt", "b.txt", "c.txt", "d.txt")

	require.NoError(t, os.WriteFile(filepath.Join(root, "b.txt"), []byte("x"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "d.txt"), []byte("x"), 0644))

	outcome := generator.Check(plan, generator.CheckOptions{Exhaustive: true})

	assert.Len(t, outcome.Results, 4)
	assert.Equal(t, []string{"b.txt", "d.txt"}, outcome.Conflicts())
}

func TestCheck_DirectoryCountsAsConflict(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "Sandbox/CMakeLists.txt")

	require.NoError(t, os.MkdirAll(filepath.Join(root, "Sandbox", "CMakeLists.txt"), 0755))

	outcome := generator.Check(plan, generator.CheckOptions{})
	assert.Equal(t, []string{"Sandbox/CMakeLists.txt"}, outcome.Conflicts())
}

func TestCheck_DanglingSymlinkCountsAsConflict(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "LICENSE.txt")

	if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "LICENSE.txt")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	outcome := generator.Check(plan, generator.CheckOptions{})
	assert.False(t, outcome.Clear())
}

func TestCheck_ParentIsAFile(t *testing.T) {
	root := t.TempDir()
	plan := newTestPlan(t, root, "Sandbox/Src/Main.cpp")

	// "Sandbox" exists as a regular file, so the path cannot be inspected
	require.NoError(t, os.WriteFile(filepath.Join(root, "Sandbox"), []byte("x"), 0644))

	outcome := generator.Check(plan, generator.CheckOptions{})
	require.Len(t, outcome.Results, 1)
	assert.Equal(t, generator.StatusError, outcome.Results[0].Status)
	assert.Error(t, outcome.Results[0].Err)
	assert.False(t, outcome.Clear())

	// An uninspectable path is a check failure, not an existing project
	err := outcome.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrCheckFailed)
	assert.NotErrorIs(t, err, generator.ErrPreconditionBlocked)

	var checkErr *generator.CheckError
	require.True(t, errors.As(err, &checkErr))
	assert.Equal(t, "Sandbox/Src/Main.cpp", checkErr.Path)
	assert.NotContains(t, err.Error(), "already set up")
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Ok", generator.StatusOK.String())
	assert.Equal(t, "Conflict", generator.StatusConflict.String())
	assert.Equal(t, "Error", generator.StatusError.String())
	assert.Equal(t, "Unknown", generator.Status(42).String())
}
