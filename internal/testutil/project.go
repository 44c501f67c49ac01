// Package testutil provides a temporary project root for command tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/simonhull/firebird-suite/nest/filesystem"
)

// TestProject is a temporary root a setup runs in
type TestProject struct {
	Root string
	Name string
	t    *testing.T
}

// NewTestProject creates an empty root for a project called name
func NewTestProject(t *testing.T, name string) *TestProject {
	t.Helper()

	return &TestProject{
		Root: t.TempDir(),
		Name: name,
		t:    t,
	}
}

// WithEngine creates the engine's CMakeLists.txt so the root looks like a
// checkout that already contains the engine library.
func (p *TestProject) WithEngine(engine string) *TestProject {
	p.t.Helper()
	p.WriteFile(engine+"/CMakeLists.txt", "")
	return p
}

// WriteFile writes a file relative to the root, creating parent directories
func (p *TestProject) WriteFile(path, content string) {
	p.t.Helper()

	fullPath := filepath.Join(p.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		p.t.Fatal(err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		p.t.Fatal(err)
	}
}

// FileExists checks if a file exists relative to the root
func (p *TestProject) FileExists(path string) bool {
	p.t.Helper()

	_, err := os.Lstat(filepath.Join(p.Root, filepath.FromSlash(path)))
	return err == nil
}

// ReadFile reads a file relative to the root, failing the test if it is missing
func (p *TestProject) ReadFile(path string) string {
	p.t.Helper()

	content, err := os.ReadFile(filepath.Join(p.Root, filepath.FromSlash(path)))
	if err != nil {
		p.t.Fatalf("reading %s: %v", path, err)
	}
	return string(content)
}

// Snapshot records the current state of the root, dot files included
func (p *TestProject) Snapshot() *filesystem.Snapshot {
	p.t.Helper()

	s, err := filesystem.Take(p.Root, filesystem.WalkOptions{IncludeHidden: true})
	if err != nil {
		p.t.Fatal(err)
	}
	return s
}

// Files returns every regular file under the root, sorted
func (p *TestProject) Files() []string {
	p.t.Helper()

	s := p.Snapshot()
	var files []string
	for _, path := range s.Paths() {
		if !s.Files[path].Dir {
			files = append(files, path)
		}
	}
	return files
}
