package filesystem

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func walkRel(t *testing.T, root string, opts WalkOptions) []string {
	t.Helper()
	var visited []string
	err := Walk(root, opts, func(path string, info os.FileInfo) error {
		rel, _ := filepath.Rel(root, path)
		if rel != "." {
			visited = append(visited, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}
	sort.Strings(visited)
	return visited
}

func TestWalk_BasicTraversal(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"CMakeLists.txt":       "a",
		"Sandbox/Src/Main.cpp": "b",
	})

	got := walkRel(t, tmpDir, WalkOptions{})
	want := []string{"CMakeLists.txt", "Sandbox", "Sandbox/Src", "Sandbox/Src/Main.cpp"}

	if len(got) != len(want) {
		t.Fatalf("Walk() visited %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Walk() visited[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestWalk_IgnoreDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"node_modules/x.js": "x",
		"keep.txt":          "keep",
	})

	got := walkRel(t, tmpDir, WalkOptions{IncludeHidden: true})
	for _, p := range got {
		if p == "node_modules" || p == "node_modules/x.js" {
			t.Errorf("Walk() visited ignored path %s", p)
		}
	}
}

func TestWalk_Hidden(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		".gitignore": "Win64",
		"a.txt":      "a",
	})

	if got := walkRel(t, tmpDir, WalkOptions{}); len(got) != 1 || got[0] != "a.txt" {
		t.Errorf("Walk() without hidden = %v, want [a.txt]", got)
	}
	if got := walkRel(t, tmpDir, WalkOptions{IncludeHidden: true}); len(got) != 2 {
		t.Errorf("Walk() with hidden = %v, want 2 entries", got)
	}
}

func TestWalk_IgnorePatterns(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"app.pdb": "x",
		"app.exe": "y",
	})

	got := walkRel(t, tmpDir, WalkOptions{IgnorePatterns: []string{"*.pdb"}})
	if len(got) != 1 || got[0] != "app.exe" {
		t.Errorf("Walk() = %v, want [app.exe]", got)
	}
}
