package filesystem

import (
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileState is what a snapshot records about one path. Directory mtimes
// change whenever an entry is added, so only files record ModTime.
type FileState struct {
	Dir     bool
	Size    int64
	Mode    fs.FileMode
	ModTime time.Time         // zero for directories
	Hash    [sha256.Size]byte // zero for directories
}

// Equal reports whether both states describe the same content, mode and
// modification time.
func (s FileState) Equal(other FileState) bool {
	return s.Dir == other.Dir &&
		s.Size == other.Size &&
		s.Mode == other.Mode &&
		s.ModTime.Equal(other.ModTime) &&
		s.Hash == other.Hash
}

// Snapshot is the state of a directory tree at one point in time, keyed by
// slash-separated paths relative to Root. The root itself is not recorded.
type Snapshot struct {
	Root  string
	Files map[string]FileState
}

// Take walks root and records every visited path.
func Take(root string, opts WalkOptions) (*Snapshot, error) {
	s := &Snapshot{Root: root, Files: make(map[string]FileState)}

	err := Walk(root, opts, func(path string, info os.FileInfo) error {
		if path == root {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		state := FileState{Dir: info.IsDir(), Mode: info.Mode()}
		if !info.IsDir() {
			state.Size = info.Size()
			state.ModTime = info.ModTime()
			if state.Hash, err = hashFile(path); err != nil {
				return err
			}
		}
		s.Files[filepath.ToSlash(rel)] = state
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot %s: %w", root, err)
	}

	return s, nil
}

func hashFile(path string) ([sha256.Size]byte, error) {
	var sum [sha256.Size]byte

	f, err := os.Open(path)
	if err != nil {
		return sum, err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return sum, err
	}
	copy(sum[:], h.Sum(nil))
	return sum, nil
}

// Has reports whether rel was present when the snapshot was taken.
func (s *Snapshot) Has(rel string) bool {
	_, ok := s.Files[rel]
	return ok
}

// Paths returns every recorded path, sorted.
func (s *Snapshot) Paths() []string {
	paths := make([]string, 0, len(s.Files))
	for p := range s.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Changes lists the differences between two snapshots.
type Changes struct {
	Added    []string
	Removed  []string
	Modified []string
}

// Empty reports whether nothing changed.
func (c Changes) Empty() bool {
	return len(c.Added) == 0 && len(c.Removed) == 0 && len(c.Modified) == 0
}

func (c Changes) String() string {
	if c.Empty() {
		return "no changes"
	}

	var b strings.Builder
	for _, p := range c.Added {
		fmt.Fprintf(&b, "+ %s\n", p)
	}
	for _, p := range c.Removed {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	for _, p := range c.Modified {
		fmt.Fprintf(&b, "~ %s\n", p)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// Diff compares s with a later snapshot of the same tree. A file whose
// mtime moved counts as modified even when its content is unchanged.
func (s *Snapshot) Diff(later *Snapshot) Changes {
	var c Changes

	for _, p := range later.Paths() {
		before, ok := s.Files[p]
		if !ok {
			c.Added = append(c.Added, p)
			continue
		}
		if !before.Equal(later.Files[p]) {
			c.Modified = append(c.Modified, p)
		}
	}
	for _, p := range s.Paths() {
		if !later.Has(p) {
			c.Removed = append(c.Removed, p)
		}
	}

	return c
}
