package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
)

// DefaultFileMode is used for entries that do not set a mode.
const DefaultFileMode fs.FileMode = 0644

// Entry is one generated file: a slash-separated path relative to the plan
// root and its fully rendered content.
type Entry struct {
	Path    string
	Content []byte
	Mode    fs.FileMode
}

// Plan is the complete, ordered set of files for one generation run.
// A Plan is immutable once built; accessors hand out copies.
type Plan struct {
	root    string
	entries []Entry
	index   map[string]int
}

// NewPlan validates entries and returns a plan rooted at root.
//
// Paths must be unique, relative and must not escape the root. No path may
// also be a parent directory of another path, since one of the two writes
// could never succeed. Content must not contain marker syntax, so a plan can
// never carry an unrendered template.
func NewPlan(root string, entries []Entry) (*Plan, error) {
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("%w: plan root %q is not absolute", ErrInvalidPath, root)
	}

	p := &Plan{
		root:    filepath.Clean(root),
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		if !fs.ValidPath(e.Path) || e.Path == "." {
			return nil, fmt.Errorf("%w: %q", ErrInvalidPath, e.Path)
		}
		if _, dup := p.index[e.Path]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, e.Path)
		}
		if leftover := leftoverMarkers(string(e.Content)); len(leftover) > 0 {
			return nil, &UnresolvedPlaceholderError{Template: e.Path, Markers: leftover}
		}
		if e.Content == nil {
			e.Content = []byte{}
		}
		if e.Mode == 0 {
			e.Mode = DefaultFileMode
		}

		p.index[e.Path] = len(p.entries)
		p.entries = append(p.entries, Entry{
			Path:    e.Path,
			Content: bytes.Clone(e.Content),
			Mode:    e.Mode,
		})
	}

	for _, e := range p.entries {
		for dir := path.Dir(e.Path); dir != "."; dir = path.Dir(dir) {
			if _, ok := p.index[dir]; ok {
				return nil, fmt.Errorf("%w: %s is both a file and the parent of %s", ErrPathCollision, dir, e.Path)
			}
		}
	}

	return p, nil
}

// Root returns the absolute directory every entry is relative to.
func (p *Plan) Root() string {
	return p.root
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in plan order.
func (p *Plan) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	for i, e := range p.entries {
		out[i] = Entry{Path: e.Path, Content: bytes.Clone(e.Content), Mode: e.Mode}
	}
	return out
}

// Entry looks up a single entry by its relative path.
func (p *Plan) Entry(path string) (Entry, bool) {
	i, ok := p.index[path]
	if !ok {
		return Entry{}, false
	}
	e := p.entries[i]
	return Entry{Path: e.Path, Content: bytes.Clone(e.Content), Mode: e.Mode}, true
}

// Paths returns the relative entry paths in plan order.
func (p *Plan) Paths() []string {
	out := make([]string, len(p.entries))
	for i, e := range p.entries {
		out[i] = e.Path
	}
	return out
}

// Abs converts a relative entry path to an absolute filesystem path.
func (p *Plan) Abs(path string) string {
	return filepath.Join(p.root, filepath.FromSlash(path))
}

// Operations returns one WriteFileOp per entry, in plan order.
func (p *Plan) Operations() []Operation {
	ops := make([]Operation, len(p.entries))
	for i, e := range p.entries {
		ops[i] = &WriteFileOp{
			Path:    p.Abs(e.Path),
			Content: e.Content,
			Mode:    e.Mode,
		}
	}
	return ops
}
