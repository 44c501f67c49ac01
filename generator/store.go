package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// TemplateExt is the file extension of every template in a store.
const TemplateExt = ".tmpl"

// TemplateID names a template by category and logical name, e.g. "script/Build".
type TemplateID struct {
	Category string
	Name     string
}

// ParseTemplateID parses "category/name".
func ParseTemplateID(s string) (TemplateID, error) {
	category, name, ok := strings.Cut(s, "/")
	id := TemplateID{Category: category, Name: name}
	if !ok || !id.valid() {
		return TemplateID{}, fmt.Errorf("invalid template id %q: want category/name", s)
	}
	return id, nil
}

func (id TemplateID) String() string {
	return id.Category + "/" + id.Name
}

// File returns the slash-separated path of the template inside its store.
func (id TemplateID) File() string {
	return id.Category + "/" + id.Name + TemplateExt
}

func (id TemplateID) valid() bool {
	for _, part := range []string{id.Category, id.Name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return false
		}
	}
	return true
}

// Store loads templates from a read-only filesystem rooted at the template root.
// A Store never writes. Loaded text is cached so one id yields the same text
// for the lifetime of the store.
type Store struct {
	fsys  fs.FS
	cache map[TemplateID]string
	mu    sync.RWMutex
}

// NewStore creates a store over fsys (an embed.FS, os.DirFS, fstest.MapFS, ...).
func NewStore(fsys fs.FS) *Store {
	return &Store{
		fsys:  fsys,
		cache: make(map[TemplateID]string),
	}
}

// Load returns the text of the template named by id.
//
// Errors match ErrTemplateNotFound when the backing file is absent and
// ErrTemplateUnreadable for any other fault.
func (s *Store) Load(id TemplateID) (string, error) {
	if !id.valid() {
		return "", &TemplateError{ID: id, Err: ErrTemplateNotFound}
	}

	s.mu.RLock()
	if text, ok := s.cache[id]; ok {
		s.mu.RUnlock()
		return text, nil
	}
	s.mu.RUnlock()

	data, err := fs.ReadFile(s.fsys, id.File())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &TemplateError{ID: id, Err: ErrTemplateNotFound}
		}
		return "", &TemplateError{ID: id, Err: fmt.Errorf("%w: %v", ErrTemplateUnreadable, err)}
	}

	text := string(data)

	s.mu.Lock()
	s.cache[id] = text
	s.mu.Unlock()

	return text, nil
}

// List returns every template id in the store, sorted by category then name.
func (s *Store) List() ([]TemplateID, error) {
	var ids []TemplateID
	err := fs.WalkDir(s.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != TemplateExt {
			return nil
		}
		dir, file := path.Split(p)
		id := TemplateID{
			Category: strings.TrimSuffix(dir, "/"),
			Name:     strings.TrimSuffix(file, TemplateExt),
		}
		if id.valid() {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}

	sort.Slice(ids, func(i, j int) bool {
		if ids[i].Category != ids[j].Category {
			return ids[i].Category < ids[j].Category
		}
		return ids[i].Name < ids[j].Name
	})
	return ids, nil
}
