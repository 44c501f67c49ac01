// Package scaffold turns a project descriptor into a generation plan.
//
// The builder walks the artifact catalogue in order, renders each output
// path and template with the project's placeholder set, and hands the
// result to generator.NewPlan. It never touches the filesystem beyond
// reading templates, so the same descriptor always yields the same plan.
package scaffold

import (
	"fmt"
	"path/filepath"

	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/internal/catalog"
	"github.com/simonhull/firebird-suite/nest/internal/project"
)

// Settings are the project-independent values substituted into templates.
type Settings struct {
	Engine        string // engine library directory and namespace
	ScriptPath    string // engine script directory, as written into batch files
	CMakeVersion  string
	CXXStandard   string
	LicenseHolder string
}

// DefaultSettings returns the settings used when no configuration file
// overrides them.
func DefaultSettings() Settings {
	return Settings{
		Engine:        "GameMaker",
		ScriptPath:    `GameMaker\Script`,
		CMakeVersion:  "3.27",
		CXXStandard:   "17",
		LicenseHolder: "GameMaker",
	}
}

// Builder builds plans from a template store and an artifact catalogue.
type Builder struct {
	store    *generator.Store
	catalog  *catalog.Catalog
	settings Settings
}

// NewBuilder creates a builder.
func NewBuilder(store *generator.Store, cat *catalog.Catalog, settings Settings) *Builder {
	return &Builder{store: store, catalog: cat, settings: settings}
}

// Values returns the base placeholder set for desc. Per-artifact values and
// MODE are layered on top during BuildPlan.
func (b *Builder) Values(desc *project.Descriptor) generator.PlaceholderSet {
	return generator.PlaceholderSet{
		"NAME":           desc.Name,
		"SOLUTION_NAME":  desc.Name,
		"ROOT_PATH":      filepath.ToSlash(desc.Root),
		"ENGINE":         b.settings.Engine,
		"SCRIPT_PATH":    b.settings.ScriptPath,
		"CMAKE_VERSION":  b.settings.CMakeVersion,
		"CXX_STANDARD":   b.settings.CXXStandard,
		"LICENSE_HOLDER": b.settings.LicenseHolder,
	}
}

// BuildPlan renders every catalogue artifact for desc.
func (b *Builder) BuildPlan(desc *project.Descriptor) (*generator.Plan, error) {
	base := b.Values(desc)

	var entries []generator.Entry
	ignoreIndex := -1

	for i, a := range b.catalog.Artifacts {
		id, err := generator.ParseTemplateID(a.Template)
		if err != nil {
			return nil, fmt.Errorf("artifact %d: %w", i, err)
		}

		if !a.PerConfiguration {
			entry, err := b.render(a, id, base.Merge(a.Values))
			if err != nil {
				return nil, err
			}
			if a.Role == catalog.RoleIgnoreList {
				ignoreIndex = len(entries)
			}
			entries = append(entries, entry)
			continue
		}

		for _, cfg := range project.AllConfigurations() {
			values := base.Merge(a.Values, generator.PlaceholderSet{"MODE": cfg.String()})
			entry, err := b.render(a, id, values)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}

	if desc.Options.IgnoreGenerated && ignoreIndex >= 0 {
		ignore := &entries[ignoreIndex]
		ignore.Content = []byte(extendIgnoreList(string(ignore.Content), ignore.Path, entries))
	}

	return generator.NewPlan(desc.Root, entries)
}

func (b *Builder) render(a catalog.Artifact, id generator.TemplateID, values generator.PlaceholderSet) (generator.Entry, error) {
	path, err := generator.Render(a.Path, values)
	if err != nil {
		return generator.Entry{}, fmt.Errorf("rendering path %q: %w", a.Path, err)
	}

	content, err := generator.RenderNamed(b.store, id, values)
	if err != nil {
		return generator.Entry{}, fmt.Errorf("rendering %s: %w", path, err)
	}

	return generator.Entry{Path: path, Content: []byte(content)}, nil
}
