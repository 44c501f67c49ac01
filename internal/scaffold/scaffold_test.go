package scaffold_test

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/simonhull/firebird-suite/nest/filesystem"
	"github.com/simonhull/firebird-suite/nest/generator"
	"github.com/simonhull/firebird-suite/nest/internal/catalog"
	"github.com/simonhull/firebird-suite/nest/internal/project"
	"github.com/simonhull/firebird-suite/nest/internal/scaffold"
	"github.com/simonhull/firebird-suite/nest/internal/templates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBuilder() *scaffold.Builder {
	return scaffold.NewBuilder(templates.NewStore(""), catalog.Default(), scaffold.DefaultSettings())
}

func descriptor(t *testing.T, root string, ignore bool) *project.Descriptor {
	t.Helper()
	desc, err := project.New("Sandbox", root, project.Options{IgnoreGenerated: ignore})
	require.NoError(t, err)
	return desc
}

func TestBuildPlan_DefaultCatalogue(t *testing.T) {
	plan, err := newBuilder().BuildPlan(descriptor(t, t.TempDir(), false))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"CMakeLists.txt",
		"Sandbox/CMakeLists.txt",
		"Build_Debug.bat",
		"Build_Release.bat",
		"Build_RelWithDebInfo.bat",
		"Build_MinSizeRel.bat",
		"Package_Debug.bat",
		"Package_Release.bat",
		"Package_RelWithDebInfo.bat",
		"Package_MinSizeRel.bat",
		"GenerateProjectFiles.bat",
		"HotReload.bat",
		".gitignore",
		"LICENSE.txt",
		"Sandbox/Src/Main.cpp",
	}, plan.Paths())
}

func TestBuildPlan_Content(t *testing.T) {
	plan, err := newBuilder().BuildPlan(descriptor(t, t.TempDir(), false))
	require.NoError(t, err)

	content := func(path string) string {
		e, ok := plan.Entry(path)
		require.True(t, ok, path)
		return string(e.Content)
	}

	solution := content("CMakeLists.txt")
	assert.Contains(t, solution, "cmake_minimum_required(VERSION 3.27)")
	assert.Contains(t, solution, "project(Sandbox)")
	assert.Contains(t, solution, "add_subdirectory(GameMaker)")

	assert.Contains(t, content("Build_RelWithDebInfo.bat"), "SET MODE=RelWithDebInfo")
	assert.Contains(t, content("Package_MinSizeRel.bat"), "SET MODE=MinSizeRel")
	assert.Contains(t, content("GenerateProjectFiles.bat"), "%PROJECT_NAME% On")
	assert.Contains(t, content("HotReload.bat"), "%PROJECT_NAME% Off")
	assert.Contains(t, content("Sandbox/Src/Main.cpp"), `"Sandbox"`)
	assert.Contains(t, content("LICENSE.txt"), "Copyright GameMaker")
	assert.NotContains(t, content(".gitignore"), "Sandbox")
}

func TestBuildPlan_Deterministic(t *testing.T) {
	root := t.TempDir()
	b := newBuilder()

	first, err := b.BuildPlan(descriptor(t, root, true))
	require.NoError(t, err)
	second, err := b.BuildPlan(descriptor(t, root, true))
	require.NoError(t, err)

	assert.Equal(t, first.Entries(), second.Entries())
}

func TestBuildPlan_IgnoreOption(t *testing.T) {
	plan, err := newBuilder().BuildPlan(descriptor(t, t.TempDir(), true))
	require.NoError(t, err)

	base, err := templates.NewStore("").Load(generator.TemplateID{Category: "vcs", Name: "gitignore"})
	require.NoError(t, err)

	ignore, ok := plan.Entry(".gitignore")
	require.True(t, ok)

	want := strings.TrimRight(base, "\n") + "\n\n" + strings.Join([]string{
		"Sandbox",
		"Build_Debug.bat",
		"Build_MinSizeRel.bat",
		"Build_RelWithDebInfo.bat",
		"Build_Release.bat",
		"CMakeLists.txt",
		"GenerateProjectFiles.bat",
		"HotReload.bat",
		"LICENSE.txt",
		"Package_Debug.bat",
		"Package_MinSizeRel.bat",
		"Package_RelWithDebInfo.bat",
		"Package_Release.bat",
	}, "\n") + "\n"
	assert.Equal(t, want, string(ignore.Content))

	// Only the ignore list changes
	plain, err := newBuilder().BuildPlan(descriptor(t, plan.Root(), false))
	require.NoError(t, err)
	for _, e := range plain.Entries() {
		if e.Path == ".gitignore" {
			continue
		}
		other, ok := plan.Entry(e.Path)
		require.True(t, ok)
		assert.Equal(t, e.Content, other.Content, e.Path)
	}
}

func TestBuildPlan_IgnoreSkipsExistingPatterns(t *testing.T) {
	store := generator.NewStore(fstest.MapFS{
		"vcs/gitignore.tmpl": {Data: []byte("Build\nREADME.md\n\n\n")},
		"doc/Readme.tmpl":    {Data: []byte("# {{NAME}}\n")},
		"doc/Notes.tmpl":     {Data: []byte("notes\n")},
	})
	cat := &catalog.Catalog{
		APIVersion: catalog.APIVersion,
		Kind:       catalog.Kind,
		Artifacts: []catalog.Artifact{
			{Path: "README.md", Template: "doc/Readme"},
			{Path: "Build/notes.txt", Template: "doc/Notes"},
			{Path: "{{NAME}}/notes.txt", Template: "doc/Notes"},
			{Path: "{{NAME}}/more/notes.txt", Template: "doc/Notes"},
			{Path: ".gitignore", Template: "vcs/gitignore", Role: catalog.RoleIgnoreList},
		},
	}

	plan, err := scaffold.NewBuilder(store, cat, scaffold.DefaultSettings()).BuildPlan(descriptor(t, t.TempDir(), true))
	require.NoError(t, err)

	ignore, _ := plan.Entry(".gitignore")
	assert.Equal(t, "Build\nREADME.md\n\nSandbox\n", string(ignore.Content))
}

func TestBuildPlan_UnresolvedPlaceholder(t *testing.T) {
	store := generator.NewStore(fstest.MapFS{
		"doc/Readme.tmpl": {Data: []byte("# {{NAME}} by {{AUTHOR}}\n")},
	})
	cat := &catalog.Catalog{
		APIVersion: catalog.APIVersion,
		Kind:       catalog.Kind,
		Artifacts:  []catalog.Artifact{{Path: "README.md", Template: "doc/Readme"}},
	}

	_, err := scaffold.NewBuilder(store, cat, scaffold.DefaultSettings()).BuildPlan(descriptor(t, t.TempDir(), false))
	require.Error(t, err)
	assert.ErrorIs(t, err, generator.ErrUnresolvedPlaceholder)

	var upe *generator.UnresolvedPlaceholderError
	require.ErrorAs(t, err, &upe)
	assert.Equal(t, []string{"AUTHOR"}, upe.Markers)
	assert.Equal(t, "doc/Readme", upe.Template)
}

func TestBuildPlan_MissingTemplate(t *testing.T) {
	cat := &catalog.Catalog{
		APIVersion: catalog.APIVersion,
		Kind:       catalog.Kind,
		Artifacts:  []catalog.Artifact{{Path: "README.md", Template: "doc/Readme"}},
	}

	_, err := scaffold.NewBuilder(templates.NewStore(""), cat, scaffold.DefaultSettings()).BuildPlan(descriptor(t, t.TempDir(), false))
	assert.ErrorIs(t, err, generator.ErrTemplateNotFound)
}

func TestSetup_RerunIsBlocked(t *testing.T) {
	root := t.TempDir()
	ctx := context.Background()

	plan, err := newBuilder().BuildPlan(descriptor(t, root, false))
	require.NoError(t, err)

	res, err := generator.Execute(ctx, plan, generator.ExecuteOptions{})
	require.NoError(t, err)
	assert.Equal(t, plan.Paths(), res.Written)

	before, err := filesystem.Take(root, filesystem.WalkOptions{IncludeHidden: true})
	require.NoError(t, err)

	// Second run with the ignore option still must not touch anything
	again, err := newBuilder().BuildPlan(descriptor(t, root, true))
	require.NoError(t, err)

	var reported []generator.PathResult
	res, err = generator.Execute(ctx, again, generator.ExecuteOptions{
		Report: func(r generator.PathResult) { reported = append(reported, r) },
	})
	require.ErrorIs(t, err, generator.ErrPreconditionBlocked)
	assert.Empty(t, res.Written)

	require.Len(t, reported, 1)
	assert.Equal(t, "CMakeLists.txt => Conflict", reported[0].Line())

	after, err := filesystem.Take(root, filesystem.WalkOptions{IncludeHidden: true})
	require.NoError(t, err)
	assert.True(t, before.Diff(after).Empty(), before.Diff(after).String())

	for _, path := range plan.Paths() {
		assert.True(t, before.Files[path].ModTime.Equal(after.Files[path].ModTime), "%s was touched", path)
	}
}

func TestBuildPlan_NameCollidesWithRootFile(t *testing.T) {
	root := t.TempDir()

	for _, name := range []string{"CMakeLists.txt", "LICENSE.txt", "HotReload.bat"} {
		t.Run(name, func(t *testing.T) {
			desc, err := project.New(name, root, project.Options{})
			require.NoError(t, err)

			_, err = newBuilder().BuildPlan(desc)
			require.ErrorIs(t, err, generator.ErrPathCollision)
		})
	}

	snap, err := filesystem.Take(root, filesystem.WalkOptions{IncludeHidden: true})
	require.NoError(t, err)
	assert.Empty(t, snap.Paths())
}

func TestSetup_PartialTreeIsBlocked(t *testing.T) {
	root := t.TempDir()

	plan, err := newBuilder().BuildPlan(descriptor(t, root, false))
	require.NoError(t, err)

	// Only the last artifact exists
	single, err := generator.NewPlan(root, []generator.Entry{{Path: "Sandbox/Src/Main.cpp", Content: []byte("x")}})
	require.NoError(t, err)
	_, err = generator.Execute(context.Background(), single, generator.ExecuteOptions{})
	require.NoError(t, err)

	res, err := generator.Execute(context.Background(), plan, generator.ExecuteOptions{Exhaustive: true})
	require.ErrorIs(t, err, generator.ErrPreconditionBlocked)
	assert.Equal(t, []string{"Sandbox/Src/Main.cpp"}, res.Outcome.Conflicts())
	assert.Len(t, res.Outcome.Results, plan.Len())
}
