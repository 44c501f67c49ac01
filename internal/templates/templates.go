// Package templates holds the default template set compiled into nest.
//
// Layout is <category>/<name>.tmpl, the layout generator.Store expects:
//
//	cmake/Solution     solution-level CMakeLists.txt
//	cmake/Project      project-level CMakeLists.txt
//	script/Build       Build_<MODE>.bat
//	script/Package     Package_<MODE>.bat
//	script/GenerateProjectFiles  GenerateProjectFiles.bat / HotReload.bat
//	vcs/gitignore      .gitignore base patterns
//	legal/MIT          LICENSE.txt
//	source/Main        <NAME>/Src/Main.cpp
package templates

import (
	"embed"
	"io/fs"
	"os"

	"github.com/simonhull/firebird-suite/nest/generator"
)

//go:embed files
var files embed.FS

// FS returns the embedded template tree rooted at the category directories.
func FS() fs.FS {
	sub, err := fs.Sub(files, "files")
	if err != nil {
		// fs.Sub only fails for an invalid path, and "files" is a constant
		panic(err)
	}
	return sub
}

// NewStore returns a store over dir, or over the embedded defaults when dir
// is empty.
func NewStore(dir string) *generator.Store {
	if dir == "" {
		return generator.NewStore(FS())
	}
	return generator.NewStore(os.DirFS(dir))
}
