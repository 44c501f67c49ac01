// Package project describes the project a setup run creates: its name, root
// directory, options and the build configurations it supports.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	ErrInvalidName = errors.New("invalid project name")
	ErrInvalidRoot = errors.New("invalid project root")
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// reservedNames cannot be used as file or directory names on Windows.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true, "COM5": true,
	"COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true, "LPT5": true,
	"LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// Options are the user-selected switches of a setup run.
type Options struct {
	// IgnoreGenerated appends every generated top-level entry to .gitignore.
	IgnoreGenerated bool
}

// Descriptor is the input of one setup run. It is owned by the invocation
// that created it.
type Descriptor struct {
	Name    string
	Root    string
	Options Options
}

// New validates name and root and returns a descriptor.
func New(name, root string, opts Options) (*Descriptor, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(root) {
		return nil, fmt.Errorf("%w: %q is not absolute", ErrInvalidRoot, root)
	}

	return &Descriptor{
		Name:    name,
		Root:    filepath.Clean(root),
		Options: opts,
	}, nil
}

// ValidateName checks that name is usable as a directory, CMake target and
// batch variable value on every platform.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	case !namePattern.MatchString(name):
		return fmt.Errorf("%w: %q must start with a letter or underscore and contain only letters, digits, '_', '-' or '.'", ErrInvalidName, name)
	case strings.HasSuffix(name, "."):
		return fmt.Errorf("%w: %q must not end with '.'", ErrInvalidName, name)
	}

	base, _, _ := strings.Cut(name, ".")
	if reservedNames[strings.ToUpper(base)] {
		return fmt.Errorf("%w: %q is a reserved device name", ErrInvalidName, name)
	}
	return nil
}

// ParseOption interprets the optional second setup argument. It reports
// whether the value was recognized; unrecognized values leave opts unchanged.
func ParseOption(arg string, opts Options) (Options, bool) {
	switch strings.ToLower(strings.TrimLeft(arg, "-")) {
	case "ignore":
		opts.IgnoreGenerated = true
		return opts, true
	default:
		return opts, false
	}
}

// HasEngine reports whether root contains the engine library directory
// (a <engine>/CMakeLists.txt). The generated solution descriptor adds it
// with add_subdirectory, so a missing engine is worth a warning.
func HasEngine(root, engine string) bool {
	_, err := os.Stat(filepath.Join(root, engine, "CMakeLists.txt"))
	return err == nil
}
