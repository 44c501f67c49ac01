package generator

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Typed errors below unwrap to one of these so callers can
// match with errors.Is and still get the detail with errors.As.
var (
	ErrTemplateNotFound      = errors.New("template not found")
	ErrTemplateUnreadable    = errors.New("template unreadable")
	ErrUnresolvedPlaceholder = errors.New("unresolved placeholder")
	ErrPreconditionBlocked   = errors.New("precondition blocked")
	ErrPartialWrite          = errors.New("partial write failure")
	ErrDuplicatePath         = errors.New("duplicate output path")
	ErrInvalidPath           = errors.New("invalid output path")
	ErrPathCollision         = errors.New("output path collision")
	ErrCheckFailed           = errors.New("precondition check failed")
)

// TemplateError reports a template that could not be loaded.
type TemplateError struct {
	ID  TemplateID
	Err error // ErrTemplateNotFound or ErrTemplateUnreadable, possibly wrapping the I/O cause
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.ID, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// UnresolvedPlaceholderError lists the markers still present after rendering.
type UnresolvedPlaceholderError struct {
	Template string
	Markers  []string
}

func (e *UnresolvedPlaceholderError) Error() string {
	names := make([]string, len(e.Markers))
	for i, m := range e.Markers {
		names[i] = "{{" + m + "}}"
	}
	if e.Template == "" {
		return fmt.Sprintf("unresolved placeholder(s): %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("unresolved placeholder(s) in %s: %s", e.Template, strings.Join(names, ", "))
}

func (e *UnresolvedPlaceholderError) Is(target error) bool {
	return target == ErrUnresolvedPlaceholder
}

// BlockedError is returned when one or more output paths already exist.
// It is the designed safety guard, not an I/O failure.
type BlockedError struct {
	Paths []string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("already set up: %s exists", strings.Join(e.Paths, ", "))
}

func (e *BlockedError) Is(target error) bool {
	return target == ErrPreconditionBlocked
}

// CheckError is returned when a planned path could not be inspected, for
// example because a parent is a regular file or is not readable. Unlike
// BlockedError it says nothing about whether the project is set up.
type CheckError struct {
	Path string
	Err  error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("cannot check %s: %v", e.Path, e.Err)
}

func (e *CheckError) Is(target error) bool {
	return target == ErrCheckFailed
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

// PartialWriteError reports the first write that failed. Files listed in
// Written were already on disk when the failure happened.
type PartialWriteError struct {
	Path    string
	Written []string
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("failed writing %s: %v", e.Path, e.Err)
}

func (e *PartialWriteError) Is(target error) bool {
	return target == ErrPartialWrite
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
