package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// DefaultStagingPrefix names the temporary directory used by staged writes.
const DefaultStagingPrefix = ".nest-staging-"

// Writer persists a plan to disk.
//
// The default mode writes entries one by one in plan order and stops at the
// first failure, leaving earlier files in place. Setting Staged writes every
// entry into a staging directory under the plan root first and only then
// renames them into place; if anything fails, staged and already-moved files
// are removed again.
type Writer struct {
	Staged        bool
	StagingPrefix string
}

// WriteResult lists the relative paths that were written, in plan order.
type WriteResult struct {
	Written []string
}

// Write persists every entry of plan. Parent directories are created as
// needed. The first failing entry aborts the rest and is reported as a
// *PartialWriteError.
func (w Writer) Write(ctx context.Context, plan *Plan) (*WriteResult, error) {
	if w.Staged {
		return w.writeStaged(ctx, plan)
	}
	return w.writeDirect(ctx, plan)
}

func (w Writer) writeDirect(ctx context.Context, plan *Plan) (*WriteResult, error) {
	result := &WriteResult{Written: make([]string, 0, plan.Len())}

	for _, e := range plan.Entries() {
		op := &WriteFileOp{Path: plan.Abs(e.Path), Content: e.Content, Mode: e.Mode}
		if err := op.Validate(ctx); err != nil {
			return result, &PartialWriteError{Path: e.Path, Written: result.Written, Err: err}
		}
		if err := op.Execute(ctx); err != nil {
			return result, &PartialWriteError{Path: e.Path, Written: result.Written, Err: err}
		}
		result.Written = append(result.Written, e.Path)
	}

	return result, nil
}

// staging tracks what a staged write has done so it can be undone.
type staging struct {
	dir         string
	moved       []string // absolute targets already renamed into place
	createdDirs []string // absolute directories created under the root
}

func (w Writer) writeStaged(ctx context.Context, plan *Plan) (*WriteResult, error) {
	prefix := w.StagingPrefix
	if prefix == "" {
		prefix = DefaultStagingPrefix
	}

	st := &staging{}
	if err := st.mkdirs("", plan.Root()); err != nil {
		st.rollback()
		return nil, &PartialWriteError{Path: ".", Err: err}
	}
	dir, err := os.MkdirTemp(plan.Root(), prefix)
	if err != nil {
		st.rollback()
		return nil, &PartialWriteError{Path: ".", Err: fmt.Errorf("creating staging directory: %w", err)}
	}
	st.dir = dir
	defer os.RemoveAll(st.dir)

	entries := plan.Entries()

	// Phase 1: stage every file
	for _, e := range entries {
		op := &WriteFileOp{
			Path:    filepath.Join(st.dir, filepath.FromSlash(e.Path)),
			Content: e.Content,
			Mode:    e.Mode,
		}
		if err := op.Execute(ctx); err != nil {
			st.rollback()
			return &WriteResult{}, &PartialWriteError{Path: e.Path, Err: err}
		}
	}

	// Phase 2: move into place
	result := &WriteResult{Written: make([]string, 0, len(entries))}
	for _, e := range entries {
		if err := st.move(ctx, plan, e.Path); err != nil {
			st.rollback()
			return &WriteResult{}, &PartialWriteError{Path: e.Path, Err: err}
		}
		result.Written = append(result.Written, e.Path)
	}

	return result, nil
}

func (st *staging) move(ctx context.Context, plan *Plan, rel string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	target := plan.Abs(rel)
	if err := st.mkdirs(plan.Root(), filepath.Dir(target)); err != nil {
		return err
	}

	// Rename replaces existing files on most platforms, so refuse explicitly.
	if _, err := os.Lstat(target); err == nil {
		return fmt.Errorf("file already exists: %s", target)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.Rename(filepath.Join(st.dir, filepath.FromSlash(rel)), target); err != nil {
		return err
	}
	st.moved = append(st.moved, target)
	return nil
}

// mkdirs creates dir and any missing parents below stop, remembering which
// ones it created. An empty stop walks up to the first existing ancestor.
func (st *staging) mkdirs(stop, dir string) error {
	var missing []string
	for d := dir; d != stop && d != filepath.Dir(d); d = filepath.Dir(d) {
		if _, err := os.Lstat(d); err == nil {
			break
		}
		missing = append(missing, d)
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], DefaultDirMode); err != nil && !errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("cannot create directory %s: %w", missing[i], err)
		}
		st.createdDirs = append(st.createdDirs, missing[i])
	}
	return nil
}

// rollback removes the staging directory, moved files and every directory
// created along the way, including the plan root if it was missing.
// Best effort: errors are ignored.
func (st *staging) rollback() {
	if st.dir != "" {
		os.RemoveAll(st.dir)
	}
	for _, path := range st.moved {
		os.Remove(path)
	}

	// Deepest first so parents are empty by the time they are removed
	dirs := append([]string(nil), st.createdDirs...)
	sort.Slice(dirs, func(i, j int) bool { return len(dirs[i]) > len(dirs[j]) })
	for _, d := range dirs {
		os.Remove(d)
	}
}
