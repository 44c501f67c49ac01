package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultDirMode is used when parent directories have to be created.
const DefaultDirMode fs.FileMode = 0755

// Operation is a single filesystem change that can be validated without
// side effects and then executed.
//
// Description returns a human-readable line for output, e.g.
// "Create Sandbox/Src/Main.cpp (734 bytes)".
type Operation interface {
	Validate(ctx context.Context) error
	Execute(ctx context.Context) error
	Description() string
}

// WriteFileOp creates a new file. It never replaces an existing one.
//
// Validation behavior:
//   - Fails if the path already exists (including dangling symlinks)
//   - Rejects nil content (empty is OK)
//
// Execution behavior:
//   - Creates missing parent directories
//   - Opens the file with O_EXCL, so a file created after validation still
//     makes the write fail instead of being truncated
type WriteFileOp struct {
	Path    string      // Absolute file path
	Content []byte      // File content (can be empty, must not be nil)
	Mode    fs.FileMode // File permissions (e.g., 0644)
}

func (op *WriteFileOp) Validate(ctx context.Context) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}
	if _, err := os.Lstat(op.Path); err == nil {
		return fmt.Errorf("file already exists: %s", op.Path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot stat %s: %w", op.Path, err)
	}
	return nil
}

func (op *WriteFileOp) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Dir(op.Path)
	if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	mode := op.Mode
	if mode == 0 {
		mode = DefaultFileMode
	}

	f, err := os.OpenFile(op.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if _, err := f.Write(op.Content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (op *WriteFileOp) Description() string {
	return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
}
