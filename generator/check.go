package generator

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Status classifies one checked path.
type Status int

const (
	StatusOK       Status = iota // path does not exist yet
	StatusConflict               // path already exists
	StatusError                  // path could not be inspected
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "Ok"
	case StatusConflict:
		return "Conflict"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// PathResult is the outcome of checking one plan entry.
type PathResult struct {
	Path   string // relative plan path
	Status Status
	Err    error // set for StatusError
}

// Blocking reports whether this result prevents the plan from being written.
func (r PathResult) Blocking() bool {
	return r.Status != StatusOK
}

// Line renders the result as "path => Ok" / "path => Conflict".
func (r PathResult) Line() string {
	if r.Err != nil {
		return fmt.Sprintf("%s => %s (%v)", r.Path, r.Status, r.Err)
	}
	return fmt.Sprintf("%s => %s", r.Path, r.Status)
}

// CheckOptions configures Check.
type CheckOptions struct {
	// Exhaustive keeps checking after the first blocking path so every
	// conflict is reported. The default stops at the first one.
	Exhaustive bool
}

// Outcome is the structured result of a precondition check.
type Outcome struct {
	Results []PathResult
}

// Clear reports whether no examined path blocks the plan.
func (o *Outcome) Clear() bool {
	for _, r := range o.Results {
		if r.Blocking() {
			return false
		}
	}
	return true
}

// Conflicts returns the blocking paths in plan order.
func (o *Outcome) Conflicts() []string {
	var paths []string
	for _, r := range o.Results {
		if r.Blocking() {
			paths = append(paths, r.Path)
		}
	}
	return paths
}

// FirstConflict returns the first blocking result, if any.
func (o *Outcome) FirstConflict() (PathResult, bool) {
	for _, r := range o.Results {
		if r.Blocking() {
			return r, true
		}
	}
	return PathResult{}, false
}

// Lines renders one report line per examined path.
func (o *Outcome) Lines() []string {
	lines := make([]string, len(o.Results))
	for i, r := range o.Results {
		lines[i] = r.Line()
	}
	return lines
}

// Err returns nil for a clear outcome. When the first blocking result is a
// path that could not be inspected it returns a *CheckError, otherwise a
// *BlockedError listing the existing paths.
func (o *Outcome) Err() error {
	first, ok := o.FirstConflict()
	if !ok {
		return nil
	}
	if first.Status == StatusError {
		return &CheckError{Path: first.Path, Err: first.Err}
	}

	var existing []string
	for _, r := range o.Results {
		if r.Status == StatusConflict {
			existing = append(existing, r.Path)
		}
	}
	return &BlockedError{Paths: existing}
}

// Check tests every path of plan for existence, in plan order.
// Any existing path blocks the whole plan. Check never modifies the filesystem.
func Check(plan *Plan, opts CheckOptions) *Outcome {
	outcome := &Outcome{Results: make([]PathResult, 0, plan.Len())}

	for _, path := range plan.Paths() {
		result := checkPath(plan.Abs(path))
		result.Path = path
		outcome.Results = append(outcome.Results, result)

		if result.Blocking() && !opts.Exhaustive {
			break
		}
	}

	return outcome
}

func checkPath(abs string) PathResult {
	_, err := os.Lstat(abs)
	switch {
	case err == nil:
		return PathResult{Status: StatusConflict}
	case errors.Is(err, fs.ErrNotExist):
		return PathResult{Status: StatusOK}
	default:
		return PathResult{Status: StatusError, Err: err}
	}
}
