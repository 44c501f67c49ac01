package generator

import (
	"context"
)

// ExecuteOptions configures execution behavior.
type ExecuteOptions struct {
	DryRun     bool // check only, never write
	Exhaustive bool // report every conflict instead of stopping at the first
	Staged     bool // write through a staging directory (see Writer)

	// Report is called once per checked path, in plan order, before any
	// write happens. It only observes; it cannot change the outcome.
	Report func(PathResult)
}

// Result describes a finished execution.
type Result struct {
	Outcome *Outcome
	Written []string
}

// Execute runs the check-then-write pipeline for plan.
//
// Phase 1 checks every planned path. If any path already exists the
// pipeline stops with a *BlockedError and the filesystem is left untouched.
// Phase 2 writes the plan unless DryRun is set.
func Execute(ctx context.Context, plan *Plan, opts ExecuteOptions) (*Result, error) {
	// Phase 1: precondition check
	outcome := Check(plan, CheckOptions{Exhaustive: opts.Exhaustive})
	if opts.Report != nil {
		for _, r := range outcome.Results {
			opts.Report(r)
		}
	}

	result := &Result{Outcome: outcome}
	if err := outcome.Err(); err != nil {
		return result, err
	}
	if opts.DryRun {
		return result, nil
	}

	// Phase 2: write
	w := Writer{Staged: opts.Staged}
	written, err := w.Write(ctx, plan)
	if written != nil {
		result.Written = written.Written
	}
	return result, err
}
