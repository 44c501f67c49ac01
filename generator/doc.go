// Package generator is the generation engine behind nest: a template store,
// a placeholder substitution pass, an immutable generation plan, a
// precondition check and a writer.
//
// # Pipeline
//
// A run builds a Plan, checks it, and writes it:
//
//	plan, err := generator.NewPlan(root, entries)
//	res, err := generator.Execute(ctx, plan, generator.ExecuteOptions{
//	    Report: func(r generator.PathResult) { fmt.Println(r.Line()) },
//	})
//
// If any planned path already exists, Execute returns a *BlockedError
// (matching ErrPreconditionBlocked) and nothing is written. A path that
// cannot be inspected yields a *CheckError (matching ErrCheckFailed)
// instead. A project is never partially regenerated or merged with
// existing content.
//
// # Templates
//
// Templates are plain text with {{NAME}} markers. Render replaces every
// occurrence of every marker and fails with ErrUnresolvedPlaceholder if any
// marker is left over, so a typo in a template or a missing value can never
// reach disk.
//
// # Writing
//
// Writer creates parent directories and writes files in plan order. The
// first failure stops the run with a *PartialWriteError. With Staged set,
// files are written into a staging directory first and renamed into place,
// and a failure removes whatever was already moved.
package generator
