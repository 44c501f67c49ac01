// Package filesystem walks directory trees and records snapshots of them.
//
// # Overview
//
// Walk is a filepath.Walk with ignore rules for version-control and IDE
// directories. Take records every file under a root with its size, mode
// and content hash, so two snapshots can be compared:
//
//	before, err := filesystem.Take(root, filesystem.WalkOptions{IncludeHidden: true})
//	// ... run something that must not touch root ...
//	after, err := filesystem.Take(root, filesystem.WalkOptions{IncludeHidden: true})
//	if changes := before.Diff(after); !changes.Empty() {
//	    fmt.Println(changes)
//	}
package filesystem
