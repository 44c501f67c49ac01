package scaffold

import (
	"sort"
	"strings"

	"github.com/simonhull/firebird-suite/nest/generator"
)

// extendIgnoreList appends the top-level entries of the plan to an ignore
// list: base, a blank line, then directories and files in sorted order.
// The ignore file itself and patterns already in base are skipped.
func extendIgnoreList(base, self string, entries []generator.Entry) string {
	existing := make(map[string]bool)
	for _, line := range strings.Split(base, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			existing[strings.Trim(line, "/")] = true
		}
	}

	dirs := make(map[string]bool)
	files := make(map[string]bool)
	for _, e := range entries {
		if e.Path == self {
			continue
		}
		top, _, nested := strings.Cut(e.Path, "/")
		if existing[top] {
			continue
		}
		if nested {
			dirs[top] = true
		} else {
			files[top] = true
		}
	}

	lines := append(sortedKeys(dirs), sortedKeys(files)...)
	if len(lines) == 0 {
		return base
	}

	return strings.TrimRight(base, "\r\n") + "\n\n" + strings.Join(lines, "\n") + "\n"
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
