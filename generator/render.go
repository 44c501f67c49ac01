package generator

import (
	"errors"
	"regexp"
	"sort"
	"strings"
)

// PlaceholderSet maps placeholder names to their substitution values.
type PlaceholderSet map[string]string

// Merge returns a new set holding s overlaid with each of others in order.
func (s PlaceholderSet) Merge(others ...PlaceholderSet) PlaceholderSet {
	out := make(PlaceholderSet, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, o := range others {
		for k, v := range o {
			out[k] = v
		}
	}
	return out
}

var (
	// markerPattern matches a well-formed marker such as {{NAME}} or {{ NAME }}.
	markerPattern = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

	// leftoverPattern matches anything shaped like a marker, including typos
	// such as {{project-name}} that markerPattern would not accept.
	leftoverPattern = regexp.MustCompile(`\{\{[^{}\n]*\}\}`)
)

// Markers returns the sorted, de-duplicated placeholder names used in text.
func Markers(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range markerPattern.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}

// Render replaces every occurrence of every known marker in text with its
// value from values. Substitution is a single pass, so the order of keys
// does not matter and substituted values are never expanded again.
//
// Render fails with an *UnresolvedPlaceholderError if any marker syntax
// remains in the output.
func Render(text string, values PlaceholderSet) (string, error) {
	out := markerPattern.ReplaceAllStringFunc(text, func(marker string) string {
		key := strings.TrimSpace(marker[2 : len(marker)-2])
		if v, ok := values[key]; ok {
			return v
		}
		return marker
	})

	if leftover := leftoverMarkers(out); len(leftover) > 0 {
		return "", &UnresolvedPlaceholderError{Markers: leftover}
	}
	return out, nil
}

// RenderNamed loads the template id from store and renders it.
func RenderNamed(store *Store, id TemplateID, values PlaceholderSet) (string, error) {
	text, err := store.Load(id)
	if err != nil {
		return "", err
	}

	out, err := Render(text, values)
	if err != nil {
		var upe *UnresolvedPlaceholderError
		if errors.As(err, &upe) {
			upe.Template = id.String()
		}
		return "", err
	}
	return out, nil
}

func leftoverMarkers(text string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range leftoverPattern.FindAllString(text, -1) {
		name := strings.TrimSpace(m[2 : len(m)-2])
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
