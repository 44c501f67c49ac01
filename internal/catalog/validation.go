package catalog

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/nest/generator"
)

// ValidationError represents a catalogue validation error with context
type ValidationError struct {
	Field      string // Field path (e.g., "artifacts[2].path")
	Message    string
	Suggestion string // optional
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("validation error at %s: %s", e.Field, e.Message)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(". Suggestion: %s", e.Suggestion)
	}
	return msg
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	result := fmt.Sprintf("found %d validation errors:\n", len(e))
	for i, err := range e {
		result += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return result
}

// Validate checks the structure of a catalogue.
func Validate(c *Catalog) error {
	var errs ValidationErrors

	if c.APIVersion != APIVersion {
		errs = append(errs, ValidationError{
			Field:      "apiVersion",
			Message:    fmt.Sprintf("unsupported apiVersion %q", c.APIVersion),
			Suggestion: fmt.Sprintf("use %q", APIVersion),
		})
	}
	if c.Kind != Kind {
		errs = append(errs, ValidationError{
			Field:   "kind",
			Message: fmt.Sprintf("kind must be %q, got %q", Kind, c.Kind),
		})
	}
	if len(c.Artifacts) == 0 {
		errs = append(errs, ValidationError{
			Field:   "artifacts",
			Message: "at least one artifact is required",
		})
	}

	ignoreLists := 0
	for i, a := range c.Artifacts {
		field := fmt.Sprintf("artifacts[%d]", i)

		if a.Path == "" {
			errs = append(errs, ValidationError{Field: field + ".path", Message: "path is required"})
		} else if strings.Contains(a.Path, `\`) || strings.HasPrefix(a.Path, "/") {
			errs = append(errs, ValidationError{
				Field:      field + ".path",
				Message:    fmt.Sprintf("%q must be a relative, slash-separated path", a.Path),
				Suggestion: "write paths like Sandbox/Src/Main.cpp",
			})
		}

		if _, err := generator.ParseTemplateID(a.Template); err != nil {
			errs = append(errs, ValidationError{Field: field + ".template", Message: err.Error()})
		}

		usesMode := false
		for _, m := range generator.Markers(a.Path) {
			if m == "MODE" {
				usesMode = true
			}
		}
		if a.PerConfiguration && !usesMode {
			errs = append(errs, ValidationError{
				Field:      field + ".path",
				Message:    "per-configuration artifact path must contain {{MODE}}",
				Suggestion: "otherwise every configuration would write the same file",
			})
		}
		if !a.PerConfiguration && usesMode {
			errs = append(errs, ValidationError{
				Field:   field + ".path",
				Message: "{{MODE}} is only available to per-configuration artifacts",
			})
		}

		switch a.Role {
		case RoleFile:
		case RoleIgnoreList:
			ignoreLists++
			if a.PerConfiguration {
				errs = append(errs, ValidationError{Field: field + ".role", Message: "the ignore list cannot be per-configuration"})
			}
		default:
			errs = append(errs, ValidationError{
				Field:      field + ".role",
				Message:    fmt.Sprintf("unknown role %q", a.Role),
				Suggestion: fmt.Sprintf("use %q or leave it empty", RoleIgnoreList),
			})
		}
	}

	if ignoreLists > 1 {
		errs = append(errs, ValidationError{Field: "artifacts", Message: "at most one artifact may have the ignore_list role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
