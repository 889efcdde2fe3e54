package store

import (
	"fmt"
	"strings"

	"github.com/mmr-tortoise/project-merge/internal/dedup"
	"github.com/mmr-tortoise/project-merge/internal/model"
)

// ValidationError is a single problem found in a project document.
type ValidationError struct {
	// Field is the document path of the offending value
	// (e.g., "sprites[2].looks[1].name").
	Field string

	// Message describes what is wrong with the value.
	Message string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("project validation error: %s: %s", e.Field, e.Message)
}

// Validate checks a decoded project against the invariants the merge engine
// relies on. It returns every violation found (empty slice = valid).
//
// Checks performed:
//   - project-scoped variables, lists, and broadcast messages are unique
//   - variable and list scopes are valid
//   - sprites are non-nil, have a non-blank name, and have distinct IDs
//   - looks and sounds are unique by name within each sprite
//   - sprite-local variables and lists are unique within each sprite
func Validate(p *model.Project) []ValidationError {
	var errs []ValidationError

	errs = appendDuplicate(errs, "userVariables", p.UserVariables, model.UserVariable.Equal, func(v model.UserVariable) string { return v.Name })
	errs = appendDuplicate(errs, "userLists", p.UserLists, model.UserList.Equal, func(l model.UserList) string { return l.Name })
	errs = appendDuplicate(errs, "broadcasts.messages", p.Broadcasts.Messages, model.EqualBroadcastMessages, func(m string) string { return m })
	errs = appendScopes(errs, "", p.UserVariables, p.UserLists)

	ids := make(map[string]int, len(p.Sprites))
	for i, s := range p.Sprites {
		field := fmt.Sprintf("sprites[%d]", i)
		if s == nil {
			errs = append(errs, ValidationError{Field: field, Message: "sprite must not be null"})
			continue
		}

		if err := model.ValidateSpriteName(s.Name); err != nil {
			errs = append(errs, ValidationError{Field: field + ".name", Message: err.Error()})
		}
		if prev, ok := ids[s.ID]; ok {
			errs = append(errs, ValidationError{
				Field:   field + ".id",
				Message: fmt.Sprintf("id %q is already used by sprites[%d]", s.ID, prev),
			})
		} else {
			ids[s.ID] = i
		}

		errs = appendDuplicate(errs, field+".looks", s.Looks, model.Look.SameName, func(l model.Look) string { return l.Name })
		errs = appendDuplicate(errs, field+".sounds", s.Sounds, model.Sound.SameName, func(snd model.Sound) string { return snd.Name })
		errs = appendDuplicate(errs, field+".userVariables", s.UserVariables, model.UserVariable.Equal, func(v model.UserVariable) string { return v.Name })
		errs = appendDuplicate(errs, field+".userLists", s.UserLists, model.UserList.Equal, func(l model.UserList) string { return l.Name })
		errs = appendScopes(errs, field+".", s.UserVariables, s.UserLists)
	}

	return errs
}

// FormatValidationErrors joins validation errors into one message, one
// error per line.
func FormatValidationErrors(errs []ValidationError) string {
	lines := make([]string, len(errs))
	for i := range errs {
		lines[i] = errs[i].Error()
	}
	return strings.Join(lines, "\n")
}

func appendDuplicate[T any](errs []ValidationError, field string, items []T, equal func(a, b T) bool, name func(T) string) []ValidationError {
	i, j := dedup.FirstDuplicate(items, equal)
	if i < 0 {
		return errs
	}
	return append(errs, ValidationError{
		Field:   fmt.Sprintf("%s[%d]", field, j),
		Message: fmt.Sprintf("duplicate of %s[%d] (%q)", field, i, name(items[i])),
	})
}

func appendScopes(errs []ValidationError, prefix string, vars []model.UserVariable, lists []model.UserList) []ValidationError {
	for i, v := range vars {
		if !v.Scope.IsValid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%suserVariables[%d].scope", prefix, i),
				Message: fmt.Sprintf("invalid scope %q", v.Scope),
			})
		}
	}
	for i, l := range lists {
		if !l.Scope.IsValid() {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("%suserLists[%d].scope", prefix, i),
				Message: fmt.Sprintf("invalid scope %q", l.Scope),
			})
		}
	}
	return errs
}
