package forms

import (
	"fmt"
	"sort"
	"strings"
)

// Validator checks one field's value against the full record and returns an
// error message, or "" when the value is acceptable.
type Validator func(value any, record Record) string

// Validators maps field names to their validator. Whole-record validation
// runs every entry and collects non-empty messages keyed by field name.
type Validators map[string]Validator

// Merge unions validator sets. Later sets win on field-name collisions, so
// field-specific validators can override the common ones.
func Merge(sets ...Validators) Validators {
	out := make(Validators)
	for _, set := range sets {
		for name, validator := range set {
			if validator == nil {
				continue
			}
			out[name] = validator
		}
	}
	return out
}

// Chain runs validators in order and returns the first failure.
func Chain(validators ...Validator) Validator {
	return func(value any, record Record) string {
		for _, validator := range validators {
			if validator == nil {
				continue
			}
			if msg := validator(value, record); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// Required fails on nil, empty, or whitespace-only string values.
func Required(label string) Validator {
	return func(value any, _ Record) string {
		if value == nil {
			return label + " is required"
		}
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return label + " is required"
		}
		return ""
	}
}

// MinLength fails when a string value is shorter than n characters. Empty
// values pass; pair with Required when presence is mandatory.
func MinLength(label string, n int) Validator {
	return func(value any, _ Record) string {
		s, ok := value.(string)
		if !ok || s == "" {
			return ""
		}
		if len(s) < n {
			return fmt.Sprintf("%s must be at least %d characters", label, n)
		}
		return ""
	}
}

// MaxLength fails when a string value is longer than n characters.
func MaxLength(label string, n int) Validator {
	return func(value any, _ Record) string {
		s, ok := value.(string)
		if !ok {
			return ""
		}
		if len(s) > n {
			return fmt.Sprintf("%s must be at most %d characters", label, n)
		}
		return ""
	}
}

// OneOf fails when a non-empty string value is not among the allowed options.
func OneOf(label string, options []string) Validator {
	return func(value any, _ Record) string {
		s, ok := value.(string)
		if !ok || s == "" {
			return ""
		}
		for _, option := range options {
			if s == option {
				return ""
			}
		}
		return fmt.Sprintf("%s must be one of: %s", label, strings.Join(options, ", "))
	}
}

// SchemaValidators derives the common validator set from field constraints:
// required, min/max length, and enum membership.
func SchemaValidators(schema Schema) Validators {
	out := make(Validators, len(schema.Fields))
	for _, field := range schema.Fields {
		label := field.DisplayLabel()
		var chain []Validator
		if field.Required {
			chain = append(chain, Required(label))
		}
		if field.MinLength > 0 {
			chain = append(chain, MinLength(label, field.MinLength))
		}
		if field.MaxLength > 0 {
			chain = append(chain, MaxLength(label, field.MaxLength))
		}
		if field.Type == FieldTypeEnum && len(field.Options) > 0 {
			chain = append(chain, OneOf(label, field.Options))
		}
		if len(chain) == 0 {
			continue
		}
		out[field.Name] = Chain(chain...)
	}
	return out
}

// ValidationError carries the per-field messages produced by a failed submit.
// The submit callback is never invoked when this error is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "forms: validation failed"
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("forms: validation failed for %s", strings.Join(names, ", "))
}
