package forms

import (
	"fmt"
	"reflect"
	"strings"
)

// FieldType is the enum of value kinds a field can hold.
type FieldType string

const (
	FieldTypeString  FieldType = "string"
	FieldTypeBoolean FieldType = "boolean"
	FieldTypeEnum    FieldType = "enum"
)

// NotProvided is the sentinel shown in read mode when a field holds no value.
const NotProvided = "Not provided"

// FieldSpec describes a single value editor/display unit inside a form. A
// spec never carries the value itself; values live in the owning form's
// record and flow through change callbacks.
type FieldSpec struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Help        string    `json:"help,omitempty"`
	Required    bool      `json:"required"`
	MinLength   int       `json:"minLength,omitempty"`
	MaxLength   int       `json:"maxLength,omitempty"`
	Options     []string  `json:"options,omitempty"`
	Multiline   bool      `json:"multiline,omitempty"`
	Disabled    bool      `json:"disabled,omitempty"`
}

// DisplayLabel returns the label, falling back to the field name.
func (f FieldSpec) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.Name
}

// Schema is the ordered field layout for one entity form.
type Schema struct {
	Name        string      `json:"name"`
	Title       string      `json:"title,omitempty"`
	Description string      `json:"description,omitempty"`
	Fields      []FieldSpec `json:"fields"`
}

// Field looks a field spec up by name.
func (s Schema) Field(name string) (FieldSpec, bool) {
	for _, field := range s.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// Has reports whether the schema declares the named field.
func (s Schema) Has(name string) bool {
	_, ok := s.Field(name)
	return ok
}

// Record is the mutable value mapping a form owns, keyed by field name.
type Record map[string]any

// Clone returns a shallow copy of the record. Field values are scalars
// (string/bool), so a shallow copy is a full snapshot.
func (r Record) Clone() Record {
	if r == nil {
		return Record{}
	}
	out := make(Record, len(r))
	for name, value := range r {
		out[name] = value
	}
	return out
}

// Equal compares two records by value, not by reference. Used to detect
// external updates to a form's initial data.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for name, value := range r {
		got, ok := other[name]
		if !ok || !reflect.DeepEqual(value, got) {
			return false
		}
	}
	return true
}

// String returns the named value coerced to a string; absent or non-string
// values come back empty.
func (r Record) String(name string) string {
	if v, ok := r[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Bool returns the named value as a bool; absent or non-bool values come
// back false.
func (r Record) Bool(name string) bool {
	if v, ok := r[name]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// DisplayValue formats a field value for read mode. Empty values render the
// NotProvided sentinel so the UI never shows a blank slot.
func DisplayValue(spec FieldSpec, value any) string {
	switch spec.Type {
	case FieldTypeBoolean:
		if b, ok := value.(bool); ok {
			if b {
				return "Yes"
			}
			return "No"
		}
		return NotProvided
	default:
		if value == nil {
			return NotProvided
		}
		text := fmt.Sprint(value)
		if strings.TrimSpace(text) == "" {
			return NotProvided
		}
		return text
	}
}
