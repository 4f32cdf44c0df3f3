package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-ticketkit/pkg/forms"
)

// Extension keys honoured when deriving form schemas from the backend's
// OpenAPI document.
const (
	extFieldOrder  = "x-field-order"
	extPlaceholder = "x-placeholder"
	extMultiline   = "x-multiline"
)

// Document wraps a parsed OpenAPI specification and derives entity form
// schemas from its operations. The backend document is the single source of
// truth for field layouts, replacing hand-maintained duplicates.
type Document struct {
	spec *openapi3.T
}

// Load parses an OpenAPI document from raw bytes (JSON or YAML).
func Load(ctx context.Context, data []byte) (*Document, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	if len(data) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}
	return &Document{spec: spec}, nil
}

// LoadFile parses an OpenAPI document from disk.
func LoadFile(ctx context.Context, path string) (*Document, error) {
	if ctx == nil {
		return nil, errors.New("openapi: context is required")
	}
	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return &Document{spec: spec}, nil
}

// Operations returns the sorted operation ids the document declares.
func (d *Document) Operations() []string {
	if d == nil || d.spec == nil || d.spec.Paths == nil {
		return nil
	}
	var out []string
	for _, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID != "" {
				out = append(out, op.OperationID)
			}
		}
	}
	sort.Strings(out)
	return out
}

// FormSchema derives the form field layout for one operation's JSON request
// body. Properties the form engine cannot represent (objects, arrays,
// numbers) are skipped; the backend validates those server-side.
func (d *Document) FormSchema(operationID string) (forms.Schema, error) {
	if d == nil || d.spec == nil {
		return forms.Schema{}, errors.New("openapi: document is nil")
	}

	op := d.findOperation(operationID)
	if op == nil {
		return forms.Schema{}, fmt.Errorf("openapi: operation %q not found", operationID)
	}

	body := requestSchema(op)
	if body == nil {
		return forms.Schema{}, fmt.Errorf("openapi: operation %q has no JSON request body", operationID)
	}

	schema := forms.Schema{
		Name:        operationID,
		Title:       op.Summary,
		Description: op.Description,
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	for _, name := range propertyOrder(body) {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok := buildField(name, ref.Value, required[name])
		if !ok {
			continue
		}
		schema.Fields = append(schema.Fields, field)
	}

	if len(schema.Fields) == 0 {
		return forms.Schema{}, fmt.Errorf("openapi: operation %q yields no form fields", operationID)
	}
	return schema, nil
}

func (d *Document) findOperation(operationID string) *openapi3.Operation {
	for _, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	media := op.RequestBody.Value.Content.Get("application/json")
	if media == nil || media.Schema == nil || media.Schema.Value == nil {
		return nil
	}
	schema := media.Schema.Value
	if schema.Type != nil && !schema.Type.Is(openapi3.TypeObject) {
		return nil
	}
	return schema
}

// propertyOrder honours the x-field-order extension and falls back to
// alphabetical order so output stays deterministic over the underlying map.
func propertyOrder(schema *openapi3.Schema) []string {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	declared := stringSliceExtension(schema.Extensions, extFieldOrder)
	if len(declared) == 0 {
		return names
	}

	seen := make(map[string]bool, len(declared))
	out := make([]string, 0, len(names))
	for _, name := range declared {
		if _, ok := schema.Properties[name]; ok && !seen[name] {
			out = append(out, name)
			seen[name] = true
		}
	}
	for _, name := range names {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

func buildField(name string, prop *openapi3.Schema, required bool) (forms.FieldSpec, bool) {
	field := forms.FieldSpec{
		Name:        name,
		Label:       prop.Title,
		Help:        prop.Description,
		Required:    required,
		Placeholder: stringExtension(prop.Extensions, extPlaceholder),
	}

	switch {
	case prop.Type.Is(openapi3.TypeBoolean):
		field.Type = forms.FieldTypeBoolean
	case prop.Type.Is(openapi3.TypeString) && len(prop.Enum) > 0:
		field.Type = forms.FieldTypeEnum
		for _, value := range prop.Enum {
			field.Options = append(field.Options, fmt.Sprint(value))
		}
	case prop.Type.Is(openapi3.TypeString):
		field.Type = forms.FieldTypeString
		field.MinLength = int(prop.MinLength)
		if prop.MaxLength != nil {
			field.MaxLength = int(*prop.MaxLength)
		}
		field.Multiline = boolExtension(prop.Extensions, extMultiline) ||
			strings.EqualFold(prop.Format, "textarea")
	default:
		return forms.FieldSpec{}, false
	}

	if field.Label == "" {
		field.Label = labelFromName(name)
	}
	return field, true
}

// labelFromName turns a camelCase or snake_case property name into a
// human-friendly label ("issueNumber" -> "Issue number").
func labelFromName(name string) string {
	var words []string
	var current strings.Builder
	for _, r := range name {
		switch {
		case r == '_' || r == '-':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
		case r >= 'A' && r <= 'Z':
			if current.Len() > 0 {
				words = append(words, current.String())
				current.Reset()
			}
			current.WriteRune(r + ('a' - 'A'))
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	if len(words) == 0 {
		return name
	}
	first := words[0]
	words[0] = strings.ToUpper(first[:1]) + first[1:]
	return strings.Join(words, " ")
}

func stringExtension(ext map[string]any, key string) string {
	if len(ext) == 0 {
		return ""
	}
	if value, ok := ext[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

func boolExtension(ext map[string]any, key string) bool {
	if len(ext) == 0 {
		return false
	}
	value, ok := ext[key].(bool)
	return ok && value
}

func stringSliceExtension(ext map[string]any, key string) []string {
	if len(ext) == 0 {
		return nil
	}
	raw, ok := ext[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
