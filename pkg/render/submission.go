package render

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-ticketkit/pkg/forms"
)

// DecodeSubmission converts submitted string values (an HTML form post) into
// a typed record keyed by the schema's fields. Booleans follow checkbox
// semantics: present and truthy means true, absent means false. Fields the
// schema does not declare are ignored.
func DecodeSubmission(schema forms.Schema, values url.Values) forms.Record {
	record := make(forms.Record, len(schema.Fields))
	for _, field := range schema.Fields {
		switch field.Type {
		case forms.FieldTypeBoolean:
			record[field.Name] = truthy(values.Get(field.Name))
		default:
			record[field.Name] = values.Get(field.Name)
		}
	}
	return record
}

func truthy(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
