package render

import (
	"strings"

	"github.com/goliatone/go-ticketkit/pkg/forms"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages. Field messages key by schema field name; anything that does not
// match a declared field lands on the form level so messages are not lost.
type ErrorMapping struct {
	Fields map[string]string
	Form   []string
}

// MapErrorPayload normalises a backend validation payload (field name to
// message list) against a schema. Multiple messages per field collapse to the
// first one, matching the single-message-per-field display contract.
func MapErrorPayload(schema forms.Schema, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(map[string]string)}
	if len(payload) == 0 {
		return mapping
	}

	for rawName, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name := strings.TrimSpace(rawName)
		if schema.Has(name) {
			mapping.Fields[name] = normalized[0]
			continue
		}
		mapping.Form = append(mapping.Form, normalized...)
	}
	return mapping
}

// MergeFormErrors concatenates and normalises form-level error slices,
// trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(messages))
	out := make([]string, 0, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
