package tickets

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
)

// Overlay rewords the component's user-facing copy. All sections are
// optional; absent entries keep the built-in copy.
type Overlay struct {
	Labels       map[string]string `yaml:"labels"`
	Placeholders map[string]string `yaml:"placeholders"`
	Help         map[string]string `yaml:"help"`

	Confirm struct {
		Title string `yaml:"title"`
		Body  string `yaml:"body"`
	} `yaml:"confirm"`

	EmptyMessage string `yaml:"empty_message"`
	SyncLabel    string `yaml:"sync_label"`
}

// ParseOverlay decodes an overlay from YAML.
func ParseOverlay(payload []byte) (Overlay, error) {
	var overlay Overlay
	if err := yaml.Unmarshal(payload, &overlay); err != nil {
		return Overlay{}, fmt.Errorf("tickets: parse overlay: %w", err)
	}
	return overlay, nil
}

// LoadOverlay reads and decodes an overlay file.
func LoadOverlay(path string) (Overlay, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Overlay{}, fmt.Errorf("tickets: read overlay: %w", err)
	}
	return ParseOverlay(payload)
}

// applySchema rewrites field copy in place on a schema copy.
func (o Overlay) applySchema(schema forms.Schema) forms.Schema {
	if len(o.Labels) == 0 && len(o.Placeholders) == 0 && len(o.Help) == 0 {
		return schema
	}
	fields := make([]forms.FieldSpec, len(schema.Fields))
	copy(fields, schema.Fields)
	for i := range fields {
		if label, ok := o.Labels[fields[i].Name]; ok {
			fields[i].Label = label
		}
		if placeholder, ok := o.Placeholders[fields[i].Name]; ok {
			fields[i].Placeholder = placeholder
		}
		if help, ok := o.Help[fields[i].Name]; ok {
			fields[i].Help = help
		}
	}
	schema.Fields = fields
	return schema
}

// applyConfig rewrites dialog copy on a card configuration.
func (o Overlay) applyConfig(cfg cards.Config) cards.Config {
	if o.Confirm.Title != "" {
		cfg.ConfirmTitle = o.Confirm.Title
	}
	if o.Confirm.Body != "" {
		cfg.ConfirmBody = o.Confirm.Body
	}
	return cfg
}
