package vanilla

import (
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/render"
)

// buildFormMarkup emits the inner markup for a schema. Read mode produces a
// static definition list; edit mode produces the form controls plus the
// submit row.
func buildFormMarkup(schema forms.Schema, options render.Options) string {
	if options.Mode == render.ModeEdit {
		return buildEditMarkup(schema, options)
	}
	return buildReadMarkup(schema, options)
}

func buildReadMarkup(schema forms.Schema, options render.Options) string {
	var b strings.Builder
	b.Grow(len(schema.Fields) * 128)

	b.WriteString("<dl class=\"tk-detail\">\n")
	for _, field := range schema.Fields {
		value := forms.DisplayValue(field, options.Values[field.Name])

		b.WriteString(`    <div class="tk-field" data-field="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString("\">\n")
		b.WriteString(`        <dt class="tk-field-label">`)
		b.WriteString(html.EscapeString(field.DisplayLabel()))
		b.WriteString("</dt>\n")

		switch {
		case value == forms.NotProvided:
			b.WriteString(`        <dd class="tk-field-value tk-field-empty">`)
			b.WriteString(html.EscapeString(value))
			b.WriteString("</dd>\n")
		case field.Type == forms.FieldTypeEnum:
			b.WriteString(`        <dd class="tk-field-value"><span class="tk-badge" data-value="`)
			b.WriteString(html.EscapeString(value))
			b.WriteString(`">`)
			b.WriteString(html.EscapeString(value))
			b.WriteString("</span></dd>\n")
		default:
			b.WriteString(`        <dd class="tk-field-value">`)
			b.WriteString(html.EscapeString(value))
			b.WriteString("</dd>\n")
		}
		b.WriteString("    </div>\n")
	}
	b.WriteString("</dl>\n")
	return b.String()
}

func buildEditMarkup(schema forms.Schema, options render.Options) string {
	var b strings.Builder
	b.Grow(len(schema.Fields) * 256)

	b.WriteString(`<form class="tk-form-body" data-entity="`)
	b.WriteString(html.EscapeString(schema.Name))
	b.WriteString("\">\n")

	for _, field := range schema.Fields {
		b.WriteString(buildFieldControl(field, options))
	}

	b.WriteString("    <footer class=\"tk-form-actions\">\n")
	b.WriteString(`        <button type="submit" class="tk-button tk-button-primary"`)
	if options.Submitting {
		b.WriteString(` disabled`)
	}
	b.WriteString(`>`)
	if options.Submitting {
		b.WriteString("Saving…")
	} else {
		b.WriteString("Save")
	}
	b.WriteString("</button>\n")
	b.WriteString("        <button type=\"button\" class=\"tk-button\" data-action=\"cancel\">Cancel</button>\n")
	b.WriteString("    </footer>\n")
	b.WriteString("</form>\n")
	return b.String()
}

func buildFieldControl(field forms.FieldSpec, options render.Options) string {
	var b strings.Builder
	b.Grow(256)

	b.WriteString(`    <div class="tk-field" data-field="`)
	b.WriteString(html.EscapeString(field.Name))
	b.WriteString(`"`)
	if options.Errors[field.Name] != "" {
		b.WriteString(` data-invalid="true"`)
	}
	b.WriteString(">\n")

	controlID := "tk-" + field.Name
	if field.Type != forms.FieldTypeBoolean {
		b.WriteString(`        <label for="`)
		b.WriteString(html.EscapeString(controlID))
		b.WriteString(`" class="tk-field-label">`)
		b.WriteString(html.EscapeString(field.DisplayLabel()))
		if field.Required {
			b.WriteString(" *")
		}
		b.WriteString("</label>\n")
	}

	switch field.Type {
	case forms.FieldTypeBoolean:
		b.WriteString(`        <label class="tk-checkbox"><input type="checkbox" id="`)
		b.WriteString(html.EscapeString(controlID))
		b.WriteString(`" name="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`"`)
		if options.Values.Bool(field.Name) {
			b.WriteString(` checked`)
		}
		writeCommonAttrs(&b, field, options)
		b.WriteString(`> `)
		b.WriteString(html.EscapeString(field.DisplayLabel()))
		b.WriteString("</label>\n")

	case forms.FieldTypeEnum:
		selected := options.Values.String(field.Name)
		b.WriteString(`        <select id="`)
		b.WriteString(html.EscapeString(controlID))
		b.WriteString(`" name="`)
		b.WriteString(html.EscapeString(field.Name))
		b.WriteString(`"`)
		writeCommonAttrs(&b, field, options)
		b.WriteString(">\n")
		if !field.Required {
			b.WriteString("            <option value=\"\"></option>\n")
		}
		for _, option := range field.Options {
			b.WriteString(`            <option value="`)
			b.WriteString(html.EscapeString(option))
			b.WriteString(`"`)
			if option == selected {
				b.WriteString(` selected`)
			}
			b.WriteString(`>`)
			b.WriteString(html.EscapeString(option))
			b.WriteString("</option>\n")
		}
		b.WriteString("        </select>\n")

	default:
		value := options.Values.String(field.Name)
		if field.Multiline {
			b.WriteString(`        <textarea id="`)
			b.WriteString(html.EscapeString(controlID))
			b.WriteString(`" name="`)
			b.WriteString(html.EscapeString(field.Name))
			b.WriteString(`" rows="4"`)
			writeLengthAttrs(&b, field)
			writePlaceholder(&b, field)
			writeCommonAttrs(&b, field, options)
			b.WriteString(`>`)
			b.WriteString(html.EscapeString(value))
			b.WriteString("</textarea>\n")
		} else {
			b.WriteString(`        <input type="text" id="`)
			b.WriteString(html.EscapeString(controlID))
			b.WriteString(`" name="`)
			b.WriteString(html.EscapeString(field.Name))
			b.WriteString(`" value="`)
			b.WriteString(html.EscapeString(value))
			b.WriteString(`"`)
			writeLengthAttrs(&b, field)
			writePlaceholder(&b, field)
			writeCommonAttrs(&b, field, options)
			b.WriteString(">\n")
		}
	}

	if message := options.Errors[field.Name]; message != "" {
		b.WriteString(`        <p class="tk-field-error" role="alert">`)
		b.WriteString(html.EscapeString(message))
		b.WriteString("</p>\n")
	}
	if help := strings.TrimSpace(field.Help); help != "" {
		b.WriteString(`        <small class="tk-field-help">`)
		b.WriteString(html.EscapeString(help))
		b.WriteString("</small>\n")
	}

	b.WriteString("    </div>\n")
	return b.String()
}

func writeCommonAttrs(b *strings.Builder, field forms.FieldSpec, options render.Options) {
	if field.Required {
		b.WriteString(` required`)
	}
	if field.Disabled || options.Submitting {
		b.WriteString(` disabled`)
	}
}

func writeLengthAttrs(b *strings.Builder, field forms.FieldSpec) {
	if field.MinLength > 0 {
		b.WriteString(` minlength="`)
		b.WriteString(strconv.Itoa(field.MinLength))
		b.WriteString(`"`)
	}
	if field.MaxLength > 0 {
		b.WriteString(` maxlength="`)
		b.WriteString(strconv.Itoa(field.MaxLength))
		b.WriteString(`"`)
	}
}

func writePlaceholder(b *strings.Builder, field forms.FieldSpec) {
	if field.Placeholder == "" {
		return
	}
	b.WriteString(` placeholder="`)
	b.WriteString(html.EscapeString(field.Placeholder))
	b.WriteString(`"`)
}
