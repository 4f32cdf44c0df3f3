package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/render"
)

// OutputFormat controls how collected form values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the serialization format for collected values.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithValidators layers extra validators over the schema-derived ones during
// prompt sessions.
func WithValidators(validators forms.Validators) Option {
	return func(r *Renderer) {
		r.validators = validators
	}
}

// Renderer implements render.Renderer for terminal-driven sessions. Edit mode
// walks the schema prompting for each field; read mode and card surfaces emit
// plain text summaries.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	validators   forms.Validators
	stripper     *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
		stripper:     bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used for edit sessions.
func (r *Renderer) ContentType() string {
	if r != nil && r.outputFormat == OutputFormatPrettyText {
		return "text/plain; charset=utf-8"
	}
	return "application/json"
}

// RenderForm prompts for every field in edit mode and returns the collected
// values; in read mode it returns a static text summary.
func (r *Renderer) RenderForm(ctx context.Context, schema forms.Schema, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if options.Mode != render.ModeEdit {
		return r.renderFormSummary(schema, options), nil
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	record := options.Values.Clone()
	validators := forms.Merge(forms.SchemaValidators(schema), r.validators)

	for _, field := range schema.Fields {
		if field.Disabled {
			continue
		}
		if err := r.promptField(ctx, field, record, validators[field.Name]); err != nil {
			return nil, err
		}
	}
	return r.serialize(schema, record)
}

func (r *Renderer) promptField(ctx context.Context, field forms.FieldSpec, record forms.Record, validate forms.Validator) error {
	label := field.DisplayLabel()

	for {
		var value any
		var err error

		switch field.Type {
		case forms.FieldTypeBoolean:
			value, err = r.driver.Confirm(ctx, ConfirmConfig{
				Message: label,
				Default: record.Bool(field.Name),
				Help:    field.Help,
			})
		case forms.FieldTypeEnum:
			var idx int
			idx, err = r.driver.Select(ctx, SelectConfig{
				Message:      label,
				Options:      field.Options,
				DefaultIndex: indexOf(field.Options, record.String(field.Name)),
				Help:         field.Help,
			})
			if err == nil && idx >= 0 && idx < len(field.Options) {
				value = field.Options[idx]
			} else if err == nil {
				value = ""
			}
		default:
			if field.Multiline {
				value, err = r.driver.TextArea(ctx, TextAreaConfig{
					Message: label,
					Default: record.String(field.Name),
					Help:    field.Help,
				})
			} else {
				value, err = r.driver.Input(ctx, InputConfig{
					Message: label,
					Default: record.String(field.Name),
					Help:    field.Help,
				})
			}
		}
		if err != nil {
			return err
		}

		if validate != nil {
			if msg := validate(value, record); msg != "" {
				if err := r.driver.Info(ctx, fmt.Sprintf("%s: %s", label, msg)); err != nil {
					return err
				}
				continue
			}
		}

		record[field.Name] = value
		return nil
	}
}

func (r *Renderer) serialize(schema forms.Schema, record forms.Record) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		return r.renderFormSummary(schema, render.Options{Values: record}), nil
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("tui: serialize values: %w", err)
	}
	return payload, nil
}

func (r *Renderer) renderFormSummary(schema forms.Schema, options render.Options) []byte {
	var b strings.Builder

	title := schema.Title
	if title == "" {
		title = schema.Name
	}
	if title != "" {
		b.WriteString(title)
		b.WriteByte('\n')
		b.WriteString(strings.Repeat("=", len(title)))
		b.WriteByte('\n')
	}
	if schema.Description != "" {
		b.WriteString(schema.Description)
		b.WriteString("\n\n")
	}

	for _, field := range schema.Fields {
		b.WriteString(field.DisplayLabel())
		b.WriteString(": ")
		b.WriteString(forms.DisplayValue(field, options.Values[field.Name]))
		if msg := options.Errors[field.Name]; msg != "" {
			b.WriteString("  [")
			b.WriteString(msg)
			b.WriteString("]")
		}
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

// RenderCard emits a text summary of one card snapshot.
func (r *Renderer) RenderCard(ctx context.Context, view cards.View, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}

	var b strings.Builder
	r.writeCard(&b, view)
	return []byte(b.String()), nil
}

func (r *Renderer) writeCard(b *strings.Builder, view cards.View) {
	fmt.Fprintf(b, "[%s] %s\n", view.Kind, view.DisplayName)

	r.writeRegion(b, view.Header)
	r.writeRegion(b, view.Content)
	if view.ShowFooter {
		r.writeRegion(b, view.Footer)
	}

	if view.ConfirmOpen {
		fmt.Fprintf(b, "! %s\n", view.ConfirmTitle)
		fmt.Fprintf(b, "  %s\n", view.ConfirmBody)
	}
}

func (r *Renderer) writeRegion(b *strings.Builder, region cards.Region) {
	if region.Title != "" || len(region.Badges) > 0 {
		b.WriteString("  ")
		b.WriteString(region.Title)
		for _, badge := range region.Badges {
			fmt.Fprintf(b, " (%s)", badge.Label)
		}
		b.WriteByte('\n')
	}
	if region.Subtitle != "" {
		fmt.Fprintf(b, "  %s\n", region.Subtitle)
	}

	body := region.Body
	if body == "" && region.BodyHTML != "" && r.stripper != nil {
		body = strings.TrimSpace(r.stripper.Sanitize(region.BodyHTML))
	}
	if body != "" {
		fmt.Fprintf(b, "  %s\n", body)
	}

	for _, line := range region.Fields {
		fmt.Fprintf(b, "  %s: %s\n", line.Label, line.Value)
	}
}

// RenderList emits a text summary of a collection snapshot.
func (r *Renderer) RenderList(ctx context.Context, view cards.ListView, options render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}

	var b strings.Builder
	b.WriteString(view.Title)
	b.WriteByte('\n')
	b.WriteString(strings.Repeat("=", len(view.Title)))
	b.WriteByte('\n')

	if view.Empty() {
		b.WriteString(view.EmptyMessage)
		b.WriteByte('\n')
		if view.SyncLabel != "" {
			fmt.Fprintf(&b, "(%s)\n", view.SyncLabel)
		}
		return []byte(b.String()), nil
	}

	for i, card := range view.Cards {
		if i > 0 {
			b.WriteByte('\n')
		}
		r.writeCard(&b, card)
	}
	return []byte(b.String()), nil
}
