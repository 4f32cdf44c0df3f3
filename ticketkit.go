// Package ticketkit re-exports the core surfaces of the module so callers can
// assemble ticket UIs from a single import. The subpackages stay the source
// of truth; everything here is aliases and thin composition helpers.
package ticketkit

import (
	"context"
	"fmt"

	"github.com/goliatone/go-ticketkit/pkg/forms"
	pkgopenapi "github.com/goliatone/go-ticketkit/pkg/openapi"
	"github.com/goliatone/go-ticketkit/pkg/render"
	"github.com/goliatone/go-ticketkit/pkg/renderers/tui"
	"github.com/goliatone/go-ticketkit/pkg/renderers/vanilla"
)

// Schema aliases the form schema type for convenience.
type Schema = forms.Schema

// FieldSpec aliases the field description type.
type FieldSpec = forms.FieldSpec

// Record aliases the form value mapping.
type Record = forms.Record

// Form aliases the stateful form controller.
type Form = forms.Form

// RenderOptions aliases the per-request renderer options.
type RenderOptions = render.Options

// Render modes re-exported for callers of RenderForm.
const (
	ModeRead = render.ModeRead
	ModeEdit = render.ModeEdit
)

// NewForm constructs a form for a schema. See forms.New for options.
func NewForm(schema Schema, options ...forms.Option) *Form {
	return forms.New(schema, options...)
}

// DefaultRegistry returns a registry with the built-in renderers registered:
// vanilla HTML (the default) and the terminal renderer.
func DefaultRegistry(options ...vanilla.Option) (*render.Registry, error) {
	registry := render.NewRegistry()

	htmlRenderer, err := vanilla.New(options...)
	if err != nil {
		return nil, fmt.Errorf("ticketkit: build vanilla renderer: %w", err)
	}
	if err := registry.Register(htmlRenderer); err != nil {
		return nil, err
	}

	tuiRenderer, err := tui.New()
	if err != nil {
		return nil, fmt.Errorf("ticketkit: build tui renderer: %w", err)
	}
	if err := registry.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return registry, nil
}

// LoadSchema derives a form schema from an OpenAPI document on disk. It is
// the simplest entry point for callers whose backend publishes its contract.
func LoadSchema(ctx context.Context, path, operationID string) (Schema, error) {
	doc, err := pkgopenapi.LoadFile(ctx, path)
	if err != nil {
		return Schema{}, err
	}
	return doc.FormSchema(operationID)
}

// RenderForm renders a schema with the named built-in renderer. An empty
// name resolves to the default (vanilla HTML).
func RenderForm(ctx context.Context, schema Schema, rendererName string, options RenderOptions) ([]byte, error) {
	registry, err := DefaultRegistry()
	if err != nil {
		return nil, err
	}
	renderer, err := registry.Get(rendererName)
	if err != nil {
		return nil, err
	}
	return renderer.RenderForm(ctx, schema, options)
}
