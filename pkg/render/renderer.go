package render

import (
	"context"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
)

// Mode selects between the static display of a value and its editable
// control.
type Mode string

const (
	ModeRead Mode = "read"
	ModeEdit Mode = "edit"
)

// Options carry per-request data renderers use without mutating the views
// they are handed.
type Options struct {
	// Mode picks read or edit rendering for forms. Cards and lists are
	// always read-mode surfaces.
	Mode Mode
	// Values pre-populates form controls by field name.
	Values forms.Record
	// Errors surfaces validation feedback keyed by field name.
	Errors map[string]string
	// Submitting disables the submit affordance while a request is in
	// flight.
	Submitting bool
}

// Renderer converts form schemas and card/list views into a byte
// representation (HTML, terminal output, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	RenderForm(ctx context.Context, schema forms.Schema, options Options) ([]byte, error)
	RenderCard(ctx context.Context, view cards.View, options Options) ([]byte, error)
	RenderList(ctx context.Context, view cards.ListView, options Options) ([]byte, error)
}
