package tickets

import (
	"github.com/goliatone/go-ticketkit/pkg/api"
	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/status"
)

// Options configures the ticket component.
type Options struct {
	// API performs the backend calls behind submit, delete, and processing.
	API *api.Client
	// Status provides live processing subscriptions for Watch and Process.
	Status *status.Client

	// Validators layer over the schema-derived set; field-name collisions win.
	Validators forms.Validators
	// Overlay rewords labels, placeholders, help, and dialog copy.
	Overlay Overlay

	// Callbacks relay card intents (edit, delete, click) upward.
	Callbacks cards.Callbacks
	// CardConfig overrides the default card affordances when set.
	CardConfig *cards.Config

	// SyncLabel and OnSync enable the list's sync call-to-action.
	SyncLabel string
	OnSync    func()
}

// OptionFn mutates Options during construction.
type OptionFn func(*Options)

// DefaultOptions returns the zero configuration: no backend wiring, default
// copy, default card affordances.
func DefaultOptions() Options {
	return Options{}
}

// NewOptions folds overrides into the defaults.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	return opts
}

// WithAPI wires the backend REST client.
func WithAPI(client *api.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.API = client
	}
}

// WithStatus wires the processing status client.
func WithStatus(client *status.Client) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Status = client
	}
}

// WithValidators layers extra validators over the schema-derived ones.
func WithValidators(validators forms.Validators) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Validators = validators
	}
}

// WithOverlay applies a copy overlay.
func WithOverlay(overlay Overlay) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Overlay = overlay
	}
}

// WithCallbacks registers the card intent callbacks.
func WithCallbacks(callbacks cards.Callbacks) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Callbacks = callbacks
	}
}

// WithCardConfig overrides the card affordance configuration.
func WithCardConfig(cfg cards.Config) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.CardConfig = &cfg
	}
}

// WithSync enables the list sync call-to-action.
func WithSync(label string, fn func()) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SyncLabel = label
		o.OnSync = fn
	}
}
