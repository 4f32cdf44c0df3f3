package forms

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not completed. The submitting flag gates duplicates.
var ErrSubmitInFlight = errors.New("forms: submit already in flight")

// SubmitFunc receives a snapshot of the form record once validation passes.
// It runs outside the form's lock; the form only resets its submitting flag
// after the function returns.
type SubmitFunc func(ctx context.Context, record Record) error

// Option customises a form at construction time.
type Option func(*Form)

// WithInitial seeds the form's record. The snapshot is also kept as the
// baseline Cancel and Resync restore to.
func WithInitial(initial Record) Option {
	return func(f *Form) {
		f.initial = initial.Clone()
	}
}

// WithValidators merges field-specific validators over the schema-derived
// common set. Specific validators win per field.
func WithValidators(validators Validators) Option {
	return func(f *Form) {
		f.extraValidators = validators
	}
}

// WithOnCancel registers a callback invoked after Cancel restores the record.
func WithOnCancel(fn func()) Option {
	return func(f *Form) {
		f.onCancel = fn
	}
}

// Form owns a mutable value record and per-field error messages for one
// entity. All methods are safe for use from the single event loop plus the
// goroutines Submit spawns into.
type Form struct {
	mu sync.Mutex

	schema     Schema
	validators Validators

	initial    Record
	values     Record
	errors     map[string]string
	submitting bool
	dirty      bool

	extraValidators Validators
	onCancel        func()
}

// New constructs a form for the schema. Validation merges the schema-derived
// common validators with any caller-supplied set.
func New(schema Schema, options ...Option) *Form {
	f := &Form{
		schema:  schema,
		initial: Record{},
		errors:  map[string]string{},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	f.values = f.initial.Clone()
	f.validators = Merge(SchemaValidators(schema), f.extraValidators)
	return f
}

// Schema returns the field layout the form was built from.
func (f *Form) Schema() Schema {
	return f.schema
}

// SetValue records a user edit for the named field and clears any stale error
// on it. Unknown fields are rejected so typos surface early.
func (f *Form) SetValue(name string, value any) error {
	if !f.schema.Has(name) {
		return fmt.Errorf("forms: unknown field %q", name)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.values[name] = value
	f.dirty = true
	delete(f.errors, name)
	return nil
}

// Value returns the current value for a field.
func (f *Form) Value(name string) (any, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value, ok := f.values[name]
	return value, ok
}

// Values returns a snapshot of the current record.
func (f *Form) Values() Record {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.values.Clone()
}

// Errors returns a snapshot of the current per-field error messages.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.errors) == 0 {
		return nil
	}
	out := make(map[string]string, len(f.errors))
	for name, msg := range f.errors {
		out[name] = msg
	}
	return out
}

// Submitting reports whether a submission is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.submitting
}

// Dirty reports whether the user has edited the record since the last
// snapshot (construction, Cancel, Resync, or successful Submit).
func (f *Form) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.dirty
}

// Validate runs the merged validator set over the whole record and returns
// the per-field messages without storing them.
func (f *Form) Validate() map[string]string {
	f.mu.Lock()
	record := f.values.Clone()
	f.mu.Unlock()

	return f.validate(record)
}

func (f *Form) validate(record Record) map[string]string {
	var out map[string]string
	for name, validator := range f.validators {
		if msg := validator(record[name], record); msg != "" {
			if out == nil {
				out = make(map[string]string)
			}
			out[name] = msg
		}
	}
	return out
}

// Submit validates the record and, when clean, invokes fn with a snapshot.
// Validation failures store the per-field messages and return a
// *ValidationError without calling fn. The submitting flag is set for the
// duration of fn and reset exactly once whether fn succeeds or fails. A
// successful submit adopts the snapshot as the new baseline.
func (f *Form) Submit(ctx context.Context, fn SubmitFunc) error {
	if fn == nil {
		return errors.New("forms: submit function is required")
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	record := f.values.Clone()

	if fieldErrors := f.validate(record); len(fieldErrors) > 0 {
		f.errors = fieldErrors
		f.mu.Unlock()
		return &ValidationError{Fields: fieldErrors}
	}

	f.submitting = true
	f.errors = map[string]string{}
	f.mu.Unlock()

	err := fn(ctx, record)

	f.mu.Lock()
	f.submitting = false
	if err == nil {
		f.initial = record.Clone()
		f.dirty = false
	}
	f.mu.Unlock()

	if err != nil {
		return fmt.Errorf("forms: submit %s: %w", f.schema.Name, err)
	}
	return nil
}

// Cancel restores the record to the initial snapshot, clears errors, and
// invokes the cancel callback when one is registered.
func (f *Form) Cancel() {
	f.mu.Lock()
	f.values = f.initial.Clone()
	f.errors = map[string]string{}
	f.dirty = false
	cancel := f.onCancel
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Resync replaces the baseline and record with new initial data when the
// form is not mid-edit. The comparison is by value, so a re-fetched but
// unchanged record is a no-op. Returns true when the form adopted the data.
func (f *Form) Resync(initial Record) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dirty || f.submitting {
		return false
	}
	if f.initial.Equal(initial) {
		return false
	}
	f.initial = initial.Clone()
	f.values = initial.Clone()
	f.errors = map[string]string{}
	return true
}
