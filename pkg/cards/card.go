package cards

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-ticketkit/pkg/entity"
)

// Badge is a small status indicator rendered next to a region title.
type Badge struct {
	Label string
	Tone  string
}

// FieldLine is one label/value row inside a region.
type FieldLine struct {
	Label string
	Value string
}

// Region is one of the three replaceable areas of a card. BodyHTML carries
// entity-authored markup (descriptions); renderers must sanitise it before
// emitting it raw.
type Region struct {
	Title    string
	Subtitle string
	Body     string
	BodyHTML string
	Badges   []Badge
	Fields   []FieldLine
}

// Regions supplies the entity-type-specific content for each card area. Nil
// functions leave the area empty; the shared frame is rendered regardless.
type Regions[T entity.Entity] struct {
	Header  func(T) Region
	Content func(T) Region
	Footer  func(T) Region
}

// Callbacks relay user intents upward. The card never mutates the entity it
// displays; it only reports the entity id.
type Callbacks struct {
	OnEdit   func(id string)
	OnDelete func(id string)
	OnClick  func(id string)
}

// Config gates which affordances the card frame renders and overrides the
// default dialog copy.
type Config struct {
	ShowEdit   bool
	ShowDelete bool
	ShowFooter bool

	// EntityLabel overrides the kind-derived display name used in dialog copy.
	EntityLabel string
	// ConfirmTitle and ConfirmBody override the delete confirmation copy.
	// ConfirmBody may reference the entity display name with %s.
	ConfirmTitle string
	ConfirmBody  string
}

// DefaultConfig returns the standard affordance set for a kind: edit, delete,
// and footer all visible.
func DefaultConfig(kind entity.Kind) Config {
	return Config{
		ShowEdit:    true,
		ShowDelete:  true,
		ShowFooter:  true,
		EntityLabel: entity.Label(kind),
	}
}

// Option customises a card at construction time.
type Option[T entity.Entity] func(*Card[T])

// WithConfig replaces the default configuration.
func WithConfig[T entity.Entity](cfg Config) Option[T] {
	return func(c *Card[T]) {
		c.config = cfg
	}
}

// WithCallbacks registers the intent callbacks.
func WithCallbacks[T entity.Entity](cb Callbacks) Option[T] {
	return func(c *Card[T]) {
		c.callbacks = cb
	}
}

// Card displays one entity. It owns only transient UI state (the delete
// confirmation dialog); the entity itself is a reference handed in by the
// parent.
type Card[T entity.Entity] struct {
	mu sync.Mutex

	entity    T
	regions   Regions[T]
	config    Config
	callbacks Callbacks

	confirmOpen bool
}

// New constructs a card for the entity with the supplied region builders.
func New[T entity.Entity](ent T, regions Regions[T], options ...Option[T]) *Card[T] {
	c := &Card[T]{
		entity:  ent,
		regions: regions,
		config:  DefaultConfig(ent.EntityKind()),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.config.EntityLabel == "" {
		c.config.EntityLabel = entity.Label(ent.EntityKind())
	}
	return c
}

// Entity returns the displayed entity reference.
func (c *Card[T]) Entity() T {
	return c.entity
}

// Update swaps the displayed entity, keeping transient UI state.
func (c *Card[T]) Update(ent T) {
	c.mu.Lock()
	c.entity = ent
	c.mu.Unlock()
}

// Click relays a click on the card frame.
func (c *Card[T]) Click() {
	if c.callbacks.OnClick != nil {
		c.callbacks.OnClick(c.entity.EntityID())
	}
}

// Edit relays the edit intent when the affordance is enabled.
func (c *Card[T]) Edit() {
	if !c.config.ShowEdit || c.callbacks.OnEdit == nil {
		return
	}
	c.callbacks.OnEdit(c.entity.EntityID())
}

// RequestDelete opens the confirmation dialog. No callback fires yet.
func (c *Card[T]) RequestDelete() {
	if !c.config.ShowDelete {
		return
	}
	c.mu.Lock()
	c.confirmOpen = true
	c.mu.Unlock()
}

// CancelDelete closes the dialog without invoking any callback.
func (c *Card[T]) CancelDelete() {
	c.mu.Lock()
	c.confirmOpen = false
	c.mu.Unlock()
}

// ConfirmDelete closes the dialog and then relays the delete intent. The
// dialog state is cleared before the callback runs so the handler never
// observes a half-open dialog, and a confirm without a preceding request is
// a no-op, which also keeps double confirms from firing the callback twice.
func (c *Card[T]) ConfirmDelete() {
	c.mu.Lock()
	if !c.confirmOpen {
		c.mu.Unlock()
		return
	}
	c.confirmOpen = false
	cb := c.callbacks.OnDelete
	c.mu.Unlock()

	if cb != nil {
		cb(c.entity.EntityID())
	}
}

// ConfirmOpen reports whether the delete confirmation dialog is showing.
func (c *Card[T]) ConfirmOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.confirmOpen
}

// View snapshots the card for renderers.
func (c *Card[T]) View() View {
	c.mu.Lock()
	ent := c.entity
	confirmOpen := c.confirmOpen
	c.mu.Unlock()

	view := View{
		ID:          ent.EntityID(),
		Kind:        ent.EntityKind(),
		DisplayName: ent.DisplayName(),
		ShowEdit:    c.config.ShowEdit,
		ShowDelete:  c.config.ShowDelete,
		ShowFooter:  c.config.ShowFooter,
		ConfirmOpen: confirmOpen,
	}
	if c.regions.Header != nil {
		view.Header = c.regions.Header(ent)
	}
	if c.regions.Content != nil {
		view.Content = c.regions.Content(ent)
	}
	if c.config.ShowFooter && c.regions.Footer != nil {
		view.Footer = c.regions.Footer(ent)
	}
	view.ConfirmTitle, view.ConfirmBody = c.confirmCopy(ent)
	return view
}

func (c *Card[T]) confirmCopy(ent T) (string, string) {
	title := c.config.ConfirmTitle
	if title == "" {
		title = fmt.Sprintf("Delete %s", c.config.EntityLabel)
	}
	body := c.config.ConfirmBody
	if body == "" {
		body = "Are you sure you want to delete %q? This action cannot be undone."
	}
	name := ent.DisplayName()
	if containsVerb(body) {
		return title, fmt.Sprintf(body, name)
	}
	return title, body
}

func containsVerb(body string) bool {
	for i := 0; i+1 < len(body); i++ {
		if body[i] == '%' && body[i+1] != '%' {
			return true
		}
	}
	return false
}

// View is the renderer-facing snapshot of a card.
type View struct {
	ID          string
	Kind        entity.Kind
	DisplayName string

	Header  Region
	Content Region
	Footer  Region

	ShowEdit   bool
	ShowDelete bool
	ShowFooter bool

	ConfirmOpen  bool
	ConfirmTitle string
	ConfirmBody  string
}
