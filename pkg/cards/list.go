package cards

import (
	"fmt"

	"github.com/goliatone/go-ticketkit/pkg/entity"
)

// ListOption customises a list at construction time.
type ListOption[T entity.Entity] func(*List[T])

// WithEmptyMessage overrides the kind-derived empty-state message.
func WithEmptyMessage[T entity.Entity](message string) ListOption[T] {
	return func(l *List[T]) {
		l.emptyMessage = message
	}
}

// WithSync enables the sync call-to-action shown in the empty state and next
// to the list header. The callback fires on Sync().
func WithSync[T entity.Entity](label string, fn func()) ListOption[T] {
	return func(l *List[T]) {
		l.syncLabel = label
		l.onSync = fn
	}
}

// WithCardOptions forwards options to every card the list builds.
func WithCardOptions[T entity.Entity](options ...Option[T]) ListOption[T] {
	return func(l *List[T]) {
		l.cardOptions = options
	}
}

// List renders an ordered collection of entities as cards. It does not own
// pagination or filtering; callers hand it an already-filtered slice.
type List[T entity.Entity] struct {
	kind        entity.Kind
	regions     Regions[T]
	cardOptions []Option[T]

	emptyMessage string
	syncLabel    string
	onSync       func()
}

// NewList constructs a list that builds one card per entity using the shared
// region builders.
func NewList[T entity.Entity](kind entity.Kind, regions Regions[T], options ...ListOption[T]) *List[T] {
	l := &List[T]{
		kind:    kind,
		regions: regions,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.emptyMessage == "" {
		l.emptyMessage = fmt.Sprintf("No %s yet.", pluralLower(kind))
	}
	return l
}

// Card builds a standalone card for one entity using the list's region
// builders and card options.
func (l *List[T]) Card(ent T) *Card[T] {
	return New(ent, l.regions, l.cardOptions...)
}

// Sync fires the sync callback when one is registered.
func (l *List[T]) Sync() {
	if l.onSync != nil {
		l.onSync()
	}
}

// View snapshots the collection for renderers. An empty collection produces
// zero card views plus the empty message and optional sync label.
func (l *List[T]) View(items []T) ListView {
	view := ListView{
		Kind:      l.kind,
		Title:     entity.PluralLabel(l.kind),
		SyncLabel: l.syncLabel,
	}
	if len(items) == 0 {
		view.EmptyMessage = l.emptyMessage
		return view
	}
	view.Cards = make([]View, 0, len(items))
	for _, item := range items {
		view.Cards = append(view.Cards, l.Card(item).View())
	}
	return view
}

// ListView is the renderer-facing snapshot of a list.
type ListView struct {
	Kind         entity.Kind
	Title        string
	Cards        []View
	EmptyMessage string
	SyncLabel    string
}

// Empty reports whether the list has no cards to show.
func (v ListView) Empty() bool {
	return len(v.Cards) == 0
}

func pluralLower(kind entity.Kind) string {
	plural := entity.PluralLabel(kind)
	if plural == "" {
		return "items"
	}
	return string(plural[0]|0x20) + plural[1:]
}
