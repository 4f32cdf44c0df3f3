package entity

import "strings"

// Kind identifies the domain object family an entity belongs to. Cards,
// lists, and forms key their default copy (labels, empty messages, dialog
// text) off the kind.
type Kind string

const (
	KindTicket     Kind = "ticket"
	KindIssue      Kind = "issue"
	KindRepository Kind = "repository"
	KindMetamodel  Kind = "metamodel"
	KindConcept    Kind = "concept"
)

// Entity is implemented by every domain object that a card can display or a
// form can edit. Implementations are plain data carriers; ownership stays
// with the caller and user intents travel back through callbacks.
type Entity interface {
	EntityID() string
	EntityKind() Kind
	DisplayName() string
}

// Label returns the human-readable singular name for a kind.
func Label(kind Kind) string {
	switch kind {
	case KindTicket:
		return "Ticket"
	case KindIssue:
		return "Issue"
	case KindRepository:
		return "Repository"
	case KindMetamodel:
		return "Metamodel"
	case KindConcept:
		return "Concept"
	default:
		if kind == "" {
			return "Item"
		}
		return strings.ToUpper(string(kind[:1])) + string(kind[1:])
	}
}

// PluralLabel returns the human-readable plural name for a kind.
func PluralLabel(kind Kind) string {
	switch kind {
	case KindRepository:
		return "Repositories"
	default:
		return Label(kind) + "s"
	}
}
