package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/entity"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/status"
)

// ErrNotReady is returned by Process when the backend rejects a ticket
// during pre-processing validation.
var ErrNotReady = errors.New("tickets: ticket is not ready for processing")

// Component bundles the ticket schema, form, card, and list builders plus
// the processing flow behind one configuration.
type Component struct {
	opts Options
}

// New constructs a ticket component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return c.opts
}

// Schema returns the ticket form layout with any overlay copy applied.
func (c *Component) Schema() forms.Schema {
	schema := DefaultSchema()
	if c == nil {
		return schema
	}
	return c.opts.Overlay.applySchema(schema)
}

// DefaultSchema is the built-in ticket form layout. The status field is
// absent on purpose; status changes flow through processing, not the editor.
func DefaultSchema() forms.Schema {
	return forms.Schema{
		Name:  "ticket",
		Title: "Ticket",
		Fields: []forms.FieldSpec{
			{
				Name:        "title",
				Type:        forms.FieldTypeString,
				Label:       "Title",
				Placeholder: "Short summary of the work",
				Required:    true,
				MinLength:   3,
				MaxLength:   200,
			},
			{
				Name:      "description",
				Type:      forms.FieldTypeString,
				Label:     "Description",
				Multiline: true,
			},
			{
				Name:    "priority",
				Type:    forms.FieldTypeEnum,
				Label:   "Priority",
				Options: []string{entity.PriorityLow, entity.PriorityMedium, entity.PriorityHigh, entity.PriorityCritical},
			},
			{
				Name:  "assignee",
				Type:  forms.FieldTypeString,
				Label: "Assignee",
			},
		},
	}
}

// Form builds an edit form seeded from the ticket. A zero ticket produces a
// create form.
func (c *Component) Form(ticket entity.Ticket) *forms.Form {
	options := []forms.Option{forms.WithInitial(RecordFromTicket(ticket))}
	if c != nil && len(c.opts.Validators) > 0 {
		options = append(options, forms.WithValidators(c.opts.Validators))
	}
	return forms.New(c.Schema(), options...)
}

// RecordFromTicket projects the editable ticket fields into a form record.
func RecordFromTicket(ticket entity.Ticket) forms.Record {
	return forms.Record{
		"title":       ticket.Title,
		"description": ticket.Description,
		"priority":    ticket.Priority,
		"assignee":    ticket.Assignee,
	}
}

// Card builds a standalone card for one ticket.
func (c *Component) Card(ticket entity.Ticket) *cards.Card[entity.Ticket] {
	return cards.New(ticket, Regions(), c.cardOptions()...)
}

// List builds the ticket collection view.
func (c *Component) List() *cards.List[entity.Ticket] {
	options := []cards.ListOption[entity.Ticket]{
		cards.WithCardOptions(c.cardOptions()...),
	}
	if c != nil {
		if c.opts.Overlay.EmptyMessage != "" {
			options = append(options, cards.WithEmptyMessage[entity.Ticket](c.opts.Overlay.EmptyMessage))
		}
		syncLabel := c.opts.SyncLabel
		if c.opts.Overlay.SyncLabel != "" {
			syncLabel = c.opts.Overlay.SyncLabel
		}
		if syncLabel != "" {
			options = append(options, cards.WithSync[entity.Ticket](syncLabel, c.opts.OnSync))
		}
	}
	return cards.NewList(entity.KindTicket, Regions(), options...)
}

func (c *Component) cardOptions() []cards.Option[entity.Ticket] {
	cfg := cards.DefaultConfig(entity.KindTicket)
	var callbacks cards.Callbacks
	if c != nil {
		if c.opts.CardConfig != nil {
			cfg = *c.opts.CardConfig
		}
		cfg = c.opts.Overlay.applyConfig(cfg)
		callbacks = c.opts.Callbacks
	}
	return []cards.Option[entity.Ticket]{
		cards.WithConfig[entity.Ticket](cfg),
		cards.WithCallbacks[entity.Ticket](callbacks),
	}
}

// Regions supplies the ticket card content: title and status badge up top,
// description and key fields in the middle, timestamps in the footer.
func Regions() cards.Regions[entity.Ticket] {
	return cards.Regions[entity.Ticket]{
		Header: func(t entity.Ticket) cards.Region {
			return cards.Region{
				Title:  t.Title,
				Badges: []cards.Badge{{Label: statusLabel(t.Status), Tone: statusTone(t.Status)}},
			}
		},
		Content: func(t entity.Ticket) cards.Region {
			region := cards.Region{BodyHTML: t.Description}
			if t.Priority != "" {
				region.Fields = append(region.Fields, cards.FieldLine{Label: "Priority", Value: t.Priority})
			}
			if t.Assignee != "" {
				region.Fields = append(region.Fields, cards.FieldLine{Label: "Assignee", Value: t.Assignee})
			}
			if t.IssueNumber > 0 {
				region.Fields = append(region.Fields, cards.FieldLine{Label: "Issue", Value: fmt.Sprintf("#%d", t.IssueNumber)})
			}
			return region
		},
		Footer: func(t entity.Ticket) cards.Region {
			region := cards.Region{}
			if !t.CreatedAt.IsZero() {
				region.Fields = append(region.Fields, cards.FieldLine{Label: "Created", Value: t.CreatedAt.Format("Jan 2, 2006")})
			}
			if !t.UpdatedAt.IsZero() {
				region.Fields = append(region.Fields, cards.FieldLine{Label: "Updated", Value: t.UpdatedAt.Format("Jan 2, 2006")})
			}
			return region
		},
	}
}

func statusLabel(s string) string {
	switch s {
	case entity.TicketStatusInProgress:
		return "In progress"
	case "":
		return "Open"
	default:
		return strings.ToUpper(s[:1]) + s[1:]
	}
}

func statusTone(s string) string {
	switch s {
	case entity.TicketStatusResolved:
		return "success"
	case entity.TicketStatusInProgress:
		return "info"
	case entity.TicketStatusClosed:
		return "neutral"
	default:
		return "warning"
	}
}

// Watch opens a live status subscription for a ticket that is already
// processing.
func (c *Component) Watch(ctx context.Context, ticketID string, options ...status.SubscriptionOption) (*status.Subscription, error) {
	if c == nil || c.opts.Status == nil {
		return nil, errors.New("tickets: status client is not configured")
	}
	return c.opts.Status.Subscribe(ctx, ticketID, options...)
}

// Process validates the ticket with the backend, starts the automation job,
// and returns a live subscription to its progress. Validation failures
// surface as ErrNotReady with the backend's problem list attached.
func (c *Component) Process(ctx context.Context, ticketID string, options ...status.SubscriptionOption) (*status.Subscription, error) {
	if c == nil || c.opts.API == nil {
		return nil, errors.New("tickets: api client is not configured")
	}

	report, err := c.opts.API.ValidateTicket(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("tickets: validate %s: %w", ticketID, err)
	}
	if !report.Valid {
		return nil, fmt.Errorf("%w: %s", ErrNotReady, strings.Join(report.Problems, "; "))
	}

	if err := c.opts.API.StartProcessing(ctx, ticketID); err != nil {
		return nil, fmt.Errorf("tickets: start processing %s: %w", ticketID, err)
	}
	return c.Watch(ctx, ticketID, options...)
}
