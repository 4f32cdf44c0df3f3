package cards

import (
	"strings"
	"testing"

	"github.com/goliatone/go-ticketkit/pkg/entity"
)

func sampleTicket() entity.Ticket {
	return entity.Ticket{
		ID:     "t-42",
		Title:  "Fix websocket reconnect loop",
		Status: entity.TicketStatusOpen,
	}
}

func ticketRegions() Regions[entity.Ticket] {
	return Regions[entity.Ticket]{
		Header: func(t entity.Ticket) Region {
			return Region{
				Title:  t.Title,
				Badges: []Badge{{Label: t.Status, Tone: "info"}},
			}
		},
		Content: func(t entity.Ticket) Region {
			return Region{BodyHTML: t.Description}
		},
		Footer: func(t entity.Ticket) Region {
			return Region{Fields: []FieldLine{{Label: "ID", Value: t.ID}}}
		},
	}
}

func TestConfirmDelete_FiresOnceAfterDialogCloses(t *testing.T) {
	var deleted []string
	var openDuringCallback bool

	card := New(sampleTicket(), ticketRegions())
	card.callbacks = Callbacks{
		OnDelete: func(id string) {
			openDuringCallback = card.ConfirmOpen()
			deleted = append(deleted, id)
		},
	}

	card.RequestDelete()
	if !card.ConfirmOpen() {
		t.Fatal("dialog should be open after RequestDelete")
	}

	card.ConfirmDelete()
	if len(deleted) != 1 || deleted[0] != "t-42" {
		t.Fatalf("expected one delete for t-42, got %v", deleted)
	}
	if openDuringCallback {
		t.Fatal("dialog must be closed before the callback runs")
	}

	// A second confirm without a new request must not re-fire.
	card.ConfirmDelete()
	if len(deleted) != 1 {
		t.Fatalf("double confirm fired the callback twice: %v", deleted)
	}
}

func TestCancelDelete_NeverInvokesCallback(t *testing.T) {
	fired := false
	card := New(sampleTicket(), ticketRegions(),
		WithCallbacks[entity.Ticket](Callbacks{
			OnDelete: func(string) { fired = true },
		}),
	)

	card.RequestDelete()
	card.CancelDelete()

	if fired {
		t.Fatal("cancel must not invoke OnDelete")
	}
	if card.ConfirmOpen() {
		t.Fatal("dialog should be closed after cancel")
	}

	// Confirm after cancel is also a no-op.
	card.ConfirmDelete()
	if fired {
		t.Fatal("confirm after cancel must not invoke OnDelete")
	}
}

func TestRequestDelete_DisabledAffordance(t *testing.T) {
	cfg := DefaultConfig(entity.KindTicket)
	cfg.ShowDelete = false
	card := New(sampleTicket(), ticketRegions(), WithConfig[entity.Ticket](cfg))

	card.RequestDelete()
	if card.ConfirmOpen() {
		t.Fatal("disabled delete affordance must not open the dialog")
	}
}

func TestEdit_RespectsConfigFlag(t *testing.T) {
	edited := false
	cfg := DefaultConfig(entity.KindTicket)
	cfg.ShowEdit = false
	card := New(sampleTicket(), ticketRegions(),
		WithConfig[entity.Ticket](cfg),
		WithCallbacks[entity.Ticket](Callbacks{OnEdit: func(string) { edited = true }}),
	)

	card.Edit()
	if edited {
		t.Fatal("edit intent must be gated by ShowEdit")
	}
}

func TestClick_RelaysEntityID(t *testing.T) {
	var clicked string
	card := New(sampleTicket(), ticketRegions(),
		WithCallbacks[entity.Ticket](Callbacks{OnClick: func(id string) { clicked = id }}),
	)

	card.Click()
	if clicked != "t-42" {
		t.Fatalf("expected click with t-42, got %q", clicked)
	}
}

func TestView_RegionsAndConfirmCopy(t *testing.T) {
	card := New(sampleTicket(), ticketRegions())
	card.RequestDelete()

	view := card.View()
	if view.Header.Title != "Fix websocket reconnect loop" {
		t.Fatalf("header region missing: %+v", view.Header)
	}
	if !view.ConfirmOpen {
		t.Fatal("view should carry the open dialog state")
	}
	if view.ConfirmTitle != "Delete Ticket" {
		t.Fatalf("unexpected confirm title %q", view.ConfirmTitle)
	}
	if !strings.Contains(view.ConfirmBody, "Fix websocket reconnect loop") {
		t.Fatalf("confirm body must carry the display name, got %q", view.ConfirmBody)
	}
}

func TestView_FooterGatedByConfig(t *testing.T) {
	cfg := DefaultConfig(entity.KindTicket)
	cfg.ShowFooter = false
	card := New(sampleTicket(), ticketRegions(), WithConfig[entity.Ticket](cfg))

	view := card.View()
	if len(view.Footer.Fields) != 0 {
		t.Fatal("footer region must be skipped when ShowFooter is false")
	}
}

func TestView_CustomDialogCopy(t *testing.T) {
	cfg := DefaultConfig(entity.KindRepository)
	cfg.ConfirmTitle = "Disconnect repository"
	cfg.ConfirmBody = "Disconnect %q from the workspace?"

	repo := entity.Repository{ID: "r-1", Name: "ticketkit", Owner: "goliatone"}
	card := New(repo, Regions[entity.Repository]{}, WithConfig[entity.Repository](cfg))

	view := card.View()
	if view.ConfirmTitle != "Disconnect repository" {
		t.Fatalf("custom title lost: %q", view.ConfirmTitle)
	}
	if !strings.Contains(view.ConfirmBody, `"goliatone/ticketkit"`) {
		t.Fatalf("custom body should interpolate the display name, got %q", view.ConfirmBody)
	}
}
