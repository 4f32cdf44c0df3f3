package tickets_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ticketkit/components/tickets"
	"github.com/goliatone/go-ticketkit/pkg/api"
	"github.com/goliatone/go-ticketkit/pkg/cards"
	"github.com/goliatone/go-ticketkit/pkg/entity"
	"github.com/goliatone/go-ticketkit/pkg/forms"
	"github.com/goliatone/go-ticketkit/pkg/status"
)

func sampleTicket() entity.Ticket {
	return entity.Ticket{
		ID:          "t-1",
		Title:       "Fix login flow",
		Description: "<p>Users bounce on the second step.</p>",
		Status:      entity.TicketStatusInProgress,
		Priority:    entity.PriorityHigh,
		Assignee:    "sam",
		IssueNumber: 42,
		CreatedAt:   time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2026, time.March, 6, 9, 0, 0, 0, time.UTC),
	}
}

func TestSchema_OverlayCopy(t *testing.T) {
	overlay, err := tickets.ParseOverlay([]byte(`
labels:
  title: Summary
placeholders:
  title: What needs doing?
help:
  description: Markdown is supported.
confirm:
  title: Remove ticket
empty_message: Nothing to work on.
`))
	if err != nil {
		t.Fatalf("parse overlay: %v", err)
	}

	component := tickets.New(tickets.WithOverlay(overlay))
	schema := component.Schema()

	title, ok := schema.Field("title")
	if !ok {
		t.Fatal("missing title field")
	}
	if title.Label != "Summary" || title.Placeholder != "What needs doing?" {
		t.Fatalf("overlay not applied to title: %+v", title)
	}
	description, _ := schema.Field("description")
	if description.Help != "Markdown is supported." {
		t.Fatalf("overlay not applied to description: %+v", description)
	}

	// the built-in schema stays untouched
	if spec, _ := tickets.DefaultSchema().Field("title"); spec.Label != "Title" {
		t.Fatalf("default schema mutated: %+v", spec)
	}
}

func TestForm_SeededFromTicket(t *testing.T) {
	component := tickets.New()
	form := component.Form(sampleTicket())

	want := forms.Record{
		"title":       "Fix login flow",
		"description": "<p>Users bounce on the second step.</p>",
		"priority":    entity.PriorityHigh,
		"assignee":    "sam",
	}
	if diff := cmp.Diff(want, form.Values()); diff != "" {
		t.Fatalf("seeded values mismatch (-want +got):\n%s", diff)
	}

	if errs := form.Validate(); len(errs) != 0 {
		t.Fatalf("expected seeded form to validate, got %v", errs)
	}

	if err := form.SetValue("title", ""); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if errs := form.Validate(); errs["title"] == "" {
		t.Fatal("expected required error after clearing title")
	}
}

func TestForm_ExtraValidators(t *testing.T) {
	component := tickets.New(tickets.WithValidators(forms.Validators{
		"assignee": func(value any, _ forms.Record) string {
			if s, _ := value.(string); s == "root" {
				return "Assignee cannot be root"
			}
			return ""
		},
	}))
	form := component.Form(entity.Ticket{Title: "Valid title", Assignee: "root"})

	if errs := form.Validate(); errs["assignee"] != "Assignee cannot be root" {
		t.Fatalf("extra validator not applied: %v", errs)
	}
}

func TestCard_RegionsAndConfirmCopy(t *testing.T) {
	var deleted []string
	overlay := tickets.Overlay{}
	overlay.Confirm.Title = "Remove ticket"
	overlay.Confirm.Body = "Really drop %q?"

	component := tickets.New(
		tickets.WithOverlay(overlay),
		tickets.WithCallbacks(cards.Callbacks{
			OnDelete: func(id string) { deleted = append(deleted, id) },
		}),
	)

	card := component.Card(sampleTicket())
	view := card.View()

	if view.Header.Title != "Fix login flow" {
		t.Fatalf("unexpected header: %+v", view.Header)
	}
	if len(view.Header.Badges) != 1 || view.Header.Badges[0].Label != "In progress" || view.Header.Badges[0].Tone != "info" {
		t.Fatalf("unexpected status badge: %+v", view.Header.Badges)
	}
	if view.ConfirmTitle != "Remove ticket" {
		t.Fatalf("overlay confirm title not applied: %q", view.ConfirmTitle)
	}
	if view.ConfirmBody != `Really drop "Fix login flow"?` {
		t.Fatalf("overlay confirm body not applied: %q", view.ConfirmBody)
	}

	card.RequestDelete()
	card.ConfirmDelete()
	if len(deleted) != 1 || deleted[0] != "t-1" {
		t.Fatalf("delete callback not relayed: %v", deleted)
	}
}

func TestList_OverlayAndSync(t *testing.T) {
	var synced bool
	overlay := tickets.Overlay{EmptyMessage: "Nothing to work on."}

	component := tickets.New(
		tickets.WithOverlay(overlay),
		tickets.WithSync("Refresh", func() { synced = true }),
	)

	list := component.List()
	view := list.View(nil)
	if view.EmptyMessage != "Nothing to work on." {
		t.Fatalf("overlay empty message not applied: %q", view.EmptyMessage)
	}
	if view.SyncLabel != "Refresh" {
		t.Fatalf("sync label not applied: %q", view.SyncLabel)
	}

	list.Sync()
	if !synced {
		t.Fatal("sync callback not relayed")
	}
}

func TestProcess_RejectsUnreadyTicket(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tickets/t-1/validate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"valid":false,"problems":["no repository linked"]}`))
	}))
	defer server.Close()

	client, err := api.New(server.URL)
	if err != nil {
		t.Fatalf("new api client: %v", err)
	}
	component := tickets.New(tickets.WithAPI(client))

	_, err = component.Process(context.Background(), "t-1")
	if !errors.Is(err, tickets.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
}

func TestProcess_StartsJobAndSubscribes(t *testing.T) {
	var mu sync.Mutex
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		paths = append(paths, r.URL.Path)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/tickets/t-1/validate":
			w.Write([]byte(`{"valid":true}`))
		case "/api/tickets/t-1/process":
			w.WriteHeader(http.StatusAccepted)
		default:
			// websocket upgrades land here and fail; the subscription
			// keeps retrying until the context ends
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	apiClient, err := api.New(server.URL)
	if err != nil {
		t.Fatalf("new api client: %v", err)
	}
	statusClient, err := status.NewClient(server.URL)
	if err != nil {
		t.Fatalf("new status client: %v", err)
	}
	component := tickets.New(tickets.WithAPI(apiClient), tickets.WithStatus(statusClient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub, err := component.Process(ctx, "t-1")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	defer sub.Close()

	mu.Lock()
	got := append([]string(nil), paths...)
	mu.Unlock()
	want := []string{"/api/tickets/t-1/validate", "/api/tickets/t-1/process"}
	if len(got) < 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("unexpected call order: %v", got)
	}
}

func TestWatch_RequiresStatusClient(t *testing.T) {
	component := tickets.New()
	if _, err := component.Watch(context.Background(), "t-1"); err == nil {
		t.Fatal("expected an error without a status client")
	}
}
