package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// scriptServer serves one websocket connection per dial, writing the next
// batch of events and then closing the connection.
func scriptServer(t *testing.T, batches [][]Event) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var dials atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		n := int(dials.Add(1)) - 1
		if n >= len(batches) {
			// Hold the connection open so the client is not in a dial loop.
			time.Sleep(5 * time.Second)
			return
		}
		for _, ev := range batches[n] {
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		}
	}))
	return server, &dials
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestSubscribe_DeliversEventsAndCompletes(t *testing.T) {
	server, _ := scriptServer(t, [][]Event{{
		{TicketID: "t-1", Status: StatusPending},
		{TicketID: "t-1", Status: StatusInProgress, Progress: intPtr(60)},
		{TicketID: "t-1", Status: StatusCompleted, Message: "merged"},
	}})
	defer server.Close()

	client, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	done := make(chan Snapshot, 1)
	sub, err := client.Subscribe(context.Background(), "t-1",
		WithOnComplete(func(s Snapshot) { done <- s }),
	)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case snap := <-done:
		if snap.Status != StatusCompleted || snap.Message != "merged" {
			t.Fatalf("unexpected completion snapshot: %+v", snap)
		}
		if len(snap.Log) != 3 {
			t.Fatalf("log length %d, want 3", len(snap.Log))
		}
	case <-time.After(3 * time.Second):
		t.Fatal("completion callback never fired")
	}
}

func TestSubscribe_ReconnectsAfterConnectionLoss(t *testing.T) {
	server, dials := scriptServer(t, [][]Event{
		{
			{Status: StatusPending},
			{Status: StatusInProgress, Progress: intPtr(25)},
		},
		{
			{Status: StatusInProgress, Progress: intPtr(80)},
			{Status: StatusCompleted},
		},
	})
	defer server.Close()

	client, err := NewClient(server.URL, WithBackoff(20*time.Millisecond, 100*time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	done := make(chan struct{})
	sub, err := client.Subscribe(context.Background(), "t-2",
		WithOnComplete(func(Snapshot) { close(done) }),
	)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub.Close()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("job never completed across reconnects")
	}

	if got := dials.Load(); got < 2 {
		t.Fatalf("expected a reconnect, saw %d dials", got)
	}
	snap := sub.Snapshot()
	if len(snap.Log) != 4 {
		t.Fatalf("history lost across reconnect: %d log entries, want 4", len(snap.Log))
	}
	if snap.Progress != 80 {
		t.Fatalf("unexpected final progress %d", snap.Progress)
	}
}

func TestSubscribe_ContextCancelStopsDelivery(t *testing.T) {
	server, _ := scriptServer(t, nil)
	defer server.Close()

	client, err := NewClient(server.URL, WithBackoff(20*time.Millisecond, 50*time.Millisecond))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := client.Subscribe(ctx, "t-3")
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	waitFor(t, 2*time.Second, sub.Connected)
	cancel()
	waitFor(t, 2*time.Second, func() bool { return !sub.Connected() })
}

func TestNewClient_SchemeHandling(t *testing.T) {
	cases := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{name: "http rewritten", url: "http://localhost:9000"},
		{name: "https rewritten", url: "https://api.example.com"},
		{name: "ws passthrough", url: "ws://localhost:9000"},
		{name: "ftp rejected", url: "ftp://nope", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewClient(tc.url)
			if tc.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
