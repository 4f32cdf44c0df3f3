package status

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrClosed is returned when an event is applied to a closed subscription.
var ErrClosed = errors.New("status: subscription closed")

// SubscriptionOption customises a subscription at construction time.
type SubscriptionOption func(*Subscription)

// WithOnEvent registers a callback invoked after every accepted event with
// the updated snapshot.
func WithOnEvent(fn func(Snapshot)) SubscriptionOption {
	return func(s *Subscription) {
		s.onEvent = fn
	}
}

// WithOnComplete registers the callback fired exactly once when the job
// reaches COMPLETED.
func WithOnComplete(fn func(Snapshot)) SubscriptionOption {
	return func(s *Subscription) {
		s.onComplete = fn
	}
}

// WithOnError registers the callback fired exactly once with the job's error
// string when the job reaches FAILED.
func WithOnError(fn func(errMsg string)) SubscriptionOption {
	return func(s *Subscription) {
		s.onError = fn
	}
}

// WithClock overrides the timestamp source used for log entries whose event
// carries no timestamp. Tests inject a fixed clock here.
func WithClock(now func() time.Time) SubscriptionOption {
	return func(s *Subscription) {
		if now != nil {
			s.now = now
		}
	}
}

// Subscription tracks the lifecycle of exactly one processing job. Events
// are applied in arrival order; the log is append-only; terminal states are
// final and dispatch their callback at most once. Connection state is kept
// separately so a dropped transport never discards received history.
type Subscription struct {
	mu sync.Mutex

	ticketID  string
	status    Status
	message   string
	step      string
	progress  int
	errMsg    string
	log       []LogEntry
	connected bool

	terminalFired bool
	closed        bool

	onEvent    func(Snapshot)
	onComplete func(Snapshot)
	onError    func(string)
	now        func() time.Time
}

// NewSubscription constructs a subscription for one ticket's job.
func NewSubscription(ticketID string, options ...SubscriptionOption) *Subscription {
	s := &Subscription{
		ticketID: ticketID,
		status:   StatusPending,
		progress: -1,
		now:      time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// TicketID returns the ticket this subscription observes.
func (s *Subscription) TicketID() string {
	return s.ticketID
}

// Apply folds one event into the subscription state. Events arriving after a
// terminal status or after Close are dropped: the log keeps its final shape
// and no callback re-fires. Unknown statuses are rejected.
func (s *Subscription) Apply(ev Event) error {
	if !ev.Status.Known() {
		return fmt.Errorf("status: unknown status %q", ev.Status)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	if s.status.Terminal() {
		s.mu.Unlock()
		return nil
	}

	s.status = ev.Status
	s.message = ev.Message
	if ev.Step != "" {
		s.step = ev.Step
	}
	if ev.Progress != nil {
		s.applyProgress(*ev.Progress)
	}
	if ev.Status == StatusFailed {
		s.errMsg = ev.Error
	}

	ts := ev.Timestamp
	if ts.IsZero() {
		ts = s.now()
	}
	s.log = append(s.log, LogEntry{Time: ts, Status: ev.Status, Message: ev.Message})

	snapshot := s.snapshotLocked()

	var fireComplete func(Snapshot)
	var fireError func(string)
	if ev.Status.Terminal() && !s.terminalFired {
		s.terminalFired = true
		switch ev.Status {
		case StatusCompleted:
			fireComplete = s.onComplete
		case StatusFailed:
			fireError = s.onError
		}
	}
	onEvent := s.onEvent
	s.mu.Unlock()

	if onEvent != nil {
		onEvent(snapshot)
	}
	if fireComplete != nil {
		fireComplete(snapshot)
	}
	if fireError != nil {
		fireError(snapshot.Error)
	}
	return nil
}

// applyProgress clamps to 0..100 and enforces monotonic non-decreasing
// progress while the job runs; a regressed percentage keeps the high-water
// mark.
func (s *Subscription) applyProgress(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	if p < s.progress {
		return
	}
	s.progress = p
}

// SetConnected flips the live-connection flag without touching received
// state.
func (s *Subscription) SetConnected(connected bool) {
	s.mu.Lock()
	changed := s.connected != connected && !s.closed
	if !s.closed {
		s.connected = connected
	}
	snapshot := s.snapshotLocked()
	onEvent := s.onEvent
	s.mu.Unlock()

	if changed && onEvent != nil {
		onEvent(snapshot)
	}
}

// Connected reports whether the transport is currently live.
func (s *Subscription) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.connected
}

// Terminal reports whether the job reached a final status.
func (s *Subscription) Terminal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status.Terminal()
}

// Closed reports whether Close has been called.
func (s *Subscription) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}

// Close detaches the subscription. Later events are rejected with ErrClosed
// and no callback fires again; received history stays readable.
func (s *Subscription) Close() {
	s.mu.Lock()
	s.closed = true
	s.connected = false
	s.mu.Unlock()
}

// Snapshot returns a copy of the current state. The log slice is copied so
// callers can hold it across later events.
func (s *Subscription) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *Subscription) snapshotLocked() Snapshot {
	log := make([]LogEntry, len(s.log))
	copy(log, s.log)
	return Snapshot{
		TicketID:  s.ticketID,
		Status:    s.status,
		Message:   s.message,
		Step:      s.step,
		Progress:  s.progress,
		Error:     s.errMsg,
		Log:       log,
		Connected: s.connected,
	}
}
