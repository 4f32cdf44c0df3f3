package status

import "time"

// Status is the lifecycle state of one backend processing job bound to a
// ticket. PENDING and IN_PROGRESS may transition further; COMPLETED, FAILED,
// and CANCELLED are final.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
	StatusCancelled  Status = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Known reports whether the status is one of the defined lifecycle states.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Event is one incremental update delivered over a ticket's status channel.
// Progress is a pointer so "no progress reported" is distinguishable from 0.
type Event struct {
	TicketID  string    `json:"ticketId,omitempty"`
	Status    Status    `json:"status"`
	Message   string    `json:"message,omitempty"`
	Step      string    `json:"step,omitempty"`
	Progress  *int      `json:"progress,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// LogEntry is one line of the append-only processing log.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Status  Status    `json:"status"`
	Message string    `json:"message,omitempty"`
}

// Snapshot is the point-in-time view a subscription exposes to the UI.
// Progress is -1 until the backend reports a percentage.
type Snapshot struct {
	TicketID  string
	Status    Status
	Message   string
	Step      string
	Progress  int
	Error     string
	Log       []LogEntry
	Connected bool
}

// Terminal reports whether the snapshot's status is final.
func (s Snapshot) Terminal() bool {
	return s.Status.Terminal()
}
