package entity

import (
	"strings"
	"time"
)

// Ticket lifecycle states exposed by the backend.
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// Ticket priorities accepted by the backend.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Ticket is a development ticket tracked by the platform. It may be linked to
// a GitHub issue and to the repository the work targets.
type Ticket struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Labels      []string   `json:"labels,omitempty"`
	Repository  string     `json:"repositoryId,omitempty"`
	IssueNumber int        `json:"issueNumber,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	ResolvedAt  *time.Time `json:"resolvedAt,omitempty"`
}

func (t Ticket) EntityID() string    { return t.ID }
func (t Ticket) EntityKind() Kind    { return KindTicket }
func (t Ticket) DisplayName() string { return t.Title }

// Issue is a GitHub issue imported into the platform.
type Issue struct {
	ID         string    `json:"id"`
	Number     int       `json:"number"`
	Title      string    `json:"title"`
	Body       string    `json:"body,omitempty"`
	State      string    `json:"state"`
	Repository string    `json:"repositoryId"`
	URL        string    `json:"htmlUrl,omitempty"`
	Labels     []string  `json:"labels,omitempty"`
	ImportedAt time.Time `json:"importedAt"`
}

func (i Issue) EntityID() string    { return i.ID }
func (i Issue) EntityKind() Kind    { return KindIssue }
func (i Issue) DisplayName() string { return i.Title }

// Repository is a GitHub repository connected to the platform.
type Repository struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Owner       string     `json:"owner"`
	Description string     `json:"description,omitempty"`
	Private     bool       `json:"private"`
	SyncedAt    *time.Time `json:"syncedAt,omitempty"`
}

func (r Repository) EntityID() string { return r.ID }
func (r Repository) EntityKind() Kind { return KindRepository }

// DisplayName returns the owner-qualified repository name when the owner is
// known.
func (r Repository) DisplayName() string {
	owner := strings.TrimSpace(r.Owner)
	if owner == "" {
		return r.Name
	}
	return owner + "/" + r.Name
}

// Metamodel describes the modelling vocabulary a project uses. Concepts hang
// off a metamodel.
type Metamodel struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Version     string    `json:"version,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (m Metamodel) EntityID() string    { return m.ID }
func (m Metamodel) EntityKind() Kind    { return KindMetamodel }
func (m Metamodel) DisplayName() string { return m.Name }

// Concept is a single term inside a metamodel.
type Concept struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Metamodel   string `json:"metamodelId"`
	Description string `json:"description,omitempty"`
}

func (c Concept) EntityID() string    { return c.ID }
func (c Concept) EntityKind() Kind    { return KindConcept }
func (c Concept) DisplayName() string { return c.Name }
