package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-ticketkit/pkg/entity"
	"github.com/goliatone/go-ticketkit/pkg/forms"
)

const defaultTimeout = 30 * time.Second

// Option customises the client at construction time.
type Option func(*Client)

// WithHTTPClient injects a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithSession attaches the caller's session. Requests carry the token as a
// bearer credential.
func WithSession(session Session) Option {
	return func(c *Client) {
		c.session = session
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if strings.TrimSpace(ua) != "" {
			c.userAgent = ua
		}
	}
}

// Client talks to the ticket platform's REST backend. It never caches or
// optimistically mutates; callers re-render from the responses.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	session    Session
	userAgent  string
}

// New constructs a client for the backend base URL.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("api: parse base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("api: unsupported scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:    parsed,
		httpClient: &http.Client{Timeout: defaultTimeout},
		userAgent:  "go-ticketkit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Error is the decoded failure payload for a non-2xx response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsUnauthorized reports whether err is a 401/403 from the backend.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if ctx == nil {
		return errors.New("api: context is required")
	}

	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request body: %w", err)
		}
		payload = bytes.NewReader(encoded)
	}

	target := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), payload)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session.Valid() {
		req.Header.Set("Authorization", "Bearer "+c.session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}

// --- Tickets ---

// ListTickets returns all tickets visible to the session.
func (c *Client) ListTickets(ctx context.Context) ([]entity.Ticket, error) {
	var out []entity.Ticket
	if err := c.do(ctx, http.MethodGet, "/api/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTicket fetches one ticket by id.
func (c *Client) GetTicket(ctx context.Context, id string) (entity.Ticket, error) {
	var out entity.Ticket
	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+url.PathEscape(id), nil, &out); err != nil {
		return entity.Ticket{}, err
	}
	return out, nil
}

// CreateTicket submits a new ticket record.
func (c *Client) CreateTicket(ctx context.Context, record forms.Record) (entity.Ticket, error) {
	var out entity.Ticket
	if err := c.do(ctx, http.MethodPost, "/api/tickets", record, &out); err != nil {
		return entity.Ticket{}, err
	}
	return out, nil
}

// UpdateTicket submits changed fields for an existing ticket.
func (c *Client) UpdateTicket(ctx context.Context, id string, record forms.Record) (entity.Ticket, error) {
	var out entity.Ticket
	if err := c.do(ctx, http.MethodPut, "/api/tickets/"+url.PathEscape(id), record, &out); err != nil {
		return entity.Ticket{}, err
	}
	return out, nil
}

// DeleteTicket removes a ticket.
func (c *Client) DeleteTicket(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tickets/"+url.PathEscape(id), nil, nil)
}

// --- Processing ---

// ValidationReport is the backend's answer to a pre-processing check.
type ValidationReport struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// ValidateTicket asks the backend whether a ticket is ready for automated
// processing.
func (c *Client) ValidateTicket(ctx context.Context, id string) (ValidationReport, error) {
	var out ValidationReport
	if err := c.do(ctx, http.MethodPost, "/api/tickets/"+url.PathEscape(id)+"/validate", nil, &out); err != nil {
		return ValidationReport{}, err
	}
	return out, nil
}

// StartProcessing kicks off the automation job for a ticket. Progress is
// observed separately through the status subscription channel.
func (c *Client) StartProcessing(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/api/tickets/"+url.PathEscape(id)+"/process", nil, nil)
}

// --- Repositories ---

// ListRepositories returns the connected GitHub repositories.
func (c *Client) ListRepositories(ctx context.Context) ([]entity.Repository, error) {
	var out []entity.Repository
	if err := c.do(ctx, http.MethodGet, "/api/repositories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SyncRepositories refreshes the repository list from GitHub and returns the
// updated collection.
func (c *Client) SyncRepositories(ctx context.Context) ([]entity.Repository, error) {
	var out []entity.Repository
	if err := c.do(ctx, http.MethodPost, "/api/repositories/sync", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Issues ---

// ListIssues returns the issues imported for a repository.
func (c *Client) ListIssues(ctx context.Context, repositoryID string) ([]entity.Issue, error) {
	var out []entity.Issue
	if err := c.do(ctx, http.MethodGet, "/api/repositories/"+url.PathEscape(repositoryID)+"/issues", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ImportIssues pulls open GitHub issues for a repository into the platform.
func (c *Client) ImportIssues(ctx context.Context, repositoryID string) ([]entity.Issue, error) {
	var out []entity.Issue
	if err := c.do(ctx, http.MethodPost, "/api/repositories/"+url.PathEscape(repositoryID)+"/issues/import", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Metamodels ---

// ListMetamodels returns the available metamodels.
func (c *Client) ListMetamodels(ctx context.Context) ([]entity.Metamodel, error) {
	var out []entity.Metamodel
	if err := c.do(ctx, http.MethodGet, "/api/metamodels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteMetamodel removes a metamodel and its concepts.
func (c *Client) DeleteMetamodel(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/metamodels/"+url.PathEscape(id), nil, nil)
}

// ListConcepts returns the concepts of one metamodel.
func (c *Client) ListConcepts(ctx context.Context, metamodelID string) ([]entity.Concept, error) {
	var out []entity.Concept
	if err := c.do(ctx, http.MethodGet, "/api/metamodels/"+url.PathEscape(metamodelID)+"/concepts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- GitHub OAuth ---

// AuthorizeURL builds the GitHub OAuth entry URL the UI redirects to. The
// state parameter round-trips through the provider for CSRF protection.
func (c *Client) AuthorizeURL(state string) string {
	target := c.baseURL.JoinPath("/api/auth/github")
	query := target.Query()
	if strings.TrimSpace(state) != "" {
		query.Set("state", state)
	}
	target.RawQuery = query.Encode()
	return target.String()
}
