package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	defaultPathTemplate   = "/api/tickets/%s/status"
	defaultInitialBackoff = 500 * time.Millisecond
	defaultMaxBackoff     = 15 * time.Second
	defaultReadLimit      = 1 << 20
)

// ClientOption customises the websocket status client.
type ClientOption func(*Client)

// WithDialer injects a custom websocket dialer.
func WithDialer(dialer *websocket.Dialer) ClientOption {
	return func(c *Client) {
		if dialer != nil {
			c.dialer = dialer
		}
	}
}

// WithHeader sets headers sent on every dial, typically the session token.
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		c.header = header
	}
}

// WithPathTemplate overrides the subscription path. The template must contain
// one %s placeholder for the ticket id.
func WithPathTemplate(template string) ClientOption {
	return func(c *Client) {
		if strings.TrimSpace(template) != "" {
			c.pathTemplate = template
		}
	}
}

// WithBackoff tunes the reconnect delays. The delay doubles per failed
// attempt from initial up to max and resets after a successful connect.
func WithBackoff(initial, max time.Duration) ClientOption {
	return func(c *Client) {
		if initial > 0 {
			c.initialBackoff = initial
		}
		if max > 0 {
			c.maxBackoff = max
		}
	}
}

// WithLogf installs a debug log hook. The client is silent without one.
func WithLogf(logf func(format string, args ...any)) ClientOption {
	return func(c *Client) {
		c.logf = logf
	}
}

// Client subscribes to live processing status channels over websocket. One
// client serves any number of ticket subscriptions.
type Client struct {
	baseURL        *url.URL
	dialer         *websocket.Dialer
	header         http.Header
	pathTemplate   string
	initialBackoff time.Duration
	maxBackoff     time.Duration
	logf           func(string, ...any)
}

// NewClient constructs a status client for the backend base URL. http(s)
// schemes are rewritten to ws(s).
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("status: parse base url: %w", err)
	}
	switch parsed.Scheme {
	case "ws", "wss":
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return nil, fmt.Errorf("status: unsupported scheme %q", parsed.Scheme)
	}

	c := &Client{
		baseURL:        parsed,
		dialer:         websocket.DefaultDialer,
		pathTemplate:   defaultPathTemplate,
		initialBackoff: defaultInitialBackoff,
		maxBackoff:     defaultMaxBackoff,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c, nil
}

// Subscribe opens a subscription for one ticket and starts the read loop in
// a goroutine. Delivery stops when ctx is cancelled, the subscription is
// closed, or the job reaches a terminal status; connection drops before that
// flip the connected flag and reconnect with backoff. The caller owns the
// returned subscription and should Close it when the owning view goes away.
func (c *Client) Subscribe(ctx context.Context, ticketID string, options ...SubscriptionOption) (*Subscription, error) {
	if strings.TrimSpace(ticketID) == "" {
		return nil, errors.New("status: ticket id is required")
	}
	if ctx == nil {
		return nil, errors.New("status: context is required")
	}

	sub := NewSubscription(ticketID, options...)
	go c.run(ctx, sub)
	return sub, nil
}

func (c *Client) run(ctx context.Context, sub *Subscription) {
	defer sub.SetConnected(false)

	backoff := c.initialBackoff
	for {
		if ctx.Err() != nil || sub.Closed() || sub.Terminal() {
			return
		}

		conn, err := c.dial(ctx, sub.TicketID())
		if err != nil {
			c.debugf("dial %s: %v", sub.TicketID(), err)
			if !c.sleep(ctx, sub, backoff) {
				return
			}
			backoff = c.nextBackoff(backoff)
			continue
		}

		sub.SetConnected(true)
		backoff = c.initialBackoff

		err = c.read(ctx, conn, sub)
		_ = conn.Close()
		sub.SetConnected(false)

		if ctx.Err() != nil || sub.Closed() || sub.Terminal() {
			return
		}
		c.debugf("connection lost for %s: %v", sub.TicketID(), err)
		if !c.sleep(ctx, sub, backoff) {
			return
		}
		backoff = c.nextBackoff(backoff)
	}
}

func (c *Client) dial(ctx context.Context, ticketID string) (*websocket.Conn, error) {
	target := *c.baseURL
	target.Path = strings.TrimSuffix(target.Path, "/") + fmt.Sprintf(c.pathTemplate, url.PathEscape(ticketID))

	conn, resp, err := c.dialer.DialContext(ctx, target.String(), c.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(defaultReadLimit)
	return conn, nil
}

// read pumps events from the connection into the subscription until the
// connection fails, the context ends, or a terminal event lands. Events are
// applied strictly in arrival order; a malformed frame is skipped rather
// than tearing the channel down.
func (c *Client) read(ctx context.Context, conn *websocket.Conn, sub *Subscription) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-stop:
		}
	}()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			var jerr *json.SyntaxError
			if errors.As(err, &jerr) {
				c.debugf("skipping malformed frame for %s: %v", sub.TicketID(), err)
				continue
			}
			return err
		}
		if err := sub.Apply(ev); err != nil {
			if errors.Is(err, ErrClosed) {
				return err
			}
			c.debugf("dropping event for %s: %v", sub.TicketID(), err)
			continue
		}
		if ev.Status.Terminal() {
			return nil
		}
	}
}

func (c *Client) sleep(ctx context.Context, sub *Subscription, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
			return true
		case <-ticker.C:
			if sub.Closed() {
				return false
			}
		}
	}
}

func (c *Client) nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > c.maxBackoff {
		return c.maxBackoff
	}
	return next
}

func (c *Client) debugf(format string, args ...any) {
	if c.logf != nil {
		c.logf("status: "+format, args...)
	}
}
