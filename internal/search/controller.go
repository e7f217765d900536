// Package search implements the query/search state machine behind the UI.
//
// A Controller owns the query text, the current Phase and the last result
// set. Lookups run as Bubble Tea commands; their outcome comes back as a
// ResultMsg which the owner feeds to Resolve on the same event loop. Every
// TriggerSearch issues a new request token and Resolve only commits a
// message carrying the latest token, so overtaken or abandoned lookups can
// never overwrite newer state.
package search

import (
	"context"
	"io"
	"log/slog"

	"usersearch/internal/lookup"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

// ResultMsg carries the outcome of one lookup back to the event loop.
type ResultMsg struct {
	Token     uint64
	RequestID string
	Query     string
	Records   []lookup.Record
	Err       error
}

// Snapshot is a read-only copy of controller state for rendering.
type Snapshot struct {
	Query string
	Phase Phase
	// Results is non-empty only when Phase is PhaseSuccess.
	Results []lookup.Record
	// SubmittedQuery is the query captured by the most recent search.
	SubmittedQuery string
}

// CanSearch reports whether a search may be triggered (query non-empty).
func (s Snapshot) CanSearch() bool {
	return s.Query != ""
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for search lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller is the search state machine. It is not safe for concurrent
// use: all methods must be called from the event loop that delivers
// ResultMsg values.
type Controller struct {
	lookup lookup.Lookuper
	logger *slog.Logger

	query     string
	submitted string
	phase     Phase
	results   []lookup.Record

	token     uint64
	requestID string
	cancel    context.CancelFunc
}

// NewController creates a controller in the Idle phase with an empty query.
func NewController(l lookup.Lookuper, opts ...Option) *Controller {
	c := &Controller{
		lookup: l,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetQuery replaces the query text. Clearing the query while a search is
// outstanding or displayed resets to Idle, drops the results and abandons
// any in-flight lookup.
func (c *Controller) SetQuery(text string) {
	c.query = text
	if text != "" || c.phase == PhaseIdle {
		return
	}
	c.logger.Debug("query cleared, resetting to idle",
		"previous_phase", c.phase.String(),
		"token", c.token,
	)
	c.abandon()
	c.phase = PhaseIdle
	c.results = nil
	c.submitted = ""
}

// TriggerSearch starts a lookup for the current query and returns the
// command that performs it. It returns nil without touching state when
// the query is empty. ctx bounds the lookup; a later TriggerSearch or an
// empty-query reset cancels it.
func (c *Controller) TriggerSearch(ctx context.Context) tea.Cmd {
	if c.query == "" {
		return nil
	}
	c.abandon()

	c.phase = PhaseSearching
	c.results = nil
	c.submitted = c.query
	c.requestID = uuid.NewString()

	if ctx == nil {
		ctx = context.Background()
	}
	lctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	token, requestID, query, l := c.token, c.requestID, c.query, c.lookup
	c.logger.Info("search started", "request_id", requestID, "token", token, "query", query)

	return func() tea.Msg {
		defer cancel()
		records, err := l.Lookup(lctx, query)
		return ResultMsg{
			Token:     token,
			RequestID: requestID,
			Query:     query,
			Records:   records,
			Err:       err,
		}
	}
}

// Resolve commits msg if it belongs to the most recent search and that
// search is still outstanding. It reports whether state changed.
func (c *Controller) Resolve(msg ResultMsg) bool {
	if msg.Token != c.token || c.phase != PhaseSearching {
		c.logger.Debug("discarding stale search result",
			"request_id", msg.RequestID,
			"token", msg.Token,
			"current_token", c.token,
			"phase", c.phase.String(),
		)
		return false
	}
	c.cancel = nil

	if msg.Err != nil {
		c.phase = PhaseError
		c.results = nil
		c.logger.Warn("search failed", "request_id", msg.RequestID, "query", msg.Query, "error", msg.Err)
		return true
	}

	c.results = append([]lookup.Record(nil), msg.Records...)
	c.phase = PhaseSuccess
	c.logger.Info("search completed", "request_id", msg.RequestID, "query", msg.Query, "results", len(c.results))
	return true
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Query:          c.query,
		Phase:          c.phase,
		Results:        append([]lookup.Record(nil), c.results...),
		SubmittedQuery: c.submitted,
	}
}

// Query returns the current query text.
func (c *Controller) Query() string { return c.query }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// abandon invalidates the outstanding lookup, if any, by advancing the
// token and cancelling its context.
func (c *Controller) abandon() {
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
