// Package contacts implements the contact search widget: the search gate, the
// result binder, the row-action dispatcher and the mutation coordinator.
//
// The component follows the bubbletea update model. Service calls are returned
// as commands; their outcomes come back as messages through Update, which is the
// only place state changes after a call completes.
package contacts

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
	"contactsearch/internal/reactive"
)

// DefaultCacheSize is the number of keyword results kept by the query cache
const DefaultCacheSize = 32

// Component is one contact search widget instance
type Component struct {
	ctx       context.Context
	log       *zap.Logger
	layout    grid.Layout
	cacheSize int

	records RecordService
	nav     Navigator
	toaster Toaster

	keyword *reactive.Subject[string]
	query   *reactive.Query[string, []domain.ContactRow]

	result     domain.ResultSet
	showTable  bool
	selectedID string
	err        error
	boundSeq   uint64 // highest resolution sequence bound so far
}

// Option configures a Component
type Option func(*Component)

// WithLogger sets the logger that receives swallowed errors
func WithLogger(log *zap.Logger) Option {
	return func(c *Component) {
		if log != nil {
			c.log = log
		}
	}
}

// WithLayout sets the grid layout whose fields the edit merge fetches
func WithLayout(l grid.Layout) Option {
	return func(c *Component) { c.layout = l }
}

// WithCacheSize sets the query cache size; zero disables the cache
func WithCacheSize(n int) Option {
	return func(c *Component) { c.cacheSize = n }
}

// New creates a component bound to the given services
func New(ctx context.Context, searcher Searcher, records RecordService, nav Navigator, toaster Toaster, opts ...Option) (*Component, error) {
	c := &Component{
		ctx:       ctx,
		log:       zap.NewNop(),
		layout:    grid.DefaultLayout(),
		cacheSize: DefaultCacheSize,
		records:   records,
		nav:       nav,
		toaster:   toaster,
		keyword:   reactive.NewSubject(""),
		result:    domain.EmptyResult(),
	}
	for _, opt := range opts {
		opt(c)
	}

	q, err := reactive.NewQuery[string, []domain.ContactRow](ctx, searcher.SearchContacts, c.cacheSize, c.log.Named("query"))
	if err != nil {
		return nil, fmt.Errorf("failed to create contact query: %w", err)
	}
	q.SetSkip(func(kw string) bool { return kw == "" })
	q.Bind(c.keyword)
	c.query = q

	return c, nil
}

// Init hides the table until the first search
func (c *Component) Init() tea.Cmd {
	c.showTable = false
	return nil
}

// Update applies the outcome of a completed service call
func (c *Component) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SearchResult:
		return c.bind(msg)
	case editRefreshedMsg:
		c.bind(msg.result)
		return c.mergeEdited(msg.id)
	case recordFetchedMsg:
		c.applyMerge(msg)
	case navigatedMsg:
		return c.navigated(msg)
	case deletedMsg:
		return c.deleted(msg)
	case CreatedMsg:
		return c.created(msg)
	case SavedMsg:
		return c.saved(msg)
	}
	return nil
}

// Result returns the current result set
func (c *Component) Result() domain.ResultSet { return c.result }

// ShowTable reports whether the grid is visible
func (c *Component) ShowTable() bool { return c.showTable }

// Keyword returns the active search keyword
func (c *Component) Keyword() string { return c.keyword.Value() }

// SelectedID returns the id of the row last targeted by a delete
func (c *Component) SelectedID() string { return c.selectedID }

// Err returns the last query error, if the result is a failure
func (c *Component) Err() error { return c.err }

// Layout returns the grid layout
func (c *Component) Layout() grid.Layout { return c.layout }

// Refresh forces the current query to re-resolve
func (c *Component) Refresh() tea.Cmd {
	cmd := c.query.Refresh()
	if cmd != nil {
		c.result = domain.LoadingResult()
	}
	return cmd
}
