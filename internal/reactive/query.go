package reactive

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Fetcher performs the underlying query for a parameter value
type Fetcher[P comparable, R any] func(ctx context.Context, params P) (R, error)

// Result is the message a query command resolves to
type Result[P comparable, R any] struct {
	Seq    uint64 // issue order, increasing
	Params P
	Value  R
	Err    error
	Forced bool // produced by Refresh
	Cached bool // served from the cache without calling the fetcher
}

// Query is a cached query handle whose parameters track a Subject.
// Issue and Refresh must be called from the owning model's update loop;
// the returned commands may run concurrently.
type Query[P comparable, R any] struct {
	ctx    context.Context
	fetch  Fetcher[P, R]
	skip   func(P) bool
	params P
	seq    uint64
	cache  *lru.Cache[P, R]
	log    *zap.Logger
}

// NewQuery creates a query handle. cacheSize <= 0 disables caching.
func NewQuery[P comparable, R any](ctx context.Context, fetch Fetcher[P, R], cacheSize int, log *zap.Logger) (*Query[P, R], error) {
	if log == nil {
		log = zap.NewNop()
	}
	q := &Query[P, R]{
		ctx:   ctx,
		fetch: fetch,
		skip:  func(P) bool { return false },
		log:   log,
	}
	if cacheSize > 0 {
		cache, err := lru.New[P, R](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create query cache: %w", err)
		}
		q.cache = cache
	}
	return q, nil
}

// SetSkip sets a predicate for parameter values that must not be queried
func (q *Query[P, R]) SetSkip(skip func(P) bool) {
	if skip != nil {
		q.skip = skip
	}
}

// Bind makes the query track s: every change of s re-issues the query.
func (q *Query[P, R]) Bind(s *Subject[P]) func() {
	q.params = s.Value()
	return s.Subscribe(func(v P) tea.Cmd {
		q.params = v
		return q.Issue()
	})
}

// Params returns the parameters the handle currently resolves
func (q *Query[P, R]) Params() P {
	return q.params
}

// Latest returns the sequence number of the most recently issued resolution
func (q *Query[P, R]) Latest() uint64 {
	return q.seq
}

// Issue resolves the current parameters, from the cache when possible
func (q *Query[P, R]) Issue() tea.Cmd {
	if q.skip(q.params) {
		return nil
	}
	q.seq++
	seq, params := q.seq, q.params

	if q.cache != nil {
		if v, ok := q.cache.Get(params); ok {
			return func() tea.Msg {
				return Result[P, R]{Seq: seq, Params: params, Value: v, Cached: true}
			}
		}
	}
	return q.resolve(seq, params, false)
}

// Refresh discards the cached value for the current parameters and re-resolves them
func (q *Query[P, R]) Refresh() tea.Cmd {
	if q.skip(q.params) {
		return nil
	}
	q.seq++
	if q.cache != nil {
		q.cache.Remove(q.params)
	}
	return q.resolve(q.seq, q.params, true)
}

// Purge drops every cached value
func (q *Query[P, R]) Purge() {
	if q.cache != nil {
		q.cache.Purge()
	}
}

func (q *Query[P, R]) resolve(seq uint64, params P, forced bool) tea.Cmd {
	return func() tea.Msg {
		v, err := q.fetch(q.ctx, params)
		if err == nil && q.cache != nil {
			q.cache.Add(params, v)
		}
		if err != nil {
			q.log.Debug("query failed", zap.Uint64("seq", seq), zap.Any("params", params), zap.Error(err))
		}
		return Result[P, R]{Seq: seq, Params: params, Value: v, Err: err, Forced: forced}
	}
}

// Batch combines commands, dropping nils. It returns nil when nothing is left.
func Batch(cmds ...tea.Cmd) tea.Cmd {
	var valid []tea.Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	default:
		return tea.Batch(valid...)
	}
}
