package contacts

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"contactsearch/internal/domain"
)

var errNotFound = errors.New("record not found")

// fakePlatform backs every service the component consumes
type fakePlatform struct {
	mu       sync.Mutex
	rows     []domain.ContactRow
	searches []string
	deletes  []string
	gets     []string
	pages    []domain.PageRef
	toasts   []domain.Toast

	searchFn  func(call int, keyword string) ([]domain.ContactRow, error)
	deleteErr error
	navErr    error
	getErr    error
}

func newFakePlatform(rows ...domain.ContactRow) *fakePlatform {
	return &fakePlatform{rows: rows}
}

func (f *fakePlatform) SearchContacts(_ context.Context, keyword string) ([]domain.ContactRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, keyword)
	if f.searchFn != nil {
		return f.searchFn(len(f.searches), keyword)
	}
	var out []domain.ContactRow
	for _, r := range f.rows {
		if strings.Contains(strings.ToLower(r.Name), strings.ToLower(keyword)) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakePlatform) DeleteRecord(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i:i], f.rows[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakePlatform) GetRecord(_ context.Context, id string, fields []string) (domain.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, id)
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, r := range f.rows {
		if r.ID == id {
			return r.Fields().Only(fields), nil
		}
	}
	return nil, errNotFound
}

func (f *fakePlatform) Navigate(_ context.Context, page domain.PageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages = append(f.pages, page)
	return f.navErr
}

func (f *fakePlatform) ShowToast(t domain.Toast) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toasts = append(f.toasts, t)
}

func (f *fakePlatform) update(id string, mutate func(*domain.ContactRow)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			mutate(&f.rows[i])
		}
	}
}

func (f *fakePlatform) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches) + len(f.deletes) + len(f.gets) + len(f.pages) + len(f.toasts)
}

// newComponent builds a component over f with an observed debug logger
func newComponent(t *testing.T, f *fakePlatform, opts ...Option) (*Component, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	opts = append([]Option{WithLogger(zap.New(core))}, opts...)
	c, err := New(context.Background(), f, f, f, f, opts...)
	require.NoError(t, err)
	c.Init()
	return c, logs
}

// drain runs cmd and any batched commands it yields, returning the leaf messages
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// settle feeds cmd's messages back into the component until nothing is left
func settle(c *Component, cmd tea.Cmd) {
	queue := drain(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		queue = append(queue, drain(c.Update(msg))...)
	}
}

func ids(rows []domain.ContactRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

var (
	ada   = domain.ContactRow{ID: "1", Name: "Ada Lovelace", Email: "ada@example.com", MobilePhone: "555-0101", BillingCity: "London", BillingState: "LDN"}
	alan  = domain.ContactRow{ID: "2", Name: "Alan Turing", Email: "alan@example.com", MobilePhone: "555-0102", BillingCity: "Wilmslow", BillingState: "CHS"}
	grace = domain.ContactRow{ID: "3", Name: "Grace Hopper", Email: "grace@example.com", MobilePhone: "555-0103", BillingCity: "Arlington", BillingState: "VA"}
)
