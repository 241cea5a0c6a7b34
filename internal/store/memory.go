package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"contactsearch/internal/domain"
)

// MemoryStore is an in-memory implementation of Store
type MemoryStore struct {
	mu       sync.RWMutex
	contacts map[string]domain.ContactRow
	cases    map[string]domain.Case
	opts     options
}

// NewMemoryStore creates a new memory-based store
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		contacts: make(map[string]domain.ContactRow),
		cases:    make(map[string]domain.Case),
		opts:     buildOptions(opts),
	}
}

func (s *MemoryStore) SearchContacts(_ context.Context, keyword string) ([]domain.ContactRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	kw := strings.ToLower(keyword)
	var out []domain.ContactRow
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), kw) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) GetRecord(_ context.Context, id string, fields []string) (domain.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	return c.Fields().Only(fields), nil
}

func (s *MemoryStore) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	if _, ok := s.contacts[id]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	for _, c := range s.cases {
		if c.ContactID == id {
			s.mu.Unlock()
			return fmt.Errorf("contact %s: %w", id, ErrAssociatedWithCase)
		}
	}
	delete(s.contacts, id)
	s.mu.Unlock()

	s.opts.publish(domain.RecordDeletedEvent{ObjectName: domain.ContactObject, RecordID: id})
	return nil
}

func (s *MemoryStore) CreateRecord(_ context.Context, rec domain.Record) (string, error) {
	row := domain.RowFromRecord(rec)
	if row.ID == "" {
		row.ID = uuid.NewString()
	}

	s.mu.Lock()
	if _, exists := s.contacts[row.ID]; exists {
		s.mu.Unlock()
		return "", fmt.Errorf("contact %s already exists", row.ID)
	}
	s.contacts[row.ID] = row
	s.mu.Unlock()

	s.opts.publish(domain.RecordCreatedEvent{ObjectName: domain.ContactObject, RecordID: row.ID})
	return row.ID, nil
}

func (s *MemoryStore) UpdateRecord(_ context.Context, id string, rec domain.Record) error {
	fields := writtenFields(rec)

	s.mu.Lock()
	c, ok := s.contacts[id]
	if !ok {
		s.mu.Unlock()
		return fmt.Errorf("contact %s: %w", id, ErrNotFound)
	}
	merged := c.Fields()
	for _, f := range fields {
		merged[f] = rec[f]
	}
	s.contacts[id] = domain.RowFromRecord(merged)
	s.mu.Unlock()

	if len(fields) > 0 {
		s.opts.publish(domain.RecordUpdatedEvent{ObjectName: domain.ContactObject, RecordID: id, Fields: fields})
	}
	return nil
}

func (s *MemoryStore) AddCase(_ context.Context, c domain.Case) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[c.ContactID]; !ok {
		return "", fmt.Errorf("case contact %s: %w", c.ContactID, ErrNotFound)
	}
	s.cases[c.ID] = c
	return c.ID, nil
}

// Close is a no-op
func (s *MemoryStore) Close() error { return nil }
