// Package reactive provides the observable value and refreshable query handle
// the contact widget binds its search to. Effects are bubbletea commands so the
// owning model decides when they run.
package reactive

import tea "github.com/charmbracelet/bubbletea"

// Subject is an observable value. Subscribers run synchronously on Set when the
// value changes and may return a command to schedule.
type Subject[T comparable] struct {
	value  T
	nextID int
	subs   []subscriber[T]
}

type subscriber[T comparable] struct {
	id int
	fn func(T) tea.Cmd
}

// NewSubject creates a subject holding initial
func NewSubject[T comparable](initial T) *Subject[T] {
	return &Subject[T]{value: initial}
}

// Value returns the current value
func (s *Subject[T]) Value() T {
	return s.value
}

// Set stores v and notifies subscribers if it differs from the current value.
// The returned command batches whatever the subscribers scheduled.
func (s *Subject[T]) Set(v T) tea.Cmd {
	if v == s.value {
		return nil
	}
	s.value = v

	var cmds []tea.Cmd
	for _, sub := range s.subs {
		if cmd := sub.fn(v); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return Batch(cmds...)
}

// Subscribe registers fn and returns a function removing it
func (s *Subject[T]) Subscribe(fn func(T) tea.Cmd) func() {
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
