package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"contactsearch/internal/domain"
)

// maxToasts is the number of toasts kept on screen; older ones are dropped
const maxToasts = 3

type toastItem struct {
	id    int
	toast domain.Toast
}

// toastTray holds the toasts currently on screen
type toastTray struct {
	items  []toastItem
	nextID int
	ttl    time.Duration
}

func newToastTray(ttl time.Duration) *toastTray {
	return &toastTray{ttl: ttl}
}

// push shows t and schedules its expiry
func (tt *toastTray) push(t domain.Toast) tea.Cmd {
	tt.nextID++
	id := tt.nextID
	tt.items = append(tt.items, toastItem{id: id, toast: t})
	if len(tt.items) > maxToasts {
		tt.items = tt.items[len(tt.items)-maxToasts:]
	}
	return tea.Tick(tt.ttl, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

func (tt *toastTray) expire(id int) {
	for i, it := range tt.items {
		if it.id == id {
			tt.items = append(tt.items[:i], tt.items[i+1:]...)
			return
		}
	}
}

func (tt *toastTray) toasts() []domain.Toast {
	out := make([]domain.Toast, len(tt.items))
	for i, it := range tt.items {
		out[i] = it.toast
	}
	return out
}
