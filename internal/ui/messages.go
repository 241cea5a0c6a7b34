package ui

import (
	"contactsearch/internal/domain"
	"contactsearch/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// toastExpiredMsg removes a toast from the tray
type toastExpiredMsg struct {
	id int
}

// formSavedMsg is the continuation of a form save
type formSavedMsg struct {
	action domain.PageAction
	id     string
	err    error
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	err error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
