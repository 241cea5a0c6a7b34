// Package platform implements the host services the contact widget consumes:
// page navigation and toast notifications. Both hand their requests to the
// host UI through the event bus.
package platform

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"contactsearch/internal/domain"
	"contactsearch/internal/eventbus"
)

// ErrInvalidPage is returned for page references the host cannot show
var ErrInvalidPage = errors.New("invalid page reference")

// RecordGetter loads the record a record page shows
type RecordGetter interface {
	GetRecord(ctx context.Context, id string, fields []string) (domain.Record, error)
}

// Navigator publishes navigation requests for the host UI
type Navigator struct {
	bus     eventbus.EventBus
	records RecordGetter
	log     *zap.Logger
}

// NewNavigator creates a navigator
func NewNavigator(bus eventbus.EventBus, records RecordGetter, log *zap.Logger) *Navigator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Navigator{bus: bus, records: records, log: log}
}

// Navigate validates page and asks the host to show it. Record pages fail when
// the record does not exist.
func (n *Navigator) Navigate(ctx context.Context, page domain.PageRef) error {
	ev := domain.NavigationRequestedEvent{Page: page}

	switch page.Kind {
	case domain.ObjectPage:
		if page.ObjectName == "" {
			return fmt.Errorf("object page without object name: %w", ErrInvalidPage)
		}
		if page.Action != domain.ActionNew {
			return fmt.Errorf("object page action %q: %w", page.Action, ErrInvalidPage)
		}
	case domain.RecordPage:
		if page.RecordID == "" {
			return fmt.Errorf("record page without record id: %w", ErrInvalidPage)
		}
		if page.Action != domain.ActionView && page.Action != domain.ActionEdit {
			return fmt.Errorf("record page action %q: %w", page.Action, ErrInvalidPage)
		}
		rec, err := n.records.GetRecord(ctx, page.RecordID, nil)
		if err != nil {
			return fmt.Errorf("failed to open record %s: %w", page.RecordID, err)
		}
		ev.Record = rec
	default:
		return fmt.Errorf("page kind %q: %w", page.Kind, ErrInvalidPage)
	}

	n.log.Debug("navigating",
		zap.String("kind", string(page.Kind)),
		zap.String("action", string(page.Action)),
		zap.String("id", page.RecordID))
	n.bus.Publish(ev)
	return nil
}

// Toaster publishes toast requests for the host UI
type Toaster struct {
	bus eventbus.EventBus
}

// NewToaster creates a toaster
func NewToaster(bus eventbus.EventBus) *Toaster {
	return &Toaster{bus: bus}
}

// ShowToast queues t for display without blocking
func (t *Toaster) ShowToast(toast domain.Toast) {
	t.bus.Publish(domain.ToastRequestedEvent{Toast: toast})
}
