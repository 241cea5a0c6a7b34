package eventbus

import (
	"runtime/debug"
	"sync"

	"go.uber.org/zap"

	"contactsearch/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventRecordCreated       = domain.EventRecordCreated
	EventRecordUpdated       = domain.EventRecordUpdated
	EventRecordDeleted       = domain.EventRecordDeleted
	EventNavigationRequested = domain.EventNavigationRequested
	EventToastRequested      = domain.EventToastRequested
	EventError               = domain.EventError
	EventConfigLoaded        = domain.EventConfigLoaded
	EventConfigSaved         = domain.EventConfigSaved
)

// Re-export domain event types
type RecordCreatedEvent = domain.RecordCreatedEvent
type RecordUpdatedEvent = domain.RecordUpdatedEvent
type RecordDeletedEvent = domain.RecordDeletedEvent
type NavigationRequestedEvent = domain.NavigationRequestedEvent
type ToastRequestedEvent = domain.ToastRequestedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
	Close()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// bus is the concrete implementation of EventBus
type bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	log       *zap.Logger
	wg        sync.WaitGroup // dispatcher and in-flight handlers
	quit      chan struct{}
	closeOnce sync.Once
}

// Option configures the bus
type Option func(*bus)

// WithLogger sets the logger used for publish tracing and handler panics
func WithLogger(log *zap.Logger) Option {
	return func(b *bus) {
		if log != nil {
			b.log = log
		}
	}
}

// WithBuffer sets the number of events queued before Publish starts dropping
func WithBuffer(n int) Option {
	return func(b *bus) {
		if n > 0 {
			b.eventChan = make(chan DomainEvent, n)
		}
	}
}

// New creates a new event bus
func New(opts ...Option) EventBus {
	b := &bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		log:       zap.NewNop(),
		quit:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}

	// Start the event dispatcher
	b.wg.Add(1)
	go b.dispatch()

	return b
}

// Publish publishes an event to all subscribers without blocking
func (b *bus) Publish(event DomainEvent) {
	select {
	case <-b.quit:
		b.log.Debug("bus closed, dropping event", zap.String("event", string(event.Type())))
		return
	default:
	}

	b.log.Debug("publishing event", zap.String("event", string(event.Type())))

	select {
	case b.eventChan <- event:
	default:
		// Channel full, log and drop
		b.log.Warn("event bus channel full, dropping event", zap.String("event", string(event.Type())))
	}
}

// Subscribe subscribes to events of a specific type
// Returns an unsubscribe function
func (b *bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher, discards queued events and waits for running handlers
func (b *bus) Close() {
	b.closeOnce.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch handles event distribution to subscribers
func (b *bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := b.handlers[event.Type()]
			// Copy so handlers run without the lock held
			handlers := make([]EventHandler, len(subs))
			for i, s := range subs {
				handlers[i] = s.handler
			}
			b.mu.RUnlock()

			for _, handler := range handlers {
				b.wg.Add(1)
				go b.run(handler, event)
			}

		case <-b.quit:
			// Drain remaining events
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

func (b *bus) run(h EventHandler, event DomainEvent) {
	defer b.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			b.log.Error("event handler panic",
				zap.String("event", string(event.Type())),
				zap.Any("panic", r),
				zap.ByteString("stack", debug.Stack()))
		}
	}()
	h(event)
}
