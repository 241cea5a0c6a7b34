package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventRecordCreated        EventType = "RecordCreated"
	EventRecordUpdated        EventType = "RecordUpdated"
	EventRecordDeleted        EventType = "RecordDeleted"
	EventNavigationRequested  EventType = "NavigationRequested"
	EventToastRequested       EventType = "ToastRequested"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// RecordCreatedEvent is emitted when the record store inserts a record
type RecordCreatedEvent struct {
	ObjectName string
	RecordID   string
}

func (e RecordCreatedEvent) Type() EventType { return EventRecordCreated }

// RecordUpdatedEvent is emitted when a record's fields change
type RecordUpdatedEvent struct {
	ObjectName string
	RecordID   string
	Fields     []string // fields that were written
}

func (e RecordUpdatedEvent) Type() EventType { return EventRecordUpdated }

// RecordDeletedEvent is emitted after a record is removed
type RecordDeletedEvent struct {
	ObjectName string
	RecordID   string
}

func (e RecordDeletedEvent) Type() EventType { return EventRecordDeleted }

// NavigationRequestedEvent asks the host UI to show a page.
// Record carries the target record for record pages.
type NavigationRequestedEvent struct {
	Page   PageRef
	Record Record
}

func (e NavigationRequestedEvent) Type() EventType { return EventNavigationRequested }

// ToastRequestedEvent asks the host UI to show a notification
type ToastRequestedEvent struct {
	Toast Toast
}

func (e ToastRequestedEvent) Type() EventType { return EventToastRequested }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
