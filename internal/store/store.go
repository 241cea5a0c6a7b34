// Package store keeps contact and case records and serves the record
// operations the contact widget consumes.
package store

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"contactsearch/internal/domain"
	"contactsearch/internal/eventbus"
)

var (
	// ErrNotFound is returned when no record has the requested id
	ErrNotFound = errors.New("record not found")
	// ErrAssociatedWithCase is returned when deleting a contact that a case references
	ErrAssociatedWithCase = errors.New("contact is associated with a case")
)

// Store provides access to contact records
type Store interface {
	SearchContacts(ctx context.Context, keyword string) ([]domain.ContactRow, error)
	GetRecord(ctx context.Context, id string, fields []string) (domain.Record, error)
	DeleteRecord(ctx context.Context, id string) error
	CreateRecord(ctx context.Context, rec domain.Record) (string, error)
	UpdateRecord(ctx context.Context, id string, rec domain.Record) error
	AddCase(ctx context.Context, c domain.Case) (string, error)
	Close() error
}

// Option configures a store
type Option func(*options)

type options struct {
	bus eventbus.EventBus
	log *zap.Logger
}

// WithBus publishes record change events on bus
func WithBus(bus eventbus.EventBus) Option {
	return func(o *options) { o.bus = bus }
}

// WithLogger sets the store logger
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) publish(e eventbus.DomainEvent) {
	if o.bus != nil {
		o.bus.Publish(e)
	}
}

// columns maps writable contact fields to their column names
var columns = map[string]string{
	domain.FieldName:         "name",
	domain.FieldEmail:        "email",
	domain.FieldMobilePhone:  "mobile_phone",
	domain.FieldBillingCity:  "billing_city",
	domain.FieldBillingState: "billing_state",
}

// columnOrder fixes the statement order of writable columns
var columnOrder = []string{
	domain.FieldName,
	domain.FieldEmail,
	domain.FieldMobilePhone,
	domain.FieldBillingCity,
	domain.FieldBillingState,
}

// writtenFields lists the writable fields present in rec, in column order
func writtenFields(rec domain.Record) []string {
	var fields []string
	for _, f := range columnOrder {
		if _, ok := rec[f]; ok {
			fields = append(fields, f)
		}
	}
	return fields
}
