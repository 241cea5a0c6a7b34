// Package grid holds the immutable column and row-action configuration of the
// contact table.
package grid

import "contactsearch/internal/domain"

// ColumnType controls how a cell value is presented
type ColumnType string

const (
	TypeText  ColumnType = "text"
	TypeEmail ColumnType = "email"
	TypePhone ColumnType = "phone"
)

// Column describes one data column
type Column struct {
	Label     string
	FieldName string
	Type      ColumnType
	Width     int
}

// Action describes one row action
type Action struct {
	Label    string
	Name     string
	Key      string // key binding in the terminal UI
	IconName string
}

// Row action names
const (
	ActionView   = "view"
	ActionEdit   = "edit"
	ActionDelete = "delete"
)

// Layout is the grid configuration. Its accessors return copies.
type Layout struct {
	columns []Column
	actions []Action
}

// NewLayout creates a layout from columns and actions
func NewLayout(columns []Column, actions []Action) Layout {
	return Layout{
		columns: append([]Column(nil), columns...),
		actions: append([]Action(nil), actions...),
	}
}

// DefaultLayout returns the contact table layout
func DefaultLayout() Layout {
	return NewLayout(
		[]Column{
			{Label: "Name", FieldName: domain.FieldName, Type: TypeText, Width: 24},
			{Label: "Email", FieldName: domain.FieldEmail, Type: TypeEmail, Width: 30},
			{Label: "Mobile", FieldName: domain.FieldMobilePhone, Type: TypePhone, Width: 16},
			{Label: "Billing City", FieldName: domain.FieldBillingCity, Type: TypeText, Width: 16},
			{Label: "Billing State", FieldName: domain.FieldBillingState, Type: TypeText, Width: 14},
		},
		[]Action{
			{Label: "View", Name: ActionView, Key: "v", IconName: "utility:preview"},
			{Label: "Edit", Name: ActionEdit, Key: "e", IconName: "utility:edit"},
			{Label: "Delete", Name: ActionDelete, Key: "d", IconName: "utility:delete"},
		},
	)
}

func (l Layout) Columns() []Column {
	return append([]Column(nil), l.columns...)
}

func (l Layout) Actions() []Action {
	return append([]Action(nil), l.actions...)
}

// FieldNames lists the record fields the columns display
func (l Layout) FieldNames() []string {
	names := make([]string, 0, len(l.columns))
	for _, c := range l.columns {
		if c.FieldName != "" {
			names = append(names, c.FieldName)
		}
	}
	return names
}

// ActionForKey finds the action bound to a key
func (l Layout) ActionForKey(key string) (Action, bool) {
	for _, a := range l.actions {
		if a.Key == key {
			return a, true
		}
	}
	return Action{}, false
}
