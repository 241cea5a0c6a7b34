package domain

import "slices"

// Platform field names of the Contact object
const (
	FieldID           = "Id"
	FieldName         = "Name"
	FieldEmail        = "Email"
	FieldMobilePhone  = "MobilePhone"
	FieldBillingCity  = "BillingCity"
	FieldBillingState = "BillingState"
)

// ContactObject is the platform object name for contact records
const ContactObject = "Contact"

// ContactRow represents a contact as shown in the grid
type ContactRow struct {
	ID           string
	Name         string
	Email        string
	MobilePhone  string
	BillingCity  string
	BillingState string
}

// Record is a platform record keyed by field name
type Record map[string]string

// Fields returns the row as a platform record
func (r ContactRow) Fields() Record {
	return Record{
		FieldID:           r.ID,
		FieldName:         r.Name,
		FieldEmail:        r.Email,
		FieldMobilePhone:  r.MobilePhone,
		FieldBillingCity:  r.BillingCity,
		FieldBillingState: r.BillingState,
	}
}

// Field returns the value of a single field by platform name
func (r ContactRow) Field(name string) string {
	return r.Fields()[name]
}

// RowFromRecord builds a row from a platform record. Missing fields are empty.
func RowFromRecord(rec Record) ContactRow {
	return ContactRow{
		ID:           rec[FieldID],
		Name:         rec[FieldName],
		Email:        rec[FieldEmail],
		MobilePhone:  rec[FieldMobilePhone],
		BillingCity:  rec[FieldBillingCity],
		BillingState: rec[FieldBillingState],
	}
}

// Only returns a copy of the record restricted to the given fields.
// An empty field list returns the whole record.
func (rec Record) Only(fields []string) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		if len(fields) == 0 || slices.Contains(fields, k) {
			out[k] = v
		}
	}
	return out
}

// Case is a support case that references a contact
type Case struct {
	ID        string
	Subject   string
	ContactID string
}

// ToastVariant selects the toast styling
type ToastVariant string

const (
	ToastSuccess ToastVariant = "success"
	ToastError   ToastVariant = "error"
)

// Toast is a transient user-facing notification
type Toast struct {
	Title   string
	Message string
	Variant ToastVariant
}

// PageKind identifies the navigation target type
type PageKind string

const (
	ObjectPage PageKind = "standard__objectPage"
	RecordPage PageKind = "standard__recordPage"
)

// PageAction is what the target page does with the object or record
type PageAction string

const (
	ActionView PageAction = "view"
	ActionEdit PageAction = "edit"
	ActionNew  PageAction = "new"
)

// PageRef describes a navigation target
type PageRef struct {
	Kind       PageKind
	ObjectName string // required for object pages, optional for record pages
	RecordID   string // record pages only
	Action     PageAction
}

// ObjectPageRef returns a reference to an object-level page
func ObjectPageRef(objectName string, action PageAction) PageRef {
	return PageRef{Kind: ObjectPage, ObjectName: objectName, Action: action}
}

// RecordPageRef returns a reference to a record page
func RecordPageRef(id, objectName string, action PageAction) PageRef {
	return PageRef{Kind: RecordPage, RecordID: id, ObjectName: objectName, Action: action}
}
