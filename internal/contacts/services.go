package contacts

import (
	"context"

	"contactsearch/internal/domain"
)

// Searcher runs the contact search for a keyword
type Searcher interface {
	SearchContacts(ctx context.Context, keyword string) ([]domain.ContactRow, error)
}

// RecordService reads and deletes platform records
type RecordService interface {
	DeleteRecord(ctx context.Context, id string) error
	GetRecord(ctx context.Context, id string, fields []string) (domain.Record, error)
}

// Navigator moves the host to another page
type Navigator interface {
	Navigate(ctx context.Context, page domain.PageRef) error
}

// Toaster shows a notification. Calls must not block.
type Toaster interface {
	ShowToast(t domain.Toast)
}

// Toast texts
var (
	deletedToast = domain.Toast{
		Title:   "Success",
		Message: "Record is successfully deleted",
		Variant: domain.ToastSuccess,
	}
	deleteFailedToast = domain.Toast{
		Title:   "Sorry",
		Message: "Cannot delete this record since it is associated with a case",
		Variant: domain.ToastError,
	}
	createdToast = domain.Toast{
		Title:   "Contact created",
		Message: "New contact has been created",
		Variant: domain.ToastSuccess,
	}
	savedToast = domain.Toast{
		Title:   "Contact saved",
		Message: "Contact has been updated",
		Variant: domain.ToastSuccess,
	}
)
