package contacts

import (
	"contactsearch/internal/domain"
	"contactsearch/internal/reactive"
)

// SearchResult is a resolution of the contact search
type SearchResult = reactive.Result[string, []domain.ContactRow]

// CreatedMsg reports that the new-contact form saved a record
type CreatedMsg struct {
	ID string
}

// SavedMsg reports that the edit form saved a record
type SavedMsg struct {
	ID string
}

// navigatedMsg is the continuation of a navigation call
type navigatedMsg struct {
	page domain.PageRef
	err  error
}

// editRefreshedMsg carries the forced refresh that follows edit navigation
type editRefreshedMsg struct {
	id     string
	result SearchResult
}

// recordFetchedMsg carries the record fetched for the edit merge
type recordFetchedMsg struct {
	id     string
	record domain.Record
	err    error
}

// deletedMsg is the continuation of a delete call
type deletedMsg struct {
	id  string
	err error
}
