package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
	"contactsearch/internal/ui/views"
)

// RecordWriter saves the records the contact form edits
type RecordWriter interface {
	CreateRecord(ctx context.Context, rec domain.Record) (string, error)
	UpdateRecord(ctx context.Context, id string, rec domain.Record) error
}

// contactForm is the record edit and new-contact page
type contactForm struct {
	action   domain.PageAction
	recordID string
	columns  []grid.Column
	inputs   []textinput.Model
	focus    int
	err      string
	saving   bool
}

// newContactForm builds a form over the layout columns, prefilled from rec
func newContactForm(page domain.PageRef, rec domain.Record, columns []grid.Column) *contactForm {
	f := &contactForm{
		action:   page.Action,
		recordID: page.RecordID,
		columns:  columns,
		inputs:   make([]textinput.Model, len(columns)),
	}
	for i, c := range columns {
		ti := textinput.New()
		ti.Prompt = "" // Prompt is handled in the UI layer
		ti.CharLimit = 255
		ti.Width = c.Width + 8
		ti.Placeholder = c.Label
		ti.SetValue(rec[c.FieldName])
		f.inputs[i] = ti
	}
	f.setFocus(0)
	return f
}

func (f *contactForm) title() string {
	if f.action == domain.ActionNew {
		return "New Contact"
	}
	return "Edit Contact"
}

func (f *contactForm) setFocus(i int) {
	if len(f.inputs) == 0 {
		return
	}
	i = (i + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f *contactForm) next() { f.setFocus(f.focus + 1) }
func (f *contactForm) prev() { f.setFocus(f.focus - 1) }

// atLast reports whether the last input has focus
func (f *contactForm) atLast() bool {
	return f.focus == len(f.inputs)-1
}

// update forwards msg to the focused input
func (f *contactForm) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// record collects the input values keyed by field name
func (f *contactForm) record() domain.Record {
	rec := make(domain.Record, len(f.columns))
	for i, c := range f.columns {
		if c.FieldName == "" {
			continue
		}
		rec[c.FieldName] = f.inputs[i].Value()
	}
	return rec
}

// save runs the create or update call for the form
func (f *contactForm) save(ctx context.Context, w RecordWriter) tea.Cmd {
	f.saving = true
	f.err = ""
	action, id, rec := f.action, f.recordID, f.record()
	return func() tea.Msg {
		if action == domain.ActionNew {
			newID, err := w.CreateRecord(ctx, rec)
			if err != nil {
				return formSavedMsg{action: action, err: fmt.Errorf("failed to create contact: %w", err)}
			}
			return formSavedMsg{action: action, id: newID}
		}
		if err := w.UpdateRecord(ctx, id, rec); err != nil {
			return formSavedMsg{action: action, id: id, err: fmt.Errorf("failed to save contact: %w", err)}
		}
		return formSavedMsg{action: action, id: id}
	}
}

// fields renders the inputs for the view state
func (f *contactForm) fields() []views.FormField {
	out := make([]views.FormField, len(f.inputs))
	for i, c := range f.columns {
		out[i] = views.FormField{
			Label:   c.Label,
			Input:   f.inputs[i].View(),
			Focused: i == f.focus,
		}
	}
	return out
}
