package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
)

// Page identifies the screen being shown
type Page int

const (
	PageSearch Page = iota
	PageDetail
	PageForm
)

// FormField is one rendered form input
type FormField struct {
	Label   string
	Input   string
	Focused bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Page   Page

	SearchInput string
	ShowTable   bool
	Result      domain.ResultKind
	ResultLen   int
	Err         error
	Table       string
	Spinner     string
	ActionHints string
	Menu        string

	Detail        domain.Record
	DetailColumns []grid.Column

	FormTitle  string
	FormFields []FormField
	FormError  string

	Toasts        []domain.Toast
	StatusMessage string
	HelpView      string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Popups returns the popup renderer
func (r *Renderer) Popups() *PopupRenderer {
	return r.popupRender
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}
	content.WriteString(r.styles.Title.Render("Contacts"))
	content.WriteString("\n")

	switch state.Page {
	case PageDetail:
		content.WriteString(r.RenderDetail(state.Detail, state.DetailColumns))
	case PageForm:
		content.WriteString(r.renderForm(state))
	default:
		content.WriteString(r.renderSearch(state))
	}

	if len(state.Toasts) > 0 {
		content.WriteString("\n\n")
		content.WriteString(r.RenderToasts(state.Toasts))
	}

	if state.StatusMessage != "" {
		content.WriteString("\n")
		content.WriteString(r.styles.Status.Render(state.StatusMessage))
	}

	body := content.String()
	if state.Menu != "" {
		body = r.popupRender.RenderPopupOverlay(body, state.Menu, state.Height-2, state.Width-4)
	}

	if state.HelpView != "" {
		body = r.padToBottom(body, state.Height) + r.styles.Help.Render(state.HelpView)
	}
	return r.styles.Main.Render(body)
}

// padToBottom pushes the help line to the last row of the terminal
func (r *Renderer) padToBottom(body string, height int) string {
	// Account for container padding (1 top, 1 bottom from Padding(1, 2))
	available := height - 2
	if available <= 0 {
		return body + "\n\n"
	}
	lines := strings.Count(body, "\n") + 1
	padding := available - lines - 1
	if padding < 1 {
		padding = 1
	}
	return body + strings.Repeat("\n", padding)
}

func (r *Renderer) renderSearch(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.Prompt.Render("Search: "))
	b.WriteString(state.SearchInput)
	b.WriteString("\n\n")

	if !state.ShowTable {
		b.WriteString(r.styles.Dim.Render("Type a name to search contacts. Press n to create one."))
		return b.String()
	}

	switch state.Result {
	case domain.ResultLoading:
		b.WriteString(r.styles.Loading.Render(state.Spinner + " Searching..."))
	case domain.ResultFailure:
		msg := "search failed"
		if state.Err != nil {
			msg = state.Err.Error()
		}
		b.WriteString(r.styles.StatusError.Render("Error: " + msg))
	case domain.ResultSuccess:
		if state.ResultLen == 0 {
			b.WriteString(r.styles.Dim.Render("No contacts found."))
			break
		}
		b.WriteString(r.styles.TableBox.Render(state.Table))
		b.WriteString("\n")
		summary := fmt.Sprintf("%d contact", state.ResultLen)
		if state.ResultLen != 1 {
			summary += "s"
		}
		b.WriteString(r.styles.Dim.Render(summary + "  |  " + state.ActionHints))
	default:
		b.WriteString(r.styles.Dim.Render("No contacts found."))
	}
	return b.String()
}

func (r *Renderer) renderForm(state ViewState) string {
	var b strings.Builder
	b.WriteString(r.styles.ToastTitle.Render(state.FormTitle))
	b.WriteString("\n\n")
	for _, f := range state.FormFields {
		label := r.styles.Label.Render(f.Label)
		if f.Focused {
			label = r.styles.FocusedLabel.Render(f.Label)
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, f.Input))
		b.WriteString("\n")
	}
	if state.FormError != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.StatusError.Render(state.FormError))
	}
	return b.String()
}

// RenderDetail renders a record as label/value lines in column order
func (r *Renderer) RenderDetail(rec domain.Record, columns []grid.Column) string {
	var b strings.Builder
	for i, c := range columns {
		if i > 0 {
			b.WriteString("\n")
		}
		value := FormatCell(c.Type, rec[c.FieldName])
		b.WriteString(r.styles.Label.Render(c.Label))
		b.WriteString(r.styles.Value.Render(value))
	}
	return b.String()
}

// RenderToasts renders the visible toasts, newest last
func (r *Renderer) RenderToasts(toasts []domain.Toast) string {
	rendered := make([]string, len(toasts))
	for i, t := range toasts {
		body := r.styles.ToastTitle.Render(t.Title) + "\n" + t.Message
		rendered[i] = r.styles.ToastStyle(t.Variant).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}
