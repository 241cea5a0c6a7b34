package views

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"contactsearch/internal/domain"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title        lipgloss.Style
	Prompt       lipgloss.Style
	Dim          lipgloss.Style
	Help         lipgloss.Style
	Main         lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Loading      lipgloss.Style
	Label        lipgloss.Style
	Value        lipgloss.Style
	FocusedLabel lipgloss.Style
	Menu         lipgloss.Style
	MenuItem     lipgloss.Style
	MenuSelected lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ToastTitle   lipgloss.Style
	Table        table.Styles
	TableBox     lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	toast := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(44)

	tbl := table.DefaultStyles()
	tbl.Header = tbl.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("241")).
		BorderBottom(true).
		Bold(true)
	tbl.Selected = tbl.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		Prompt:       lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Dim:          lipgloss.NewStyle().Faint(true),
		Help:         lipgloss.NewStyle().Faint(true),
		Main:         lipgloss.NewStyle().Padding(1, 2),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		StatusError:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Loading:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Width(16),
		Value:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		FocusedLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true).Width(16),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		MenuItem:     lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		ToastSuccess: toast.BorderForeground(lipgloss.Color("78")),  // green
		ToastError:   toast.BorderForeground(lipgloss.Color("203")), // red
		ToastTitle:   lipgloss.NewStyle().Bold(true),
		Table:        tbl,
		TableBox: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")),
	}
}

// ToastStyle returns the frame for a toast variant
func (s *Styles) ToastStyle(v domain.ToastVariant) lipgloss.Style {
	if v == domain.ToastError {
		return s.ToastError
	}
	return s.ToastSuccess
}
