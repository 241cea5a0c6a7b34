package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
)

// GridRenderer maps contact rows to table columns and cells. It keeps no state
// besides the layout.
type GridRenderer struct {
	layout grid.Layout
}

// NewGridRenderer creates a renderer for layout
func NewGridRenderer(layout grid.Layout) *GridRenderer {
	return &GridRenderer{layout: layout}
}

// Columns returns the table columns, stretched to width when it is wider than
// the configured column widths. A zero width keeps the configured widths.
func (g *GridRenderer) Columns(width int) []table.Column {
	cols := g.layout.Columns()
	out := make([]table.Column, len(cols))
	total := 0
	for i, c := range cols {
		out[i] = table.Column{Title: c.Label, Width: c.Width}
		total += c.Width + 2 // cell padding
	}

	if width > total && len(out) > 0 {
		extra := (width - total) / len(out)
		for i := range out {
			out[i].Width += extra
		}
	}
	return out
}

// Rows renders one table row per contact, in result order
func (g *GridRenderer) Rows(rows []domain.ContactRow) []table.Row {
	cols := g.layout.Columns()
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		cells := make(table.Row, len(cols))
		for j, c := range cols {
			cells[j] = FormatCell(c.Type, r.Field(c.FieldName))
		}
		out[i] = cells
	}
	return out
}

// ActionHints renders the row actions as "v view  e edit  d delete"
func (g *GridRenderer) ActionHints() string {
	parts := make([]string, 0, len(g.layout.Actions()))
	for _, a := range g.layout.Actions() {
		parts = append(parts, a.Key+" "+strings.ToLower(a.Label))
	}
	return strings.Join(parts, "  ")
}

// FormatCell presents a raw field value for its column type
func FormatCell(t grid.ColumnType, value string) string {
	value = strings.TrimSpace(value)
	switch t {
	case grid.TypePhone:
		return strings.Join(strings.Fields(value), " ")
	default:
		return value
	}
}
