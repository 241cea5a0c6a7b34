package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"contactsearch/internal/grid"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderActionMenu renders the row action menu for the named contact
func (pr *PopupRenderer) RenderActionMenu(contactName string, actions []grid.Action, cursor int) string {
	var b strings.Builder
	b.WriteString(pr.styles.ToastTitle.Render(contactName))
	for i, a := range actions {
		b.WriteString("\n")
		line := "  " + a.Label + "  " + pr.styles.Dim.Render("("+a.Key+")")
		if i == cursor {
			b.WriteString(pr.styles.MenuSelected.Render("> " + a.Label))
			b.WriteString("  " + pr.styles.Dim.Render("("+a.Key+")"))
			continue
		}
		b.WriteString(pr.styles.MenuItem.Render(line))
	}
	return pr.styles.Menu.Render(b.String())
}

// RenderPopupOverlay centers popup in a width x height area. The main content
// is dimmed above the popup.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popup string, height, width int) string {
	if width <= 0 || height <= 0 {
		return mainContent + "\n" + popup
	}

	popupH := lipgloss.Height(popup)
	baseH := height - popupH
	if baseH < 0 {
		baseH = 0
	}
	lines := strings.Split(mainContent, "\n")
	if len(lines) > baseH {
		lines = lines[:baseH]
	}
	dimmed := pr.styles.Dim.Render(strings.Join(lines, "\n"))

	placed := lipgloss.Place(width, popupH, lipgloss.Center, lipgloss.Center, popup)
	return lipgloss.JoinVertical(lipgloss.Left, dimmed, placed)
}
