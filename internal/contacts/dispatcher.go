package contacts

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contactsearch/internal/domain"
	"contactsearch/internal/grid"
)

// RowAction routes a grid row action. Unknown action names are ignored.
func (c *Component) RowAction(name string, row domain.ContactRow) tea.Cmd {
	switch name {
	case grid.ActionView:
		return c.navigate(domain.RecordPageRef(row.ID, "", domain.ActionView))
	case grid.ActionEdit:
		return c.navigate(domain.RecordPageRef(row.ID, domain.ContactObject, domain.ActionEdit))
	case grid.ActionDelete:
		c.selectedID = row.ID
		return c.deleteSelected()
	default:
		c.log.Debug("ignoring unknown row action", zap.String("action", name), zap.String("id", row.ID))
		return nil
	}
}

// NewContact opens the new-contact page
func (c *Component) NewContact() tea.Cmd {
	return c.navigate(domain.ObjectPageRef(domain.ContactObject, domain.ActionNew))
}

func (c *Component) navigate(page domain.PageRef) tea.Cmd {
	ctx, nav := c.ctx, c.nav
	return func() tea.Msg {
		return navigatedMsg{page: page, err: nav.Navigate(ctx, page)}
	}
}

// navigated continues after a navigation call. Failures are logged only.
func (c *Component) navigated(msg navigatedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn("navigation failed",
			zap.String("kind", string(msg.page.Kind)),
			zap.String("action", string(msg.page.Action)),
			zap.String("id", msg.page.RecordID),
			zap.Error(msg.err))
		return nil
	}
	if msg.page.Kind == domain.RecordPage && msg.page.Action == domain.ActionEdit {
		return c.refreshAfterEdit(msg.page.RecordID)
	}
	return nil
}
