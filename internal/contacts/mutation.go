package contacts

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contactsearch/internal/domain"
)

func (c *Component) deleteSelected() tea.Cmd {
	ctx, records, id := c.ctx, c.records, c.selectedID
	return func() tea.Msg {
		return deletedMsg{id: id, err: records.DeleteRecord(ctx, id)}
	}
}

// deleted finishes the delete path. The refresh is only issued once the delete
// call has returned so the next result reflects it.
func (c *Component) deleted(msg deletedMsg) tea.Cmd {
	if msg.err != nil {
		c.log.Warn("delete failed", zap.String("id", msg.id), zap.Error(msg.err))
		c.toaster.ShowToast(deleteFailedToast)
		return nil
	}

	c.toaster.ShowToast(deletedToast)
	c.query.Purge()
	return c.Refresh()
}

// created runs after the new-contact form succeeds: the search is cleared,
// which hides the grid until the user searches again.
func (c *Component) created(msg CreatedMsg) tea.Cmd {
	c.log.Debug("contact created", zap.String("id", msg.ID))
	c.toaster.ShowToast(createdToast)
	c.query.Purge()
	c.InputChanged("")
	return c.Refresh()
}

func (c *Component) saved(msg SavedMsg) tea.Cmd {
	c.log.Debug("contact saved", zap.String("id", msg.ID))
	c.toaster.ShowToast(savedToast)
	c.query.Purge()
	return c.Refresh()
}

// refreshAfterEdit forces a refresh and hands its result to the edit merge
func (c *Component) refreshAfterEdit(id string) tea.Cmd {
	refresh := c.query.Refresh()
	if refresh == nil {
		return nil
	}
	return func() tea.Msg {
		res, _ := refresh().(SearchResult)
		return editRefreshedMsg{id: id, result: res}
	}
}

// mergeEdited fetches the edited record if it is still part of the result
func (c *Component) mergeEdited(id string) tea.Cmd {
	if _, ok := c.result.Find(id); !ok {
		c.log.Debug("edited contact not in result, skipping merge", zap.String("id", id))
		return nil
	}
	ctx, records, fields := c.ctx, c.records, c.layout.FieldNames()
	return func() tea.Msg {
		rec, err := records.GetRecord(ctx, id, fields)
		return recordFetchedMsg{id: id, record: rec, err: err}
	}
}

// applyMerge replaces the edited row with the fetched record, keeping its id
// and position
func (c *Component) applyMerge(msg recordFetchedMsg) {
	if msg.err != nil {
		c.log.Warn("failed to fetch edited contact", zap.String("id", msg.id), zap.Error(msg.err))
		return
	}
	merged, ok := c.result.ReplaceRow(msg.id, domain.RowFromRecord(msg.record))
	if !ok {
		c.log.Debug("edited contact left the result before merge", zap.String("id", msg.id))
		return
	}
	c.result = merged
}
