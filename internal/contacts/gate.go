package contacts

import (
	tea "github.com/charmbracelet/bubbletea"

	"contactsearch/internal/domain"
	"contactsearch/internal/reactive"
)

// InputChanged handles a change of the search box text. An empty text clears
// the results and hides the grid without querying. Any other text shows the
// grid, publishes the keyword (which re-issues the bound query if it changed)
// and forces a refresh of the query handle. No debounce is applied.
func (c *Component) InputChanged(text string) tea.Cmd {
	if text == "" {
		c.keyword.Set("")
		c.result = domain.EmptyResult()
		c.err = nil
		c.showTable = false
		return nil
	}

	c.showTable = true
	issued := c.keyword.Set(text)
	c.result = domain.LoadingResult()
	return reactive.Batch(issued, c.query.Refresh())
}
