package contacts

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contactsearch/internal/domain"
)

// bind stores a search resolution as the current result.
//
// Resolutions are applied in arrival order: a slow response to an older
// request overwrites a newer one. Cache-served results schedule one forced
// refresh so staleness stays bounded to a single round trip.
func (c *Component) bind(res SearchResult) tea.Cmd {
	if c.keyword.Value() == "" {
		c.log.Debug("discarding resolution while search is cleared",
			zap.Uint64("seq", res.Seq), zap.String("keyword", res.Params))
		return nil
	}

	if res.Seq < c.boundSeq {
		c.log.Debug("binding out-of-order resolution",
			zap.Uint64("seq", res.Seq), zap.Uint64("bound", c.boundSeq), zap.String("keyword", res.Params))
	} else {
		c.boundSeq = res.Seq
	}

	if res.Err != nil {
		c.result = domain.FailureResult(res.Err)
		c.err = res.Err
		c.log.Warn("contact search failed", zap.String("keyword", res.Params), zap.Error(res.Err))
		return nil
	}

	c.result = domain.SuccessResult(res.Value)
	c.err = nil
	if res.Cached {
		return c.query.Refresh()
	}
	return nil
}
