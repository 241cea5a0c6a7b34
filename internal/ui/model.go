package ui

import (
	"context"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"contactsearch/internal/config"
	"contactsearch/internal/contacts"
	"contactsearch/internal/domain"
	"contactsearch/internal/eventbus"
	"contactsearch/internal/grid"
	"contactsearch/internal/ui/views"
)

type focus int

const (
	focusSearch focus = iota
	focusTable
)

// Model represents the UI state
type Model struct {
	ctx    context.Context
	config *config.Config
	log    *zap.Logger
	comp   *contacts.Component
	writer RecordWriter

	// UI-specific state
	width       int
	height      int
	page        views.Page
	focus       focus
	inPagerMode bool // tracks if we're currently in pager mode
	status      string

	search  textinput.Model
	table   table.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	rows       []domain.ContactRow // rows behind the table, in table order
	menuOpen   bool
	menuCursor int
	detail     domain.Record
	form       *contactForm

	grid     *views.GridRenderer
	renderer *views.Renderer
	helpText *HelpRenderer
	pager    *PagerOps
	toasts   *toastTray

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model hosting comp. Form saves go through writer.
func NewModel(ctx context.Context, comp *contacts.Component, writer RecordWriter, cfg *config.Config, log *zap.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	layout := comp.Layout()
	renderer := views.NewRenderer()
	gr := views.NewGridRenderer(layout)

	search := textinput.New()
	search.Prompt = "" // Prompt is handled in the UI layer
	search.Placeholder = "contact name"
	search.CharLimit = 80
	search.Width = 40
	search.Focus()

	tbl := table.New(
		table.WithColumns(gr.Columns(0)),
		table.WithHeight(cfg.UISettings.TableHeight),
		table.WithStyles(renderer.Styles().Table),
	)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = renderer.Styles().Loading

	keys := newKeyMap(layout)
	return &Model{
		ctx:      ctx,
		config:   cfg,
		log:      log,
		comp:     comp,
		writer:   writer,
		search:   search,
		table:    tbl,
		spinner:  sp,
		help:     help.New(),
		keys:     keys,
		grid:     gr,
		renderer: renderer,
		helpText: NewHelpRenderer(keys),
		pager:    NewPagerOps(),
		toasts:   newToastTray(time.Duration(cfg.UISettings.ToastSeconds) * time.Second),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.comp.Init(), textinput.Blink, m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(m.grid.Columns(msg.Width - 8))

	case tea.KeyMsg:
		cmd = m.handleKey(msg)

	case spinner.TickMsg:
		m.spinner, cmd = m.spinner.Update(msg)

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	case toastExpiredMsg:
		m.toasts.expire(msg.id)

	case formSavedMsg:
		cmd = m.formSaved(msg)

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.Warn("pager failed", zap.Error(msg.err))
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	default:
		cmd = tea.Batch(m.comp.Update(msg), m.updateInputs(msg))
	}

	m.syncTable()
	return m, cmd
}

// updateInputs forwards cursor blinks to the active text input
func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	if m.page == views.PageForm && m.form != nil {
		return m.form.update(msg)
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

// syncTable rebuilds the table rows when the result changed
func (m *Model) syncTable() {
	rows := m.comp.Result().Rows()
	if slices.Equal(rows, m.rows) {
		return
	}
	m.rows = rows
	m.table.SetRows(m.grid.Rows(rows))
	if n := len(rows); n > 0 && m.table.Cursor() >= n {
		m.table.SetCursor(n - 1)
	}
	if len(rows) == 0 {
		m.menuOpen = false
	}
}

// selectedRow returns the contact under the table cursor
func (m *Model) selectedRow() (domain.ContactRow, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.rows) {
		return domain.ContactRow{}, false
	}
	return m.rows[i], true
}

func (m *Model) focusOnSearch() tea.Cmd {
	m.focus = focusSearch
	m.table.Blur()
	return m.search.Focus()
}

func (m *Model) focusOnTable() {
	m.focus = focusTable
	m.search.Blur()
	m.table.Focus()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.menuOpen {
		return m.handleMenuKey(msg)
	}
	switch m.page {
	case views.PageDetail:
		return m.handleDetailKey(msg)
	case views.PageForm:
		return m.handleFormKey(msg)
	}
	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleTableKey(msg)
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Table), key.Matches(msg, m.keys.Back):
		m.focusOnTable()
		return nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if text := m.search.Value(); text != before {
		return tea.Batch(cmd, m.comp.InputChanged(text))
	}
	return cmd
}

func (m *Model) handleTableKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Search):
		return m.focusOnSearch()
	case key.Matches(msg, m.keys.New):
		return m.comp.NewContact()
	case key.Matches(msg, m.keys.Refresh):
		return m.comp.Refresh()
	case key.Matches(msg, m.keys.Help):
		return m.showPager(m.helpText.RenderHelpContent())
	case key.Matches(msg, m.keys.Menu):
		if _, ok := m.selectedRow(); ok {
			m.menuOpen = true
			m.menuCursor = 0
		}
		return nil
	}

	if a, ok := m.comp.Layout().ActionForKey(msg.String()); ok {
		return m.dispatch(a)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return cmd
}

// dispatch runs a row action against the selected row
func (m *Model) dispatch(a grid.Action) tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	return m.comp.RowAction(a.Name, row)
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	actions := m.comp.Layout().Actions()
	switch msg.String() {
	case "esc", "q":
		m.menuOpen = false
	case "up", "k":
		if m.menuCursor > 0 {
			m.menuCursor--
		}
	case "down", "j":
		if m.menuCursor < len(actions)-1 {
			m.menuCursor++
		}
	case "enter":
		m.menuOpen = false
		if m.menuCursor < len(actions) {
			return m.dispatch(actions[m.menuCursor])
		}
	default:
		if a, ok := m.comp.Layout().ActionForKey(msg.String()); ok {
			m.menuOpen = false
			return m.dispatch(a)
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back), msg.String() == "q":
		m.closePage()
	case key.Matches(msg, m.keys.Pager):
		content := m.renderer.RenderDetail(m.detail, m.comp.Layout().Columns())
		return m.showPager(content)
	case key.Matches(msg, m.keys.Edit):
		return m.comp.RowAction(grid.ActionEdit, domain.RowFromRecord(m.detail))
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	f := m.form
	if f == nil {
		m.closePage()
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.closePage()
		return nil
	case key.Matches(msg, m.keys.Save):
		return m.saveForm()
	case msg.String() == "enter":
		if f.atLast() {
			return m.saveForm()
		}
		f.next()
		return nil
	case key.Matches(msg, m.keys.Next):
		f.next()
		return nil
	case key.Matches(msg, m.keys.Prev):
		f.prev()
		return nil
	}
	return f.update(msg)
}

func (m *Model) saveForm() tea.Cmd {
	if m.form.saving || m.writer == nil {
		return nil
	}
	return m.form.save(m.ctx, m.writer)
}

// formSaved hands a successful save to the component as a child-form result
func (m *Model) formSaved(msg formSavedMsg) tea.Cmd {
	if m.form == nil {
		return nil
	}
	if msg.err != nil {
		m.form.saving = false
		m.form.err = msg.err.Error()
		m.log.Warn("failed to save contact", zap.String("id", msg.id), zap.Error(msg.err))
		return nil
	}

	m.closePage()
	if msg.action == domain.ActionNew {
		m.search.SetValue("")
		return tea.Batch(m.focusOnSearch(), m.comp.Update(contacts.CreatedMsg{ID: msg.id}))
	}
	return m.comp.Update(contacts.SavedMsg{ID: msg.id})
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ToastRequestedEvent:
		return m.toasts.push(e.Toast)
	case eventbus.NavigationRequestedEvent:
		return m.openPage(e.Page, e.Record)
	case eventbus.ErrorEvent:
		m.status = e.Message
	case eventbus.RecordCreatedEvent, eventbus.RecordUpdatedEvent, eventbus.RecordDeletedEvent:
		m.log.Debug("record changed", zap.String("event", string(event.Type())))
	}
	return nil
}

// openPage shows the page the navigator asked for
func (m *Model) openPage(page domain.PageRef, rec domain.Record) tea.Cmd {
	m.menuOpen = false
	switch {
	case page.Kind == domain.RecordPage && page.Action == domain.ActionView:
		m.page = views.PageDetail
		m.detail = rec
		m.form = nil
	case page.Action == domain.ActionEdit, page.Action == domain.ActionNew:
		m.page = views.PageForm
		m.form = newContactForm(page, rec, m.comp.Layout().Columns())
		m.detail = nil
		return textinput.Blink
	default:
		m.log.Debug("ignoring navigation", zap.String("kind", string(page.Kind)), zap.String("action", string(page.Action)))
	}
	return nil
}

func (m *Model) closePage() {
	m.page = views.PageSearch
	m.form = nil
	m.detail = nil
}

// showPager returns a command that shows content using the ov pager
func (m *Model) showPager(content string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		if m.program != nil {
			m.program.Send(pauseRenderingMsg{})
		}

		err := m.pager.ShowInPager(content)

		// Send resume message to restart rendering
		if m.program != nil {
			m.program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{err: err}
	}
}

// currentHelp returns the key help for the active page and focus
func (m *Model) currentHelp() help.KeyMap {
	switch m.page {
	case views.PageDetail:
		return detailKeys{m.keys}
	case views.PageForm:
		return formKeys{m.keys}
	}
	if m.focus == focusSearch {
		return searchKeys{m.keys}
	}
	return tableKeys{m.keys}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	result := m.comp.Result()
	state := views.ViewState{
		Width:         m.width,
		Height:        m.height,
		Page:          m.page,
		SearchInput:   m.search.View(),
		ShowTable:     m.comp.ShowTable(),
		Result:        result.Kind(),
		ResultLen:     result.Len(),
		Err:           m.comp.Err(),
		Table:         m.table.View(),
		Spinner:       m.spinner.View(),
		ActionHints:   m.grid.ActionHints(),
		Detail:        m.detail,
		DetailColumns: m.comp.Layout().Columns(),
		Toasts:        m.toasts.toasts(),
		StatusMessage: m.status,
	}
	if m.form != nil {
		state.FormTitle = m.form.title()
		state.FormFields = m.form.fields()
		state.FormError = m.form.err
	}
	if m.menuOpen {
		if row, ok := m.selectedRow(); ok {
			state.Menu = m.renderer.Popups().RenderActionMenu(row.Name, m.comp.Layout().Actions(), m.menuCursor)
		}
	}
	if m.config.UISettings.ShowHelp {
		state.HelpView = m.help.View(m.currentHelp())
	}
	return m.renderer.Render(state)
}
