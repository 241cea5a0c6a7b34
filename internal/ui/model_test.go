package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"contactsearch/internal/config"
	"contactsearch/internal/contacts"
	"contactsearch/internal/domain"
	"contactsearch/internal/eventbus"
	"contactsearch/internal/platform"
	"contactsearch/internal/store"
	"contactsearch/internal/ui/views"
)

// syncBus queues published events so the test can hand them to the model in order
type syncBus struct {
	mu     sync.Mutex
	events []eventbus.DomainEvent
}

func (b *syncBus) Publish(e eventbus.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, e)
}

func (b *syncBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() { return func() {} }
func (b *syncBus) Close()                                                     {}

func (b *syncBus) take() []eventbus.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.events
	b.events = nil
	return out
}

type harness struct {
	t     *testing.T
	model *Model
	store *store.MemoryStore
	bus   *syncBus
	logs  *observer.ObservedLogs
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)

	st := store.NewMemoryStore()
	bus := &syncBus{}
	comp, err := contacts.New(ctx, st, st, platform.NewNavigator(bus, st, log), platform.NewToaster(bus), contacts.WithLogger(log))
	require.NoError(t, err)

	m := NewModel(ctx, comp, st, config.DefaultConfig(), log)
	h := &harness{t: t, model: m, store: st, bus: bus, logs: logs}
	h.run(m.comp.Init())
	h.send(tea.WindowSizeMsg{Width: 140, Height: 40})
	return h
}

func (h *harness) contact(name, city string) string {
	h.t.Helper()
	id, err := h.store.CreateRecord(context.Background(), domain.Record{
		domain.FieldName:        name,
		domain.FieldBillingCity: city,
	})
	require.NoError(h.t, err)
	return id
}

// exec runs cmd, dropping timers and other slow commands
func exec(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(50 * time.Millisecond):
		return nil
	}
}

// run executes cmd and feeds every resulting message and bus event back into
// the model until nothing is left
func (h *harness) run(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for {
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if c == nil {
				continue
			}
			switch msg := exec(c).(type) {
			case nil, tea.QuitMsg, spinner.TickMsg:
			case tea.BatchMsg:
				queue = append(queue, msg...)
			default:
				_, next := h.model.Update(msg)
				queue = append(queue, next)
			}
		}
		events := h.bus.take()
		if len(events) == 0 {
			return
		}
		for _, e := range events {
			_, next := h.model.Update(EventMsg{Event: e})
			queue = append(queue, next)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.model.Update(msg)
	h.run(cmd)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func (h *harness) press(k tea.KeyType) {
	h.send(tea.KeyMsg{Type: k})
}

func (h *harness) key(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func (h *harness) toastTitles() []string {
	var out []string
	for _, t := range h.model.toasts.toasts() {
		out = append(out, t.Title)
	}
	return out
}

func names(rows []domain.ContactRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

func TestTypingSearchesAndShowsTable(t *testing.T) {
	h := newHarness(t)
	h.contact("Homer Simpson", "Springfield")
	h.contact("Marge Simpson", "Springfield")
	h.contact("Ned Flanders", "Springfield")

	assert.Contains(t, h.model.View(), "Type a name to search contacts")

	h.typeText("simp")
	assert.Equal(t, "simp", h.model.comp.Keyword())
	assert.Equal(t, []string{"Homer Simpson", "Marge Simpson"}, names(h.model.rows))

	view := h.model.View()
	assert.Contains(t, view, "Marge Simpson")
	assert.Contains(t, view, "2 contacts")
	assert.NotContains(t, view, "Ned Flanders")
}

func TestClearingSearchHidesTable(t *testing.T) {
	h := newHarness(t)
	h.contact("Homer Simpson", "Springfield")

	h.typeText("ho")
	require.True(t, h.model.comp.ShowTable())

	h.press(tea.KeyBackspace)
	h.press(tea.KeyBackspace)
	assert.False(t, h.model.comp.ShowTable())
	assert.Equal(t, domain.ResultEmpty, h.model.comp.Result().Kind())
	assert.Empty(t, h.model.rows)
	assert.Contains(t, h.model.View(), "Type a name to search contacts")
}

func TestNoMatchesMessage(t *testing.T) {
	h := newHarness(t)
	h.typeText("zz")
	assert.Contains(t, h.model.View(), "No contacts found.")
}

func TestDeleteKeyRemovesRowAndToasts(t *testing.T) {
	h := newHarness(t)
	h.contact("Homer Simpson", "Springfield")
	h.contact("Marge Simpson", "Springfield")
	h.typeText("simpson")

	h.press(tea.KeyTab)
	h.key("d")

	assert.Equal(t, []string{"Marge Simpson"}, names(h.model.rows))
	assert.Equal(t, []string{"Success"}, h.toastTitles())
	assert.Contains(t, h.model.View(), "Record is successfully deleted")
}

func TestDeleteBlockedByCaseKeepsRow(t *testing.T) {
	h := newHarness(t)
	id := h.contact("Moe Szyslak", "Springfield")
	_, err := h.store.AddCase(context.Background(), domain.Case{Subject: "Tap is broken", ContactID: id})
	require.NoError(t, err)
	h.typeText("moe")

	h.press(tea.KeyTab)
	h.key("d")

	assert.Equal(t, []string{"Moe Szyslak"}, names(h.model.rows))
	assert.Equal(t, []string{"Sorry"}, h.toastTitles())
	assert.Equal(t, 1, h.logs.FilterMessage("delete failed").Len())
}

func TestViewOpensDetailPage(t *testing.T) {
	h := newHarness(t)
	h.contact("Lisa Simpson", "Springfield")
	h.typeText("lisa")

	h.press(tea.KeyTab)
	h.key("v")

	require.Equal(t, views.PageDetail, h.model.page)
	assert.Equal(t, "Lisa Simpson", h.model.detail[domain.FieldName])
	assert.Contains(t, h.model.View(), "Billing City")

	h.press(tea.KeyEsc)
	assert.Equal(t, views.PageSearch, h.model.page)
	assert.Equal(t, "lisa", h.model.comp.Keyword())
}

func TestEditSavesAndRefreshesRow(t *testing.T) {
	h := newHarness(t)
	h.contact("Bart Simpson", "Springfield")
	h.typeText("bart")

	h.press(tea.KeyTab)
	h.key("e")
	require.Equal(t, views.PageForm, h.model.page)
	require.NotNil(t, h.model.form)
	assert.Equal(t, "Bart Simpson", h.model.form.inputs[0].Value())

	h.key(" Jr")
	h.press(tea.KeyCtrlS)

	assert.Equal(t, views.PageSearch, h.model.page)
	assert.Equal(t, []string{"Bart Simpson Jr"}, names(h.model.rows))
	assert.Equal(t, []string{"Contact saved"}, h.toastTitles())
}

func TestEditFromDetailPage(t *testing.T) {
	h := newHarness(t)
	h.contact("Lisa Simpson", "Springfield")
	h.typeText("lisa")
	h.press(tea.KeyTab)
	h.key("v")

	h.key("e")
	require.Equal(t, views.PageForm, h.model.page)
	assert.Equal(t, "Edit Contact", h.model.form.title())
}

func TestNewContactClearsSearch(t *testing.T) {
	h := newHarness(t)
	h.contact("Homer Simpson", "Springfield")
	h.typeText("homer")

	h.press(tea.KeyTab)
	h.key("n")
	require.Equal(t, views.PageForm, h.model.page)
	assert.Equal(t, "New Contact", h.model.form.title())

	h.key("Abe Simpson")
	h.press(tea.KeyCtrlS)

	assert.Equal(t, views.PageSearch, h.model.page)
	assert.Equal(t, "", h.model.comp.Keyword())
	assert.Equal(t, "", h.model.search.Value())
	assert.False(t, h.model.comp.ShowTable())
	assert.Equal(t, []string{"Contact created"}, h.toastTitles())

	rows, err := h.store.SearchContacts(context.Background(), "abe")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFormEscapeCancels(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyTab)
	h.key("n")
	require.Equal(t, views.PageForm, h.model.page)

	h.key("Nobody")
	h.press(tea.KeyEsc)

	assert.Equal(t, views.PageSearch, h.model.page)
	assert.Empty(t, h.toastTitles())
	rows, err := h.store.SearchContacts(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestActionMenuDispatchesSelectedAction(t *testing.T) {
	h := newHarness(t)
	h.contact("Milhouse Van Houten", "Springfield")
	h.typeText("milhouse")
	h.press(tea.KeyTab)

	h.press(tea.KeyEnter)
	require.True(t, h.model.menuOpen)
	assert.Contains(t, h.model.View(), "> View")

	h.press(tea.KeyDown)
	h.press(tea.KeyEnter)
	assert.False(t, h.model.menuOpen)
	assert.Equal(t, views.PageForm, h.model.page)
}

func TestToastExpires(t *testing.T) {
	h := newHarness(t)
	h.send(EventMsg{Event: eventbus.ToastRequestedEvent{Toast: domain.Toast{Title: "Hi", Message: "there"}}})
	require.Len(t, h.model.toasts.items, 1)

	h.send(toastExpiredMsg{id: h.model.toasts.items[0].id})
	assert.Empty(t, h.model.toasts.items)
}

func TestToastTrayKeepsNewest(t *testing.T) {
	tray := newToastTray(time.Second)
	for _, title := range []string{"a", "b", "c", "d"} {
		tray.push(domain.Toast{Title: title})
	}
	var titles []string
	for _, tt := range tray.toasts() {
		titles = append(titles, tt.Title)
	}
	assert.Equal(t, []string{"b", "c", "d"}, titles)
}

func TestHelpPagerWithoutProgramIsLogged(t *testing.T) {
	h := newHarness(t)
	h.press(tea.KeyTab)
	h.key("?")
	assert.Equal(t, 1, h.logs.FilterMessage("pager failed").Len())
}

func TestHelpContentListsRowActions(t *testing.T) {
	h := newHarness(t)
	content := h.model.helpText.RenderHelpContent()
	assert.Contains(t, content, "Row Actions")
	assert.Contains(t, content, "delete")
	assert.Contains(t, content, "new contact")
}

func TestRefreshKeyPicksUpNewRecords(t *testing.T) {
	h := newHarness(t)
	h.contact("Homer Simpson", "Springfield")

	h.typeText("simp")
	require.Equal(t, []string{"Homer Simpson"}, names(h.model.rows))

	h.contact("Bart Simpson", "Springfield")
	h.press(tea.KeyTab)
	h.key("r")
	assert.Equal(t, []string{"Bart Simpson", "Homer Simpson"}, names(h.model.rows))
}
