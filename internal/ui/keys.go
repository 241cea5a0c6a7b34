package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"contactsearch/internal/grid"
)

// keyMap holds the bindings of the search page
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Search  key.Binding
	Table   key.Binding
	Menu    key.Binding
	New     key.Binding
	Refresh key.Binding
	Help    key.Binding
	Quit    key.Binding
	Back    key.Binding
	Pager   key.Binding
	Save    key.Binding
	Next    key.Binding
	Prev    key.Binding

	// Row actions come from the grid layout
	Actions []key.Binding
	Edit    key.Binding
}

func newKeyMap(layout grid.Layout) keyMap {
	km := keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Table:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "results")),
		Menu:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "actions")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new contact")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Pager:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "open in pager")),
		Save:    key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Next:    key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		Prev:    key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	}
	for _, a := range layout.Actions() {
		b := key.NewBinding(
			key.WithKeys(a.Key),
			key.WithHelp(a.Key, strings.ToLower(a.Label)),
		)
		km.Actions = append(km.Actions, b)
		if a.Name == grid.ActionEdit {
			km.Edit = b
		}
	}
	return km
}

// searchKeys is the help shown while the search box has focus
type searchKeys struct{ km keyMap }

func (k searchKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.km.Table, k.km.Back, k.km.Quit}
}

func (k searchKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// tableKeys is the help shown while the result table has focus
type tableKeys struct{ km keyMap }

func (k tableKeys) ShortHelp() []key.Binding {
	b := []key.Binding{k.km.Up, k.km.Down}
	b = append(b, k.km.Actions...)
	return append(b, k.km.Menu, k.km.New, k.km.Refresh, k.km.Search, k.km.Help, k.km.Quit)
}

func (k tableKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.km.Up, k.km.Down, k.km.Search},
		append(append([]key.Binding{}, k.km.Actions...), k.km.Menu),
		{k.km.New, k.km.Refresh, k.km.Help, k.km.Quit},
	}
}

// detailKeys is the help shown on the record page
type detailKeys struct{ km keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.km.Pager, k.km.Edit, k.km.Back}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// formKeys is the help shown on the form page
type formKeys struct{ km keyMap }

func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.km.Next, k.km.Prev, k.km.Save, k.km.Back}
}

func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
