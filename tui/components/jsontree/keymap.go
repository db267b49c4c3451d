package jsontree

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/grovetools/jsonview/config"
	"github.com/grovetools/jsonview/tui/keymap"
)

// KeyMap defines the keybindings for the JSON tree viewer. Field names in
// snake_case are the names used in the keys section of jsonview.yml.
type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoEnd      key.Binding

	Toggle      key.Binding
	Fold        key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	ExpandLevel key.Binding

	Search      key.Binding
	ToggleRegex key.Binding
	NextMatch   key.Binding
	PrevMatch   key.Binding
	ClearSearch key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings for the component.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("gg", "home"),
			key.WithHelp("gg", "go to top"),
		),
		GotoEnd: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "go to end"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("space", " ", "enter", "l", "right"),
			key.WithHelp("space/l", "toggle"),
		),
		Fold: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "fold / parent"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("zR"),
			key.WithHelp("zR", "expand all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("zM"),
			key.WithHelp("zM", "collapse all"),
		),
		ExpandLevel: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"),
			key.WithHelp("1-9/0", "expand to level"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ToggleRegex: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "regex on/off"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear search"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LoadKeyMap returns the default keymap with the config's overrides applied.
func LoadKeyMap(cfg *config.Config) KeyMap {
	km := DefaultKeyMap()
	if cfg != nil {
		keymap.ApplyOverrides(&km, cfg.Keys)
	}
	return km
}

// Sections groups the bindings for the help view.
func (k KeyMap) Sections() []keymap.Section {
	return []keymap.Section{
		keymap.NavigationSection(k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoEnd),
		keymap.FoldSection(k.Toggle, k.Fold, k.ExpandAll, k.CollapseAll, k.ExpandLevel),
		keymap.SearchSection(k.Search, k.ToggleRegex, k.NextMatch, k.PrevMatch, k.ClearSearch),
		keymap.SystemSection(k.Help, k.Quit),
	}
}

// ShortHelp returns the short help bindings.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.NextMatch, k.Help, k.Quit}
}

// FullHelp returns the full help bindings.
func (k KeyMap) FullHelp() [][]key.Binding {
	return keymap.Columns(k.Sections())
}

// sequences are the bindings that may span several keys.
func (k KeyMap) sequences() []key.Binding {
	return []key.Binding{k.GotoTop, k.ExpandAll, k.CollapseAll}
}
