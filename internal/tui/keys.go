package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the terminal front end.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Back      key.Binding
	Forward   key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Submit    key.Binding
	Cancel    key.Binding

	Home      key.Binding
	List      key.Binding
	Notes     key.Binding
	Dashboard key.Binding
	Search    key.Binding
	Users     key.Binding
	Account   key.Binding
	Login     key.Binding
	NewNote   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "force quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc"),
			key.WithHelp("⌫/esc", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "forward"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop typing"),
		),

		Home: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "home"),
		),
		List: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "all resources"),
		),
		Notes: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "my notes"),
		),
		Dashboard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dashboard"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Users: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "users"),
		),
		Account: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "create account"),
		),
		Login: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "login"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new note"),
		),
	}
}

// helpLine returns the short help shown in the footer.
func (k KeyMap) helpLine() []key.Binding {
	return []key.Binding{k.Home, k.List, k.Notes, k.Dashboard, k.Search, k.Users, k.Back, k.Forward, k.Quit}
}
