package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"taskpad/internal/config"
)

type keyMap struct {
	Quit       key.Binding
	Add        key.Binding
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	Edit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
	Save       key.Binding
	Leave      key.Binding
	Filter     key.Binding
	Theme      key.Binding
	DarkMode   key.Binding
	Refresh    key.Binding
	Logout     key.Binding
	Login      key.Binding
	Signup     key.Binding
	Forgot     key.Binding
	ShowSecret key.Binding
	NextField  key.Binding
	PrevField  key.Binding
}

func newKeyMap(k config.Keymap) keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys(k.Quit), key.WithHelp(k.Quit, "quit")),
		Add:        key.NewBinding(key.WithKeys(k.Add), key.WithHelp(k.Add, "add")),
		Up:         key.NewBinding(key.WithKeys(k.Up, "up"), key.WithHelp(k.Up+"/↑", "up")),
		Down:       key.NewBinding(key.WithKeys(k.Down, "down"), key.WithHelp(k.Down+"/↓", "down")),
		Toggle:     key.NewBinding(key.WithKeys(k.Toggle), key.WithHelp(keyLabel(k.Toggle), "toggle")),
		Delete:     key.NewBinding(key.WithKeys(k.Delete), key.WithHelp(k.Delete, "delete")),
		Edit:       key.NewBinding(key.WithKeys(k.Edit), key.WithHelp(k.Edit, "edit")),
		Confirm:    key.NewBinding(key.WithKeys(k.Confirm), key.WithHelp(k.Confirm, "confirm")),
		Cancel:     key.NewBinding(key.WithKeys(k.Cancel), key.WithHelp(k.Cancel, "cancel")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Leave:      key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑/↓", "save & move")),
		Filter:     key.NewBinding(key.WithKeys(k.Filter), key.WithHelp(k.Filter, "filter")),
		Theme:      key.NewBinding(key.WithKeys(k.Theme), key.WithHelp(k.Theme, "theme")),
		DarkMode:   key.NewBinding(key.WithKeys(k.DarkMode), key.WithHelp(k.DarkMode, "dark mode")),
		Refresh:    key.NewBinding(key.WithKeys(k.Refresh), key.WithHelp(k.Refresh, "refresh")),
		Logout:     key.NewBinding(key.WithKeys(k.Logout), key.WithHelp(k.Logout, "log out")),
		Login:      key.NewBinding(key.WithKeys(k.Login), key.WithHelp(k.Login, "log in")),
		Signup:     key.NewBinding(key.WithKeys(k.Signup), key.WithHelp(k.Signup, "sign up")),
		Forgot:     key.NewBinding(key.WithKeys(k.Forgot), key.WithHelp(k.Forgot, "forgot password")),
		ShowSecret: key.NewBinding(key.WithKeys(k.ShowSecret), key.WithHelp(k.ShowSecret, "show password")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
	}
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// bindings is the set of keys shown by the help line for the current screen.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding  { return b }
func (b bindings) FullHelp() [][]key.Binding { return [][]key.Binding{b} }

func (m Model) helpBindings() bindings {
	k := m.keys
	switch {
	case m.screen == screenAuth && m.form != formNone:
		return bindings{k.Confirm, k.NextField, k.ShowSecret, k.Cancel}
	case m.screen == screenAuth:
		return bindings{k.Login, k.Signup, k.Forgot, k.Theme, k.DarkMode, k.Quit}
	case m.mode == modeAdd:
		return bindings{k.Confirm, k.Cancel}
	case m.mode == modeEdit:
		return bindings{k.Confirm, k.Save, k.Leave, k.Cancel}
	default:
		return bindings{k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.Filter, k.Theme, k.DarkMode, k.Refresh, k.Logout, k.Quit}
	}
}
