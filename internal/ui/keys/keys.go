package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding used across the screens
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Save      key.Binding
	New       key.Binding
	Delete    key.Binding
	Toggle    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// Screen actions
	Like      key.Binding
	Comment   key.Binding
	VideoCall key.Binding
	SignUp    key.Binding

	// Global
	Menu      key.Binding
	TextSize  key.Binding
	Emergency key.Binding
	Assistant key.Binding

	// Bottom navigation
	Home      key.Binding
	Feed      key.Binding
	Family    key.Binding
	Events    key.Binding
	Diary     key.Binding
	Reminders key.Binding

	// Mode menu
	Profile  key.Binding
	Settings key.Binding
	Voice    key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		ShiftTab:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Like:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "like")),
		Comment:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
		VideoCall: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "video call")),
		SignUp:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "create account")),

		Menu:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "menu")),
		TextSize:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "text size")),
		Emergency: key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "emergency")),
		Assistant: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "assistant")),

		Home:      key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "home")),
		Feed:      key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "photos")),
		Family:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "family")),
		Events:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "events")),
		Diary:     key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "diary")),
		Reminders: key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "meds")),

		Profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "my profile")),
		Settings: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "settings")),
		Voice:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "voice control mode")),
	}
}
