package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds the application key bindings
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	New    key.Binding
	Edit   key.Binding
	View   key.Binding
	Delete key.Binding
	Enter  key.Binding
	Tab    key.Binding
	Back   key.Binding
	Quit   key.Binding
	Help   key.Binding

	// Board
	MoveLeft     key.Binding
	MoveRight    key.Binding
	MoveUp       key.Binding
	MoveDown     key.Binding
	Focus        key.Binding
	NewColumn    key.Binding
	EditColumn   key.Binding
	DeleteColumn key.Binding

	// Timer
	StartPause key.Binding
	Reset      key.Binding
	Session    key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),

		New:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new task")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		View:   key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "view")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("↵", "select")),
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		MoveLeft:     key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move task left")),
		MoveRight:    key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move task right")),
		MoveUp:       key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move task up")),
		MoveDown:     key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move task down")),
		Focus:        key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus task")),
		NewColumn:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new column")),
		EditColumn:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "edit column")),
		DeleteColumn: key.NewBinding(key.WithKeys("X"), key.WithHelp("X", "delete column")),

		StartPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		Reset:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset timer")),
		Session:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "work/break")),
	}
}
