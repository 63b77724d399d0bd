package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the list view
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Toggle      key.Binding
	Select      key.Binding
	Done        key.Binding
	Delete      key.Binding
	ToBacklog   key.Binding
	ToToday     key.Binding
	ToTodayTop  key.Binding
	NudgeUp     key.Binding
	NudgeDown   key.Binding
	Add         key.Binding
	AddSubTask  key.Binding
	Archive     key.Binding
	NextContext key.Binding
	Contexts    key.Binding
	ShowDone    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "today")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "backlog")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last")),
		Toggle:      key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "work on this")),
		Done:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "toggle done")),
		Delete:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		ToBacklog:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "to backlog")),
		ToToday:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "to today")),
		ToTodayTop:  key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "to top of today")),
		NudgeUp:     key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "nudge up")),
		NudgeDown:   key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "nudge down")),
		Add:         key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
		AddSubTask:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "add sub-task")),
		Archive:     key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "archive done")),
		NextContext: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next context")),
		Contexts:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "contexts")),
		ShowDone:    key.NewBinding(key.WithKeys("."), key.WithHelp(".", "show/hide done")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Done, k.Add, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.Toggle, k.Select, k.Done, k.Delete, k.Add, k.AddSubTask, k.Archive},
		{k.ToBacklog, k.ToToday, k.ToTodayTop, k.NudgeUp, k.NudgeDown},
		{k.NextContext, k.Contexts, k.ShowDone, k.Help, k.Quit},
	}
}
