// Package overlay provides modal components drawn over the list view.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// TaskTitleMsg is sent when the add-task input is submitted
type TaskTitleMsg struct {
	Title     string
	ToBacklog bool
	ParentID  string
}

// ContextChosenMsg is sent when a context is picked
type ContextChosenMsg struct {
	ContextID string
}

// ConfirmResult is sent when a confirmation dialog is answered
type ConfirmResult struct {
	Action    string
	Confirmed bool
}

func closeCmd() tea.Msg {
	return CloseOverlayMsg{}
}
