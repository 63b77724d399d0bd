package overlay

import tea "github.com/charmbracelet/bubbletea"

// Stack holds the open overlays. Only the top one receives input.
type Stack struct {
	overlays []Overlay
}

func NewStack() *Stack {
	return &Stack{}
}

// Push opens o on top and returns its Init command.
func (s *Stack) Push(o Overlay) tea.Cmd {
	s.overlays = append(s.overlays, o)
	return o.Init()
}

// Pop closes the top overlay and returns it, or nil when nothing is open.
func (s *Stack) Pop() Overlay {
	top := s.Current()
	if top != nil {
		s.overlays = s.overlays[:len(s.overlays)-1]
	}
	return top
}

func (s *Stack) Current() Overlay {
	if len(s.overlays) == 0 {
		return nil
	}
	return s.overlays[len(s.overlays)-1]
}

func (s *Stack) IsEmpty() bool {
	return len(s.overlays) == 0
}

// Resolve closes the top overlay when msg is the result one of the
// overlays finishes with, and reports whether msg was such a result.
func (s *Stack) Resolve(msg tea.Msg) bool {
	switch msg.(type) {
	case CloseOverlayMsg, TaskTitleMsg, ContextChosenMsg, ConfirmResult:
		s.Pop()
		return true
	}
	return false
}

// Update forwards msg to the top overlay and keeps the updated model.
func (s *Stack) Update(msg tea.Msg) tea.Cmd {
	top := s.Current()
	if top == nil {
		return nil
	}
	next, cmd := top.Update(msg)
	if o, ok := next.(Overlay); ok {
		s.overlays[len(s.overlays)-1] = o
	}
	return cmd
}
