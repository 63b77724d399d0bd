package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TaskInput is the add-task prompt. Tab flips between today and the
// backlog when the context has one.
type TaskInput struct {
	input       textinput.Model
	styles      *Styles
	parentTitle string
	parentID    string
	toBacklog   bool
	canBacklog  bool
}

// NewTaskInput creates a prompt for a top-level task
func NewTaskInput(canBacklog bool) *TaskInput {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "what needs doing?"
	ti.CharLimit = 200
	ti.Width = 50
	ti.Focus()

	return &TaskInput{
		input:      ti,
		styles:     New(),
		canBacklog: canBacklog,
	}
}

// NewSubTaskInput creates a prompt for a sub-task of parentID
func NewSubTaskInput(parentID, parentTitle string) *TaskInput {
	t := NewTaskInput(false)
	t.parentID = parentID
	t.parentTitle = parentTitle
	return t
}

// Init implements tea.Model
func (t *TaskInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (t *TaskInput) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			title := strings.TrimSpace(t.input.Value())
			if title == "" {
				return t, closeCmd
			}
			out := TaskTitleMsg{Title: title, ToBacklog: t.toBacklog, ParentID: t.parentID}
			return t, func() tea.Msg { return out }

		case tea.KeyEsc:
			return t, closeCmd

		case tea.KeyTab:
			if t.canBacklog {
				t.toBacklog = !t.toBacklog
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.input, cmd = t.input.Update(msg)
	return t, cmd
}

// View implements tea.Model
func (t *TaskInput) View() string {
	footer := "Enter: add • Esc: cancel"
	if t.canBacklog {
		footer = "Enter: add • Tab: today/backlog • Esc: cancel"
	}
	return t.input.View() + "\n" + t.styles.Footer.Render(footer)
}

// Title implements Overlay
func (t *TaskInput) Title() string {
	switch {
	case t.parentID != "":
		return "Add sub-task to " + t.parentTitle
	case t.toBacklog:
		return "Add to Backlog"
	default:
		return "Add to Today"
	}
}

// Size implements Overlay
func (t *TaskInput) Size() (width, height int) {
	return 60, 5
}
