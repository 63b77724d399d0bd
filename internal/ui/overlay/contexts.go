package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// ContextPicker lists the work contexts and reports the chosen one
type ContextPicker struct {
	contexts []domain.WorkContext
	cursor   int
	styles   *Styles
	badges   *styles.Styles
}

// NewContextPicker creates a picker with the cursor on activeID
func NewContextPicker(contexts []domain.WorkContext, activeID string) *ContextPicker {
	p := &ContextPicker{
		contexts: contexts,
		styles:   New(),
		badges:   styles.New(),
	}
	for i, c := range contexts {
		if c.ID == activeID {
			p.cursor = i
		}
	}
	return p
}

// Init initializes the overlay
func (p *ContextPicker) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (p *ContextPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch key.String() {
	case "esc", "q":
		return p, closeCmd
	case "j", "down":
		if p.cursor < len(p.contexts)-1 {
			p.cursor++
		}
	case "k", "up":
		if p.cursor > 0 {
			p.cursor--
		}
	case "enter":
		if len(p.contexts) == 0 {
			return p, closeCmd
		}
		chosen := ContextChosenMsg{ContextID: p.contexts[p.cursor].ID}
		return p, func() tea.Msg { return chosen }
	}
	return p, nil
}

// View renders the context list
func (p *ContextPicker) View() string {
	var b strings.Builder

	if len(p.contexts) == 0 {
		b.WriteString(p.styles.MenuItem.Render("No contexts"))
	}

	for i, c := range p.contexts {
		style := p.styles.MenuItem
		if i == p.cursor {
			style = p.styles.MenuItemActive
		}
		title := c.Title
		if title == "" {
			title = c.ID
		}
		b.WriteString(p.badges.ContextBadge(i).Render(c.Type.String()))
		b.WriteString(" ")
		b.WriteString(style.Render(title))
		b.WriteString(" ")
		b.WriteString(p.styles.Muted.Render(c.ID))
		b.WriteString("\n")
	}

	b.WriteString(p.styles.Footer.Render("j/k: move • Enter: switch • Esc: close"))
	return b.String()
}

// Title returns the overlay title
func (p *ContextPicker) Title() string {
	return "Contexts"
}

// Size returns the overlay dimensions
func (p *ContextPicker) Size() (width, height int) {
	return 50, len(p.contexts) + 6
}
