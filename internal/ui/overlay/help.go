package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// HelpOverlay displays the full keybinding reference
type HelpOverlay struct {
	keys   help.KeyMap
	model  help.Model
	styles *Styles
}

// NewHelpOverlay creates a help overlay listing the bindings of keys
func NewHelpOverlay(keys help.KeyMap) *HelpOverlay {
	m := help.New()
	m.ShowAll = true
	m.Styles.FullKey = lipgloss.NewStyle().Foreground(styles.Yellow).Bold(true)
	m.Styles.FullDesc = lipgloss.NewStyle().Foreground(styles.Text)
	m.Styles.FullSeparator = lipgloss.NewStyle().Foreground(styles.Surface2)

	return &HelpOverlay{
		keys:   keys,
		model:  m,
		styles: New(),
	}
}

// Init initializes the overlay
func (h *HelpOverlay) Init() tea.Cmd {
	return nil
}

// Update closes the overlay on esc, q or ?
func (h *HelpOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "?":
			return h, closeCmd
		}
	}
	return h, nil
}

// View renders the help overlay
func (h *HelpOverlay) View() string {
	var b strings.Builder
	b.WriteString(h.model.FullHelpView(h.keys.FullHelp()))
	b.WriteString("\n")
	b.WriteString(h.styles.Footer.Render("Esc: close"))
	return b.String()
}

// Title returns the overlay title
func (h *HelpOverlay) Title() string {
	return "Help"
}

// Size returns the overlay dimensions
func (h *HelpOverlay) Size() (width, height int) {
	rows := 0
	for _, group := range h.keys.FullHelp() {
		rows = max(rows, len(group))
	}
	return 64, rows + 6
}
