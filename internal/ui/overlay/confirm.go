package overlay

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmDialog asks a yes/no question before a destructive action
type ConfirmDialog struct {
	title    string
	message  string
	action   string
	styles   *Styles
	selected bool // true = Yes, false = No
}

// NewConfirmDialog creates a dialog whose answer is reported as a
// ConfirmResult carrying action
func NewConfirmDialog(title, message, action string) *ConfirmDialog {
	return &ConfirmDialog{
		title:   title,
		message: message,
		action:  action,
		styles:  New(),
	}
}

// Init initializes the dialog
func (c *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (c *ConfirmDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch key.String() {
	case "y", "Y":
		return c, c.answer(true)
	case "n", "N", "esc", "q":
		return c, c.answer(false)
	case "enter":
		return c, c.answer(c.selected)
	case "left", "h":
		c.selected = true
	case "right", "l":
		c.selected = false
	case "tab":
		c.selected = !c.selected
	}
	return c, nil
}

// answer reports the choice. The receiver closes the dialog.
func (c *ConfirmDialog) answer(yes bool) tea.Cmd {
	result := ConfirmResult{Action: c.action, Confirmed: yes}
	return func() tea.Msg { return result }
}

// View renders the dialog
func (c *ConfirmDialog) View() string {
	var b strings.Builder

	if c.message != "" {
		b.WriteString(c.styles.MenuItem.Render(c.message))
		b.WriteString("\n\n")
	}

	yesStyle, noStyle := c.styles.MenuItem, c.styles.MenuItemActive
	if c.selected {
		yesStyle, noStyle = c.styles.MenuItemActive, c.styles.MenuItem
	}

	b.WriteString(yesStyle.Render("[Y] Yes") + "    " + noStyle.Render("[N] No"))
	b.WriteString("\n")
	b.WriteString(c.styles.Footer.Render("Tab: switch • Enter: confirm • Esc: cancel"))

	return b.String()
}

// Title returns the dialog title
func (c *ConfirmDialog) Title() string {
	return c.title
}

// Size returns the dialog dimensions
func (c *ConfirmDialog) Size() (width, height int) {
	messageLines := len(strings.Split(c.message, "\n"))
	return 50, messageLines + 6
}
