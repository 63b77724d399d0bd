// Package statusbar renders the bottom line of the list view.
package statusbar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/types"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode         types.Mode
	width        int
	styles       *styles.Styles
	contextTitle string
	contextIndex int
	currentTitle string
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithContext sets the active context badge. index picks the badge color.
func (sb StatusBar) WithContext(title string, index int) StatusBar {
	sb.contextTitle = title
	sb.contextIndex = index
	return sb
}

// WithCurrent sets the title of the task being worked on
func (sb StatusBar) WithCurrent(title string) StatusBar {
	sb.currentTitle = title
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	parts := []string{sb.styles.StatusMode.Render(" " + sb.mode.String() + " ")}

	if sb.contextTitle != "" {
		parts = append(parts, " ", sb.styles.ContextBadge(sb.contextIndex).Render(sb.contextTitle))
	}

	separator := sb.styles.StatusHint.Render(" │ ")
	if sb.currentTitle != "" {
		parts = append(parts, separator, sb.styles.RowCurrent.Render("▶ "+sb.currentTitle))
	}

	if hints := GetHints(sb.mode); hints != "" {
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).MaxHeight(1).Render(content)
}
