package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// Styles holds all overlay-specific styles
type Styles struct {
	// MenuItem is the default menu item style
	MenuItem lipgloss.Style
	// MenuItemActive is the highlighted menu item style
	MenuItemActive lipgloss.Style
	// MenuKey is the style for keybinding hints
	MenuKey lipgloss.Style
	// Footer is the style for overlay footer text
	Footer lipgloss.Style
	// Muted is used for secondary details such as context ids
	Muted lipgloss.Style
}

// New creates a new Styles instance using the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		MenuItem: lipgloss.NewStyle().
			Foreground(styles.Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(styles.Blue).
			Bold(true),

		MenuKey: lipgloss.NewStyle().
			Foreground(styles.Yellow).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(styles.Subtext0).
			MarginTop(1),

		Muted: lipgloss.NewStyle().
			Foreground(styles.Overlay0),
	}
}
