package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all lipgloss styles for the application
type Styles struct {
	// Layout
	Header             lipgloss.Style
	Column             lipgloss.Style
	ColumnActive       lipgloss.Style
	ColumnHeader       lipgloss.Style
	ColumnHeaderActive lipgloss.Style
	Empty              lipgloss.Style

	// Rows
	Row        lipgloss.Style
	RowCursor  lipgloss.Style
	RowCurrent lipgloss.Style
	RowDone    lipgloss.Style
	SubTask    lipgloss.Style
	Marker     lipgloss.Style
	Progress   lipgloss.Style

	// Context badge
	ContextBadge func(n int) lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Overlay
	Overlay          lipgloss.Style
	OverlayTitle     lipgloss.Style
	MenuItem         lipgloss.Style
	MenuItemActive   lipgloss.Style
	MenuItemDisabled lipgloss.Style
	MenuKey          lipgloss.Style
	Separator        lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Padding(0, 1),

		Column: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		ColumnActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Lavender).
			Padding(0, 1),

		ColumnHeader: lipgloss.NewStyle().
			Foreground(Subtext0).
			Bold(true).
			MarginBottom(1),

		ColumnHeaderActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true).
			MarginBottom(1),

		Empty: lipgloss.NewStyle().
			Foreground(Overlay0).
			Italic(true),

		Row: lipgloss.NewStyle().
			Foreground(Text),

		RowCursor: lipgloss.NewStyle().
			Foreground(Base).
			Background(Lavender).
			Bold(true),

		RowCurrent: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		RowDone: lipgloss.NewStyle().
			Foreground(Overlay0).
			Strikethrough(true),

		SubTask: lipgloss.NewStyle().
			Foreground(Subtext1).
			PaddingLeft(2),

		Marker: lipgloss.NewStyle().
			Foreground(Peach).
			Bold(true),

		Progress: lipgloss.NewStyle().
			Foreground(Subtext0),

		ContextBadge: func(n int) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(Base).
				Background(ContextColor(n)).
				Padding(0, 1).
				Bold(true)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		Overlay: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Background(Base).
			Padding(1, 2),

		OverlayTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		MenuItem: lipgloss.NewStyle().
			Foreground(Text),

		MenuItemActive: lipgloss.NewStyle().
			Foreground(Blue).
			Bold(true),

		MenuItemDisabled: lipgloss.NewStyle().
			Foreground(Overlay0),

		MenuKey: lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// ColumnStyle returns the border style for a column
func (s *Styles) ColumnStyle(active bool) lipgloss.Style {
	if active {
		return s.ColumnActive
	}
	return s.Column
}

// HeaderStyle returns the title style for a column
func (s *Styles) HeaderStyle(active bool) lipgloss.Style {
	if active {
		return s.ColumnHeaderActive
	}
	return s.ColumnHeader
}
