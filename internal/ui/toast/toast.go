// Package toast renders transient notifications.
package toast

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/types"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// MaxVisible caps how many toasts are stacked at once; the newest win
const MaxVisible = 3

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render renders the newest toasts stacked and right-aligned.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}
	if len(toasts) > MaxVisible {
		toasts = toasts[len(toasts)-MaxVisible:]
	}

	toastWidth := width / 3
	if toastWidth > 40 {
		toastWidth = 40
	}
	if toastWidth < 12 {
		toastWidth = 12
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(prefix(t.Level)+t.Message))
	}

	block := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

func prefix(level types.ToastLevel) string {
	switch level {
	case types.ToastSuccess:
		return "✓ "
	case types.ToastWarning:
		return "! "
	case types.ToastError:
		return "✗ "
	default:
		return ""
	}
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}
