package board

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// Render renders the columns side by side. currentTaskID marks the task
// being worked on.
func Render(
	columns []Column,
	cursor Cursor,
	currentTaskID string,
	s *styles.Styles,
	width int,
	height int,
) string {
	if len(columns) == 0 {
		return ""
	}

	columnWidth := width / len(columns)

	var columnStrings []string
	for i, col := range columns {
		isActive := i == cursor.Column
		cursorTask := 0
		if isActive {
			cursorTask = cursor.Task
		}

		columnStr := renderColumn(col, cursorTask, isActive, currentTaskID, columnWidth, height, s)

		// Force consistent width using lipgloss Width
		sized := lipgloss.NewStyle().Width(columnWidth).MaxHeight(height).Render(columnStr)
		columnStrings = append(columnStrings, sized)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnStrings...)
}
