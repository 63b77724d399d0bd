package board

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// renderColumn renders a list column with header and task rows
func renderColumn(
	col Column,
	cursorTask int,
	isActive bool,
	currentTaskID string,
	width int,
	height int,
	s *styles.Styles,
) string {
	// Render header with title and count (e.g., "─ Today (3) ─────")
	headerText := "─ " + col.Title + " (" + strconv.Itoa(len(col.Rows)) + ") "
	remainingWidth := width - lipgloss.Width(headerText) - 2
	if remainingWidth > 0 {
		headerText += strings.Repeat("─", remainingWidth)
	}
	header := s.HeaderStyle(isActive).Render(headerText)

	// Border and header take 3 lines
	visible := height - 3
	if visible < 1 {
		visible = 1
	}

	rowWidth := width - 4
	var lines []string
	switch {
	case col.Disabled:
		lines = append(lines, s.Empty.Render("tags have no backlog"))
	case len(col.Rows) == 0:
		lines = append(lines, s.Empty.Render("nothing here"))
	default:
		start := scrollOffset(cursorTask, len(col.Rows), visible, isActive)
		end := min(start+visible, len(col.Rows))
		for i := start; i < end; i++ {
			row := col.Rows[i]
			isCursor := isActive && i == cursorTask
			lines = append(lines, renderRow(row, isCursor, row.Task.ID == currentTaskID, rowWidth, s))
		}
	}

	content := strings.Join(lines, "\n")
	columnContent := s.ColumnStyle(isActive).Width(width - 2).Height(visible).Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, columnContent)
}

// scrollOffset keeps the cursor row inside the visible window
func scrollOffset(cursor, total, visible int, isActive bool) int {
	if !isActive || total <= visible || cursor < visible {
		return 0
	}
	start := cursor - visible + 1
	if start > total-visible {
		start = total - visible
	}
	return start
}
