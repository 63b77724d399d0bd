package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/riordanpawley/focus/internal/ui/styles"
)

// renderRow renders one task line
func renderRow(row Row, isCursor, isCurrent bool, width int, s *styles.Styles) string {
	check := "[ ] "
	if row.Task.IsDone {
		check = "[x] "
	}

	marker := "  "
	if isCurrent {
		marker = s.Marker.Render("▶ ")
	}

	progress := ""
	if row.Children > 0 {
		progress = fmt.Sprintf(" %d/%d", row.DoneChildren, row.Children)
	}

	indent := strings.Repeat("  ", row.Depth)
	avail := width - 2 - len(indent) - len(check) - len(progress)
	if avail < 1 {
		avail = 1
	}
	title := ansi.Truncate(row.Task.Title, avail, "…")

	style := s.Row
	switch {
	case isCursor:
		style = s.RowCursor
	case isCurrent:
		style = s.RowCurrent
	case row.Task.IsDone:
		style = s.RowDone
	case row.Depth > 0:
		style = s.SubTask.UnsetPaddingLeft()
	}

	line := style.Render(indent + check + title)
	if progress != "" {
		line += s.Progress.Render(progress)
	}
	return marker + line
}

// RenderRow is the exported version for testing
func RenderRow(row Row, isCursor, isCurrent bool, width int, s *styles.Styles) string {
	return renderRow(row, isCursor, isCurrent, width, s)
}
