// Package board renders the Today and Backlog lists of the active context.
package board

import (
	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
)

// Column titles, in display order
const (
	TitleToday   = "Today"
	TitleBacklog = "Backlog"
)

// Row is one displayed line. Sub-task rows follow their parent's row.
type Row struct {
	Task         domain.Task
	Depth        int // 0 for list members, 1 for sub-tasks
	DoneChildren int
	Children     int
}

// Column represents one list as displayed
type Column struct {
	Title    string
	Rows     []Row
	Disabled bool // tag contexts own no backlog
}

// IDs returns the task ids of the column's rows in display order
func (c Column) IDs() []string {
	ids := make([]string, len(c.Rows))
	for i, r := range c.Rows {
		ids[i] = r.Task.ID
	}
	return ids
}

// Cursor represents the current cursor position
type Cursor struct {
	Column int // Column index (0=Today, 1=Backlog)
	Task   int // Row index within column
}

// BuildRows expands list ids into display rows. Ids missing from lookup
// are skipped. With showDone false, done tasks are hidden along with the
// sub-tasks of a done parent.
func BuildRows(ids []string, lookup domain.TaskLookup, showDone bool) []Row {
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		t, ok := lookup.Get(id)
		if !ok || (!showDone && t.IsDone) {
			continue
		}

		parent := Row{Task: t}
		var children []Row
		for _, childID := range t.SubTaskIDs {
			c, ok := lookup.Get(childID)
			if !ok {
				continue
			}
			parent.Children++
			if c.IsDone {
				parent.DoneChildren++
				if !showDone {
					continue
				}
			}
			children = append(children, Row{Task: c, Depth: 1})
		}

		rows = append(rows, parent)
		rows = append(rows, children...)
	}
	return rows
}

// BuildColumns returns the Today and Backlog columns for one context
func BuildColumns(lists worklist.Lists, lookup domain.TaskLookup, showDone bool) []Column {
	return []Column{
		{Title: TitleToday, Rows: BuildRows(lists.Today, lookup, showDone)},
		{
			Title:    TitleBacklog,
			Rows:     BuildRows(lists.Backlog, lookup, showDone),
			Disabled: !lists.Context.Type.HasBacklog(),
		},
	}
}
