// Package navigation provides cursor and navigation state management
package navigation

// Column indexes of the list view
const (
	ColumnToday   = 0
	ColumnBacklog = 1
)

// Column is one list as displayed: its rows in display order. Sub-task rows
// follow their parent's row.
type Column struct {
	Title   string
	TaskIDs []string
}

// Position represents a computed position in the list view
type Position struct {
	Column int  // 0=Today, 1=Backlog
	Task   int  // Row index within the column
	Valid  bool // Whether the position is valid
}

// Cursor tracks the selected task by ID (survives reorders and moves)
type Cursor struct {
	TaskID         string // Primary state: selected task ID
	FallbackColumn int    // Column to use when TaskID not found
	FallbackRow    int    // Row to use when TaskID not found
}

// FindPosition computes the position of the cursor's task in the given columns
func (c *Cursor) FindPosition(columns []Column) Position {
	if c.TaskID != "" {
		for colIdx, col := range columns {
			for rowIdx, id := range col.TaskIDs {
				if id == c.TaskID {
					return Position{Column: colIdx, Task: rowIdx, Valid: true}
				}
			}
		}
	}

	// Task gone (deleted, archived, moved away): stay near where it was
	col := c.FallbackColumn
	if col < 0 || col >= len(columns) {
		col = 0
	}
	if col >= len(columns) || len(columns[col].TaskIDs) == 0 {
		return Position{Column: col, Task: 0, Valid: false}
	}
	row := c.FallbackRow
	if row >= len(columns[col].TaskIDs) {
		row = len(columns[col].TaskIDs) - 1
	}
	if row < 0 {
		row = 0
	}
	return Position{Column: col, Task: row, Valid: true}
}

// SetTask updates the cursor to point to a specific task
func (c *Cursor) SetTask(taskID string, column, row int) {
	c.TaskID = taskID
	c.FallbackColumn = column
	c.FallbackRow = row
}

// Sync re-resolves the cursor against fresh columns, adopting the fallback
// row's task when the selected one disappeared. Returns the task ID.
func (c *Cursor) Sync(columns []Column) string {
	pos := c.FindPosition(columns)
	if !pos.Valid {
		c.TaskID = ""
		c.FallbackColumn = pos.Column
		return ""
	}
	c.SetTask(columns[pos.Column].TaskIDs[pos.Task], pos.Column, pos.Task)
	return c.TaskID
}

// MoveVertical moves up or down within a column, returns new task ID
func (c *Cursor) MoveVertical(columns []Column, delta int) string {
	pos := c.FindPosition(columns)
	if !pos.Valid || pos.Column >= len(columns) {
		return c.TaskID
	}

	col := columns[pos.Column]
	newIdx := pos.Task + delta

	// Clamp to column bounds
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(col.TaskIDs) {
		newIdx = len(col.TaskIDs) - 1
	}

	c.SetTask(col.TaskIDs[newIdx], pos.Column, newIdx)
	return c.TaskID
}

// MoveHorizontal moves left or right to adjacent column
func (c *Cursor) MoveHorizontal(columns []Column, delta int) string {
	pos := c.FindPosition(columns)
	return c.JumpToColumn(columns, pos.Column+delta)
}

// JumpToStart moves to first task in current column
func (c *Cursor) JumpToStart(columns []Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) && len(columns[pos.Column].TaskIDs) > 0 {
		c.SetTask(columns[pos.Column].TaskIDs[0], pos.Column, 0)
	}
	return c.TaskID
}

// JumpToEnd moves to last task in current column
func (c *Cursor) JumpToEnd(columns []Column) string {
	pos := c.FindPosition(columns)
	if pos.Column < len(columns) {
		ids := columns[pos.Column].TaskIDs
		if len(ids) > 0 {
			c.SetTask(ids[len(ids)-1], pos.Column, len(ids)-1)
		}
	}
	return c.TaskID
}

// JumpToColumn moves to a specific column, keeping relative row position
func (c *Cursor) JumpToColumn(columns []Column, colIdx int) string {
	if len(columns) == 0 {
		return c.TaskID
	}
	if colIdx < 0 {
		colIdx = 0
	}
	if colIdx >= len(columns) {
		colIdx = len(columns) - 1
	}

	pos := c.FindPosition(columns)
	c.FallbackColumn = colIdx

	ids := columns[colIdx].TaskIDs
	if len(ids) == 0 {
		c.TaskID = "" // No task in target column
		c.FallbackRow = 0
		return c.TaskID
	}

	// Try to keep same row position, or clamp to column size
	row := pos.Task
	if row >= len(ids) {
		row = len(ids) - 1
	}
	c.SetTask(ids[row], colIdx, row)
	return c.TaskID
}

// Service manages navigation state
type Service struct {
	cursor Cursor
}

// NewService creates a new navigation service
func NewService() *Service {
	return &Service{
		cursor: Cursor{},
	}
}

// GetCursor returns the current cursor (for read access)
func (s *Service) GetCursor() *Cursor {
	return &s.cursor
}

// GetPosition returns the computed position of the cursor in the given columns
func (s *Service) GetPosition(columns []Column) Position {
	return s.cursor.FindPosition(columns)
}

// CurrentTaskID returns the ID under the cursor, or "" when the column is empty
func (s *Service) CurrentTaskID(columns []Column) string {
	pos := s.cursor.FindPosition(columns)
	if !pos.Valid {
		return ""
	}
	return columns[pos.Column].TaskIDs[pos.Task]
}

// CurrentColumn returns the column index the cursor is in
func (s *Service) CurrentColumn(columns []Column) int {
	return s.cursor.FindPosition(columns).Column
}

// Sync re-resolves the cursor after the columns changed
func (s *Service) Sync(columns []Column) {
	s.cursor.Sync(columns)
}

// MoveDown moves cursor down in current column
func (s *Service) MoveDown(columns []Column) {
	s.cursor.MoveVertical(columns, 1)
}

// MoveUp moves cursor up in current column
func (s *Service) MoveUp(columns []Column) {
	s.cursor.MoveVertical(columns, -1)
}

// MoveLeft moves cursor to left column
func (s *Service) MoveLeft(columns []Column) {
	s.cursor.MoveHorizontal(columns, -1)
}

// MoveRight moves cursor to right column
func (s *Service) MoveRight(columns []Column) {
	s.cursor.MoveHorizontal(columns, 1)
}

// GotoTop moves cursor to first task in column
func (s *Service) GotoTop(columns []Column) {
	s.cursor.JumpToStart(columns)
}

// GotoBottom moves cursor to last task in column
func (s *Service) GotoBottom(columns []Column) {
	s.cursor.JumpToEnd(columns)
}

// JumpToTaskByID finds and selects a task by ID
func (s *Service) JumpToTaskByID(columns []Column, taskID string) bool {
	for colIdx, col := range columns {
		for rowIdx, id := range col.TaskIDs {
			if id == taskID {
				s.cursor.SetTask(id, colIdx, rowIdx)
				return true
			}
		}
	}
	return false
}
