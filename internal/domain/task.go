// Package domain contains core business types for the focus task manager.
package domain

import "time"

// Task represents a single task record.
// Tasks form a two-level tree: a task with SubTaskIDs is a parent, a task
// with a ParentID is a sub-task, and sub-tasks never have children.
type Task struct {
	ID         string     `json:"id" yaml:"id"`
	Title      string     `json:"title" yaml:"title"`
	ParentID   string     `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	SubTaskIDs []string   `json:"subTaskIds,omitempty" yaml:"subTaskIds,omitempty"`
	IsDone     bool       `json:"isDone" yaml:"isDone"`
	ProjectID  string     `json:"projectId,omitempty" yaml:"projectId,omitempty"`
	CreatedAt  time.Time  `json:"createdAt" yaml:"createdAt"`
	DoneAt     *time.Time `json:"doneAt,omitempty" yaml:"doneAt,omitempty"`
}

// HasSubTasks reports whether the task is a parent.
func (t Task) HasSubTasks() bool {
	return len(t.SubTaskIDs) > 0
}

// IsSubTask reports whether the task belongs to a parent.
func (t Task) IsSubTask() bool {
	return t.ParentID != ""
}

// Clone returns a copy that shares no slices with t.
func (t Task) Clone() Task {
	c := t
	if t.SubTaskIDs != nil {
		c.SubTaskIDs = append([]string(nil), t.SubTaskIDs...)
	}
	if t.DoneAt != nil {
		at := *t.DoneAt
		c.DoneAt = &at
	}
	return c
}

// TaskChanges is a partial update of a task. Nil fields are left untouched.
type TaskChanges struct {
	Title  *string
	IsDone *bool
}

// Apply returns a copy of t with the changes applied.
func (c TaskChanges) Apply(t Task, now time.Time) Task {
	out := t.Clone()
	if c.Title != nil {
		out.Title = *c.Title
	}
	if c.IsDone != nil {
		out.IsDone = *c.IsDone
		if out.IsDone {
			if out.DoneAt == nil {
				at := now
				out.DoneAt = &at
			}
		} else {
			out.DoneAt = nil
		}
	}
	return out
}

// MarksDone reports whether the change sets the done flag to true.
func (c TaskChanges) MarksDone() bool {
	return c.IsDone != nil && *c.IsDone
}

// TaskLookup resolves task ids to records.
type TaskLookup interface {
	Get(id string) (Task, bool)
}

// Bool returns a pointer to b, for building TaskChanges.
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for building TaskChanges.
func String(s string) *string {
	return &s
}
