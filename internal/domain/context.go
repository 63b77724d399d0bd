package domain

// ContextType distinguishes projects from tags
type ContextType string

const (
	ContextProject ContextType = "project"
	ContextTag     ContextType = "tag"
)

// HasBacklog reports whether contexts of this type own a backlog list.
// Only projects do.
func (t ContextType) HasBacklog() bool {
	return t == ContextProject
}

// String returns the display string
func (t ContextType) String() string {
	return string(t)
}

// WorkContext is a project or tag owning a today list and, for projects,
// a backlog list.
type WorkContext struct {
	ID    string      `json:"id" yaml:"id"`
	Type  ContextType `json:"type" yaml:"type"`
	Title string      `json:"title" yaml:"title"`
}

// Selection tracks the active task.
type Selection struct {
	CurrentTaskID     string `json:"currentTaskId,omitempty" yaml:"currentTaskId,omitempty"`
	LastCurrentTaskID string `json:"lastCurrentTaskId,omitempty" yaml:"lastCurrentTaskId,omitempty"`
}

// HasCurrent reports whether a task is active.
func (s Selection) HasCurrent() bool {
	return s.CurrentTaskID != ""
}

// WithCurrent returns the selection after making id current. The previous
// current task, if any and different, becomes the last current task.
func (s Selection) WithCurrent(id string) Selection {
	if s.CurrentTaskID == id {
		return s
	}
	out := s
	if s.CurrentTaskID != "" {
		out.LastCurrentTaskID = s.CurrentTaskID
	}
	out.CurrentTaskID = id
	return out
}
