package domain

// EventKind names an event variant for logging
type EventKind string

const (
	KindCreateTask             EventKind = "create_task"
	KindDeleteTask             EventKind = "delete_task"
	KindArchiveTasks           EventKind = "archive_tasks"
	KindRestoreTask            EventKind = "restore_task"
	KindTransferTask           EventKind = "transfer_task"
	KindMoveWithinToday        EventKind = "move_within_today"
	KindMoveWithinBacklog      EventKind = "move_within_backlog"
	KindMoveTodayToBacklog     EventKind = "move_today_to_backlog"
	KindMoveBacklogToToday     EventKind = "move_backlog_to_today"
	KindMoveTodayToBacklogAuto EventKind = "move_today_to_backlog_auto"
	KindMoveBacklogToTodayAuto EventKind = "move_backlog_to_today_auto"
	KindNudgeUpToday           EventKind = "nudge_up_today"
	KindNudgeDownToday         EventKind = "nudge_down_today"
	KindNudgeUpBacklog         EventKind = "nudge_up_backlog"
	KindNudgeDownBacklog       EventKind = "nudge_down_backlog"
	KindToggleStart            EventKind = "toggle_start"
	KindUpdateTask             EventKind = "update_task"
	KindSetCurrentTask         EventKind = "set_current_task"
	KindAddContext             EventKind = "add_context"
	KindRemoveContext          EventKind = "remove_context"
	KindSetActiveContext       EventKind = "set_active_context"
)

// Event is a lifecycle event. The set of variants is closed: only types in
// this package implement it, and consumers discriminate with a type switch.
type Event interface {
	Kind() EventKind
	event()
}

// CreateTask adds a new task and inserts it into a context list.
// Sub-tasks (Task.ParentID set) are attached to their parent and are not
// inserted into any list.
type CreateTask struct {
	Task      Task
	ContextID string
	ToBacklog bool
	ToBottom  bool
}

// DeleteTask removes a task (and its sub-tasks) from the repository and
// from both lists of its context.
type DeleteTask struct {
	TaskID    string
	ContextID string
}

// ArchivedTask names one task of an ArchiveTasks batch.
type ArchivedTask struct {
	TaskID    string
	ContextID string
}

// ArchiveTasks moves a batch of tasks, possibly from several contexts,
// into the archive.
type ArchiveTasks struct {
	Tasks []ArchivedTask
}

// RestoreTask brings an archived task back and appends it to today.
type RestoreTask struct {
	TaskID    string
	ContextID string
}

// TransferTask moves a task to another project's today list.
type TransferTask struct {
	TaskID          string
	SourceContextID string
	TargetContextID string
}

// MoveWithinToday reorders today using a desired (possibly partial) order.
type MoveWithinToday struct {
	TaskID        string
	ContextID     string
	NewOrderedIDs []string
}

// MoveWithinBacklog reorders the backlog using a desired order.
type MoveWithinBacklog struct {
	TaskID        string
	ContextID     string
	NewOrderedIDs []string
}

// MoveTodayToBacklog is an explicit move with a target position.
type MoveTodayToBacklog struct {
	TaskID        string
	ContextID     string
	NewOrderedIDs []string
}

// MoveBacklogToToday is an explicit move with a target position.
type MoveBacklogToToday struct {
	TaskID        string
	ContextID     string
	NewOrderedIDs []string
}

// MoveTodayToBacklogAuto moves a task to the backlog head.
type MoveTodayToBacklogAuto struct {
	TaskID    string
	ContextID string
}

// MoveBacklogToTodayAuto moves a task to the top or bottom of today.
type MoveBacklogToTodayAuto struct {
	TaskID    string
	ContextID string
	MoveToTop bool
}

// NudgeUpToday swaps a task with its predecessor in today.
type NudgeUpToday struct {
	TaskID    string
	ContextID string
}

// NudgeDownToday swaps a task with its successor in today.
type NudgeDownToday struct {
	TaskID    string
	ContextID string
}

// NudgeUpBacklog swaps a task with its predecessor in the backlog.
type NudgeUpBacklog struct {
	TaskID    string
	ContextID string
}

// NudgeDownBacklog swaps a task with its successor in the backlog.
type NudgeDownBacklog struct {
	TaskID    string
	ContextID string
}

// ToggleStart starts working on the next selectable task, or stops
// working if a task is current.
type ToggleStart struct{}

// UpdateTask changes fields of a task.
type UpdateTask struct {
	TaskID  string
	Changes TaskChanges
}

// SetCurrentTask is a direct user selection. An empty TaskID clears it.
type SetCurrentTask struct {
	TaskID string
}

// AddContext registers a project or tag with empty lists.
type AddContext struct {
	Context WorkContext
}

// RemoveContext drops a context and its lists.
type RemoveContext struct {
	ContextID string
}

// SetActiveContext switches which context's today list feeds selection.
type SetActiveContext struct {
	ContextID string
}

func (CreateTask) Kind() EventKind             { return KindCreateTask }
func (DeleteTask) Kind() EventKind             { return KindDeleteTask }
func (ArchiveTasks) Kind() EventKind           { return KindArchiveTasks }
func (RestoreTask) Kind() EventKind            { return KindRestoreTask }
func (TransferTask) Kind() EventKind           { return KindTransferTask }
func (MoveWithinToday) Kind() EventKind        { return KindMoveWithinToday }
func (MoveWithinBacklog) Kind() EventKind      { return KindMoveWithinBacklog }
func (MoveTodayToBacklog) Kind() EventKind     { return KindMoveTodayToBacklog }
func (MoveBacklogToToday) Kind() EventKind     { return KindMoveBacklogToToday }
func (MoveTodayToBacklogAuto) Kind() EventKind { return KindMoveTodayToBacklogAuto }
func (MoveBacklogToTodayAuto) Kind() EventKind { return KindMoveBacklogToTodayAuto }
func (NudgeUpToday) Kind() EventKind           { return KindNudgeUpToday }
func (NudgeDownToday) Kind() EventKind         { return KindNudgeDownToday }
func (NudgeUpBacklog) Kind() EventKind         { return KindNudgeUpBacklog }
func (NudgeDownBacklog) Kind() EventKind       { return KindNudgeDownBacklog }
func (ToggleStart) Kind() EventKind            { return KindToggleStart }
func (UpdateTask) Kind() EventKind             { return KindUpdateTask }
func (SetCurrentTask) Kind() EventKind         { return KindSetCurrentTask }
func (AddContext) Kind() EventKind             { return KindAddContext }
func (RemoveContext) Kind() EventKind          { return KindRemoveContext }
func (SetActiveContext) Kind() EventKind       { return KindSetActiveContext }

func (CreateTask) event()             {}
func (DeleteTask) event()             {}
func (ArchiveTasks) event()           {}
func (RestoreTask) event()            {}
func (TransferTask) event()           {}
func (MoveWithinToday) event()        {}
func (MoveWithinBacklog) event()      {}
func (MoveTodayToBacklog) event()     {}
func (MoveBacklogToToday) event()     {}
func (MoveTodayToBacklogAuto) event() {}
func (MoveBacklogToTodayAuto) event() {}
func (NudgeUpToday) event()           {}
func (NudgeDownToday) event()         {}
func (NudgeUpBacklog) event()         {}
func (NudgeDownBacklog) event()       {}
func (ToggleStart) event()            {}
func (UpdateTask) event()             {}
func (SetCurrentTask) event()         {}
func (AddContext) event()             {}
func (RemoveContext) event()          {}
func (SetActiveContext) event()       {}
