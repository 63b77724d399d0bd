// Package selection decides which task becomes current after a lifecycle
// event.
package selection

import (
	"github.com/riordanpawley/focus/internal/domain"
)

// Options controls auto-advance behaviour.
type Options struct {
	// AutoStartNextTask selects the next undone task when the current one
	// is marked done. When false, completing the current task clears the
	// selection.
	AutoStartNextTask bool
}

// SelectNext returns the current task id that should follow ev and whether
// the selection changed. An empty id means no task is current.
//
// todayIDs is the today list of the active work context. Ids unknown to
// lookup are never selected. The result depends only on the arguments.
func SelectNext(ev domain.Event, sel domain.Selection, todayIDs []string, lookup domain.TaskLookup, opts Options) (string, bool) {
	switch e := ev.(type) {
	case domain.ToggleStart:
		if sel.HasCurrent() {
			return "", true
		}
		return findNext("", sel.LastCurrentTaskID, todayIDs, lookup), true

	case domain.UpdateTask:
		if !e.Changes.MarksDone() || e.TaskID != sel.CurrentTaskID || !sel.HasCurrent() {
			return sel.CurrentTaskID, false
		}
		if !opts.AutoStartNextTask {
			return "", true
		}
		return findNext(e.TaskID, sel.LastCurrentTaskID, todayIDs, lookup), true

	case domain.MoveTodayToBacklog:
		return clearIfCurrent(sel, e.TaskID)
	case domain.MoveTodayToBacklogAuto:
		return clearIfCurrent(sel, e.TaskID)

	case domain.DeleteTask:
		// The current id is re-asserted even when it was the deleted task.
		// Callers decide how to handle a dangling current id.
		return sel.CurrentTaskID, true

	case domain.ArchiveTasks, domain.TransferTask:
		return "", true
	}

	return sel.CurrentTaskID, false
}

// Triggers reports whether ev is one of the events after which the
// selection is recomputed.
func Triggers(ev domain.Event) bool {
	switch e := ev.(type) {
	case domain.ToggleStart, domain.DeleteTask, domain.ArchiveTasks, domain.TransferTask,
		domain.MoveTodayToBacklog, domain.MoveTodayToBacklogAuto:
		return true
	case domain.UpdateTask:
		return e.Changes.MarksDone()
	}
	return false
}

func clearIfCurrent(sel domain.Selection, taskID string) (string, bool) {
	if sel.HasCurrent() && sel.CurrentTaskID == taskID {
		return "", true
	}
	return sel.CurrentTaskID, false
}
