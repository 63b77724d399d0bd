// Package completion marks a parent task done once all of its sub-tasks are.
package completion

import (
	"github.com/riordanpawley/focus/internal/domain"
)

// Propagate returns the follow-up update that marks the parent of
// update.TaskID done, if one is due.
//
// lookup must already reflect update. Propagation is one hop: the
// follow-up itself never propagates further because parents have no
// parent. Unknown ids produce no follow-up.
func Propagate(update domain.UpdateTask, lookup domain.TaskLookup, enabled bool) (domain.UpdateTask, bool) {
	if !enabled || !update.Changes.MarksDone() {
		return domain.UpdateTask{}, false
	}

	task, ok := lookup.Get(update.TaskID)
	if !ok || !task.IsSubTask() {
		return domain.UpdateTask{}, false
	}
	parent, ok := lookup.Get(task.ParentID)
	if !ok || parent.IsDone || !parent.HasSubTasks() {
		return domain.UpdateTask{}, false
	}

	for _, id := range parent.SubTaskIDs {
		child, ok := lookup.Get(id)
		if !ok || !child.IsDone {
			return domain.UpdateTask{}, false
		}
	}

	return domain.UpdateTask{
		TaskID:  parent.ID,
		Changes: domain.TaskChanges{IsDone: domain.Bool(true)},
	}, true
}
