package selection

import (
	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/domain"
)

// findNext returns the next selectable, undone task or "" when nothing is
// left. excludedID is the task that just stopped being current, if any.
func findNext(excludedID, lastCurrentID string, todayIDs []string, lookup domain.TaskLookup) string {
	if excludedID == "" && lastCurrentID != "" {
		if last, ok := lookup.Get(lastCurrentID); ok && !last.IsDone && !last.HasSubTasks() {
			return lastCurrentID
		}
	}

	if excludedID != "" {
		if id := nextSibling(excludedID, lookup); id != "" {
			return id
		}
	}

	flat := Flatten(todayIDs, lookup)
	split := -1
	if excludedID != "" {
		split = reorder.IndexOf(flat, excludedID)
	}
	if split < 0 {
		return firstUndone(flat, excludedID, lookup)
	}

	if id := firstUndone(flat[split+1:], excludedID, lookup); id != "" {
		return id
	}
	for i := split - 1; i >= 0; i-- {
		if isCandidate(flat[i], excludedID, lookup) {
			return flat[i]
		}
	}
	return ""
}

// nextSibling returns the first undone sibling of a sub-task.
func nextSibling(id string, lookup domain.TaskLookup) string {
	t, ok := lookup.Get(id)
	if !ok || !t.IsSubTask() {
		return ""
	}
	parent, ok := lookup.Get(t.ParentID)
	if !ok {
		return ""
	}
	return firstUndone(parent.SubTaskIDs, id, lookup)
}

// Flatten replaces every task with children by its ordered child ids, one
// level deep. Unknown ids are dropped.
func Flatten(ids []string, lookup domain.TaskLookup) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		t, ok := lookup.Get(id)
		if !ok {
			continue
		}
		if t.HasSubTasks() {
			out = append(out, t.SubTaskIDs...)
			continue
		}
		out = append(out, id)
	}
	return out
}

func firstUndone(ids []string, excludedID string, lookup domain.TaskLookup) string {
	for _, id := range ids {
		if isCandidate(id, excludedID, lookup) {
			return id
		}
	}
	return ""
}

func isCandidate(id, excludedID string, lookup domain.TaskLookup) bool {
	if id == excludedID {
		return false
	}
	t, ok := lookup.Get(id)
	return ok && !t.IsDone
}
