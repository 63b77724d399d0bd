package dispatcher

import (
	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
)

// Snapshot is the full application state at one point in the event
// sequence. Its parts are immutable values, so a Snapshot can be handed to
// readers without further copying.
type Snapshot struct {
	Tasks           taskstore.Store
	Archive         taskstore.Store
	Lists           worklist.State
	Selection       domain.Selection
	ActiveContextID string
}

// DefaultContext is the project every new snapshot starts with.
var DefaultContext = domain.WorkContext{ID: "inbox", Type: domain.ContextProject, Title: "Inbox"}

// NewSnapshot returns an empty snapshot with the default context active.
func NewSnapshot() Snapshot {
	return Snapshot{
		Lists:           worklist.NewState(worklist.Lists{Context: DefaultContext, Today: []string{}, Backlog: []string{}}),
		ActiveContextID: DefaultContext.ID,
	}
}

// ActiveLists returns the lists of the active context.
func (s Snapshot) ActiveLists() (worklist.Lists, bool) {
	return s.Lists.Get(s.ActiveContextID)
}

// CurrentTask returns the current task, if one is set and still exists.
func (s Snapshot) CurrentTask() (domain.Task, bool) {
	if !s.Selection.HasCurrent() {
		return domain.Task{}, false
	}
	return s.Tasks.Get(s.Selection.CurrentTaskID)
}

// DoneInActive returns the done top-level tasks of the active context's
// lists, in list order.
func (s Snapshot) DoneInActive() []string {
	l, ok := s.ActiveLists()
	if !ok {
		return nil
	}
	var out []string
	for _, ids := range [][]string{l.Today, l.Backlog} {
		for _, id := range ids {
			if t, ok := s.Tasks.Get(id); ok && t.IsDone {
				out = append(out, id)
			}
		}
	}
	return out
}
