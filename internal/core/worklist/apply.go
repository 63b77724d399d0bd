package worklist

import (
	"errors"

	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/domain"
)

// Apply applies one lifecycle event and returns the resulting state.
//
// Failures never corrupt the lists: when an error is returned the state
// is either the input unchanged or, for batch events (ArchiveTasks,
// TransferTask), the input with every resolvable part applied. Errors wrap
// domain.ErrUnknownContext or domain.ErrInvalidMove. Events that do not
// touch lists return the input unchanged.
func Apply(s State, ev domain.Event) (State, error) {
	switch e := ev.(type) {
	case domain.CreateTask:
		return applyCreate(s, e)
	case domain.DeleteTask:
		return applyDelete(s, e)
	case domain.ArchiveTasks:
		return applyArchive(s, e)
	case domain.RestoreTask:
		return applyRestore(s, e)
	case domain.TransferTask:
		return applyTransfer(s, e)

	case domain.MoveWithinToday:
		return updateToday(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.ReorderWithinList(e.TaskID, e.NewOrderedIDs, ids)
		})
	case domain.MoveWithinBacklog:
		return updateBacklog(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.ReorderWithinList(e.TaskID, e.NewOrderedIDs, ids)
		})
	case domain.MoveTodayToBacklog:
		return applyMoveBetween(s, e.Kind(), e.ContextID, e.TaskID, e.NewOrderedIDs, true)
	case domain.MoveBacklogToToday:
		return applyMoveBetween(s, e.Kind(), e.ContextID, e.TaskID, e.NewOrderedIDs, false)
	case domain.MoveTodayToBacklogAuto:
		return applyToBacklogAuto(s, e)
	case domain.MoveBacklogToTodayAuto:
		return applyToTodayAuto(s, e)

	case domain.NudgeUpToday:
		return updateToday(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.NudgeLeft(ids, e.TaskID)
		})
	case domain.NudgeDownToday:
		return updateToday(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.NudgeRight(ids, e.TaskID)
		})
	case domain.NudgeUpBacklog:
		return updateBacklog(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.NudgeLeft(ids, e.TaskID)
		})
	case domain.NudgeDownBacklog:
		return updateBacklog(s, e.Kind(), e.ContextID, e.TaskID, func(ids []string) ([]string, error) {
			return reorder.NudgeRight(ids, e.TaskID)
		})

	case domain.AddContext:
		if s.Has(e.Context.ID) {
			return s, nil
		}
		return s.With(Lists{Context: e.Context, Today: []string{}, Backlog: []string{}}), nil
	case domain.RemoveContext:
		if !s.Has(e.ContextID) {
			return s, domain.UnknownContext(string(e.Kind()), e.ContextID)
		}
		return s.Without(e.ContextID), nil
	}

	return s, nil
}

func applyCreate(s State, e domain.CreateTask) (State, error) {
	// Sub-tasks live under their parent, never in a list
	if e.Task.IsSubTask() {
		return s, nil
	}
	contextID := e.ContextID
	if contextID == "" {
		contextID = e.Task.ProjectID
	}
	if contextID == "" {
		return s, nil
	}

	l, ok := s.contexts[contextID]
	if !ok {
		return s, domain.UnknownContext(string(e.Kind()), contextID)
	}
	if e.ToBacklog && !l.Context.Type.HasBacklog() {
		return s, domain.InvalidMove(string(e.Kind()), contextID, e.Task.ID, "tag contexts have no backlog")
	}

	next := l.clone()
	next.Today = reorder.Without(next.Today, e.Task.ID)
	next.Backlog = reorder.Without(next.Backlog, e.Task.ID)
	insert := reorder.Prepend
	if e.ToBottom {
		insert = reorder.Append
	}
	if e.ToBacklog {
		next.Backlog = insert(next.Backlog, e.Task.ID)
	} else {
		next.Today = insert(next.Today, e.Task.ID)
	}
	return s.With(next), nil
}

func applyDelete(s State, e domain.DeleteTask) (State, error) {
	if e.ContextID == "" {
		return s, nil
	}
	l, ok := s.contexts[e.ContextID]
	if !ok {
		return s, domain.UnknownContext(string(e.Kind()), e.ContextID)
	}
	if !l.Contains(e.TaskID) {
		return s, nil
	}

	next := l.clone()
	next.Today = reorder.Without(next.Today, e.TaskID)
	next.Backlog = reorder.Without(next.Backlog, e.TaskID)
	return s.With(next), nil
}

func applyArchive(s State, e domain.ArchiveTasks) (State, error) {
	byContext := make(map[string]map[string]bool)
	var order []string
	for _, t := range e.Tasks {
		if t.ContextID == "" {
			continue
		}
		if _, ok := byContext[t.ContextID]; !ok {
			byContext[t.ContextID] = make(map[string]bool)
			order = append(order, t.ContextID)
		}
		byContext[t.ContextID][t.TaskID] = true
	}

	var errs []error
	out := s
	for _, contextID := range order {
		l, ok := out.contexts[contextID]
		if !ok {
			errs = append(errs, domain.UnknownContext(string(e.Kind()), contextID))
			continue
		}
		next := l.clone()
		next.Today = reorder.WithoutAll(next.Today, byContext[contextID])
		next.Backlog = reorder.WithoutAll(next.Backlog, byContext[contextID])
		out = out.With(next)
	}
	return out, errors.Join(errs...)
}

func applyRestore(s State, e domain.RestoreTask) (State, error) {
	if e.ContextID == "" {
		return s, nil
	}
	l, ok := s.contexts[e.ContextID]
	if !ok {
		return s, domain.UnknownContext(string(e.Kind()), e.ContextID)
	}

	next := l.clone()
	next.Backlog = reorder.Without(next.Backlog, e.TaskID)
	next.Today = reorder.Append(next.Today, e.TaskID)
	return s.With(next), nil
}

func applyTransfer(s State, e domain.TransferTask) (State, error) {
	var errs []error
	out := s

	if e.SourceContextID != "" {
		if l, ok := out.contexts[e.SourceContextID]; ok {
			next := l.clone()
			next.Today = reorder.Without(next.Today, e.TaskID)
			next.Backlog = reorder.Without(next.Backlog, e.TaskID)
			out = out.With(next)
		} else {
			errs = append(errs, domain.UnknownContext(string(e.Kind()), e.SourceContextID))
		}
	}

	if e.TargetContextID != "" {
		if l, ok := out.contexts[e.TargetContextID]; ok {
			next := l.clone()
			next.Backlog = reorder.Without(next.Backlog, e.TaskID)
			next.Today = reorder.Append(next.Today, e.TaskID)
			out = out.With(next)
		} else {
			errs = append(errs, domain.UnknownContext(string(e.Kind()), e.TargetContextID))
		}
	}

	return out, errors.Join(errs...)
}

func applyMoveBetween(s State, kind domain.EventKind, contextID, taskID string, desired []string, toBacklog bool) (State, error) {
	l, ok := s.contexts[contextID]
	if !ok {
		return s, domain.UnknownContext(string(kind), contextID)
	}
	if !l.Context.Type.HasBacklog() {
		return s, domain.InvalidMove(string(kind), contextID, taskID, "tag contexts have no backlog")
	}

	next := l.clone()
	var err error
	if toBacklog {
		next.Today, next.Backlog, err = reorder.MoveBetweenLists(taskID, desired, l.Today, l.Backlog)
	} else {
		next.Backlog, next.Today, err = reorder.MoveBetweenLists(taskID, desired, l.Backlog, l.Today)
	}
	if err != nil {
		return s, moveError(kind, contextID, taskID, err)
	}
	return s.With(next), nil
}

func applyToBacklogAuto(s State, e domain.MoveTodayToBacklogAuto) (State, error) {
	l, ok := s.contexts[e.ContextID]
	if !ok {
		return s, domain.UnknownContext(string(e.Kind()), e.ContextID)
	}
	if !l.Context.Type.HasBacklog() {
		return s, domain.InvalidMove(string(e.Kind()), e.ContextID, e.TaskID, "tag contexts have no backlog")
	}
	if reorder.Contains(l.Backlog, e.TaskID) {
		return s, nil
	}

	next := l.clone()
	next.Today = reorder.Without(next.Today, e.TaskID)
	next.Backlog = reorder.Prepend(next.Backlog, e.TaskID)
	return s.With(next), nil
}

func applyToTodayAuto(s State, e domain.MoveBacklogToTodayAuto) (State, error) {
	l, ok := s.contexts[e.ContextID]
	if !ok {
		return s, domain.UnknownContext(string(e.Kind()), e.ContextID)
	}
	if reorder.Contains(l.Today, e.TaskID) {
		return s, nil
	}

	next := l.clone()
	next.Backlog = reorder.Without(next.Backlog, e.TaskID)
	if e.MoveToTop {
		next.Today = reorder.Prepend(next.Today, e.TaskID)
	} else {
		next.Today = reorder.Append(next.Today, e.TaskID)
	}
	return s.With(next), nil
}

func updateToday(s State, kind domain.EventKind, contextID, taskID string, fn func([]string) ([]string, error)) (State, error) {
	l, ok := s.contexts[contextID]
	if !ok {
		return s, domain.UnknownContext(string(kind), contextID)
	}
	today, err := fn(l.Today)
	if err != nil {
		return s, moveError(kind, contextID, taskID, err)
	}
	next := l.clone()
	next.Today = today
	return s.With(next), nil
}

func updateBacklog(s State, kind domain.EventKind, contextID, taskID string, fn func([]string) ([]string, error)) (State, error) {
	l, ok := s.contexts[contextID]
	if !ok {
		return s, domain.UnknownContext(string(kind), contextID)
	}
	if !l.Context.Type.HasBacklog() {
		return s, domain.InvalidMove(string(kind), contextID, taskID, "tag contexts have no backlog")
	}
	backlog, err := fn(l.Backlog)
	if err != nil {
		return s, moveError(kind, contextID, taskID, err)
	}
	next := l.clone()
	next.Backlog = backlog
	return s.With(next), nil
}

func moveError(kind domain.EventKind, contextID, taskID string, err error) error {
	return &domain.ListError{Op: string(kind), ContextID: contextID, TaskID: taskID, Err: err}
}
