package dispatcher

import (
	"errors"

	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/domain"
)

// applyTasks applies the task repository part of ev and fills in the
// context ids the list store needs. A nil event means ev was rejected and
// nothing changed.
func (d *Dispatcher) applyTasks(s Snapshot, ev domain.Event) (Snapshot, domain.Event, error) {
	op := string(ev.Kind())

	switch e := ev.(type) {
	case domain.CreateTask:
		return d.createTask(s, e)

	case domain.DeleteTask:
		t, ok := s.Tasks.Get(e.TaskID)
		if !ok {
			return s, nil, domain.UnknownTask(op, e.TaskID)
		}
		if e.ContextID != "" && !s.Lists.Has(e.ContextID) {
			return s, nil, domain.UnknownContext(op, e.ContextID)
		}
		if t.IsSubTask() {
			s.Tasks = detach(s.Tasks, t)
			e.ContextID = ""
		} else if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		s.Tasks = s.Tasks.Remove(s.Tasks.WithSubTasks(e.TaskID)...)
		return s, e, nil

	case domain.ArchiveTasks:
		var errs []error
		batch := make([]domain.ArchivedTask, 0, len(e.Tasks))
		for _, a := range e.Tasks {
			t, ok := s.Tasks.Get(a.TaskID)
			if !ok {
				errs = append(errs, domain.UnknownTask(op, a.TaskID))
				continue
			}
			if t.IsSubTask() {
				errs = append(errs, domain.InvalidMove(op, "", a.TaskID, "sub-tasks are archived with their parent"))
				continue
			}
			if a.ContextID == "" {
				a.ContextID = contextFor(s, a.TaskID)
			}
			if !s.Lists.Has(a.ContextID) {
				errs = append(errs, domain.UnknownContext(op, a.ContextID))
				continue
			}
			ids := s.Tasks.WithSubTasks(a.TaskID)
			for _, id := range ids {
				if c, ok := s.Tasks.Get(id); ok {
					s.Archive = s.Archive.Upsert(c)
				}
			}
			s.Tasks = s.Tasks.Remove(ids...)
			batch = append(batch, a)
		}
		e.Tasks = batch
		return s, e, errors.Join(errs...)

	case domain.RestoreTask:
		t, ok := s.Archive.Get(e.TaskID)
		if !ok {
			return s, nil, domain.UnknownTask(op, e.TaskID)
		}
		if t.IsSubTask() {
			return s, nil, domain.InvalidMove(op, "", e.TaskID, "sub-tasks are restored with their parent")
		}
		if e.ContextID == "" && s.Lists.Has(t.ProjectID) {
			e.ContextID = t.ProjectID
		}
		if e.ContextID == "" {
			e.ContextID = s.ActiveContextID
		}
		if !s.Lists.Has(e.ContextID) {
			return s, nil, domain.UnknownContext(op, e.ContextID)
		}
		ids := s.Archive.WithSubTasks(e.TaskID)
		for _, id := range ids {
			if c, ok := s.Archive.Get(id); ok {
				s.Tasks = s.Tasks.Upsert(c)
			}
		}
		s.Archive = s.Archive.Remove(ids...)
		return s, e, nil

	case domain.TransferTask:
		t, ok := s.Tasks.Get(e.TaskID)
		if !ok {
			return s, nil, domain.UnknownTask(op, e.TaskID)
		}
		if t.IsSubTask() {
			return s, nil, domain.InvalidMove(op, "", e.TaskID, "sub-tasks move with their parent")
		}
		target, ok := s.Lists.Get(e.TargetContextID)
		if !ok {
			return s, nil, domain.UnknownContext(op, e.TargetContextID)
		}
		if target.Context.Type != domain.ContextProject {
			return s, nil, domain.InvalidMove(op, e.TargetContextID, e.TaskID, "tasks can only be moved to a project")
		}
		if e.SourceContextID == "" {
			e.SourceContextID = contextFor(s, e.TaskID)
		} else if !s.Lists.Has(e.SourceContextID) {
			return s, nil, domain.UnknownContext(op, e.SourceContextID)
		}
		if e.SourceContextID == e.TargetContextID {
			return s, nil, domain.InvalidMove(op, e.TargetContextID, e.TaskID, "task is already in this project")
		}
		for _, id := range s.Tasks.WithSubTasks(e.TaskID) {
			s.Tasks, _ = s.Tasks.Update(id, func(t domain.Task) domain.Task {
				t.ProjectID = e.TargetContextID
				return t
			})
		}
		return s, e, nil

	case domain.UpdateTask:
		now := d.opts.Now()
		tasks, ok := s.Tasks.Update(e.TaskID, func(t domain.Task) domain.Task {
			return e.Changes.Apply(t, now)
		})
		if !ok {
			return s, nil, domain.UnknownTask(op, e.TaskID)
		}
		s.Tasks = tasks
		return s, e, nil

	case domain.SetCurrentTask:
		if e.TaskID != "" {
			t, ok := s.Tasks.Get(e.TaskID)
			if !ok {
				return s, nil, domain.UnknownTask(op, e.TaskID)
			}
			if t.HasSubTasks() {
				return s, nil, domain.InvalidMove(op, "", e.TaskID, "tasks with sub-tasks are not selectable")
			}
			if t.IsDone {
				return s, nil, domain.InvalidMove(op, "", e.TaskID, "done tasks are not selectable")
			}
		}
		s.Selection = s.Selection.WithCurrent(e.TaskID)
		return s, e, nil

	case domain.SetActiveContext:
		if !s.Lists.Has(e.ContextID) {
			return s, nil, domain.UnknownContext(op, e.ContextID)
		}
		s.ActiveContextID = e.ContextID
		return s, e, nil

	case domain.AddContext:
		if e.Context.ID == "" {
			return s, nil, domain.UnknownContext(op, "")
		}
		if e.Context.Type == "" {
			e.Context.Type = domain.ContextProject
		}
		if e.Context.Title == "" {
			e.Context.Title = e.Context.ID
		}
		return s, e, nil

	case domain.MoveWithinToday:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.MoveWithinBacklog:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.MoveTodayToBacklog:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.MoveBacklogToToday:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.MoveTodayToBacklogAuto:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.MoveBacklogToTodayAuto:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.NudgeUpToday:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.NudgeDownToday:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.NudgeUpBacklog:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	case domain.NudgeDownBacklog:
		if e.ContextID == "" {
			e.ContextID = contextFor(s, e.TaskID)
		}
		return s, e, nil
	}

	return s, ev, nil
}

func (d *Dispatcher) createTask(s Snapshot, e domain.CreateTask) (Snapshot, domain.Event, error) {
	op := string(e.Kind())
	t := e.Task
	if t.ID == "" {
		return s, nil, &domain.ListError{Op: op, Message: "task id is required", Err: domain.ErrUnknownTask}
	}
	if s.Tasks.Has(t.ID) || s.Archive.Has(t.ID) {
		return s, nil, &domain.ListError{Op: op, TaskID: t.ID, Err: domain.ErrTaskExists}
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = d.opts.Now()
	}
	t.SubTaskIDs = nil

	if t.IsSubTask() {
		parent, ok := s.Tasks.Get(t.ParentID)
		if !ok {
			return s, nil, domain.UnknownTask(op, t.ParentID)
		}
		if parent.IsSubTask() {
			return s, nil, domain.InvalidMove(op, "", t.ID, "sub-tasks cannot have children")
		}
		t.ProjectID = parent.ProjectID
		s.Tasks, _ = s.Tasks.Update(parent.ID, func(p domain.Task) domain.Task {
			p.SubTaskIDs = reorder.Append(p.SubTaskIDs, t.ID)
			return p
		})
		e.ContextID = ""
	} else {
		if e.ContextID == "" {
			e.ContextID = t.ProjectID
		}
		if e.ContextID == "" {
			e.ContextID = s.ActiveContextID
		}
		l, ok := s.Lists.Get(e.ContextID)
		if !ok {
			return s, nil, domain.UnknownContext(op, e.ContextID)
		}
		if e.ToBacklog && !l.Context.Type.HasBacklog() {
			return s, nil, domain.InvalidMove(op, e.ContextID, t.ID, "tag contexts have no backlog")
		}
		if t.ProjectID == "" && l.Context.Type == domain.ContextProject {
			t.ProjectID = e.ContextID
		}
	}

	e.Task = t
	s.Tasks = s.Tasks.Upsert(t)
	return s, e, nil
}

// detach removes a sub-task from its parent's child list.
func detach(tasks taskstore.Store, t domain.Task) taskstore.Store {
	out, _ := tasks.Update(t.ParentID, func(p domain.Task) domain.Task {
		p.SubTaskIDs = reorder.Without(p.SubTaskIDs, t.ID)
		return p
	})
	return out
}
