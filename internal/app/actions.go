package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/riordanpawley/focus/internal/services/navigation"
	"github.com/riordanpawley/focus/internal/ui/overlay"
)

// savedMsg reports the end of a background save
type savedMsg struct {
	err error
}

// dispatch runs ev through the dispatcher, refreshes the view state and
// schedules a save
func (m Model) dispatch(ev domain.Event) (tea.Model, tea.Cmd) {
	snap, err := m.dispatcher.Dispatch(context.Background(), ev)
	if err != nil {
		m.logger.Warn("event failed", "kind", ev.Kind(), "error", err)
		m.addToast(ToastError, firstLine(err.Error()))
	}

	m.snap = snap
	m.nav.Sync(m.navColumns())
	cmd := m.requestSave()
	return m, cmd
}

// requestSave starts a save, or marks the state dirty if one is running
func (m *Model) requestSave() tea.Cmd {
	if m.saver == nil {
		return nil
	}
	if m.saving {
		m.dirty = true
		return nil
	}
	m.saving = true
	return m.saveCmd(m.snap)
}

func (m Model) saveCmd(snap dispatcher.Snapshot) tea.Cmd {
	saver := m.saver
	return func() tea.Msg {
		return savedMsg{err: saver.Save(context.Background(), snap)}
	}
}

// handleSaved chains the next save or finishes quitting
func (m Model) handleSaved(msg savedMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.logger.Error("save failed", "error", msg.err)
		m.addToast(ToastError, "Save failed: "+msg.err.Error())
	}

	if m.dirty {
		m.dirty = false
		m.saving = true
		return m, m.saveCmd(m.snap)
	}
	if m.quitting {
		return m, tea.Quit
	}
	return m, nil
}

// quit waits for a running save before exiting
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	if m.saving {
		return m, nil
	}
	return m, tea.Quit
}

// createTask turns the add-task input into a CreateTask event
func (m Model) createTask(msg overlay.TaskTitleMsg) (tea.Model, tea.Cmd) {
	task := domain.Task{
		ID:       m.newID(),
		Title:    msg.Title,
		ParentID: msg.ParentID,
	}
	ev := domain.CreateTask{
		Task:      task,
		ContextID: m.snap.ActiveContextID,
		ToBacklog: msg.ToBacklog,
		ToBottom:  m.config.Tasks.AddToBottom,
	}

	model, cmd := m.dispatch(ev)
	out := model.(Model)
	if out.snap.Tasks.Has(task.ID) {
		out.nav.JumpToTaskByID(out.navColumns(), task.ID)
	}
	return out, cmd
}

// openSubTaskInput prompts for a sub-task of the cursor task
func (m Model) openSubTaskInput() (tea.Model, tea.Cmd) {
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	if t.IsSubTask() {
		m.addToast(ToastWarning, "Sub-tasks cannot have sub-tasks")
		return m, nil
	}
	return m, m.overlayStack.Push(overlay.NewSubTaskInput(t.ID, t.Title))
}

// confirmDelete asks before deleting the cursor task
func (m Model) confirmDelete() (tea.Model, tea.Cmd) {
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	m.pendingDelete = t.ID

	message := fmt.Sprintf("Delete %q?", t.Title)
	if t.HasSubTasks() {
		message = fmt.Sprintf("Delete %q and its %d sub-tasks?", t.Title, len(t.SubTaskIDs))
	}
	return m, m.overlayStack.Push(overlay.NewConfirmDialog("Delete Task", message, actionDelete))
}

// confirmArchive asks before archiving the done tasks of the active context
func (m Model) confirmArchive() (tea.Model, tea.Cmd) {
	done := m.snap.DoneInActive()
	if len(done) == 0 {
		m.addToast(ToastInfo, "Nothing to archive")
		return m, nil
	}
	message := fmt.Sprintf("Archive %d done tasks?", len(done))
	return m, m.overlayStack.Push(overlay.NewConfirmDialog("Archive", message, actionArchive))
}

// handleConfirm runs the confirmed action
func (m Model) handleConfirm(msg overlay.ConfirmResult) (tea.Model, tea.Cmd) {
	pending := m.pendingDelete
	m.pendingDelete = ""
	if !msg.Confirmed {
		return m, nil
	}

	switch msg.Action {
	case actionDelete:
		if pending == "" {
			return m, nil
		}
		return m.dispatch(domain.DeleteTask{TaskID: pending, ContextID: m.snap.ActiveContextID})

	case actionArchive:
		done := m.snap.DoneInActive()
		batch := make([]domain.ArchivedTask, len(done))
		for i, id := range done {
			batch[i] = domain.ArchivedTask{TaskID: id, ContextID: m.snap.ActiveContextID}
		}
		model, cmd := m.dispatch(domain.ArchiveTasks{Tasks: batch})
		out := model.(Model)
		out.addToast(ToastSuccess, fmt.Sprintf("Archived %d tasks", len(batch)))
		return out, cmd
	}
	return m, nil
}

// moveCursorTask runs fn for the cursor task if it is a list member
func (m Model) moveCursorTask(fn func(id string) (tea.Model, tea.Cmd)) (tea.Model, tea.Cmd) {
	t, ok := m.cursorTask()
	if !ok {
		return m, nil
	}
	if t.IsSubTask() {
		m.addToast(ToastWarning, "Sub-tasks move with their parent")
		return m, nil
	}
	return fn(t.ID)
}

// nudge swaps the cursor task with its neighbour in its column
func (m Model) nudge(up bool) (tea.Model, tea.Cmd) {
	inBacklog := m.nav.CurrentColumn(m.navColumns()) == navigation.ColumnBacklog
	ctxID := m.snap.ActiveContextID

	return m.moveCursorTask(func(id string) (tea.Model, tea.Cmd) {
		switch {
		case up && inBacklog:
			return m.dispatch(domain.NudgeUpBacklog{TaskID: id, ContextID: ctxID})
		case up:
			return m.dispatch(domain.NudgeUpToday{TaskID: id, ContextID: ctxID})
		case inBacklog:
			return m.dispatch(domain.NudgeDownBacklog{TaskID: id, ContextID: ctxID})
		default:
			return m.dispatch(domain.NudgeDownToday{TaskID: id, ContextID: ctxID})
		}
	})
}

// cursorTaskID returns the id under the cursor, or ""
func (m Model) cursorTaskID() string {
	return m.nav.CurrentTaskID(m.navColumns())
}

// cursorTask returns the task under the cursor
func (m Model) cursorTask() (domain.Task, bool) {
	id := m.cursorTaskID()
	if id == "" {
		return domain.Task{}, false
	}
	return m.snap.Tasks.Get(id)
}

// nextContextID returns the context after the active one, wrapping around
func (m Model) nextContextID() string {
	ids := m.snap.Lists.ContextIDs()
	if len(ids) == 0 {
		return m.snap.ActiveContextID
	}
	return ids[(m.activeContextIndex()+1)%len(ids)]
}

// contexts returns the work contexts in display order
func (m Model) contexts() []domain.WorkContext {
	all := m.snap.Lists.All()
	out := make([]domain.WorkContext, len(all))
	for i, l := range all {
		out[i] = l.Context
	}
	return out
}

// activeContextIndex returns the position of the active context
func (m Model) activeContextIndex() int {
	for i, id := range m.snap.Lists.ContextIDs() {
		if id == m.snap.ActiveContextID {
			return i
		}
	}
	return -1
}

// activeHasBacklog reports whether tasks can be added to a backlog
func (m Model) activeHasBacklog() bool {
	l, ok := m.snap.ActiveLists()
	return ok && l.Context.Type.HasBacklog()
}
