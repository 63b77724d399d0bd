package app

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/focus/internal/config"
	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/riordanpawley/focus/internal/ui/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fakeSaver struct {
	mu    sync.Mutex
	saved []dispatcher.Snapshot
	err   error
}

func (f *fakeSaver) Save(_ context.Context, snap dispatcher.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, snap)
	return f.err
}

func (f *fakeSaver) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// seeded returns inbox today [A(A1, A2), B, C] and backlog [D], an empty
// work project and an urgent tag.
func seeded() dispatcher.Snapshot {
	return dispatcher.Snapshot{
		Tasks: taskstore.New(
			domain.Task{ID: "A", Title: "Write report", ProjectID: "inbox", SubTaskIDs: []string{"A1", "A2"}},
			domain.Task{ID: "A1", Title: "Outline", ProjectID: "inbox", ParentID: "A"},
			domain.Task{ID: "A2", Title: "Draft", ProjectID: "inbox", ParentID: "A"},
			domain.Task{ID: "B", Title: "Email Sam", ProjectID: "inbox"},
			domain.Task{ID: "C", Title: "Water plants", ProjectID: "inbox"},
			domain.Task{ID: "D", Title: "Learn Go", ProjectID: "inbox"},
		),
		Lists: worklist.NewState(
			worklist.Lists{Context: dispatcher.DefaultContext, Today: []string{"A", "B", "C"}, Backlog: []string{"D"}},
			worklist.Lists{Context: domain.WorkContext{ID: "work", Type: domain.ContextProject, Title: "Work"}},
			worklist.Lists{Context: domain.WorkContext{ID: "urgent", Type: domain.ContextTag, Title: "Urgent"}},
		),
		ActiveContextID: "inbox",
	}
}

func newTestModelFrom(snap dispatcher.Snapshot, saver Saver) Model {
	d := dispatcher.New(snap, dispatcher.Options{
		AutoStartNextTask:    true,
		AutoMarkParentAsDone: true,
		Now:                  func() time.Time { return fixedNow },
	}, testLogger())

	m := New(config.DefaultConfig(), d, saver, testLogger())
	n := 0
	m.newID = func() string {
		n++
		return "id-" + string(rune('0'+n))
	}
	m.now = func() time.Time { return fixedNow }
	m.width = 100
	m.height = 30
	return m
}

func newTestModel() (Model, *fakeSaver) {
	saver := &fakeSaver{}
	return newTestModelFrom(seeded(), saver), saver
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
)

// send feeds msg to the model and returns the new model and command
func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok, "Update returned %T", next)
	return out, cmd
}

// settle runs cmd and feeds its message back while it is one the model
// produces for itself. Cursor blinks and ticks stop the loop.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil && i < 10; i++ {
		msg := cmd()
		switch msg.(type) {
		case savedMsg, overlay.TaskTitleMsg, overlay.ContextChosenMsg,
			overlay.ConfirmResult, overlay.CloseOverlayMsg:
			m, cmd = send(t, m, msg)
		default:
			return m
		}
	}
	return m
}

// press sends keys and settles every resulting command
func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		var cmd tea.Cmd
		m, cmd = send(t, m, k)
		m = settle(t, m, cmd)
	}
	return m
}

// typeText sends s to the open input without running the blink commands
func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = send(t, m, runeKey(string(r)))
	}
	return m
}

func jump(t *testing.T, m Model, id string) {
	t.Helper()
	require.True(t, m.nav.JumpToTaskByID(m.navColumns(), id), "task %s not visible", id)
}

func today(t *testing.T, m Model, contextID string) []string {
	t.Helper()
	l, ok := m.Snapshot().Lists.Get(contextID)
	require.True(t, ok)
	return l.Today
}

func backlog(t *testing.T, m Model, contextID string) []string {
	t.Helper()
	l, ok := m.Snapshot().Lists.Get(contextID)
	require.True(t, ok)
	return l.Backlog
}

func lastToast(t *testing.T, m Model) Toast {
	t.Helper()
	require.NotEmpty(t, m.toasts)
	return m.toasts[len(m.toasts)-1]
}

func TestNew_NilConfig(t *testing.T) {
	d := dispatcher.New(dispatcher.NewSnapshot(), dispatcher.Options{}, testLogger())
	m := New(nil, d, nil, nil)

	assert.True(t, m.config.Tasks.AddToBottom)
	assert.Equal(t, 3*time.Second, m.toastTTL)
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestNew_CursorStartsOnCurrent(t *testing.T) {
	snap := seeded()
	snap.Selection = domain.Selection{CurrentTaskID: "C"}

	m := newTestModelFrom(snap, nil)

	assert.Equal(t, "C", m.cursorTaskID())
}

func TestNavigation(t *testing.T) {
	m, _ := newTestModel()
	assert.Equal(t, "A", m.cursorTaskID())

	m = press(t, m, runeKey("j"), runeKey("j"))
	assert.Equal(t, "A2", m.cursorTaskID())

	m = press(t, m, runeKey("l"))
	assert.Equal(t, "D", m.cursorTaskID())

	m = press(t, m, runeKey("h"), runeKey("G"))
	assert.Equal(t, "C", m.cursorTaskID())

	m = press(t, m, runeKey("g"))
	assert.Equal(t, "A", m.cursorTaskID())
}

func TestToggleStart(t *testing.T) {
	m, saver := newTestModel()

	m = press(t, m, spaceKey)
	assert.Equal(t, "A1", m.Snapshot().Selection.CurrentTaskID, "first undone leaf of today")
	assert.Equal(t, 1, saver.count())

	m = press(t, m, spaceKey)
	assert.False(t, m.Snapshot().Selection.HasCurrent())
	assert.Equal(t, "A1", m.Snapshot().Selection.LastCurrentTaskID)
}

func TestMarkDone_AdvancesToSibling(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, spaceKey)
	jump(t, m, "A1")

	m = press(t, m, runeKey("d"))

	a1, _ := m.Snapshot().Tasks.Get("A1")
	assert.True(t, a1.IsDone)
	assert.Equal(t, "A2", m.Snapshot().Selection.CurrentTaskID)
}

func TestMarkDone_LastChildCompletesParent(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "A1")
	m = press(t, m, runeKey("d"))
	jump(t, m, "A2")
	m = press(t, m, runeKey("d"))

	a, _ := m.Snapshot().Tasks.Get("A")
	assert.True(t, a.IsDone)
}

func TestSelectCursorTask(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "C")

	m = press(t, m, enterKey)
	assert.Equal(t, "C", m.Snapshot().Selection.CurrentTaskID)
}

func TestSelectParent_ShowsError(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "A")

	m = press(t, m, enterKey)

	assert.False(t, m.Snapshot().Selection.HasCurrent())
	assert.Equal(t, ToastError, lastToast(t, m).Level)
}

func TestAddTask_ThroughInput(t *testing.T) {
	m, saver := newTestModel()

	m, _ = send(t, m, runeKey("a"))
	assert.Equal(t, ModeInsert, m.Mode())

	m = typeText(t, m, "New")
	m = press(t, m, enterKey)

	assert.Equal(t, ModeNormal, m.Mode())
	task, ok := m.Snapshot().Tasks.Get("id-1")
	require.True(t, ok)
	assert.Equal(t, "New", task.Title)
	assert.Equal(t, []string{"A", "B", "C", "id-1"}, today(t, m, "inbox"))
	assert.Equal(t, "id-1", m.cursorTaskID())
	assert.Equal(t, 1, saver.count())
}

func TestAddTask_ToBacklogTop(t *testing.T) {
	m, _ := newTestModel()
	m.config.Tasks.AddToBottom = false

	m, _ = send(t, m, overlay.TaskTitleMsg{Title: "Later", ToBacklog: true})

	assert.Equal(t, []string{"id-1", "D"}, backlog(t, m, "inbox"))
}

func TestAddSubTask(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "B")

	m, _ = send(t, m, runeKey("s"))
	assert.Equal(t, ModeInsert, m.Mode())
	m = typeText(t, m, "x")
	m = press(t, m, enterKey)

	b, _ := m.Snapshot().Tasks.Get("B")
	assert.Equal(t, []string{"id-1"}, b.SubTaskIDs)
	assert.Equal(t, []string{"A", "B", "C"}, today(t, m, "inbox"))
}

func TestAddSubTask_OnSubTaskWarns(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "A1")

	m, _ = send(t, m, runeKey("s"))

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, ToastWarning, lastToast(t, m).Level)
}

func TestDelete_Confirmed(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "A")

	m, _ = send(t, m, runeKey("x"))
	assert.Equal(t, ModeConfirm, m.Mode())

	m = press(t, m, runeKey("y"))

	assert.Equal(t, ModeNormal, m.Mode())
	for _, id := range []string{"A", "A1", "A2"} {
		assert.False(t, m.Snapshot().Tasks.Has(id), id)
	}
	assert.Equal(t, []string{"B", "C"}, today(t, m, "inbox"))
	assert.Equal(t, "B", m.cursorTaskID(), "cursor keeps the row")
}

func TestDelete_Cancelled(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "B")

	m = press(t, m, runeKey("x"), runeKey("n"))

	assert.True(t, m.Snapshot().Tasks.Has("B"))
	assert.Empty(t, m.pendingDelete)
}

func TestArchiveDone(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "B")
	m = press(t, m, runeKey("d"))

	m = press(t, m, runeKey("A"), runeKey("y"))

	assert.False(t, m.Snapshot().Tasks.Has("B"))
	assert.True(t, m.Snapshot().Archive.Has("B"))
	assert.Equal(t, []string{"A", "C"}, today(t, m, "inbox"))
	assert.Equal(t, ToastSuccess, lastToast(t, m).Level)
}

func TestArchive_NothingDone(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, runeKey("A"))

	assert.Equal(t, ModeNormal, m.Mode())
	assert.Equal(t, "Nothing to archive", lastToast(t, m).Message)
}

func TestMoveToBacklogAndBack(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "B")

	m = press(t, m, runeKey("b"))
	assert.Equal(t, []string{"A", "C"}, today(t, m, "inbox"))
	assert.Equal(t, []string{"B", "D"}, backlog(t, m, "inbox"))

	jump(t, m, "D")
	m = press(t, m, runeKey("T"))
	assert.Equal(t, []string{"D", "A", "C"}, today(t, m, "inbox"))

	jump(t, m, "B")
	m = press(t, m, runeKey("t"))
	assert.Equal(t, []string{"D", "A", "C", "B"}, today(t, m, "inbox"))
	assert.Empty(t, backlog(t, m, "inbox"))
}

func TestMoveSubTask_Warns(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "A1")

	m = press(t, m, runeKey("b"))

	assert.Equal(t, []string{"A", "B", "C"}, today(t, m, "inbox"))
	assert.Equal(t, ToastWarning, lastToast(t, m).Level)
}

func TestNudge(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "C")

	m = press(t, m, runeKey("K"))
	assert.Equal(t, []string{"A", "C", "B"}, today(t, m, "inbox"))
	assert.Equal(t, "C", m.cursorTaskID(), "cursor follows the task")

	m = press(t, m, runeKey("J"), runeKey("J"))
	assert.Equal(t, []string{"A", "B", "C"}, today(t, m, "inbox"))
}

func TestNudge_Backlog(t *testing.T) {
	snap := seeded()
	lists, _ := snap.Lists.Get("inbox")
	lists.Backlog = []string{"D", "C"}
	lists.Today = []string{"A", "B"}
	snap.Lists = snap.Lists.With(lists)

	m := newTestModelFrom(snap, nil)
	jump(t, m, "C")

	m = press(t, m, runeKey("K"))
	assert.Equal(t, []string{"C", "D"}, backlog(t, m, "inbox"))
}

func TestContexts(t *testing.T) {
	m, _ := newTestModel()

	m = press(t, m, tabKey)
	assert.Equal(t, "work", m.Snapshot().ActiveContextID)
	m = press(t, m, tabKey)
	assert.Equal(t, "urgent", m.Snapshot().ActiveContextID)
	m = press(t, m, tabKey)
	assert.Equal(t, "inbox", m.Snapshot().ActiveContextID)

	m = press(t, m, runeKey("c"), runeKey("j"), enterKey)
	assert.Equal(t, "work", m.Snapshot().ActiveContextID)
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestAddTask_TagContextHasNoBacklog(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, tabKey, tabKey)
	require.Equal(t, "urgent", m.Snapshot().ActiveContextID)

	m, _ = send(t, m, runeKey("a"))
	m, _ = send(t, m, tabKey)
	m = typeText(t, m, "u")
	m = press(t, m, enterKey)

	assert.Equal(t, []string{"id-1"}, today(t, m, "urgent"))
}

func TestShowDoneToggle(t *testing.T) {
	m, _ := newTestModel()
	jump(t, m, "B")
	m = press(t, m, runeKey("d"))
	assert.Contains(t, m.navColumns()[0].TaskIDs, "B")

	m = press(t, m, runeKey("."))
	assert.NotContains(t, m.navColumns()[0].TaskIDs, "B")
}

func TestHelpOverlay(t *testing.T) {
	m, _ := newTestModel()

	m, _ = send(t, m, runeKey("?"))
	assert.Equal(t, ModeHelp, m.Mode())
	assert.Contains(t, m.View(), "Help")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ModeNormal, m.Mode())
}

func TestSave_OneInFlight(t *testing.T) {
	m, saver := newTestModel()

	m, first := send(t, m, spaceKey)
	require.NotNil(t, first)
	assert.True(t, m.saving)

	// A second change while saving only marks the state dirty
	m, second := send(t, m, spaceKey)
	assert.Nil(t, second)
	assert.True(t, m.dirty)

	m, chained := send(t, m, first())
	require.NotNil(t, chained, "dirty state triggers another save")
	assert.False(t, m.dirty)

	m, done := send(t, m, chained())
	assert.Nil(t, done)
	assert.False(t, m.saving)
	require.Equal(t, 2, saver.count())
	assert.False(t, saver.saved[1].Selection.HasCurrent(), "latest state saved last")
}

func TestQuit_WaitsForSave(t *testing.T) {
	m, _ := newTestModel()

	m, save := send(t, m, spaceKey)
	m, cmd := send(t, m, runeKey("q"))
	assert.Nil(t, cmd, "quit waits for the running save")

	_, cmd = send(t, m, save())
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuit_Immediate(t *testing.T) {
	m, _ := newTestModel()

	_, cmd := send(t, m, runeKey("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSave_ErrorShowsToast(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	m := newTestModelFrom(seeded(), saver)

	m = press(t, m, spaceKey)

	assert.Equal(t, ToastError, lastToast(t, m).Level)
	assert.Contains(t, lastToast(t, m).Message, "disk full")
	assert.False(t, m.saving)
}

func TestExpireToasts(t *testing.T) {
	m, _ := newTestModel()
	m.addToast(ToastInfo, "short")
	m.addToast(ToastError, "long")

	m.now = func() time.Time { return fixedNow.Add(4 * time.Second) }
	m, _ = send(t, m, tickMsg(fixedNow))

	require.Len(t, m.toasts, 1)
	assert.Equal(t, "long", m.toasts[0].Message)
}

func TestViewHeight(t *testing.T) {
	m, _ := newTestModel()
	m.width = 80
	m.height = 24

	check := func(name string, m Model) {
		t.Run(name, func(t *testing.T) {
			lines := strings.Split(strings.TrimRight(m.View(), "\n"), "\n")
			assert.LessOrEqual(t, len(lines), m.height)
		})
	}

	check("normal view", m)

	m.addToast(ToastInfo, "test toast")
	check("with toasts", m)

	withOverlay, _ := send(t, m, runeKey("a"))
	check("with overlay", withOverlay)
}

func TestView_NoSize(t *testing.T) {
	m, _ := newTestModel()
	m.width = 0

	assert.Equal(t, "Loading...", m.View())
}

func TestView_ShowsContextAndCurrent(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, spaceKey)

	view := m.View()
	assert.Contains(t, view, "focus · Inbox")
	assert.Contains(t, view, "Outline")
	assert.Contains(t, view, "Today")
}
