// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/riordanpawley/focus/internal/config"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/riordanpawley/focus/internal/services/navigation"
	"github.com/riordanpawley/focus/internal/types"
	"github.com/riordanpawley/focus/internal/ui/board"
	"github.com/riordanpawley/focus/internal/ui/overlay"
	"github.com/riordanpawley/focus/internal/ui/statusbar"
	"github.com/riordanpawley/focus/internal/ui/styles"
	"github.com/riordanpawley/focus/internal/ui/toast"
)

// Re-export Mode type and constants for convenience
type Mode = types.Mode

const (
	ModeNormal  = types.ModeNormal
	ModeInsert  = types.ModeInsert
	ModeConfirm = types.ModeConfirm
	ModeHelp    = types.ModeHelp
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

// Confirm dialog actions
const (
	actionDelete  = "delete"
	actionArchive = "archive"
)

// Saver persists snapshots
type Saver interface {
	Save(ctx context.Context, snap dispatcher.Snapshot) error
}

// Model is the main application state
type Model struct {
	// Core data
	dispatcher *dispatcher.Dispatcher
	snap       dispatcher.Snapshot
	saver      Saver

	// Save bookkeeping: at most one save in flight, dirty asks for another
	saving   bool
	dirty    bool
	quitting bool

	// Navigation
	nav *navigation.Service

	// UI state
	overlayStack  *overlay.Stack
	keys          KeyMap
	showDone      bool
	pendingDelete string

	// Toasts
	toasts   []Toast
	toastTTL time.Duration

	// Terminal size
	width  int
	height int

	styles *styles.Styles
	config *config.Config
	logger *slog.Logger

	newID func() string
	now   func() time.Time
}

// New creates the application model around a dispatcher and a saver
func New(cfg *config.Config, d *dispatcher.Dispatcher, saver Saver, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg = config.MergeWithDefaults(cfg)

	m := Model{
		dispatcher:   d,
		snap:         d.Snapshot(),
		saver:        saver,
		nav:          navigation.NewService(),
		overlayStack: overlay.NewStack(),
		keys:         DefaultKeyMap(),
		showDone:     cfg.UI.ShowDone,
		toastTTL:     time.Duration(cfg.UI.ToastSeconds) * time.Second,
		styles:       styles.New(),
		config:       cfg,
		logger:       logger,
		newID:        uuid.NewString,
		now:          time.Now,
	}

	// Start on the task being worked on
	columns := m.navColumns()
	if !m.nav.JumpToTaskByID(columns, m.snap.Selection.CurrentTaskID) {
		m.nav.Sync(columns)
	}
	return m
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tickEvery(time.Second)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.quit()
		}
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleNormalMode(msg)

	case overlay.CloseOverlayMsg:
		m.overlayStack.Resolve(msg)
		return m, nil

	case overlay.TaskTitleMsg:
		m.overlayStack.Resolve(msg)
		return m.createTask(msg)

	case overlay.ContextChosenMsg:
		m.overlayStack.Resolve(msg)
		return m.dispatch(domain.SetActiveContext{ContextID: msg.ContextID})

	case overlay.ConfirmResult:
		m.overlayStack.Resolve(msg)
		return m.handleConfirm(msg)

	case savedMsg:
		return m.handleSaved(msg)

	case tickMsg:
		m.expireToasts()
		return m, tickEvery(time.Second)
	}

	// Anything else (cursor blink) goes to the open overlay
	if !m.overlayStack.IsEmpty() {
		return m, m.overlayStack.Update(msg)
	}
	return m, nil
}

// View renders the whole screen
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()
	statusBarView := m.renderStatusBar()

	var toastView string
	if len(m.toasts) > 0 {
		toastView = toast.New(m.styles).Render(m.toasts, m.width)
	}

	mainHeight := m.height - lipgloss.Height(header) - lipgloss.Height(statusBarView)
	if toastView != "" {
		mainHeight -= lipgloss.Height(toastView)
	}
	if mainHeight < 3 {
		mainHeight = 3
	}

	var mainView string
	if !m.overlayStack.IsEmpty() {
		mainView = m.renderOverlay(mainHeight)
	} else {
		mainView = m.renderBoard(mainHeight)
	}

	parts := []string{header, mainView}
	if toastView != "" {
		parts = append(parts, toastView)
	}
	parts = append(parts, statusBarView)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Mode returns the input mode implied by the open overlay
func (m Model) Mode() Mode {
	switch m.overlayStack.Current().(type) {
	case *overlay.TaskInput:
		return ModeInsert
	case *overlay.ConfirmDialog:
		return ModeConfirm
	case *overlay.HelpOverlay:
		return ModeHelp
	default:
		return ModeNormal
	}
}

// Snapshot returns the state the model currently shows
func (m Model) Snapshot() dispatcher.Snapshot {
	return m.snap
}

// handleNormalMode processes keyboard input with no overlay open
func (m Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	columns := m.navColumns()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	// Navigation
	case key.Matches(msg, m.keys.Down):
		m.nav.MoveDown(columns)
	case key.Matches(msg, m.keys.Up):
		m.nav.MoveUp(columns)
	case key.Matches(msg, m.keys.Left):
		m.nav.MoveLeft(columns)
	case key.Matches(msg, m.keys.Right):
		m.nav.MoveRight(columns)
	case key.Matches(msg, m.keys.Top):
		m.nav.GotoTop(columns)
	case key.Matches(msg, m.keys.Bottom):
		m.nav.GotoBottom(columns)

	// Selection
	case key.Matches(msg, m.keys.Toggle):
		return m.dispatch(domain.ToggleStart{})
	case key.Matches(msg, m.keys.Select):
		if id := m.cursorTaskID(); id != "" {
			return m.dispatch(domain.SetCurrentTask{TaskID: id})
		}

	// Task actions
	case key.Matches(msg, m.keys.Done):
		if t, ok := m.cursorTask(); ok {
			return m.dispatch(domain.UpdateTask{TaskID: t.ID, Changes: domain.TaskChanges{IsDone: domain.Bool(!t.IsDone)}})
		}
	case key.Matches(msg, m.keys.Delete):
		return m.confirmDelete()
	case key.Matches(msg, m.keys.Add):
		return m, m.overlayStack.Push(overlay.NewTaskInput(m.activeHasBacklog()))
	case key.Matches(msg, m.keys.AddSubTask):
		return m.openSubTaskInput()
	case key.Matches(msg, m.keys.Archive):
		return m.confirmArchive()

	// List moves
	case key.Matches(msg, m.keys.ToBacklog):
		return m.moveCursorTask(func(id string) (tea.Model, tea.Cmd) {
			return m.dispatch(domain.MoveTodayToBacklogAuto{TaskID: id, ContextID: m.snap.ActiveContextID})
		})
	case key.Matches(msg, m.keys.ToToday):
		return m.moveCursorTask(func(id string) (tea.Model, tea.Cmd) {
			return m.dispatch(domain.MoveBacklogToTodayAuto{TaskID: id, ContextID: m.snap.ActiveContextID})
		})
	case key.Matches(msg, m.keys.ToTodayTop):
		return m.moveCursorTask(func(id string) (tea.Model, tea.Cmd) {
			return m.dispatch(domain.MoveBacklogToTodayAuto{TaskID: id, ContextID: m.snap.ActiveContextID, MoveToTop: true})
		})
	case key.Matches(msg, m.keys.NudgeUp):
		return m.nudge(true)
	case key.Matches(msg, m.keys.NudgeDown):
		return m.nudge(false)

	// Contexts and view
	case key.Matches(msg, m.keys.NextContext):
		return m.dispatch(domain.SetActiveContext{ContextID: m.nextContextID()})
	case key.Matches(msg, m.keys.Contexts):
		return m, m.overlayStack.Push(overlay.NewContextPicker(m.contexts(), m.snap.ActiveContextID))
	case key.Matches(msg, m.keys.ShowDone):
		m.showDone = !m.showDone
		m.nav.Sync(m.navColumns())
	case key.Matches(msg, m.keys.Help):
		return m, m.overlayStack.Push(overlay.NewHelpOverlay(m.keys))
	}

	return m, nil
}

// renderHeader renders the title line with the active context
func (m Model) renderHeader() string {
	title := config.AppName
	if l, ok := m.snap.ActiveLists(); ok {
		name := l.Context.Title
		if name == "" {
			name = l.Context.ID
		}
		title += " · " + name
	}
	return m.styles.Header.Width(m.width).MaxHeight(1).Render(title)
}

// renderStatusBar renders the bottom line
func (m Model) renderStatusBar() string {
	sb := statusbar.New(m.Mode(), m.width, m.styles)
	if l, ok := m.snap.ActiveLists(); ok {
		name := l.Context.Title
		if name == "" {
			name = l.Context.ID
		}
		sb = sb.WithContext(name+" ("+l.Context.Type.String()+")", m.activeContextIndex())
	}
	if t, ok := m.snap.CurrentTask(); ok {
		sb = sb.WithCurrent(t.Title)
	}
	return sb.Render()
}

// renderBoard renders the Today and Backlog columns
func (m Model) renderBoard(height int) string {
	columns := m.boardColumns()
	pos := m.nav.GetPosition(m.toNavColumns(columns))
	cursor := board.Cursor{Column: pos.Column, Task: pos.Task}
	return board.Render(columns, cursor, m.snap.Selection.CurrentTaskID, m.styles, m.width, height)
}

// renderOverlay renders the top overlay centered in the main area
func (m Model) renderOverlay(height int) string {
	current := m.overlayStack.Current()
	view := current.View()

	if title := current.Title(); title != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, m.styles.OverlayTitle.Render(title), view)
	}

	width, _ := current.Size()
	if width > m.width-2 {
		width = m.width - 2
	}
	box := m.styles.Overlay.Width(width).MaxHeight(height).Render(view)

	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, box)
}

// boardColumns builds the display columns of the active context
func (m Model) boardColumns() []board.Column {
	l, ok := m.snap.ActiveLists()
	if !ok {
		return []board.Column{{Title: board.TitleToday}, {Title: board.TitleBacklog, Disabled: true}}
	}
	return board.BuildColumns(l, m.snap.Tasks, m.showDone)
}

// navColumns returns the id columns the cursor moves over
func (m Model) navColumns() []navigation.Column {
	return m.toNavColumns(m.boardColumns())
}

func (m Model) toNavColumns(columns []board.Column) []navigation.Column {
	out := make([]navigation.Column, len(columns))
	for i, c := range columns {
		out[i] = navigation.Column{Title: c.Title, TaskIDs: c.IDs()}
	}
	return out
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	m.toasts = types.Active(m.toasts, m.now())
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level types.ToastLevel, message string) {
	ttl := m.toastTTL
	if level == ToastError {
		ttl *= 2
	}
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), ttl))
}

type tickMsg time.Time

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// firstLine trims multi-error text to its first line for toasts
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " (+more)"
	}
	return s
}
