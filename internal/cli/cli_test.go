package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/riordanpawley/focus/internal/services/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliEnv struct {
	t    *testing.T
	file string
}

func newEnv(t *testing.T) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return &cliEnv{t: t, file: filepath.Join(dir, "focus.yaml")}
}

// run executes one command line against the env's snapshot file
func (e *cliEnv) run(args ...string) (string, error) {
	e.t.Helper()
	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--file", e.file))
	err := cmd.Execute()
	return out.String(), err
}

func (e *cliEnv) mustRun(args ...string) string {
	e.t.Helper()
	out, err := e.run(args...)
	require.NoError(e.t, err, "focus %v: %s", args, out)
	return out
}

func (e *cliEnv) snapshot() dispatcher.Snapshot {
	e.t.Helper()
	snap, err := persistence.NewStore(e.file, nil).Load(context.Background())
	require.NoError(e.t, err)
	return snap
}

// idOf finds a task by title in the live tasks, then the archive
func (e *cliEnv) idOf(title string) string {
	e.t.Helper()
	snap := e.snapshot()
	for _, store := range []taskstore.Store{snap.Tasks, snap.Archive} {
		for _, task := range store.All() {
			if task.Title == title {
				return task.ID
			}
		}
	}
	e.t.Fatalf("no task titled %q", title)
	return ""
}

func TestAddStartDoneFlow(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun("add", "Write", "report")
	assert.Contains(t, out, "to today: Write report")
	report := env.idOf("Write report")

	out = env.mustRun("add", "Outline", "--parent", report)
	assert.Contains(t, out, "to sub-tasks: Outline")
	env.mustRun("add", "Email Sam")
	outline := env.idOf("Outline")

	out = env.mustRun("start")
	assert.Contains(t, out, "Now working on")
	assert.Contains(t, out, "Outline")
	assert.Equal(t, outline, env.snapshot().Selection.CurrentTaskID)

	out = env.mustRun("done", outline)
	assert.Contains(t, out, "Email Sam")

	snap := env.snapshot()
	parent, _ := snap.Tasks.Get(report)
	assert.True(t, parent.IsDone, "last sub-task done completes the parent")
	assert.Equal(t, env.idOf("Email Sam"), snap.Selection.CurrentTaskID)

	out = env.mustRun("start")
	assert.Contains(t, out, "Stopped")
	assert.False(t, env.snapshot().Selection.HasCurrent())
}

func TestList(t *testing.T) {
	env := newEnv(t)
	env.mustRun("add", "Today task")
	env.mustRun("add", "Later task", "--backlog")
	env.mustRun("start")

	out := env.mustRun("list")

	assert.Contains(t, out, "Inbox [inbox, project] *")
	assert.Contains(t, out, "Today (1)")
	assert.Contains(t, out, "Backlog (1)")
	assert.Contains(t, out, "▶ [ ]")
	assert.Contains(t, out, "Later task")
}

func TestAddPositions(t *testing.T) {
	env := newEnv(t)
	env.mustRun("add", "first")
	env.mustRun("add", "second")
	env.mustRun("add", "zeroth", "--bottom=false")

	l, ok := env.snapshot().Lists.Get("inbox")
	require.True(t, ok)
	assert.Equal(t, []string{env.idOf("zeroth"), env.idOf("first"), env.idOf("second")}, l.Today)
}

func TestBacklogTodayAndNudge(t *testing.T) {
	env := newEnv(t)
	env.mustRun("add", "a")
	env.mustRun("add", "b")
	env.mustRun("add", "c")
	a, b, c := env.idOf("a"), env.idOf("b"), env.idOf("c")

	env.mustRun("backlog", b)
	l, _ := env.snapshot().Lists.Get("inbox")
	assert.Equal(t, []string{a, c}, l.Today)
	assert.Equal(t, []string{b}, l.Backlog)

	env.mustRun("today", b, "--top")
	env.mustRun("down", b)
	l, _ = env.snapshot().Lists.Get("inbox")
	assert.Equal(t, []string{a, b, c}, l.Today)

	env.mustRun("up", c)
	l, _ = env.snapshot().Lists.Get("inbox")
	assert.Equal(t, []string{a, c, b}, l.Today)
}

func TestArchiveAndRestore(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun("archive")
	assert.Contains(t, out, "Nothing to archive")

	env.mustRun("add", "finished")
	id := env.idOf("finished")
	env.mustRun("done", id)

	out = env.mustRun("archive")
	assert.Contains(t, out, "Archived 1 tasks")
	assert.True(t, env.snapshot().Archive.Has(id))

	out = env.mustRun("list", "--archived")
	assert.Contains(t, out, "finished")

	env.mustRun("restore", id[:8])
	snap := env.snapshot()
	assert.True(t, snap.Tasks.Has(id))
	assert.Equal(t, []string{id}, snap.Lists.Today("inbox"))
}

func TestContexts(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun("context", "add", "work", "--title", "Work")
	assert.Contains(t, out, "Added project work")
	env.mustRun("context", "add", "urgent", "--tag")

	out = env.mustRun("context", "work")
	assert.Contains(t, out, "Active context: work")

	env.mustRun("add", "deploy")
	assert.Equal(t, []string{env.idOf("deploy")}, env.snapshot().Lists.Today("work"))

	out = env.mustRun("context")
	assert.Contains(t, out, "urgent")
	assert.Contains(t, out, "tag")

	_, err := env.run("add", "nope", "--backlog", "--context", "urgent")
	assert.ErrorIs(t, err, domain.ErrInvalidMove)

	_, err = env.run("context", "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownContext)
}

func TestMoveToProject(t *testing.T) {
	env := newEnv(t)
	env.mustRun("context", "add", "work")
	env.mustRun("add", "ship it")
	id := env.idOf("ship it")

	env.mustRun("move", id, "--to", "work")

	snap := env.snapshot()
	assert.Empty(t, snap.Lists.Today("inbox"))
	assert.Equal(t, []string{id}, snap.Lists.Today("work"))
}

func TestRenameAndRemove(t *testing.T) {
	env := newEnv(t)
	env.mustRun("add", "old", "name")
	id := env.idOf("old name")

	env.mustRun("rename", id, "new", "name")
	task, _ := env.snapshot().Tasks.Get(id)
	assert.Equal(t, "new name", task.Title)

	env.mustRun("rm", id)
	assert.False(t, env.snapshot().Tasks.Has(id))
}

func TestUnknownTask(t *testing.T) {
	env := newEnv(t)

	_, err := env.run("select", "does-not-exist")
	assert.ErrorIs(t, err, domain.ErrUnknownTask)
}

func TestVersion(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun("version")
	assert.Equal(t, "focus test\n", out)
}

func TestResolveID(t *testing.T) {
	tasks := taskstore.New(
		domain.Task{ID: "abc123"},
		domain.Task{ID: "abd456"},
		domain.Task{ID: "ab"},
	)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr error
	}{
		{name: "exact match wins over prefix", ref: "ab", want: "ab"},
		{name: "unique prefix", ref: "abc", want: "abc123"},
		{name: "ambiguous prefix", ref: "a", wantErr: errAmbiguous},
		{name: "no match", ref: "zz", wantErr: domain.ErrUnknownTask},
		{name: "empty", ref: "", wantErr: domain.ErrUnknownTask},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveID(tasks, tt.ref)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContextOf(t *testing.T) {
	snap := dispatcher.NewSnapshot()
	snap.Tasks = taskstore.New(
		domain.Task{ID: "p", SubTaskIDs: []string{"c"}},
		domain.Task{ID: "c", ParentID: "p"},
		domain.Task{ID: "loose"},
	)
	l, _ := snap.Lists.Get("inbox")
	l.Today = []string{"p"}
	snap.Lists = snap.Lists.With(l)

	assert.Equal(t, "inbox", contextOf(snap, "p"))
	assert.Equal(t, "inbox", contextOf(snap, "c"), "sub-tasks use the parent's list")
	assert.Equal(t, "inbox", contextOf(snap, "loose"), "falls back to the active context")
}
