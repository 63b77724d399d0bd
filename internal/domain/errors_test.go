package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestListError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  ListError
		want string
	}{
		{
			name: "with context and task",
			err:  ListError{Op: "nudge_up_today", ContextID: "inbox", TaskID: "t1", Message: "task not in list"},
			want: "nudge_up_today [inbox/t1]: task not in list",
		},
		{
			name: "with context only",
			err:  ListError{Op: "create_task", ContextID: "work", Message: "context not found"},
			want: "create_task [work]: context not found",
		},
		{
			name: "falls back to underlying error",
			err:  ListError{Op: "transfer_task", Err: ErrUnknownContext},
			want: "transfer_task: unknown context",
		},
		{
			name: "target without message",
			err:  ListError{Op: "delete_task", TaskID: "t9"},
			want: "delete_task [t9] failed",
		},
		{
			name: "minimal",
			err:  ListError{Op: "archive_tasks"},
			want: "archive_tasks failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ListError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListError_Is(t *testing.T) {
	err := InvalidMove("move_within_today", "inbox", "t1", "task not in today")
	assert.True(t, errors.Is(err, ErrInvalidMove))
	assert.False(t, errors.Is(err, ErrUnknownContext))

	err = UnknownContext("restore_task", "gone")
	assert.True(t, errors.Is(err, ErrUnknownContext))

	var listErr *ListError
	assert.ErrorAs(t, err, &listErr)
	assert.Equal(t, "gone", listErr.ContextID)

	err = UnknownTask("update_task", "t9")
	assert.True(t, errors.Is(err, ErrUnknownTask))
	assert.Equal(t, "update_task [t9]: task not found", err.Error())
}

func TestStorageError_Unwrap(t *testing.T) {
	underlying := errors.New("disk full")
	err := &StorageError{Op: "save", Path: "/tmp/state.yaml", Err: underlying}

	assert.Equal(t, "storage save [/tmp/state.yaml]: disk full", err.Error())
	assert.Equal(t, underlying, err.Unwrap())
}

func TestSelection_WithCurrent(t *testing.T) {
	s := Selection{}

	s = s.WithCurrent("a")
	assert.Equal(t, Selection{CurrentTaskID: "a"}, s)

	s = s.WithCurrent("b")
	assert.Equal(t, Selection{CurrentTaskID: "b", LastCurrentTaskID: "a"}, s)

	s = s.WithCurrent("")
	assert.Equal(t, Selection{CurrentTaskID: "", LastCurrentTaskID: "b"}, s)

	// Clearing twice keeps the hint
	s = s.WithCurrent("")
	assert.Equal(t, "b", s.LastCurrentTaskID)
}

func TestTaskChanges_Apply(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	task := Task{ID: "t1", Title: "old", SubTaskIDs: []string{"c1"}}

	done := TaskChanges{IsDone: Bool(true), Title: String("new")}.Apply(task, now)
	assert.True(t, done.IsDone)
	assert.Equal(t, "new", done.Title)
	if assert.NotNil(t, done.DoneAt) {
		assert.Equal(t, now, *done.DoneAt)
	}

	// Input untouched
	assert.False(t, task.IsDone)
	done.SubTaskIDs[0] = "mutated"
	assert.Equal(t, "c1", task.SubTaskIDs[0])

	undone := TaskChanges{IsDone: Bool(false)}.Apply(done, now)
	assert.False(t, undone.IsDone)
	assert.Nil(t, undone.DoneAt)
}

func TestContextType_HasBacklog(t *testing.T) {
	assert.True(t, ContextProject.HasBacklog())
	assert.False(t, ContextTag.HasBacklog())
}
