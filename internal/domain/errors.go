package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrInvalidMove    = errors.New("invalid move")
	ErrUnknownContext = errors.New("unknown context")
	ErrUnknownTask    = errors.New("unknown task")
	ErrTaskExists     = errors.New("task already exists")
)

// ListError describes a list event that could not be applied
type ListError struct {
	Op        string // Event kind: "move_within_today", "transfer_task", etc.
	ContextID string // Optional: affected work context
	TaskID    string // Optional: moving task
	Message   string // Human-readable context
	Err       error  // Underlying error, usually one of the sentinels
}

func (e *ListError) Error() string {
	target := e.ContextID
	if e.TaskID != "" {
		if target != "" {
			target += "/"
		}
		target += e.TaskID
	}

	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	switch {
	case target != "" && msg != "":
		return fmt.Sprintf("%s [%s]: %s", e.Op, target, msg)
	case msg != "":
		return fmt.Sprintf("%s: %s", e.Op, msg)
	case target != "":
		return fmt.Sprintf("%s [%s] failed", e.Op, target)
	}
	return fmt.Sprintf("%s failed", e.Op)
}

func (e *ListError) Unwrap() error {
	return e.Err
}

// InvalidMove builds a ListError wrapping ErrInvalidMove.
func InvalidMove(op, contextID, taskID, msg string) error {
	return &ListError{Op: op, ContextID: contextID, TaskID: taskID, Message: msg, Err: ErrInvalidMove}
}

// UnknownContext builds a ListError wrapping ErrUnknownContext.
func UnknownContext(op, contextID string) error {
	return &ListError{Op: op, ContextID: contextID, Message: "context not found", Err: ErrUnknownContext}
}

// UnknownTask builds a ListError wrapping ErrUnknownTask.
func UnknownTask(op, taskID string) error {
	return &ListError{Op: op, TaskID: taskID, Message: "task not found", Err: ErrUnknownTask}
}

// StorageError represents an error from snapshot persistence
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage %s [%s]: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
