// Package dispatcher runs lifecycle events against the application state,
// one event at a time and in arrival order.
package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/riordanpawley/focus/internal/core/completion"
	"github.com/riordanpawley/focus/internal/core/selection"
	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
)

// Options configures event side effects.
type Options struct {
	AutoStartNextTask    bool
	AutoMarkParentAsDone bool
	// Now stamps CreatedAt and DoneAt. Defaults to time.Now.
	Now func() time.Time
}

// Dispatcher owns the authoritative snapshot. Every event is processed to
// completion before the next one starts; follow-up events produced while
// processing are queued behind it.
type Dispatcher struct {
	mu     sync.Mutex
	snap   Snapshot
	queue  []domain.Event
	opts   Options
	logger *slog.Logger
}

// New creates a dispatcher starting from snap.
func New(snap Snapshot, opts Options, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dispatcher{
		snap:   snap,
		opts:   opts,
		logger: logger,
	}
}

// Snapshot returns the current state.
func (d *Dispatcher) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snap
}

// Dispatch processes ev and every follow-up it causes, then returns the
// resulting snapshot. The returned error joins the failures of all
// processed events; failed events leave the state as it was.
//
// ctx is only checked before ev is accepted. Once accepted, processing
// runs to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return d.Snapshot(), err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.queue = append(d.queue, ev)
	var errs []error
	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		if err := d.process(next); err != nil {
			errs = append(errs, err)
		}
	}
	return d.snap, errors.Join(errs...)
}

// Run dispatches events from the channel until it is closed or ctx is
// cancelled. Event failures are logged, not returned.
func (d *Dispatcher) Run(ctx context.Context, events <-chan domain.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			// A received event is processed even if ctx is cancelled meanwhile
			if _, err := d.Dispatch(context.WithoutCancel(ctx), ev); err != nil {
				d.logger.Warn("event failed", "kind", ev.Kind(), "error", err)
			}
		}
	}
}

func (d *Dispatcher) process(ev domain.Event) error {
	d.logger.Debug("processing event", "kind", ev.Kind())

	s, resolved, err := d.applyTasks(d.snap, ev)
	if resolved == nil {
		d.logger.Warn("event dropped", "kind", ev.Kind(), "error", err)
		return err
	}
	if err != nil {
		d.logger.Warn("event partially applied", "kind", ev.Kind(), "error", err)
	}

	lists, listErr := worklist.Apply(s.Lists, resolved)
	if listErr != nil {
		d.logger.Warn("list update failed", "kind", ev.Kind(), "error", listErr)
		err = errors.Join(err, listErr)
		if _, batch := resolved.(domain.ArchiveTasks); !batch {
			// a rejected list change takes its task changes with it
			s = d.snap
			lists = d.snap.Lists
		}
	}
	s.Lists = lists
	if !s.Lists.Has(s.ActiveContextID) {
		s.ActiveContextID = ""
		if ids := s.Lists.ContextIDs(); len(ids) > 0 {
			s.ActiveContextID = ids[0]
		}
	}

	if selection.Triggers(resolved) {
		next, changed := selection.SelectNext(
			resolved,
			s.Selection,
			s.Lists.Today(s.ActiveContextID),
			s.Tasks,
			selection.Options{AutoStartNextTask: d.opts.AutoStartNextTask},
		)
		if changed {
			s.Selection = s.Selection.WithCurrent(next)
			d.logger.Debug("current task changed", "current", next, "last", s.Selection.LastCurrentTaskID)
		}
	}

	if u, ok := resolved.(domain.UpdateTask); ok {
		if follow, ok := completion.Propagate(u, s.Tasks, d.opts.AutoMarkParentAsDone); ok {
			d.logger.Debug("all sub-tasks done, marking parent", "parent", follow.TaskID)
			d.queue = append(d.queue, follow)
		}
	}

	d.snap = s
	return err
}

// contextFor returns the context whose lists hold taskID, falling back to
// the task's project while it still exists and then the active context.
func contextFor(s Snapshot, taskID string) string {
	if id, ok := s.Lists.ContextOf(taskID); ok {
		return id
	}
	if t, ok := s.Tasks.Get(taskID); ok && s.Lists.Has(t.ProjectID) {
		return t.ProjectID
	}
	return s.ActiveContextID
}
