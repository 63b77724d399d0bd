// Package cli implements the focus command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/riordanpawley/focus/internal/config"
	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"github.com/riordanpawley/focus/internal/services/persistence"
)

// Dependencies holds the services needed by the commands
type Dependencies struct {
	Config *config.Config
	Store  *persistence.Store
	Logger *slog.Logger
	NewID  func() string

	logFile io.Closer
}

// NewDependencies loads the config from configDir and opens the log file.
// A non-empty dataFile overrides the configured snapshot path.
func NewDependencies(configDir, dataFile string) (*Dependencies, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if dataFile != "" {
		cfg.Storage.Path = dataFile
	}

	logger, closer := openLogger(cfg.Log)

	return &Dependencies{
		Config:  cfg,
		Store:   persistence.NewStore(cfg.Storage.Path, logger),
		Logger:  logger,
		NewID:   uuid.NewString,
		logFile: closer,
	}, nil
}

// Close releases the log file
func (d *Dependencies) Close() error {
	if d.logFile == nil {
		return nil
	}
	return d.logFile.Close()
}

// openLogger logs to the configured file. The terminal belongs to the TUI,
// so a file that cannot be opened only falls back to errors on stderr.
func openLogger(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0755); err == nil {
			f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err == nil {
				return slog.New(slog.NewTextHandler(f, opts)), f
			}
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})), nil
}

// Dispatcher loads the snapshot and wraps it in a dispatcher configured
// from the task settings
func (d *Dependencies) Dispatcher(ctx context.Context) (*dispatcher.Dispatcher, error) {
	snap, err := d.Store.Load(ctx)
	if err != nil {
		return nil, err
	}
	opts := dispatcher.Options{
		AutoStartNextTask:    d.Config.Tasks.AutoStartNextTask,
		AutoMarkParentAsDone: d.Config.Tasks.AutoMarkParentAsDone,
	}
	return dispatcher.New(snap, opts, d.Logger), nil
}

// Snapshot loads the stored state without dispatching anything
func (d *Dependencies) Snapshot(ctx context.Context) (dispatcher.Snapshot, error) {
	return d.Store.Load(ctx)
}

// Apply loads the snapshot, builds an event from it, dispatches the event
// and saves the result. Nothing is saved when the event fails.
func (d *Dependencies) Apply(ctx context.Context, build func(dispatcher.Snapshot) (domain.Event, error)) (dispatcher.Snapshot, error) {
	disp, err := d.Dispatcher(ctx)
	if err != nil {
		return dispatcher.Snapshot{}, err
	}

	ev, err := build(disp.Snapshot())
	if err != nil {
		return dispatcher.Snapshot{}, err
	}

	d.Logger.Debug("dispatching", "kind", ev.Kind())
	snap, err := disp.Dispatch(ctx, ev)
	if err != nil {
		return snap, err
	}

	if err := d.Store.Save(ctx, snap); err != nil {
		return snap, fmt.Errorf("failed to save: %w", err)
	}
	return snap, nil
}

// errAmbiguous reports a task id prefix matching several tasks
var errAmbiguous = errors.New("ambiguous task id")

// resolveID finds the task named by ref: an exact id or a unique prefix
func resolveID(tasks taskstore.Store, ref string) (string, error) {
	if tasks.Has(ref) {
		return ref, nil
	}
	if ref == "" {
		return "", domain.UnknownTask("resolve", ref)
	}

	var matches []string
	for _, id := range tasks.IDs() {
		if strings.HasPrefix(id, ref) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", domain.UnknownTask("resolve", ref)
	case 1:
		return matches[0], nil
	}
	sort.Strings(matches)
	return "", fmt.Errorf("%w %q: matches %s", errAmbiguous, ref, strings.Join(matches, ", "))
}

// contextOf returns the context whose lists hold the task, looking through
// the parent for sub-tasks. Falls back to the active context.
func contextOf(snap dispatcher.Snapshot, id string) string {
	if t, ok := snap.Tasks.Get(id); ok && t.IsSubTask() {
		id = t.ParentID
	}
	if c, ok := snap.Lists.ContextOf(id); ok {
		return c
	}
	return snap.ActiveContextID
}

// shortID trims uuids for display
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
