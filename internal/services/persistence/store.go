// Package persistence loads and saves the application snapshot as YAML.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/core/taskstore"
	"github.com/riordanpawley/focus/internal/core/worklist"
	"github.com/riordanpawley/focus/internal/domain"
	"github.com/riordanpawley/focus/internal/services/dispatcher"
	"gopkg.in/yaml.v3"
)

// FormatVersion is the version written to new files.
const FormatVersion = 1

// document is the on-disk layout.
type document struct {
	Version           int           `yaml:"version"`
	ActiveContextID   string        `yaml:"activeContextId,omitempty"`
	CurrentTaskID     string        `yaml:"currentTaskId,omitempty"`
	LastCurrentTaskID string        `yaml:"lastCurrentTaskId,omitempty"`
	Contexts          []contextDoc  `yaml:"contexts"`
	Tasks             []domain.Task `yaml:"tasks"`
	Archive           []domain.Task `yaml:"archive,omitempty"`
}

type contextDoc struct {
	ID             string             `yaml:"id"`
	Type           domain.ContextType `yaml:"type"`
	Title          string             `yaml:"title"`
	TodayTaskIDs   []string           `yaml:"todayTaskIds"`
	BacklogTaskIDs []string           `yaml:"backlogTaskIds,omitempty"`
}

// Store reads and writes one snapshot file.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

// NewStore creates a store for the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{path: path, logger: logger}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the snapshot. A missing file yields a fresh snapshot.
func (s *Store) Load(ctx context.Context) (dispatcher.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return dispatcher.Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Debug("no snapshot file, starting empty", "path", s.path)
		return dispatcher.NewSnapshot(), nil
	}
	if err != nil {
		return dispatcher.Snapshot{}, &domain.StorageError{Op: "read", Path: s.path, Err: err}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return dispatcher.Snapshot{}, &domain.StorageError{Op: "parse", Path: s.path, Err: err}
	}
	if doc.Version > FormatVersion {
		return dispatcher.Snapshot{}, &domain.StorageError{
			Op:   "parse",
			Path: s.path,
			Err:  fmt.Errorf("unsupported format version %d (newest known is %d)", doc.Version, FormatVersion),
		}
	}

	snap := s.fromDocument(doc)
	s.logger.Debug("snapshot loaded", "path", s.path, "tasks", snap.Tasks.Len(), "contexts", len(doc.Contexts))
	return snap, nil
}

// Save writes the snapshot, replacing the file atomically.
func (s *Store) Save(ctx context.Context, snap dispatcher.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return &domain.StorageError{Op: "mkdir", Path: filepath.Dir(s.path), Err: err}
	}

	data, err := yaml.Marshal(toDocument(snap))
	if err != nil {
		return &domain.StorageError{Op: "marshal", Path: s.path, Err: err}
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return &domain.StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return &domain.StorageError{Op: "rename", Path: s.path, Err: err}
	}

	s.logger.Debug("snapshot saved", "path", s.path, "tasks", snap.Tasks.Len())
	return nil
}

func toDocument(snap dispatcher.Snapshot) document {
	doc := document{
		Version:           FormatVersion,
		ActiveContextID:   snap.ActiveContextID,
		CurrentTaskID:     snap.Selection.CurrentTaskID,
		LastCurrentTaskID: snap.Selection.LastCurrentTaskID,
		Tasks:             snap.Tasks.All(),
		Archive:           snap.Archive.All(),
	}
	for _, l := range snap.Lists.All() {
		doc.Contexts = append(doc.Contexts, contextDoc{
			ID:             l.Context.ID,
			Type:           l.Context.Type,
			Title:          l.Context.Title,
			TodayTaskIDs:   reorder.Clone(l.Today),
			BacklogTaskIDs: l.Backlog,
		})
	}
	return doc
}

// fromDocument rebuilds a snapshot. Ids listed twice are kept at their
// first position so a hand-edited file cannot break list invariants.
func (s *Store) fromDocument(doc document) dispatcher.Snapshot {
	if len(doc.Contexts) == 0 {
		fresh := dispatcher.NewSnapshot()
		fresh.Tasks = taskstore.New(doc.Tasks...)
		fresh.Archive = taskstore.New(doc.Archive...)
		fresh.Selection = domain.Selection{CurrentTaskID: doc.CurrentTaskID, LastCurrentTaskID: doc.LastCurrentTaskID}
		return fresh
	}

	lists := make([]worklist.Lists, 0, len(doc.Contexts))
	for _, c := range doc.Contexts {
		if c.Type == "" {
			c.Type = domain.ContextProject
		}
		seen := make(map[string]bool)
		today := s.dedupe(c.ID, c.TodayTaskIDs, seen)
		backlog := s.dedupe(c.ID, c.BacklogTaskIDs, seen)
		lists = append(lists, worklist.Lists{
			Context: domain.WorkContext{ID: c.ID, Type: c.Type, Title: c.Title},
			Today:   today,
			Backlog: backlog,
		})
	}

	snap := dispatcher.Snapshot{
		Tasks:           taskstore.New(doc.Tasks...),
		Archive:         taskstore.New(doc.Archive...),
		Lists:           worklist.NewState(lists...),
		Selection:       domain.Selection{CurrentTaskID: doc.CurrentTaskID, LastCurrentTaskID: doc.LastCurrentTaskID},
		ActiveContextID: doc.ActiveContextID,
	}
	if !snap.Lists.Has(snap.ActiveContextID) {
		snap.ActiveContextID = lists[0].Context.ID
	}
	return snap
}

func (s *Store) dedupe(contextID string, ids []string, seen map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			s.logger.Warn("dropping duplicate list entry", "context", contextID, "task", id)
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
