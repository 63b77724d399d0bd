// Package taskstore holds task records as an immutable ordered map.
//
// A Store is a value: every update returns a new Store and leaves the
// receiver untouched, so snapshots can be handed to readers without copying.
package taskstore

import (
	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/domain"
)

// Store maps task ids to records and remembers insertion order.
type Store struct {
	ids      []string
	entities map[string]domain.Task
}

// New builds a store from tasks in the given order. Later duplicates
// replace earlier ones in place.
func New(tasks ...domain.Task) Store {
	s := Store{entities: make(map[string]domain.Task, len(tasks))}
	for _, t := range tasks {
		if _, ok := s.entities[t.ID]; !ok {
			s.ids = append(s.ids, t.ID)
		}
		s.entities[t.ID] = t.Clone()
	}
	return s
}

// Get returns the task with the given id.
func (s Store) Get(id string) (domain.Task, bool) {
	t, ok := s.entities[id]
	if !ok {
		return domain.Task{}, false
	}
	return t.Clone(), true
}

// Has reports whether id is stored.
func (s Store) Has(id string) bool {
	_, ok := s.entities[id]
	return ok
}

// Len returns the number of tasks.
func (s Store) Len() int {
	return len(s.ids)
}

// IDs returns the ids in insertion order.
func (s Store) IDs() []string {
	return reorder.Clone(s.ids)
}

// All returns every task in insertion order.
func (s Store) All() []domain.Task {
	out := make([]domain.Task, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.entities[id].Clone())
	}
	return out
}

// Children returns the sub-tasks of id in their parent's order. Unknown
// children are skipped.
func (s Store) Children(id string) []domain.Task {
	parent, ok := s.entities[id]
	if !ok {
		return nil
	}
	var out []domain.Task
	for _, cid := range parent.SubTaskIDs {
		if c, ok := s.entities[cid]; ok {
			out = append(out, c.Clone())
		}
	}
	return out
}

// Upsert inserts or replaces a task. New ids are appended.
func (s Store) Upsert(t domain.Task) Store {
	out := s.clone()
	if _, ok := out.entities[t.ID]; !ok {
		out.ids = append(out.ids, t.ID)
	}
	out.entities[t.ID] = t.Clone()
	return out
}

// Update applies fn to the task with the given id. Unknown ids leave the
// store unchanged and report false.
func (s Store) Update(id string, fn func(domain.Task) domain.Task) (Store, bool) {
	t, ok := s.entities[id]
	if !ok {
		return s, false
	}
	out := s.clone()
	out.entities[id] = fn(t.Clone())
	return out, true
}

// Remove drops the given ids. Unknown ids are ignored.
func (s Store) Remove(ids ...string) Store {
	if len(ids) == 0 {
		return s
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := Store{
		ids:      reorder.WithoutAll(s.ids, drop),
		entities: make(map[string]domain.Task, len(s.entities)),
	}
	for id, t := range s.entities {
		if !drop[id] {
			out.entities[id] = t
		}
	}
	return out
}

// WithSubTasks returns id followed by its sub-task ids, the unit that
// moves together on delete and archive.
func (s Store) WithSubTasks(id string) []string {
	t, ok := s.entities[id]
	if !ok {
		return nil
	}
	return append([]string{id}, t.SubTaskIDs...)
}

func (s Store) clone() Store {
	out := Store{
		ids:      reorder.Clone(s.ids),
		entities: make(map[string]domain.Task, len(s.entities)+1),
	}
	for id, t := range s.entities {
		out.entities[id] = t
	}
	return out
}
