// Package worklist owns the ordered today and backlog lists of every work
// context and applies lifecycle events to them.
package worklist

import (
	"github.com/riordanpawley/focus/internal/core/reorder"
	"github.com/riordanpawley/focus/internal/domain"
)

// Lists is the list state of one work context. Tag contexts never have a
// backlog.
type Lists struct {
	Context domain.WorkContext
	Today   []string
	Backlog []string
}

// Contains reports whether id is in either list.
func (l Lists) Contains(id string) bool {
	return reorder.Contains(l.Today, id) || reorder.Contains(l.Backlog, id)
}

func (l Lists) clone() Lists {
	return Lists{
		Context: l.Context,
		Today:   reorder.Clone(l.Today),
		Backlog: reorder.Clone(l.Backlog),
	}
}

// State maps context ids to their lists. It is immutable: Apply and the
// With/Without helpers return new values.
type State struct {
	order    []string
	contexts map[string]Lists
}

// NewState builds a state from the given contexts in order.
func NewState(lists ...Lists) State {
	s := State{contexts: make(map[string]Lists, len(lists))}
	for _, l := range lists {
		if _, ok := s.contexts[l.Context.ID]; !ok {
			s.order = append(s.order, l.Context.ID)
		}
		l = l.clone()
		if !l.Context.Type.HasBacklog() {
			l.Backlog = []string{}
		}
		s.contexts[l.Context.ID] = l
	}
	return s
}

// Get returns a copy of the lists of a context.
func (s State) Get(contextID string) (Lists, bool) {
	l, ok := s.contexts[contextID]
	if !ok {
		return Lists{}, false
	}
	return l.clone(), true
}

// Has reports whether the context exists.
func (s State) Has(contextID string) bool {
	_, ok := s.contexts[contextID]
	return ok
}

// Today returns the today list of a context, or nil when it is unknown.
func (s State) Today(contextID string) []string {
	l, ok := s.contexts[contextID]
	if !ok {
		return nil
	}
	return reorder.Clone(l.Today)
}

// ContextIDs returns the context ids in registration order.
func (s State) ContextIDs() []string {
	return reorder.Clone(s.order)
}

// All returns every context's lists in registration order.
func (s State) All() []Lists {
	out := make([]Lists, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.contexts[id].clone())
	}
	return out
}

// ContextOf returns the id of the context whose lists contain taskID.
func (s State) ContextOf(taskID string) (string, bool) {
	for _, id := range s.order {
		if s.contexts[id].Contains(taskID) {
			return id, true
		}
	}
	return "", false
}

// With returns a state where contextID has the given lists.
func (s State) With(l Lists) State {
	out := State{
		order:    reorder.Clone(s.order),
		contexts: make(map[string]Lists, len(s.contexts)+1),
	}
	for id, v := range s.contexts {
		out.contexts[id] = v
	}
	if _, ok := out.contexts[l.Context.ID]; !ok {
		out.order = append(out.order, l.Context.ID)
	}
	if !l.Context.Type.HasBacklog() {
		l.Backlog = []string{}
	}
	out.contexts[l.Context.ID] = l
	return out
}

// Without returns a state without the given context.
func (s State) Without(contextID string) State {
	if !s.Has(contextID) {
		return s
	}
	out := State{
		order:    reorder.Without(s.order, contextID),
		contexts: make(map[string]Lists, len(s.contexts)),
	}
	for id, v := range s.contexts {
		if id != contextID {
			out.contexts[id] = v
		}
	}
	return out
}
