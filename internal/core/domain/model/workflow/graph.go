package workflow

import (
	"context"
	"fmt"
	"slices"

	"github.com/looplab/fsm"
)

// Status is the constraint for enumerations driven by a Graph.
type Status interface {
	comparable
	fmt.Stringer
}

// Graph is an immutable transition table over a closed set of statuses.
// The zero value is unusable; build it with NewGraph.
type Graph[S Status] struct {
	statuses []S
	next     map[S][]S
	byName   map[string]S
}

// NewGraph builds a graph from the declared statuses and their legal targets.
// Statuses missing from table are terminal. It panics on targets outside the
// declared set and on self loops: both are programming errors in a table
// that is fixed at compile time.
func NewGraph[S Status](statuses []S, table map[S][]S) Graph[S] {
	g := Graph[S]{
		statuses: slices.Clone(statuses),
		next:     make(map[S][]S, len(statuses)),
		byName:   make(map[string]S, len(statuses)),
	}

	for _, s := range statuses {
		g.byName[s.String()] = s
	}

	for from := range table {
		if _, ok := g.byName[from.String()]; !ok {
			panic(fmt.Sprintf("workflow: transition table lists undeclared status %q", from))
		}
	}

	for _, from := range statuses {
		targets := table[from]
		for _, to := range targets {
			if _, ok := g.byName[to.String()]; !ok {
				panic(fmt.Sprintf("workflow: %q lists undeclared target %q", from, to))
			}
			if to == from {
				panic(fmt.Sprintf("workflow: %q lists itself as a target", from))
			}
		}
		g.next[from] = slices.Clone(targets)
	}

	return g
}

// Statuses returns every declared status in declaration order.
func (g Graph[S]) Statuses() []S {
	return slices.Clone(g.statuses)
}

// Lookup resolves a status by its string form.
func (g Graph[S]) Lookup(name string) (S, bool) {
	s, ok := g.byName[name]
	return s, ok
}

// Knows reports whether s is part of the enumeration.
func (g Graph[S]) Knows(s S) bool {
	_, ok := g.next[s]
	return ok
}

// PossibleTransitions returns the legal next statuses of current, in table
// order. Terminal and unknown statuses yield an empty slice.
func (g Graph[S]) PossibleTransitions(current S) []S {
	targets := g.next[current]
	if len(targets) == 0 {
		return []S{}
	}
	return slices.Clone(targets)
}

// CanTransitionTo reports whether candidate is in PossibleTransitions(current).
func (g Graph[S]) CanTransitionTo(current, candidate S) bool {
	return slices.Contains(g.next[current], candidate)
}

// IsTerminal reports whether s is a known status with no outgoing edge.
func (g Graph[S]) IsTerminal(s S) bool {
	return g.Knows(s) && len(g.next[s]) == 0
}

// Terminals returns the terminal statuses in declaration order.
func (g Graph[S]) Terminals() []S {
	out := make([]S, 0)
	for _, s := range g.statuses {
		if g.IsTerminal(s) {
			out = append(out, s)
		}
	}
	return out
}

// EnterFunc observes a transition fired through a Machine.
type EnterFunc[S Status] func(ctx context.Context, from, to S)

// Machine builds a looplab/fsm state machine positioned at current. Each
// status that is reachable from somewhere becomes an event named after it,
// whose sources are all statuses listing it as a target.
func (g Graph[S]) Machine(current S, onEnter EnterFunc[S]) *fsm.FSM {
	events := make(fsm.Events, 0, len(g.statuses))
	for _, target := range g.statuses {
		var src []string
		for _, from := range g.statuses {
			if slices.Contains(g.next[from], target) {
				src = append(src, from.String())
			}
		}
		if len(src) == 0 {
			continue
		}
		events = append(events, fsm.EventDesc{
			Name: target.String(),
			Src:  src,
			Dst:  target.String(),
		})
	}

	callbacks := fsm.Callbacks{}
	if onEnter != nil {
		callbacks["enter_state"] = func(ctx context.Context, e *fsm.Event) {
			onEnter(ctx, g.byName[e.Src], g.byName[e.Dst])
		}
	}

	return fsm.NewFSM(current.String(), events, callbacks)
}

// Fire moves from current to target through a fresh Machine and returns the
// resulting status. The error is the fsm's own when the edge does not exist.
func (g Graph[S]) Fire(ctx context.Context, current, target S, onEnter EnterFunc[S]) (S, error) {
	m := g.Machine(current, onEnter)
	if err := m.Event(ctx, target.String()); err != nil {
		return current, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	return g.byName[m.Current()], nil
}
