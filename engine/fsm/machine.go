// Package fsm provides a small flat finite state machine with an explicit
// transition table and enter/exit hooks. Both the flip phase animators and the
// tile sequencer route every state change through it
package fsm

import "fmt"

// Hook runs on entering or leaving a state
type Hook[S comparable] func(from, to S)

// Node is a single state with its outgoing edges and lifecycle hooks
type Node[S comparable] struct {
	ID      S
	Name    string
	Targets map[S]struct{}
	OnEnter []Hook[S]
	OnExit  []Hook[S]
}

// Machine is a flat state machine over a comparable state type
// Not safe for concurrent use; owners drive it from a single goroutine
type Machine[S comparable] struct {
	nodes   map[S]*Node[S]
	current S
	changes uint64
}

// TransitionError reports a change that the transition table does not allow
type TransitionError[S comparable] struct {
	From, To         S
	FromName, ToName string
}

func (e *TransitionError[S]) Error() string {
	return fmt.Sprintf("fsm: illegal transition %s -> %s", e.FromName, e.ToName)
}

// NewMachine creates a machine positioned at initial
// initial is registered as a state if not added later
func NewMachine[S comparable](initial S) *Machine[S] {
	m := &Machine[S]{
		nodes:   make(map[S]*Node[S]),
		current: initial,
	}
	m.node(initial)
	return m
}

// node returns the node for id, creating it on first use
func (m *Machine[S]) node(id S) *Node[S] {
	n, ok := m.nodes[id]
	if !ok {
		n = &Node[S]{
			ID:      id,
			Name:    fmt.Sprint(id),
			Targets: make(map[S]struct{}),
		}
		m.nodes[id] = n
	}
	return n
}

// AddState registers a state with a display name
func (m *Machine[S]) AddState(id S, name string) *Machine[S] {
	m.node(id).Name = name
	return m
}

// Allow adds edges from -> each of targets
func (m *Machine[S]) Allow(from S, targets ...S) *Machine[S] {
	n := m.node(from)
	for _, t := range targets {
		m.node(t)
		n.Targets[t] = struct{}{}
	}
	return m
}

// OnEnter registers a hook run after the machine enters id
func (m *Machine[S]) OnEnter(id S, h Hook[S]) *Machine[S] {
	n := m.node(id)
	n.OnEnter = append(n.OnEnter, h)
	return m
}

// OnExit registers a hook run before the machine leaves id
func (m *Machine[S]) OnExit(id S, h Hook[S]) *Machine[S] {
	n := m.node(id)
	n.OnExit = append(n.OnExit, h)
	return m
}

// Current returns the active state
func (m *Machine[S]) Current() S {
	return m.current
}

// Is reports whether the active state is id
func (m *Machine[S]) Is(id S) bool {
	return m.current == id
}

// In reports whether the active state is any of ids
func (m *Machine[S]) In(ids ...S) bool {
	for _, id := range ids {
		if m.current == id {
			return true
		}
	}
	return false
}

// CanTransition reports whether the table allows current -> to
func (m *Machine[S]) CanTransition(to S) bool {
	_, ok := m.nodes[m.current].Targets[to]
	return ok
}

// Transition moves to the target state, running exit then enter hooks
// Self-transitions are only legal when explicitly allowed
func (m *Machine[S]) Transition(to S) error {
	if !m.CanTransition(to) {
		return &TransitionError[S]{
			From:     m.current,
			To:       to,
			FromName: m.nodes[m.current].Name,
			ToName:   m.Name(to),
		}
	}

	from := m.current
	for _, h := range m.nodes[from].OnExit {
		h(from, to)
	}
	m.current = to
	m.changes++
	for _, h := range m.nodes[to].OnEnter {
		h(from, to)
	}
	return nil
}

// MustTransition is Transition that panics on an illegal change
// Used where the caller already checked the precondition
func (m *Machine[S]) MustTransition(to S) {
	if err := m.Transition(to); err != nil {
		panic(err)
	}
}

// Reset forces the machine to id without running hooks
// Used when an owner recycles the machine for a new lifecycle
func (m *Machine[S]) Reset(id S) {
	m.node(id)
	m.current = id
	m.changes = 0
}

// Changes returns the number of transitions performed
func (m *Machine[S]) Changes() uint64 {
	return m.changes
}

// Name returns the display name of a state
func (m *Machine[S]) Name(id S) string {
	if n, ok := m.nodes[id]; ok {
		return n.Name
	}
	return fmt.Sprint(id)
}
