package fsm

import (
	"errors"
	"testing"
)

type light int

const (
	red light = iota
	green
	yellow
)

func newLight() *Machine[light] {
	return NewMachine(red).
		AddState(red, "Red").
		AddState(green, "Green").
		AddState(yellow, "Yellow").
		Allow(red, green).
		Allow(green, yellow).
		Allow(yellow, red)
}

func TestMachineTransitions(t *testing.T) {
	m := newLight()

	if !m.Is(red) {
		t.Fatalf("initial state = %v, want red", m.Current())
	}
	for _, next := range []light{green, yellow, red} {
		if err := m.Transition(next); err != nil {
			t.Fatalf("Transition(%v) error: %v", next, err)
		}
	}
	if m.Changes() != 3 {
		t.Errorf("Changes() = %d, want 3", m.Changes())
	}
}

func TestMachineRejectsIllegalTransition(t *testing.T) {
	m := newLight()

	err := m.Transition(yellow)
	if err == nil {
		t.Fatal("expected error for red -> yellow")
	}
	var te *TransitionError[light]
	if !errors.As(err, &te) {
		t.Fatalf("error type = %T, want *TransitionError", err)
	}
	if te.FromName != "Red" || te.ToName != "Yellow" {
		t.Errorf("error names = %s -> %s", te.FromName, te.ToName)
	}
	if !m.Is(red) {
		t.Errorf("state changed after rejected transition: %v", m.Current())
	}
	if m.Changes() != 0 {
		t.Errorf("Changes() = %d after rejection", m.Changes())
	}
}

func TestMachineHooksOrder(t *testing.T) {
	var log []string
	m := newLight().
		OnExit(red, func(from, to light) { log = append(log, "exit-red") }).
		OnEnter(green, func(from, to light) {
			if from != red {
				t.Errorf("enter green from %v", from)
			}
			log = append(log, "enter-green")
		})

	m.MustTransition(green)

	if len(log) != 2 || log[0] != "exit-red" || log[1] != "enter-green" {
		t.Errorf("hook order = %v", log)
	}
}

func TestMachineSelfTransitionNeedsEdge(t *testing.T) {
	m := newLight()
	if m.CanTransition(red) {
		t.Error("self transition allowed without edge")
	}
	m.Allow(red, red)
	if err := m.Transition(red); err != nil {
		t.Errorf("explicit self transition failed: %v", err)
	}
}

func TestMustTransitionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustTransition did not panic on illegal change")
		}
	}()
	newLight().MustTransition(yellow)
}
