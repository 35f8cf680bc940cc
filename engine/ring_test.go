package engine

import (
	"errors"
	"testing"
)

func TestTokenRingAdvanceWraps(t *testing.T) {
	r := NewTokenRing([]rune("ABC"))

	tests := []struct {
		delta int
		want  rune
		index int
	}{
		{1, 'B', 1},
		{1, 'C', 2},
		{1, 'A', 0},
		{-1, 'C', 2},
		{-1, 'B', 1},
	}
	for i, tt := range tests {
		got, err := r.Advance(tt.delta)
		if err != nil {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
		if got != tt.want || r.Index() != tt.index {
			t.Errorf("step %d: got %q at %d, want %q at %d", i, got, r.Index(), tt.want, tt.index)
		}
	}
}

func TestTokenRingEmpty(t *testing.T) {
	r := NewTokenRing(nil)

	if _, ok := r.Current(); ok {
		t.Error("Expected no current token on empty ring")
	}
	if _, err := r.Advance(1); !errors.Is(err, ErrEmptySequence) {
		t.Errorf("Expected ErrEmptySequence, got %v", err)
	}
	if r.Index() != 0 {
		t.Errorf("Expected index 0, got %d", r.Index())
	}
}

func TestTokenRingSetTokensClamps(t *testing.T) {
	r := NewTokenRing([]rune("ABCDE"))
	r.Advance(4)

	r.SetTokens([]rune("XY"))
	if r.Index() != 1 {
		t.Errorf("Expected index clamped to 1, got %d", r.Index())
	}
	if c, _ := r.Current(); c != 'Y' {
		t.Errorf("Expected current Y, got %q", c)
	}

	r.SetTokens(nil)
	if r.Index() != 0 {
		t.Errorf("Expected index 0 after clearing, got %d", r.Index())
	}
}

func TestTokenRingSetTokensCopies(t *testing.T) {
	src := []rune("AB")
	r := NewTokenRing(src)
	src[0] = 'Z'

	if c, _ := r.Current(); c != 'A' {
		t.Errorf("Ring shares caller slice, current %q", c)
	}

	out := r.Tokens()
	out[0] = 'Q'
	if c, _ := r.Current(); c != 'A' {
		t.Errorf("Tokens leaked internal slice, current %q", c)
	}
}

func TestTokenRingPeekAndDistance(t *testing.T) {
	r := NewTokenRing([]rune("0123456789"))
	r.Advance(8)

	if p, _ := r.Peek(3); p != '1' {
		t.Errorf("Peek(3) = %q, want '1'", p)
	}
	if r.Index() != 8 {
		t.Errorf("Peek moved index to %d", r.Index())
	}

	tests := []struct {
		target int
		want   int
	}{
		{8, 0},
		{9, 1},
		{1, 3},
		{5, -3},
		{3, 5}, // tie goes forward
	}
	for _, tt := range tests {
		if got := r.Distance(tt.target); got != tt.want {
			t.Errorf("Distance(%d) = %d, want %d", tt.target, got, tt.want)
		}
	}

	if r.IndexOf('4') != 4 || r.IndexOf('x') != -1 {
		t.Error("IndexOf returned unexpected positions")
	}
}
