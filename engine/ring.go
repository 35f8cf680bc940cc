package engine

import "github.com/lixenwraith/splitflap/vmath"

// TokenRing is the circular sequence of single-character tokens shown by a tile
// Only the Sequencer advances it; readers use Current
type TokenRing struct {
	tokens []rune
	index  int
}

// NewTokenRing creates a ring positioned at the first token
func NewTokenRing(tokens []rune) *TokenRing {
	r := &TokenRing{}
	r.SetTokens(tokens)
	return r
}

// SetTokens replaces the sequence, clamping the index to the new bounds
// The current token may change as a side effect; callers must redraw
func (r *TokenRing) SetTokens(tokens []rune) {
	r.tokens = append(r.tokens[:0], tokens...)
	if r.index >= len(r.tokens) {
		r.index = len(r.tokens) - 1
	}
	if r.index < 0 {
		r.index = 0
	}
}

// Tokens returns a copy of the sequence
func (r *TokenRing) Tokens() []rune {
	out := make([]rune, len(r.tokens))
	copy(out, r.tokens)
	return out
}

// Len returns the number of tokens
func (r *TokenRing) Len() int {
	return len(r.tokens)
}

// Index returns the current position, 0 for an empty ring
func (r *TokenRing) Index() int {
	return r.index
}

// Current returns the current token, false when the ring is empty
func (r *TokenRing) Current() (rune, bool) {
	if len(r.tokens) == 0 {
		return 0, false
	}
	return r.tokens[r.index], true
}

// Peek returns the token delta steps away without moving
func (r *TokenRing) Peek(delta int) (rune, bool) {
	if len(r.tokens) == 0 {
		return 0, false
	}
	return r.tokens[vmath.Wrap(r.index, delta, len(r.tokens))], true
}

// Advance moves the index by delta with wraparound and returns the new token
func (r *TokenRing) Advance(delta int) (rune, error) {
	if len(r.tokens) == 0 {
		return 0, ErrEmptySequence
	}
	r.index = vmath.Wrap(r.index, delta, len(r.tokens))
	return r.tokens[r.index], nil
}

// IndexOf returns the first position of token, -1 if absent
func (r *TokenRing) IndexOf(token rune) int {
	for i, t := range r.tokens {
		if t == token {
			return i
		}
	}
	return -1
}

// Distance returns the signed shortest step count from the current index to
// target, positive meaning forward; ties go forward
func (r *TokenRing) Distance(target int) int {
	n := len(r.tokens)
	if n == 0 {
		return 0
	}
	fwd := vmath.Wrap(target, -r.index, n)
	if fwd <= n-fwd {
		return fwd
	}
	return fwd - n
}
