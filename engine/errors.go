package engine

import "errors"

var (
	// ErrEmptySequence is returned when a transition is requested on a ring with no tokens
	ErrEmptySequence = errors.New("engine: token sequence is empty")

	// ErrBusy is returned when a transition is requested while another is in flight
	ErrBusy = errors.New("engine: transition in flight")
)
