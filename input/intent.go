package input

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System-level intents
	IntentQuit       // q, Esc, Ctrl+C
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Flips on the focused tile
	IntentNext      // j, Down, Space
	IntentPrevious  // k, Up
	IntentRandomize // r
	IntentReset     // 0

	// Focus
	IntentFocusLeft  // h, Left
	IntentFocusRight // l, Right
)

// String returns the intent name
func (t IntentType) String() string {
	switch t {
	case IntentQuit:
		return "quit"
	case IntentToggleMute:
		return "toggle-mute"
	case IntentResize:
		return "resize"
	case IntentNext:
		return "next"
	case IntentPrevious:
		return "previous"
	case IntentRandomize:
		return "randomize"
	case IntentReset:
		return "reset"
	case IntentFocusLeft:
		return "focus-left"
	case IntentFocusRight:
		return "focus-right"
	default:
		return "none"
	}
}
