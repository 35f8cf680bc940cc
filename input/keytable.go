package input

import "github.com/gdamore/tcell/v2"

// KeyTable maps keys to intents
type KeyTable struct {
	// Special keys (Ctrl+*, arrows)
	SpecialKeys map[tcell.Key]IntentType

	// Printable bindings
	Runes map[rune]IntentType
}

// DefaultKeyTable returns the default key bindings
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]IntentType{
			tcell.KeyCtrlC:  IntentQuit,
			tcell.KeyEscape: IntentQuit,
			tcell.KeyDown:   IntentNext,
			tcell.KeyUp:     IntentPrevious,
			tcell.KeyLeft:   IntentFocusLeft,
			tcell.KeyRight:  IntentFocusRight,
		},
		Runes: map[rune]IntentType{
			'q': IntentQuit,
			'm': IntentToggleMute,
			'j': IntentNext,
			' ': IntentNext,
			'k': IntentPrevious,
			'h': IntentFocusLeft,
			'l': IntentFocusRight,
			'r': IntentRandomize,
			'0': IntentReset,
		},
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) IntentType {
	if ev.Key() == tcell.KeyRune {
		return kt.Runes[ev.Rune()]
	}
	return kt.SpecialKeys[ev.Key()]
}
