package engine

// EventType identifies a sequencer lifecycle event
type EventType uint8

const (
	// EventTransitionArmed fires after the index advanced and animators were armed
	EventTransitionArmed EventType = iota + 1

	// EventTokenChanged fires when a zero-duration transition wrote the token directly
	EventTokenChanged

	// EventPhaseStarted fires immediately before a phase animator starts on the clock
	EventPhaseStarted

	// EventPhaseCompleted fires from a phase animator's completion handler
	EventPhaseCompleted

	// EventDragReleased fires when an interactive transition is released
	// Committed carries whether total progress passed the commit threshold
	EventDragReleased

	// EventTransitionCompleted fires after reconciliation, with the sequencer Idle
	EventTransitionCompleted

	// EventRejected fires when a request was refused while busy
	EventRejected

	// EventDragIgnored fires when a drag began without vertical velocity
	EventDragIgnored
)

// String returns the event name
func (t EventType) String() string {
	switch t {
	case EventTransitionArmed:
		return "TransitionArmed"
	case EventTokenChanged:
		return "TokenChanged"
	case EventPhaseStarted:
		return "PhaseStarted"
	case EventPhaseCompleted:
		return "PhaseCompleted"
	case EventDragReleased:
		return "DragReleased"
	case EventTransitionCompleted:
		return "TransitionCompleted"
	case EventRejected:
		return "Rejected"
	case EventDragIgnored:
		return "DragIgnored"
	default:
		return "Unknown"
	}
}

// Phase names carried by phase events
const (
	PhasePrimary = "primary"
	PhaseTop     = "top"
	PhaseBottom  = "bottom"
)

// Event is a single sequencer notification
// Seq is strictly increasing per sequencer and totally orders events
type Event struct {
	Seq         uint64
	Type        EventType
	Phase       string
	Direction   Direction
	Token       rune
	Interactive bool
	Committed   bool
}

// Listener receives sequencer events synchronously
// Listeners must not request transitions from inside the callback
type Listener func(ev Event)
