package engine

import (
	"time"

	"github.com/lixenwraith/splitflap/constants"
	"github.com/lixenwraith/splitflap/engine/fsm"
	"github.com/lixenwraith/splitflap/vmath"
)

// SequencerState is the transition state of a tile
type SequencerState uint8

const (
	StateIdle SequencerState = iota
	StateArmed
	StateRunning
	StateInteractive
	StateCompleting
)

// String returns the state name
func (s SequencerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateArmed:
		return "Armed"
	case StateRunning:
		return "Running"
	case StateInteractive:
		return "Interactive"
	case StateCompleting:
		return "Completing"
	default:
		return "Unknown"
	}
}

// flapStage tracks the two flap halves of one rigid flap
// The trailing half may start only once the stage reaches trailingRunning:
// on the leading completion, or on a committed drag release
type flapStage uint8

const (
	flapsArmed flapStage = iota
	leadingRunning
	trailingRunning
	flapsDone
)

// armedTransition is everything owned by an in-flight flip
// Present only while the sequencer is not Idle
type armedTransition struct {
	direction   Direction
	outgoing    rune
	incoming    rune
	interactive bool
	committed   bool
	primaryDone bool

	primary  *PhaseAnimator
	leading  *PhaseAnimator
	trailing *PhaseAnimator
	stage    flapStage
}

// Sequencer is the flip state machine of a single tile
// It owns the primary, top and bottom phase animators and the overlay pair,
// and is the only writer of its TokenRing's index
// Single-threaded: call all methods from the goroutine driving its Clock
type Sequencer struct {
	ring     *TokenRing
	driver   Driver
	renderer Renderer

	listeners []Listener
	seq       uint64

	machine *fsm.Machine[SequencerState]
	armed   *armedTransition
	slot    armedTransition

	primary PhaseAnimator
	top     PhaseAnimator
	bottom  PhaseAnimator

	staticTop     Segment
	staticBottom  Segment
	overlayTop    Segment
	overlayBottom Segment

	baseProgress float64
	maxShadow    float64
	dragDuration time.Duration
	hold         int
}

// NewSequencer creates an idle sequencer over ring, driven by driver
// The static halves start out showing the ring's current token
func NewSequencer(ring *TokenRing, driver Driver) *Sequencer {
	if ring == nil {
		ring = NewTokenRing(nil)
	}
	s := &Sequencer{
		ring:         ring,
		driver:       driver,
		maxShadow:    constants.MaxShadowAlpha,
		dragDuration: constants.DefaultAnimationDuration,
	}
	s.machine = fsm.NewMachine(StateIdle).
		AddState(StateIdle, StateIdle.String()).
		AddState(StateArmed, StateArmed.String()).
		AddState(StateRunning, StateRunning.String()).
		AddState(StateInteractive, StateInteractive.String()).
		AddState(StateCompleting, StateCompleting.String()).
		Allow(StateIdle, StateArmed).
		Allow(StateArmed, StateRunning, StateInteractive).
		Allow(StateInteractive, StateRunning).
		Allow(StateRunning, StateCompleting).
		Allow(StateCompleting, StateIdle)

	s.resetStatics()
	return s
}

// SetRenderer installs the renderer and paints the current snapshot
func (s *Sequencer) SetRenderer(r Renderer) {
	s.renderer = r
	s.publish()
}

// AddListener registers an event listener
func (s *Sequencer) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// SetMaxShadow sets the peak shadow intensity, clamped to [0,1]
func (s *Sequencer) SetMaxShadow(v float64) {
	s.maxShadow = vmath.Clamp01(v)
}

// SetDragDuration sets the full-flip duration used by interactive transitions
func (s *Sequencer) SetDragDuration(d time.Duration) {
	if d < 0 {
		d = 0
	}
	s.dragDuration = d
}

// Ring returns the token ring
func (s *Sequencer) Ring() *TokenRing {
	return s.ring
}

// State returns the current transition state
func (s *Sequencer) State() SequencerState {
	return s.machine.Current()
}

// IsIdle reports whether a new transition may be requested
func (s *Sequencer) IsIdle() bool {
	return s.machine.Is(StateIdle)
}

// Direction returns the direction of the in-flight transition, 0 when Idle
func (s *Sequencer) Direction() Direction {
	if s.armed == nil {
		return 0
	}
	return s.armed.direction
}

// BaseProgress returns the progress offset recorded at drag begin
func (s *Sequencer) BaseProgress() float64 {
	return s.baseProgress
}

// CurrentToken returns the ring's current token, 0 when empty
func (s *Sequencer) CurrentToken() rune {
	t, _ := s.ring.Current()
	return t
}

// Primary returns the primary animator of the in-flight transition, nil when Idle
func (s *Sequencer) Primary() *PhaseAnimator {
	if s.armed == nil {
		return nil
	}
	return s.armed.primary
}

// TopPhase returns the top-half animator of the in-flight transition, nil when Idle
func (s *Sequencer) TopPhase() *PhaseAnimator {
	if s.armed == nil {
		return nil
	}
	return &s.top
}

// BottomPhase returns the bottom-half animator of the in-flight transition, nil when Idle
func (s *Sequencer) BottomPhase() *PhaseAnimator {
	if s.armed == nil {
		return nil
	}
	return &s.bottom
}

// SetTokens replaces the token sequence
// When Idle the static halves are redrawn at once; an in-flight transition
// reconciles against the new sequence when it completes
func (s *Sequencer) SetTokens(tokens []rune) {
	s.ring.SetTokens(tokens)
	if s.IsIdle() {
		s.Redraw()
	}
}

// Redraw writes the current token into both static halves and publishes
func (s *Sequencer) Redraw() {
	s.resetStatics()
	s.publish()
}

// Next flips forward over duration; false when rejected
func (s *Sequencer) Next(duration time.Duration) bool {
	return s.Advance(Forward, duration) == nil
}

// Previous flips backward over duration; false when rejected
func (s *Sequencer) Previous(duration time.Duration) bool {
	return s.Advance(Backward, duration) == nil
}

// Advance starts a programmatic flip in dir
// The index change is committed before any animation is armed
// Returns ErrBusy while a transition is in flight and ErrEmptySequence on an
// empty ring; a zero duration writes the new token without animating
func (s *Sequencer) Advance(dir Direction, duration time.Duration) error {
	return s.begin(dir, duration, false)
}

// BeginDrag starts an interactive flip
// velocity < 0 flips backward, > 0 forward; zero is ignored and returns false
func (s *Sequencer) BeginDrag(velocity float64) (bool, error) {
	if !s.IsIdle() {
		s.emit(Event{Type: EventRejected, Interactive: true})
		return false, ErrBusy
	}

	var dir Direction
	switch vmath.Sign(velocity) {
	case -1:
		dir = Backward
	case 1:
		dir = Forward
	default:
		s.emit(Event{Type: EventDragIgnored, Interactive: true})
		return false, nil
	}

	if err := s.begin(dir, s.dragDuration, true); err != nil {
		return false, err
	}
	if s.armed != nil {
		s.baseProgress = s.armed.primary.Progress()
	}
	return true, nil
}

// UpdateDrag scrubs the interactive flip to fraction of the tile height
// Ignored unless the sequencer is Interactive
func (s *Sequencer) UpdateDrag(fraction float64) {
	if !s.machine.Is(StateInteractive) {
		return
	}
	a := s.armed

	total := vmath.Clamp01(vmath.Clamp01(fraction) + s.baseProgress)
	stage1 := vmath.Clamp(total, 0, 0.5) * 2
	stage2 := vmath.Clamp(total-0.5, 0, 0.5) * 2

	s.hold++
	a.primary.SetProgress(total)
	a.leading.SetProgress(stage1)
	a.trailing.SetProgress(stage2)
	s.hold--
	s.publish()
}

// EndDrag releases the interactive flip, which always runs to completion
// Past the commit threshold both flap halves run concurrently; otherwise the
// trailing half waits for the leading half to complete
// Returns whether the release was committed
func (s *Sequencer) EndDrag() bool {
	if !s.machine.Is(StateInteractive) {
		return false
	}
	a := s.armed
	a.committed = a.primary.Progress() >= constants.CommitThreshold

	s.emit(Event{
		Type:        EventDragReleased,
		Direction:   a.direction,
		Token:       a.incoming,
		Interactive: true,
		Committed:   a.committed,
	})
	s.machine.MustTransition(StateRunning)

	committed := a.committed
	if committed {
		a.stage = trailingRunning
	}
	s.startPhase(a.leading)
	if committed && s.armed == a {
		s.startPhase(a.trailing)
	}
	if s.armed == a {
		s.startPhase(a.primary)
	}
	return committed
}

// Snapshot returns the current render state
func (s *Sequencer) Snapshot() RenderState {
	rs := RenderState{
		StaticTop:     s.staticTop,
		StaticBottom:  s.staticBottom,
		OverlayTop:    s.overlayTop,
		OverlayBottom: s.overlayBottom,
		State:         s.machine.Current(),
	}
	if s.armed != nil {
		rs.Direction = s.armed.direction
		rs.Progress = s.armed.primary.Progress()
	}
	return rs
}

// begin is the shared entry for programmatic and interactive transitions
func (s *Sequencer) begin(dir Direction, duration time.Duration, interactive bool) error {
	if !s.IsIdle() {
		s.emit(Event{Type: EventRejected, Direction: dir, Interactive: interactive})
		return ErrBusy
	}

	outgoing, _ := s.ring.Current()
	incoming, err := s.ring.Advance(int(dir))
	if err != nil {
		return err
	}

	if duration <= 0 {
		s.resetStatics()
		s.emit(Event{Type: EventTokenChanged, Direction: dir, Token: incoming, Interactive: interactive})
		s.publish()
		return nil
	}

	s.machine.MustTransition(StateArmed)
	s.arm(dir, outgoing, incoming, duration, interactive)
	s.emit(Event{Type: EventTransitionArmed, Direction: dir, Token: incoming, Interactive: interactive})

	if interactive {
		s.machine.MustTransition(StateInteractive)
		s.publish()
		return nil
	}

	s.machine.MustTransition(StateRunning)
	a := s.armed
	s.startPhase(a.primary)
	if s.armed == a {
		s.startPhase(a.leading)
	}
	s.publish()
	return nil
}

// arm prepares overlays and the three animators for a flip in dir
func (s *Sequencer) arm(dir Direction, outgoing, incoming rune, duration time.Duration, interactive bool) {
	flap := duration / 2
	half := s.maxShadow * constants.FlapShadowFactor

	s.slot = armedTransition{
		direction:   dir,
		outgoing:    outgoing,
		incoming:    incoming,
		interactive: interactive,
		primary:     &s.primary,
	}
	a := &s.slot
	s.armed = a

	s.primary.Reset(PhasePrimary, duration, vmath.CurveEaseInOut, s.driver)

	if dir == Forward {
		// Top half of the old token falls away, then the new bottom half lands
		s.top.Reset(PhaseTop, flap, vmath.CurveEaseIn, s.driver)
		s.bottom.Reset(PhaseBottom, flap, vmath.CurveEaseOut, s.driver)
		a.leading, a.trailing = &s.top, &s.bottom

		s.overlayTop = Segment{Label: outgoing, Angle: 0, Shadow: 0, Visible: true}
		s.overlayBottom = Segment{Label: incoming, Angle: constants.FlapAngleDegrees, Visible: true}
		s.staticTop = Segment{Label: incoming, Visible: true}
		s.staticBottom = Segment{Label: outgoing, Visible: true}

		s.primary.SetOutput(func(v float64) {
			s.staticBottom.Shadow = v * s.maxShadow
			s.publish()
		})
		s.top.SetOutput(func(v float64) {
			s.overlayTop.Angle = -constants.FlapAngleDegrees * v
			s.overlayTop.Shadow = v * half
			s.publish()
		})
		s.bottom.SetOutput(func(v float64) {
			s.overlayBottom.Angle = constants.FlapAngleDegrees * (1 - v)
			s.publish()
		})
	} else {
		// Bottom half of the old token lifts away, then the new top half lands
		s.top.Reset(PhaseTop, flap, vmath.CurveEaseOut, s.driver)
		s.bottom.Reset(PhaseBottom, flap, vmath.CurveEaseIn, s.driver)
		a.leading, a.trailing = &s.bottom, &s.top

		s.overlayTop = Segment{Label: incoming, Angle: -constants.FlapAngleDegrees, Shadow: half, Visible: true}
		s.overlayBottom = Segment{Label: outgoing, Angle: 0, Visible: true}
		s.staticTop = Segment{Label: outgoing, Shadow: s.maxShadow, Visible: true}
		s.staticBottom = Segment{Label: incoming, Visible: true}

		s.primary.SetOutput(func(v float64) {
			s.staticTop.Shadow = (1 - v) * s.maxShadow
			s.publish()
		})
		s.top.SetOutput(func(v float64) {
			s.overlayTop.Angle = -constants.FlapAngleDegrees * (1 - v)
			s.overlayTop.Shadow = (1 - v) * half
			s.publish()
		})
		s.bottom.SetOutput(func(v float64) {
			s.overlayBottom.Angle = constants.FlapAngleDegrees * v
			s.publish()
		})
	}

	// The tile settles once the primary and both flap halves are done,
	// whichever finishes last
	s.primary.AddCompletion(func() {
		s.emit(Event{Type: EventPhaseCompleted, Phase: PhasePrimary, Direction: dir, Token: incoming, Interactive: interactive})
		a.primaryDone = true
		if a.stage == flapsDone {
			s.finish(a)
		}
	})
	a.leading.AddCompletion(func() {
		s.emit(Event{Type: EventPhaseCompleted, Phase: a.leading.Name(), Direction: dir, Token: incoming, Interactive: interactive})
		if a.stage < trailingRunning {
			a.stage = trailingRunning
		}
		s.startPhase(a.trailing)
	})
	a.trailing.AddCompletion(func() {
		s.emit(Event{Type: EventPhaseCompleted, Phase: a.trailing.Name(), Direction: dir, Token: incoming, Interactive: interactive})
		a.stage = flapsDone
		if a.primaryDone {
			s.finish(a)
		}
	})
}

// startPhase starts an animator that is not yet clock-driven
// The started event precedes Start because a finished phase completes synchronously
func (s *Sequencer) startPhase(p *PhaseAnimator) {
	if p.IsRunning() || p.IsDone() {
		return
	}
	if a := s.armed; a != nil {
		switch {
		case p == a.trailing && a.stage < trailingRunning:
			return
		case p == a.leading && a.stage < leadingRunning:
			a.stage = leadingRunning
		}
	}
	s.emit(Event{
		Type:        EventPhaseStarted,
		Phase:       p.Name(),
		Direction:   s.Direction(),
		Interactive: s.armed != nil && s.armed.interactive,
	})
	p.Start()
}

// finish reconciles the tile once every phase of a has completed
func (s *Sequencer) finish(a *armedTransition) {
	if s.armed != a {
		return
	}
	s.machine.MustTransition(StateCompleting)

	s.armed = nil
	s.baseProgress = 0
	s.primary.SetOutput(nil)
	s.top.SetOutput(nil)
	s.bottom.SetOutput(nil)

	token := a.incoming
	if t, ok := s.ring.Current(); ok {
		token = t
	}
	s.staticTop = Segment{Label: token, Visible: true}
	s.staticBottom = Segment{Label: token, Visible: true}
	s.overlayTop = Segment{}
	s.overlayBottom = Segment{}

	s.machine.MustTransition(StateIdle)
	s.emit(Event{Type: EventTransitionCompleted, Direction: a.direction, Token: token, Interactive: a.interactive, Committed: a.committed})
	s.publish()
}

// resetStatics shows the current token on both static halves without shadow
func (s *Sequencer) resetStatics() {
	t, ok := s.ring.Current()
	s.staticTop = Segment{Label: t, Visible: ok}
	s.staticBottom = Segment{Label: t, Visible: ok}
	s.overlayTop = Segment{}
	s.overlayBottom = Segment{}
}

func (s *Sequencer) publish() {
	if s.hold > 0 || s.renderer == nil {
		return
	}
	s.renderer.Render(s.Snapshot())
}

func (s *Sequencer) emit(ev Event) {
	s.seq++
	ev.Seq = s.seq
	for _, l := range s.listeners {
		l(ev)
	}
}
