package engine

import (
	"math"
	"time"

	"github.com/lixenwraith/splitflap/engine/fsm"
	"github.com/lixenwraith/splitflap/vmath"
)

// PhaseState is the lifecycle state of a PhaseAnimator
type PhaseState uint8

const (
	PhaseIdle PhaseState = iota
	PhaseRunning
	PhaseInteractive
	PhaseCompleted
	PhaseCancelled
)

// String returns the state name
func (s PhaseState) String() string {
	switch s {
	case PhaseIdle:
		return "Idle"
	case PhaseRunning:
		return "Running"
	case PhaseInteractive:
		return "Interactive"
	case PhaseCompleted:
		return "Completed"
	case PhaseCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Driver advances running animators over time
// Clock is the production implementation
type Driver interface {
	Attach(a *PhaseAnimator)
}

// PhaseAnimator is one controllable animation phase of a flip
// Progress is a raw fraction in [0,1]; Value is progress mapped through the curve
// Completion handlers run at most once, synchronously with the update that
// reaches progress 1
type PhaseAnimator struct {
	name     string
	duration time.Duration
	curve    vmath.Curve
	driver   Driver

	elapsed  time.Duration
	progress float64
	value    float64

	machine     *fsm.Machine[PhaseState]
	output      func(value float64)
	completions []func()
	fired       bool
	attached    bool
}

// NewPhaseAnimator creates an idle animator
// A negative duration is treated as zero
func NewPhaseAnimator(name string, duration time.Duration, curve vmath.Curve, driver Driver) *PhaseAnimator {
	a := &PhaseAnimator{}
	a.Reset(name, duration, curve, driver)
	return a
}

func newPhaseMachine() *fsm.Machine[PhaseState] {
	return fsm.NewMachine(PhaseIdle).
		AddState(PhaseIdle, PhaseIdle.String()).
		AddState(PhaseRunning, PhaseRunning.String()).
		AddState(PhaseInteractive, PhaseInteractive.String()).
		AddState(PhaseCompleted, PhaseCompleted.String()).
		AddState(PhaseCancelled, PhaseCancelled.String()).
		Allow(PhaseIdle, PhaseRunning, PhaseInteractive, PhaseCompleted, PhaseCancelled).
		Allow(PhaseRunning, PhaseInteractive, PhaseCompleted, PhaseCancelled).
		Allow(PhaseInteractive, PhaseRunning, PhaseCompleted, PhaseCancelled)
}

// Reset returns the animator to Idle with new parameters, dropping handlers
// Lets the sequencer recycle its three animators across transitions
func (a *PhaseAnimator) Reset(name string, duration time.Duration, curve vmath.Curve, driver Driver) {
	if duration < 0 {
		duration = 0
	}
	a.name = name
	a.duration = duration
	a.curve = curve
	a.driver = driver
	a.elapsed = 0
	a.progress = 0
	a.value = 0
	if a.machine == nil {
		a.machine = newPhaseMachine()
	} else {
		a.machine.Reset(PhaseIdle)
	}
	a.output = nil
	a.completions = a.completions[:0]
	a.fired = false
}

// Name returns the label given at creation
func (a *PhaseAnimator) Name() string { return a.name }

// Duration returns the configured duration
func (a *PhaseAnimator) Duration() time.Duration { return a.duration }

// Curve returns the easing curve
func (a *PhaseAnimator) Curve() vmath.Curve { return a.curve }

// State returns the lifecycle state
func (a *PhaseAnimator) State() PhaseState { return a.machine.Current() }

// Progress returns the raw fraction complete
func (a *PhaseAnimator) Progress() float64 { return a.progress }

// Value returns the eased progress
func (a *PhaseAnimator) Value() float64 { return a.value }

// IsRunning reports whether a clock is driving the animator
func (a *PhaseAnimator) IsRunning() bool { return a.machine.Is(PhaseRunning) }

// IsDone reports whether the animator reached a terminal state
func (a *PhaseAnimator) IsDone() bool {
	return a.machine.In(PhaseCompleted, PhaseCancelled)
}

// SetOutput installs the channel that receives the eased value on every update
func (a *PhaseAnimator) SetOutput(fn func(value float64)) {
	a.output = fn
}

// AddCompletion appends a handler run when the animator completes
func (a *PhaseAnimator) AddCompletion(fn func()) {
	a.completions = append(a.completions, fn)
}

// Start begins clock-driven progress from the current fraction
// Zero duration, or progress already at 1, completes synchronously
func (a *PhaseAnimator) Start() {
	if !a.machine.In(PhaseIdle, PhaseInteractive) {
		return
	}
	a.machine.MustTransition(PhaseRunning)

	if a.duration == 0 || a.progress >= 1 {
		a.complete()
		return
	}
	if a.driver != nil {
		a.driver.Attach(a)
	}
}

// SetProgress scrubs to p, clamped to [0,1]
// A running animator stops being clock-driven until Start is called again
// Never fires completion
func (a *PhaseAnimator) SetProgress(p float64) {
	if a.IsDone() {
		return
	}
	if !a.machine.Is(PhaseInteractive) {
		a.machine.MustTransition(PhaseInteractive)
	}
	p = vmath.Clamp01(p)
	a.elapsed = time.Duration(math.Round(p * float64(a.duration)))
	a.write(p)
}

// ForceComplete jumps to progress 1 and fires completion handlers
func (a *PhaseAnimator) ForceComplete() {
	if a.IsDone() {
		return
	}
	a.complete()
}

// Cancel stops the animator without firing completion handlers
func (a *PhaseAnimator) Cancel() {
	if a.IsDone() {
		return
	}
	a.machine.MustTransition(PhaseCancelled)
}

// advance moves a running animator forward by dt and returns the part of dt
// left over after it completed
func (a *PhaseAnimator) advance(dt time.Duration) time.Duration {
	if !a.machine.Is(PhaseRunning) || dt <= 0 {
		return 0
	}

	a.elapsed += dt
	if a.elapsed >= a.duration {
		left := a.elapsed - a.duration
		a.complete()
		return left
	}
	a.write(float64(a.elapsed) / float64(a.duration))
	return 0
}

func (a *PhaseAnimator) write(p float64) {
	a.progress = p
	a.value = a.curve.Apply(p)
	if a.output != nil {
		a.output(a.value)
	}
}

func (a *PhaseAnimator) complete() {
	a.elapsed = a.duration
	a.write(1)
	a.machine.MustTransition(PhaseCompleted)
	if a.fired {
		return
	}
	a.fired = true

	// Handlers may recycle this animator; detach the list first
	handlers := a.completions
	a.completions = nil
	for _, fn := range handlers {
		fn()
	}
}
