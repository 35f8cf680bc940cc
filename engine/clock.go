package engine

import "time"

// Clock drives running PhaseAnimators forward in time
// The host calls Update once per frame, or Tick with an explicit dt in tests
// Not safe for concurrent use: the host loop owns it together with the Sequencer
type Clock struct {
	source   TimeSource
	last     time.Time
	maxDelta time.Duration

	active  []*PhaseAnimator
	scratch []*PhaseAnimator

	// Animators attached by completion handlers during the current tick
	started []*PhaseAnimator
	ticking bool

	ticks uint64
}

// NewClock creates a clock reading time from source
// maxDelta caps a single frame step, zero disables the cap
func NewClock(source TimeSource, maxDelta time.Duration) *Clock {
	if source == nil {
		source = NewMonotonicTimeProvider()
	}
	return &Clock{
		source:   source,
		maxDelta: maxDelta,
		active:   make([]*PhaseAnimator, 0, 4),
		scratch:  make([]*PhaseAnimator, 0, 4),
	}
}

// Attach implements Driver, registering a running animator
func (c *Clock) Attach(a *PhaseAnimator) {
	if a.attached {
		return
	}
	a.attached = true
	c.active = append(c.active, a)
	if c.ticking {
		c.started = append(c.started, a)
	}
}

// Update reads the time source and ticks by the elapsed time since the last call
// The first call only establishes the reference point
func (c *Clock) Update() time.Duration {
	now := c.source.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	dt := now.Sub(c.last)
	c.last = now
	if dt < 0 {
		dt = 0
	}
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.Tick(dt)
	return dt
}

// Tick advances every running animator by dt in attach order
// An animator started by a completion handler during the tick runs for the
// time left over after the animator that completed
func (c *Clock) Tick(dt time.Duration) {
	c.ticks++

	c.scratch = append(c.scratch[:0], c.active...)
	c.active = c.active[:0]
	c.started = c.started[:0]
	c.ticking = true

	for i, a := range c.scratch {
		c.step(a, dt)
		if a.IsRunning() {
			c.active = append(c.active, a)
		} else {
			a.attached = false
		}
		c.scratch[i] = nil
	}
	c.ticking = false

	// Drop animators that were started and finished within this tick
	kept := c.active[:0]
	for _, a := range c.active {
		if a.IsRunning() {
			kept = append(kept, a)
		} else {
			a.attached = false
		}
	}
	clear(c.active[len(kept):])
	c.active = kept
	clear(c.started)
	c.started = c.started[:0]
}

// step advances a and hands the unused part of dt to the animators its
// completion started, recursively
func (c *Clock) step(a *PhaseAnimator, dt time.Duration) {
	mark := len(c.started)
	left := a.advance(dt)
	if left <= 0 {
		return
	}
	end := len(c.started)
	for i := mark; i < end; i++ {
		c.step(c.started[i], left)
	}
}

// Active returns the number of animators being driven
func (c *Clock) Active() int {
	return len(c.active)
}

// Idle reports whether no animator is being driven
func (c *Clock) Idle() bool {
	return len(c.active) == 0
}

// Ticks returns the number of ticks processed
func (c *Clock) Ticks() uint64 {
	return c.ticks
}
