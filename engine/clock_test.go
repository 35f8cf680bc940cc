package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/splitflap/vmath"
)

func TestClockUpdateUsesTimeSource(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewClock(mock, 100*time.Millisecond)
	a := NewPhaseAnimator("p", time.Second, vmath.CurveLinear, clock)
	a.Start()

	if dt := clock.Update(); dt != 0 {
		t.Errorf("First update should only set reference, got dt %v", dt)
	}

	mock.Advance(40 * time.Millisecond)
	if dt := clock.Update(); dt != 40*time.Millisecond {
		t.Errorf("Expected dt 40ms, got %v", dt)
	}

	// A stalled frame is capped
	mock.Advance(5 * time.Second)
	if dt := clock.Update(); dt != 100*time.Millisecond {
		t.Errorf("Expected dt capped at 100ms, got %v", dt)
	}

	if p := a.Progress(); p < 0.139 || p > 0.141 {
		t.Errorf("Expected progress 0.14, got %f", p)
	}
	if clock.Ticks() != 2 {
		t.Errorf("Expected 2 ticks, got %d", clock.Ticks())
	}
}

func TestClockAttachOnce(t *testing.T) {
	clock := NewClock(nil, 0)
	a := NewPhaseAnimator("p", time.Second, vmath.CurveLinear, clock)

	a.Start()
	clock.Attach(a)
	clock.Attach(a)

	if clock.Active() != 1 {
		t.Errorf("Expected 1 active animator, got %d", clock.Active())
	}

	clock.Tick(100 * time.Millisecond)
	if p := a.Progress(); p < 0.099 || p > 0.101 {
		t.Errorf("Expected single advance to 0.1, got %f", p)
	}
}

func TestClockChainedStartDuringTick(t *testing.T) {
	clock := NewClock(nil, 0)
	first := NewPhaseAnimator("first", 50*time.Millisecond, vmath.CurveLinear, clock)
	second := NewPhaseAnimator("second", 100*time.Millisecond, vmath.CurveLinear, clock)
	first.AddCompletion(second.Start)

	first.Start()
	clock.Tick(50 * time.Millisecond)

	if !first.IsDone() || !second.IsRunning() {
		t.Fatalf("Expected chained start, first %s second %s", first.State(), second.State())
	}
	if second.Progress() != 0 {
		t.Errorf("Expected no time left over for chained animator, got %f", second.Progress())
	}
	if clock.Active() != 1 {
		t.Errorf("Expected only chained animator active, got %d", clock.Active())
	}

	clock.Tick(100 * time.Millisecond)
	if !second.IsDone() || !clock.Idle() {
		t.Errorf("Expected chain complete, second %s active %d", second.State(), clock.Active())
	}
}

func TestClockRestartedDuringTickStaysAttached(t *testing.T) {
	clock := NewClock(nil, 0)
	a := NewPhaseAnimator("loop", 10*time.Millisecond, vmath.CurveLinear, clock)
	runs := 0

	var restart func()
	restart = func() {
		runs++
		if runs < 3 {
			a.Reset("loop", 10*time.Millisecond, vmath.CurveLinear, clock)
			a.AddCompletion(restart)
			a.Start()
		}
	}
	a.AddCompletion(restart)
	a.Start()

	for i := 0; i < 5; i++ {
		clock.Tick(10 * time.Millisecond)
	}

	if runs != 3 {
		t.Errorf("Expected 3 runs, got %d", runs)
	}
	if !clock.Idle() {
		t.Errorf("Expected idle clock, got %d active", clock.Active())
	}
}

func TestClockCarriesLeftoverIntoChainedStart(t *testing.T) {
	clock := NewClock(nil, 0)
	first := NewPhaseAnimator("first", 30*time.Millisecond, vmath.CurveLinear, clock)
	second := NewPhaseAnimator("second", 100*time.Millisecond, vmath.CurveLinear, clock)
	first.AddCompletion(second.Start)

	first.Start()
	clock.Tick(50 * time.Millisecond)

	if math.Abs(second.Progress()-0.2) > 1e-9 {
		t.Errorf("Expected chained animator to run the remaining 20ms, got %f", second.Progress())
	}
	if clock.Active() != 1 {
		t.Errorf("Expected only chained animator active, got %d", clock.Active())
	}

	clock.Tick(80 * time.Millisecond)
	if !second.IsDone() || !clock.Idle() {
		t.Errorf("Expected chain complete on exact remainder, second %s active %d", second.State(), clock.Active())
	}
}

func TestClockDropsChainFinishedWithinTick(t *testing.T) {
	clock := NewClock(nil, 0)
	first := NewPhaseAnimator("first", 10*time.Millisecond, vmath.CurveLinear, clock)
	second := NewPhaseAnimator("second", 20*time.Millisecond, vmath.CurveLinear, clock)
	third := NewPhaseAnimator("third", 40*time.Millisecond, vmath.CurveLinear, clock)
	first.AddCompletion(second.Start)
	second.AddCompletion(third.Start)

	first.Start()
	clock.Tick(50 * time.Millisecond)

	if !second.IsDone() {
		t.Errorf("Expected second done within the tick, got %s", second.State())
	}
	if math.Abs(third.Progress()-0.5) > 1e-9 {
		t.Errorf("Expected third at 0.5, got %f", third.Progress())
	}
	if clock.Active() != 1 {
		t.Errorf("Expected finished animators dropped, got %d active", clock.Active())
	}
}
