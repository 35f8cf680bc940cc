package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/splitflap/vmath"
)

func TestPhaseZeroDurationCompletesSynchronously(t *testing.T) {
	a := NewPhaseAnimator("p", 0, vmath.CurveLinear, nil)
	fired := 0
	a.AddCompletion(func() { fired++ })

	a.Start()

	if fired != 1 {
		t.Errorf("Expected 1 completion, got %d", fired)
	}
	if a.State() != PhaseCompleted {
		t.Errorf("Expected Completed, got %s", a.State())
	}
	if a.Progress() != 1 {
		t.Errorf("Expected progress 1, got %f", a.Progress())
	}
}

func TestPhaseClockDriven(t *testing.T) {
	clock := NewClock(NewMockTimeProvider(time.Unix(0, 0)), 0)
	a := NewPhaseAnimator("p", 200*time.Millisecond, vmath.CurveLinear, clock)

	var outputs []float64
	a.SetOutput(func(v float64) { outputs = append(outputs, v) })
	fired := 0
	a.AddCompletion(func() { fired++ })

	a.Start()
	if !a.IsRunning() || clock.Active() != 1 {
		t.Fatalf("Expected running and attached, state %s active %d", a.State(), clock.Active())
	}

	clock.Tick(50 * time.Millisecond)
	if math.Abs(a.Progress()-0.25) > 1e-9 {
		t.Errorf("Expected progress 0.25, got %f", a.Progress())
	}

	clock.Tick(50 * time.Millisecond)
	clock.Tick(200 * time.Millisecond)

	if fired != 1 {
		t.Errorf("Expected 1 completion, got %d", fired)
	}
	if !clock.Idle() {
		t.Errorf("Expected clock to drop completed animator, %d active", clock.Active())
	}
	for i := 1; i < len(outputs); i++ {
		if outputs[i] < outputs[i-1] {
			t.Errorf("Clock-driven output decreased at %d: %v", i, outputs)
		}
	}
	if outputs[len(outputs)-1] != 1 {
		t.Errorf("Expected final output 1, got %f", outputs[len(outputs)-1])
	}
}

func TestPhaseSetProgressClampsAndEases(t *testing.T) {
	a := NewPhaseAnimator("p", time.Second, vmath.CurveEaseIn, nil)
	fired := false
	a.AddCompletion(func() { fired = true })

	a.SetProgress(0.5)
	if a.State() != PhaseInteractive {
		t.Errorf("Expected Interactive, got %s", a.State())
	}
	if a.Value() >= 0.5 {
		t.Errorf("Expected ease-in value below 0.5, got %f", a.Value())
	}

	a.SetProgress(2)
	if a.Progress() != 1 {
		t.Errorf("Expected clamp to 1, got %f", a.Progress())
	}
	if fired {
		t.Error("SetProgress must not fire completion")
	}

	a.SetProgress(-3)
	if a.Progress() != 0 {
		t.Errorf("Expected clamp to 0, got %f", a.Progress())
	}

	a.SetProgress(math.NaN())
	if a.Progress() != 0 {
		t.Errorf("Expected NaN clamped to 0, got %f", a.Progress())
	}
}

func TestPhaseResumeFromScrub(t *testing.T) {
	clock := NewClock(nil, 0)
	a := NewPhaseAnimator("p", 100*time.Millisecond, vmath.CurveLinear, clock)

	a.SetProgress(0.6)
	a.Start()
	clock.Tick(20 * time.Millisecond)

	if math.Abs(a.Progress()-0.8) > 1e-9 {
		t.Errorf("Expected progress 0.8, got %f", a.Progress())
	}

	// Scrubbing a running phase takes it off the clock
	a.SetProgress(0.3)
	clock.Tick(20 * time.Millisecond)
	if a.Progress() != 0.3 {
		t.Errorf("Expected scrubbed progress 0.3 to hold, got %f", a.Progress())
	}
	if !clock.Idle() {
		t.Error("Expected interactive animator dropped from clock")
	}
}

func TestPhaseStartAtFullProgressCompletes(t *testing.T) {
	a := NewPhaseAnimator("p", time.Second, vmath.CurveLinear, nil)
	fired := 0
	a.AddCompletion(func() { fired++ })

	a.SetProgress(1)
	a.Start()

	if fired != 1 || a.State() != PhaseCompleted {
		t.Errorf("Expected synchronous completion, fired %d state %s", fired, a.State())
	}
}

func TestPhaseCompletionFiresOnce(t *testing.T) {
	a := NewPhaseAnimator("p", time.Second, vmath.CurveLinear, nil)
	fired := 0
	a.AddCompletion(func() { fired++ })
	a.AddCompletion(func() { fired += 10 })

	a.ForceComplete()
	a.ForceComplete()
	a.Start()

	if fired != 11 {
		t.Errorf("Expected handlers run once in order, got %d", fired)
	}
}

func TestPhaseCancel(t *testing.T) {
	clock := NewClock(nil, 0)
	a := NewPhaseAnimator("p", time.Second, vmath.CurveLinear, clock)
	fired := false
	a.AddCompletion(func() { fired = true })

	a.Start()
	a.Cancel()
	clock.Tick(2 * time.Second)
	a.ForceComplete()

	if fired {
		t.Error("Cancelled animator fired completion")
	}
	if a.State() != PhaseCancelled {
		t.Errorf("Expected Cancelled, got %s", a.State())
	}
}

func TestPhaseResetInsideCompletion(t *testing.T) {
	a := NewPhaseAnimator("first", 0, vmath.CurveLinear, nil)
	second := 0
	a.AddCompletion(func() {
		a.Reset("second", 0, vmath.CurveLinear, nil)
		a.AddCompletion(func() { second++ })
	})

	a.Start()
	if a.State() != PhaseIdle || a.Name() != "second" {
		t.Fatalf("Expected recycled idle animator, got %s %q", a.State(), a.Name())
	}

	a.Start()
	if second != 1 {
		t.Errorf("Expected recycled handler to fire once, got %d", second)
	}
}

func TestPhaseNegativeDuration(t *testing.T) {
	a := NewPhaseAnimator("p", -time.Second, vmath.CurveLinear, nil)
	if a.Duration() != 0 {
		t.Errorf("Expected negative duration clamped to 0, got %v", a.Duration())
	}
}

func TestPhaseCompletesOnExactDuration(t *testing.T) {
	clock := NewClock(nil, 0)
	a := NewPhaseAnimator("p", 300*time.Millisecond, vmath.CurveLinear, clock)
	a.Start()

	clock.Tick(100 * time.Millisecond)
	clock.Tick(100 * time.Millisecond)
	if a.IsDone() {
		t.Fatal("Completed early")
	}
	clock.Tick(100 * time.Millisecond)
	if !a.IsDone() {
		t.Errorf("Expected completion after three thirds, progress %v", a.Progress())
	}
}
