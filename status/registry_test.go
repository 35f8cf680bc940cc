package status

import (
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/lixenwraith/splitflap/engine"
)

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()

	var wg sync.WaitGroup
	ptrs := make([]*AtomicFloat, 16)
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ptrs[i] = m.Get("shared")
		}(i)
	}
	wg.Wait()

	for i, p := range ptrs {
		if p != ptrs[0] {
			t.Fatalf("goroutine %d got a different pointer", i)
		}
	}
	if m.Count() != 1 {
		t.Errorf("Expected 1 metric, got %d", m.Count())
	}
}

func TestMetricMapKeysSorted(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	m.Get("b")
	m.Get("c")
	m.Get("a")

	if diff := cmp.Diff([]string{"a", "b", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}

	var visited []string
	m.Range(func(k string, _ *AtomicFloat) { visited = append(visited, k) })
	if diff := cmp.Diff(m.Keys(), visited); diff != "" {
		t.Errorf("Range order mismatch (-want +got):\n%s", diff)
	}
}

func TestAtomicFloatObserve(t *testing.T) {
	var f AtomicFloat

	if got := f.Observe(10, 0.5); got != 10 {
		t.Errorf("First observation should seed, got %f", got)
	}
	if got := f.Observe(20, 0.5); math.Abs(got-15) > 1e-9 {
		t.Errorf("Expected average 15, got %f", got)
	}
	f.Set(-2)
	if f.Get() != -2 {
		t.Errorf("Expected -2, got %f", f.Get())
	}
}

func TestRegistryCountsSequencerEvents(t *testing.T) {
	reg := NewRegistry()
	clock := engine.NewClock(engine.NewMockTimeProvider(time.Unix(0, 0)), 0)
	seq := engine.NewSequencer(engine.NewTokenRing([]rune("ABC")), clock)
	seq.AddListener(reg.Listener())

	seq.Next(0)
	seq.Previous(0)
	seq.Previous(0)

	seq.Next(400 * time.Millisecond)
	seq.Next(400 * time.Millisecond)
	for !seq.IsIdle() {
		clock.Tick(50 * time.Millisecond)
	}

	seq.BeginDrag(0)
	seq.BeginDrag(1)
	seq.UpdateDrag(0.8)
	seq.EndDrag()
	for !seq.IsIdle() {
		clock.Tick(50 * time.Millisecond)
	}

	seq.BeginDrag(-1)
	seq.UpdateDrag(0.1)
	seq.EndDrag()
	for !seq.IsIdle() {
		clock.Tick(50 * time.Millisecond)
	}

	want := map[string]int64{
		FlipsNext:        3,
		FlipsPrevious:    3,
		FlipsRejected:    1,
		FlipsCompleted:   3,
		DragsCommitted:   1,
		DragsUncommitted: 1,
		DragsIgnored:     1,
	}
	got := make(map[string]int64)
	reg.Ints.Range(func(k string, v *atomic.Int64) { got[k] = v.Load() })
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Counters mismatch (-want +got):\n%s", diff)
	}

	if s := reg.Summary(); !strings.Contains(s, "drag 1/2") {
		t.Errorf("Unexpected summary %q", s)
	}
}
