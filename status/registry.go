package status

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/lixenwraith/splitflap/engine"
)

// Metric keys
const (
	FlipsNext        = "flips.next"
	FlipsPrevious    = "flips.previous"
	FlipsRejected    = "flips.rejected"
	FlipsCompleted   = "flips.completed"
	DragsCommitted   = "drags.committed"
	DragsUncommitted = "drags.uncommitted"
	DragsIgnored     = "drags.ignored"
	FrameMillis      = "frame.ms"
)

// Registry is the metrics facade shared by the tiles and the status line
// Writers cache metric pointers once; updates go straight to the atomics
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[AtomicFloat]
}

// NewRegistry creates a Registry with the flip counters registered at zero
func NewRegistry() *Registry {
	r := &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[AtomicFloat](),
	}
	for _, k := range []string{FlipsNext, FlipsPrevious, FlipsRejected, FlipsCompleted, DragsCommitted, DragsUncommitted, DragsIgnored} {
		r.Ints.Get(k)
	}
	return r
}

// Int returns the current value of an integer metric
func (r *Registry) Int(key string) int64 {
	return r.Ints.Get(key).Load()
}

// TotalCount returns the number of registered metrics
func (r *Registry) TotalCount() int {
	return r.Ints.Count() + r.Floats.Count()
}

// Summary formats the flip counters for a one-line display
func (r *Registry) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "next %d  prev %d  busy %d  drag %d/%d",
		r.Int(FlipsNext), r.Int(FlipsPrevious), r.Int(FlipsRejected),
		r.Int(DragsCommitted), r.Int(DragsCommitted)+r.Int(DragsUncommitted))
	if r.Floats.Has(FrameMillis) {
		fmt.Fprintf(&b, "  %.1fms", r.Floats.Get(FrameMillis).Get())
	}
	return b.String()
}

// Listener returns an engine listener that counts sequencer events
// One listener may be shared by any number of sequencers
func (r *Registry) Listener() engine.Listener {
	next := r.Ints.Get(FlipsNext)
	prev := r.Ints.Get(FlipsPrevious)
	rejected := r.Ints.Get(FlipsRejected)
	completed := r.Ints.Get(FlipsCompleted)
	committed := r.Ints.Get(DragsCommitted)
	uncommitted := r.Ints.Get(DragsUncommitted)
	ignored := r.Ints.Get(DragsIgnored)

	return func(ev engine.Event) {
		switch ev.Type {
		case engine.EventTransitionArmed, engine.EventTokenChanged:
			if ev.Direction == engine.Forward {
				next.Add(1)
			} else {
				prev.Add(1)
			}
		case engine.EventRejected:
			rejected.Add(1)
		case engine.EventTransitionCompleted:
			completed.Add(1)
		case engine.EventDragReleased:
			if ev.Committed {
				committed.Add(1)
			} else {
				uncommitted.Add(1)
			}
		case engine.EventDragIgnored:
			ignored.Add(1)
		}
	}
}
