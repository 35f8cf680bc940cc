package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/splitflap/constants"
	"github.com/lixenwraith/splitflap/engine"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveNoise
)

// oscillator generates a fixed-length raw wave
type oscillator struct {
	freq     float64
	phase    float64
	length   int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a wave generator lasting duration
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:   freq,
		length: rate.N(duration),
		wave:   wave,
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.length {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope shapes a stream with a linear attack and release
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

// NewEnvelope wraps s with attack/release ramps over duration
// Attack and release longer than duration are scaled down to fit
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total && att+rel > 0 {
		att = total * att / (att + rel)
		rel = total - att
	}
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.total {
		return 0, false
	}
	if rest := e.total - e.position; len(samples) > rest {
		samples = samples[:rest]
	}

	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := e.gain(e.position)
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) gain(pos int) float64 {
	if e.attack > 0 && pos < e.attack {
		return float64(pos) / float64(e.attack)
	}
	if start := e.total - e.release; e.release > 0 && pos >= start {
		return float64(e.total-pos) / float64(e.release)
	}
	return 1
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume applies a linear gain; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateFlapSound synthesizes the click of one flap half landing
// A noise burst for the card edge over a short sine thump; the top half
// is pitched higher than the bottom
func CreateFlapSound(phase string, volume float64, rate beep.SampleRate) beep.Streamer {
	freq := constants.FlapThumpBottomHz
	if phase == engine.PhaseTop {
		freq = constants.FlapThumpTopHz
	}

	noise := NewOscillator(0, constants.FlapClickDuration, WaveNoise, rate)
	click := NewEnvelope(noise, constants.FlapClickDuration, constants.FlapClickAttack, constants.FlapClickRelease, rate)

	tone := NewOscillator(freq, constants.FlapThumpDuration, WaveSine, rate)
	thump := NewEnvelope(tone, constants.FlapThumpDuration, constants.FlapClickAttack, constants.FlapThumpRelease, rate)

	mixed := beep.Mix(
		newVolume(click, constants.FlapNoiseMix),
		newVolume(thump, constants.FlapThumpMix),
	)
	return newVolume(beep.Take(rate.N(constants.FlapThumpDuration), mixed), volume)
}
