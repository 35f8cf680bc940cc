package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/splitflap/constants"
	"github.com/lixenwraith/splitflap/engine"
	"github.com/lixenwraith/splitflap/vmath"
)

const sampleRate = beep.SampleRate(constants.AudioSampleRate)

// SoundManager plays flap clicks through the system speaker
// Every method is safe to call before Initialize or after it failed; the
// demo keeps running silently
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
	volume      float64

	now      func() time.Time
	lastPlay map[string]time.Time
	played   int
}

// NewSoundManager creates a sound manager at the given volume in [0,1]
func NewSoundManager(volume float64) *SoundManager {
	return &SoundManager{
		mixer:    &beep.Mixer{},
		volume:   vmath.Clamp01(volume),
		now:      time.Now,
		lastPlay: make(map[string]time.Time),
	}
}

// Initialize opens the speaker
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(constants.AudioBufferDuration)); err != nil {
		return fmt.Errorf("audio: speaker init: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences the mixer; the speaker stays open
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetMuted toggles output without releasing the speaker
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// Played returns the number of clicks handed to the speaker
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}

// PlayFlap plays the click for a flap half landing
// Clicks of the same half closer than MinSoundGap collapse into one
func (sm *SoundManager) PlayFlap(phase string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || sm.volume <= 0 {
		return
	}

	now := sm.now()
	if last, ok := sm.lastPlay[phase]; ok && now.Sub(last) < constants.MinSoundGap {
		return
	}
	sm.lastPlay[phase] = now

	click := CreateFlapSound(phase, sm.volume, sampleRate)
	speaker.Lock()
	sm.mixer.Add(click)
	speaker.Unlock()
	sm.played++
}

// Listener returns an engine listener clicking on every flap half completion
func (sm *SoundManager) Listener() engine.Listener {
	return func(ev engine.Event) {
		if ev.Type != engine.EventPhaseCompleted {
			return
		}
		if ev.Phase == engine.PhaseTop || ev.Phase == engine.PhaseBottom {
			sm.PlayFlap(ev.Phase)
		}
	}
}
