package constants

import "time"

// Audio output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap is the minimum gap between two clicks of the same tile half
	MinSoundGap = 25 * time.Millisecond
)

// Flap click timing
const (
	FlapClickDuration = 45 * time.Millisecond
	FlapClickAttack   = 2 * time.Millisecond
	FlapClickRelease  = 35 * time.Millisecond

	FlapThumpDuration = 60 * time.Millisecond
	FlapThumpRelease  = 50 * time.Millisecond
)

// Flap click tone, the landing half sounds lower than the release
const (
	FlapThumpTopHz    = 220.0
	FlapThumpBottomHz = 140.0
	FlapNoiseMix      = 0.6
	FlapThumpMix      = 0.4
)
