package constants

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps the dt fed to the animation clock after a stall
	// so a suspended process does not skip a whole flip in one frame
	MaxFrameDelta = 100 * time.Millisecond

	// EventChannelSize is the buffer between the input poller and the main loop
	EventChannelSize = 256
)

// Flip Animation
const (
	// DefaultAnimationDuration is the full flip duration for Next/Previous
	DefaultAnimationDuration = 400 * time.Millisecond

	// MaxShadowAlpha is the peak shadow intensity cast on a static half-tile
	MaxShadowAlpha = 0.4

	// FlapShadowFactor scales MaxShadowAlpha for the shadow on the moving flap
	FlapShadowFactor = 0.5

	// CommitThreshold is the total drag progress past which a released drag
	// finishes both flap halves concurrently
	CommitThreshold = 0.5

	// FlapAngleDegrees is the rotation of one flap half in degrees
	FlapAngleDegrees = 90.0
)
