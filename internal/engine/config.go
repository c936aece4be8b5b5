// Package engine simulates a decoded microgame one frame at a time: it
// evaluates triggers, applies the collected actions, moves objects along
// their travel queues and resolves the win/loss status.
package engine

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/collision"
)

// Engine constants that are not configurable.
const (
	CanvasWidth  = 192
	CanvasHeight = 128

	// QuarterFrames is the length of one half-second game tick in frames.
	QuarterFrames = 15
	// BossEndInterval is the frame boundary a concluded boss game ends on.
	BossEndInterval = 240

	insectTurnProbability = 0.05
)

// Config controls the simulation and the player clock.
type Config struct {
	FrameRate         int           // Frames per second
	MaxFrameDelta     time.Duration // Clamp for one clock delta
	StartJumpAttempts int           // Placement attempts before the game starts
	JumpAttempts      int           // Placement attempts during the game
	AttachRetryLimit  int           // Passes used to resolve start attachments
	Infinite          bool          // Keep playing past the timer
	Seed              int64         // RNG seed for deterministic runs

	// Rasterizer renders collision frames. Nil uses the script's sprite sheet.
	Rasterizer collision.Rasterizer
	// Logger receives diagnostics. Nil discards them.
	Logger *log.Logger
}

// DefaultConfig returns the device timings.
func DefaultConfig() Config {
	return Config{
		FrameRate:         60,
		MaxFrameDelta:     50 * time.Millisecond,
		StartJumpAttempts: 18,
		JumpAttempts:      6,
		AttachRetryLimit:  50,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	if c.MaxFrameDelta <= 0 {
		c.MaxFrameDelta = d.MaxFrameDelta
	}
	if c.StartJumpAttempts <= 0 {
		c.StartJumpAttempts = d.StartJumpAttempts
	}
	if c.JumpAttempts <= 0 {
		c.JumpAttempts = d.JumpAttempts
	}
	if c.AttachRetryLimit <= 0 {
		c.AttachRetryLimit = d.AttachRetryLimit
	}
	if c.Logger == nil {
		c.Logger = log.New(io.Discard)
	}
	return c
}
