// Package config provides YAML-based configuration loading for the player,
// the save library and the servers.
package config

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/mio-arcade/internal/engine"
)

// Config is the full application configuration.
type Config struct {
	Engine  EngineSection  `yaml:"engine"`
	Library LibrarySection `yaml:"library"`
	Storage StorageSection `yaml:"storage"`
	Trace   TraceSection   `yaml:"trace"`
	Stream  StreamSection  `yaml:"stream"`
	SSH     SSHSection     `yaml:"ssh"`
	Log     LogSection     `yaml:"log"`
}

// EngineSection tunes the simulation clock and placement retries.
type EngineSection struct {
	FrameRate         int  `yaml:"frame_rate"`
	MaxFrameDeltaMS   int  `yaml:"max_frame_delta_ms"`
	StartJumpAttempts int  `yaml:"start_jump_attempts"`
	JumpAttempts      int  `yaml:"jump_attempts"`
	AttachRetryLimit  int  `yaml:"attach_retry_limit"`
	Infinite          bool `yaml:"infinite"`
}

// LibrarySection points at the directory scanned for save files.
type LibrarySection struct {
	Root       string   `yaml:"root"`
	Extensions []string `yaml:"extensions"`
}

// StorageSection locates the SQLite database.
type StorageSection struct {
	DBPath string `yaml:"db_path"`
}

// TraceSection controls per-frame trace recording.
type TraceSection struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// StreamSection configures the websocket event stream.
type StreamSection struct {
	Address string `yaml:"address"`
}

// SSHSection configures the SSH server.
type SSHSection struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// LogSection sets the default log level.
type LogSection struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// EngineConfig converts the engine section to engine.Config. Zero values are
// left for the engine to default.
func (c Config) EngineConfig() engine.Config {
	return engine.Config{
		FrameRate:         c.Engine.FrameRate,
		MaxFrameDelta:     time.Duration(c.Engine.MaxFrameDeltaMS) * time.Millisecond,
		StartJumpAttempts: c.Engine.StartJumpAttempts,
		JumpAttempts:      c.Engine.JumpAttempts,
		AttachRetryLimit:  c.Engine.AttachRetryLimit,
		Infinite:          c.Engine.Infinite,
	}
}

// IdleTimeout returns the SSH idle timeout.
func (c Config) IdleTimeout() time.Duration {
	return time.Duration(c.SSH.IdleTimeoutMinutes) * time.Minute
}

// LogLevel parses the configured level, falling back to info.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
