package config

import (
	_ "embed"
)

//go:embed defaults/mio.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineSection{
			FrameRate:         60,
			MaxFrameDeltaMS:   50,
			StartJumpAttempts: 18,
			JumpAttempts:      6,
			AttachRetryLimit:  50,
		},
		Library: LibrarySection{
			Root:       "~/.mio/games",
			Extensions: []string{".bin", ".mio"},
		},
		Storage: StorageSection{
			DBPath: "~/.mio/mio.db",
		},
		Trace: TraceSection{
			Dir: "~/.mio/traces",
		},
		Stream: StreamSection{
			Address: ":8765",
		},
		SSH: SSHSection{
			Address:            ":23234",
			HostKey:            "~/.mio/ssh_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
		Log: LogSection{
			Level: "info",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
