package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg := Config{}
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	want := Default()
	if cfg.Engine != want.Engine {
		t.Errorf("engine = %+v, expected %+v", cfg.Engine, want.Engine)
	}
	if cfg.SSH != want.SSH || cfg.Stream != want.Stream || cfg.Storage != want.Storage {
		t.Errorf("server sections differ from Default()")
	}
	if len(cfg.Library.Extensions) != 2 {
		t.Errorf("expected 2 library extensions, got %v", cfg.Library.Extensions)
	}
}

func TestLoadCustomPathOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mio.yaml")
	data := []byte("engine:\n  frame_rate: 30\n  infinite: true\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Engine.FrameRate != 30 || !cfg.Engine.Infinite {
		t.Errorf("expected overridden engine section, got %+v", cfg.Engine)
	}
	if cfg.Engine.JumpAttempts != 6 {
		t.Errorf("expected untouched keys to keep defaults, got %d", cfg.Engine.JumpAttempts)
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v, expected debug", cfg.LogLevel())
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("engine: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Default()
	ec := cfg.EngineConfig()
	if ec.FrameRate != 60 || ec.MaxFrameDelta != 50*time.Millisecond {
		t.Errorf("unexpected clock settings %+v", ec)
	}
	if ec.StartJumpAttempts != 18 || ec.JumpAttempts != 6 || ec.AttachRetryLimit != 50 {
		t.Errorf("unexpected retry settings %+v", ec)
	}
	if cfg.IdleTimeout() != 30*time.Minute {
		t.Errorf("IdleTimeout() = %v, expected 30m", cfg.IdleTimeout())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in, want string
	}{
		{"~/.mio/mio.db", filepath.Join(home, ".mio/mio.db")},
		{"/tmp/x", "/tmp/x"},
		{"~user/x", "~user/x"},
		{"rel/x", "rel/x"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestInvalidLogLevelFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("expected info level, got %v", cfg.LogLevel())
	}
}
