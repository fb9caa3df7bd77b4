package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := LoadSnake("")
	if err != nil {
		t.Fatalf("LoadSnake(\"\") failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("embedded config %+v differs from DefaultSnakeConfig() %+v", cfg, DefaultSnakeConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadSnakeCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("board:\n  width: 20\n  height: 12\nplayers: 2\nturn_duration: 100ms\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake(%s) failed: %v", path, err)
	}
	if cfg.Board.Width != 20 || cfg.Board.Height != 12 {
		t.Errorf("board = %dx%d, expected 20x12", cfg.Board.Width, cfg.Board.Height)
	}
	if cfg.Players != 2 {
		t.Errorf("players = %d, expected 2", cfg.Players)
	}
	if cfg.TurnDuration != 100*time.Millisecond {
		t.Errorf("turn_duration = %v, expected 100ms", cfg.TurnDuration)
	}
	// Fields missing from the file keep their defaults
	if cfg.InitialLength != 3 {
		t.Errorf("initial_length = %d, expected default 3", cfg.InitialLength)
	}
}

func TestLoadSnakeMissingCustomPath(t *testing.T) {
	_, err := LoadSnake(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom config")
	}
}

func TestLoadSnakeInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board: [not, a, map"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadSnake(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SnakeConfig)
	}{
		{"tiny board", func(c *SnakeConfig) { c.Board = BoardConfig{Width: 2, Height: 2} }},
		{"no players", func(c *SnakeConfig) { c.Players = 0 }},
		{"too many players", func(c *SnakeConfig) { c.Players = 5 }},
		{"zero length", func(c *SnakeConfig) { c.InitialLength = 0 }},
		{"no spawn column", func(c *SnakeConfig) { c.Board.Width = 7 }},
		{"zero turn", func(c *SnakeConfig) { c.TurnDuration = 0 }},
		{"negative countdown", func(c *SnakeConfig) { c.Countdown = -time.Second }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultSnakeConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestMaxAppleAttempts(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if got := cfg.MaxAppleAttempts(); got != 4*13*8 {
		t.Errorf("MaxAppleAttempts() = %d, expected %d", got, 4*13*8)
	}
	cfg.Apple.MaxAttempts = 7
	if got := cfg.MaxAppleAttempts(); got != 7 {
		t.Errorf("MaxAppleAttempts() = %d, expected 7", got)
	}
}

func TestApplySnakePreset(t *testing.T) {
	cfg := DefaultSnakeConfig()
	if err := ApplySnakePreset(&cfg, DifficultyHard); err != nil {
		t.Fatalf("ApplySnakePreset failed: %v", err)
	}
	if cfg.TurnDuration != 120*time.Millisecond {
		t.Errorf("hard turn duration = %v, expected 120ms", cfg.TurnDuration)
	}

	before := cfg
	if err := ApplySnakePreset(&cfg, ""); err != nil || cfg != before {
		t.Error("empty preset should leave config untouched")
	}

	if err := ApplySnakePreset(&cfg, "insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snake.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake failed: %v", err)
	}
	if cfg != DefaultSnakeConfig() {
		t.Errorf("round trip = %+v, expected defaults", cfg)
	}
}
