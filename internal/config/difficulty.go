package config

import (
	"fmt"
	"time"
)

// DifficultyPreset represents a named difficulty level.
// Presets pick a fixed turn duration; the rate never changes mid-match.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// TurnDurationForPreset returns the turn duration of a preset.
func TurnDurationForPreset(preset DifficultyPreset) (time.Duration, error) {
	switch preset {
	case DifficultyEasy:
		return 350 * time.Millisecond, nil
	case DifficultyNormal:
		return 250 * time.Millisecond, nil
	case DifficultyHard:
		return 120 * time.Millisecond, nil
	default:
		return 0, fmt.Errorf("config: unknown difficulty %q", preset)
	}
}

// ApplySnakePreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplySnakePreset(cfg *SnakeConfig, preset DifficultyPreset) error {
	if preset == "" {
		return nil
	}
	d, err := TurnDurationForPreset(preset)
	if err != nil {
		return err
	}
	cfg.TurnDuration = d
	return nil
}
