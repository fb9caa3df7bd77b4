// Package config provides YAML-based match configuration loading and
// difficulty presets for the snake arena.
package config

import (
	"errors"
	"fmt"
	"time"
)

// SnakeConfig contains all settings of a snake match.
type SnakeConfig struct {
	Board         BoardConfig   `yaml:"board"`
	Players       int           `yaml:"players"`
	InitialLength int           `yaml:"initial_length"`
	TurnDuration  time.Duration `yaml:"turn_duration"`
	Countdown     time.Duration `yaml:"countdown"`
	Apple         AppleConfig   `yaml:"apple"`
}

// BoardConfig defines the grid size, border ring included.
type BoardConfig struct {
	Width  int `yaml:"width"`  // Columns
	Height int `yaml:"height"` // Rows
}

// AppleConfig tunes the random placement search.
type AppleConfig struct {
	// MaxAttempts bounds random sampling before falling back to a full scan.
	// 0 means 4 × interior cells.
	MaxAttempts int `yaml:"max_attempts"`
}

// Interior returns the number of playable cells.
func (b BoardConfig) Interior() int {
	return (b.Width - 2) * (b.Height - 2)
}

// MaxAppleAttempts resolves the effective random sampling ceiling.
func (c SnakeConfig) MaxAppleAttempts() int {
	if c.Apple.MaxAttempts > 0 {
		return c.Apple.MaxAttempts
	}
	return 4 * c.Board.Interior()
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid snake config")

// Validate checks that a match can be built from the config.
func (c SnakeConfig) Validate() error {
	if c.Board.Width < 3 || c.Board.Height < 3 {
		return fmt.Errorf("%w: board %dx%d is smaller than 3x3", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Players < 1 || c.Players > 4 {
		return fmt.Errorf("%w: players must be 1..4, got %d", ErrInvalidConfig, c.Players)
	}
	if c.InitialLength < 1 {
		return fmt.Errorf("%w: initial_length must be positive, got %d", ErrInvalidConfig, c.InitialLength)
	}
	// Spawn columns are drawn from [initial_length, width-initial_length-1).
	if c.Board.Width-c.InitialLength-1 <= c.InitialLength {
		return fmt.Errorf("%w: board width %d leaves no spawn column for length %d",
			ErrInvalidConfig, c.Board.Width, c.InitialLength)
	}
	if c.Players*c.InitialLength >= c.Board.Interior() {
		return fmt.Errorf("%w: %d snakes of length %d do not fit a %dx%d board",
			ErrInvalidConfig, c.Players, c.InitialLength, c.Board.Width, c.Board.Height)
	}
	if c.TurnDuration <= 0 {
		return fmt.Errorf("%w: turn_duration must be positive", ErrInvalidConfig)
	}
	if c.Countdown < 0 {
		return fmt.Errorf("%w: countdown must not be negative", ErrInvalidConfig)
	}
	return nil
}
