package snake

import "errors"

// Sentinel errors reported by the simulation. Callers match them with errors.Is.
var (
	// ErrOutOfBounds is returned for coordinates outside the allocated grid.
	ErrOutOfBounds = errors.New("snake: coordinate out of bounds")

	// ErrBorderImmutable is returned for writes to the border ring.
	ErrBorderImmutable = errors.New("snake: border cell is immutable")

	// ErrHistoryExhausted is returned when a replay asks for more apples than were recorded.
	ErrHistoryExhausted = errors.New("snake: apple history exhausted")

	// ErrNoEmptyTile is returned when no free cell is left for an apple or a spawn.
	ErrNoEmptyTile = errors.New("snake: no empty tile")

	// ErrInvalidSize is returned for grids smaller than 3x3.
	ErrInvalidSize = errors.New("snake: invalid grid size")

	// ErrInvalidState is returned when a match operation is not allowed in the current state.
	ErrInvalidState = errors.New("snake: invalid match state")
)
