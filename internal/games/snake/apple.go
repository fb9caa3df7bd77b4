package snake

import (
	"fmt"
	"math/rand"
)

// AppleSpawner owns the single shared apple.
// In live play it samples random empty cells; in replay it follows a recorded script.
type AppleSpawner struct {
	grid        *Grid
	rng         *rand.Rand
	maxAttempts int

	current Coord
	placed  bool
	history []Coord // Placement order, which is also consumption order

	script []Coord
	cursor int
}

// NewAppleSpawner creates a live spawner. maxAttempts bounds random sampling
// before the spawner falls back to scanning the board; 0 means 4 x interior.
func NewAppleSpawner(grid *Grid, rng *rand.Rand, maxAttempts int) *AppleSpawner {
	if maxAttempts <= 0 {
		maxAttempts = 4 * grid.Interior()
	}
	return &AppleSpawner{
		grid:        grid,
		rng:         rng,
		maxAttempts: maxAttempts,
	}
}

// NewAppleReplayer creates a spawner that replays recorded positions in order.
// The script is read through a cursor and never modified.
func NewAppleReplayer(grid *Grid, script []Coord) *AppleSpawner {
	return &AppleSpawner{
		grid:   grid,
		script: script,
	}
}

// SpawnInitial places the first apple on a random empty interior cell.
func (a *AppleSpawner) SpawnInitial() (Coord, error) {
	return a.place()
}

// Relocate places the next apple after a consumption.
// The previous cell is left alone since the consuming head already overwrote it.
func (a *AppleSpawner) Relocate() (Coord, error) {
	return a.place()
}

func (a *AppleSpawner) place() (Coord, error) {
	c, err := randomEmpty(a.grid, a.rng, a.maxAttempts)
	if err != nil {
		return Coord{}, fmt.Errorf("place apple: %w", err)
	}
	if err := a.grid.SetContent(c, Apple); err != nil {
		return Coord{}, err
	}
	a.current = c
	a.placed = true
	a.history = append(a.history, c)
	return c, nil
}

// ReplayNext places the next recorded apple. The previous apple cell is cleared
// only when it still holds an apple.
func (a *AppleSpawner) ReplayNext() (Coord, error) {
	if a.cursor >= len(a.script) {
		return Coord{}, fmt.Errorf("replay apple %d of %d: %w", a.cursor+1, len(a.script), ErrHistoryExhausted)
	}

	if a.placed {
		content, err := a.grid.TileAt(a.current)
		if err != nil {
			return Coord{}, err
		}
		if content == Apple {
			if err := a.grid.SetContent(a.current, Empty); err != nil {
				return Coord{}, err
			}
		}
	}

	c := a.script[a.cursor]
	a.cursor++
	if err := a.grid.SetContent(c, Apple); err != nil {
		return Coord{}, err
	}
	a.current = c
	a.placed = true
	a.history = append(a.history, c)
	return c, nil
}

// Current returns the apple position, if one has been placed.
func (a *AppleSpawner) Current() (Coord, bool) {
	return a.current, a.placed
}

// History returns a copy of every placement so far.
func (a *AppleSpawner) History() []Coord {
	out := make([]Coord, len(a.history))
	copy(out, a.history)
	return out
}

// Remaining returns how many recorded placements are left in replay mode.
func (a *AppleSpawner) Remaining() int {
	return len(a.script) - a.cursor
}

// randomEmpty samples interior cells until an Empty one is found.
// After maxAttempts misses it picks uniformly among the Empty cells left.
func randomEmpty(g *Grid, rng *rand.Rand, maxAttempts int) (Coord, error) {
	for range maxAttempts {
		c := Coord{
			X: 1 + rng.Intn(g.Width()-2),
			Y: 1 + rng.Intn(g.Height()-2),
		}
		if content, _ := g.TileAt(c); content == Empty {
			return c, nil
		}
	}

	free := g.EmptyCells()
	if len(free) == 0 {
		return Coord{}, ErrNoEmptyTile
	}
	return free[rng.Intn(len(free))], nil
}
