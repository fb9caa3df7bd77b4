package snake

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// Recording is everything needed to re-run a finished match.
type Recording struct {
	Width         int
	Height        int
	InitialLength int
	TurnDuration  time.Duration
	Players       []PlayerRecord
	Apples        []Coord // Placement order
	TotalTurns    int
}

// PlayerRecord is one roster slot of a recording.
type PlayerRecord struct {
	ID    core.PlayerID
	Spawn Coord
	Moves []Direction // One entry per turn the player started alive
}

// Replay re-executes a Recording against a fresh grid and fresh snakes.
type Replay struct {
	rec    Recording
	grid   *Grid
	snakes []*Snake
	moves  map[core.PlayerID][]Direction
	apples *AppleSpawner

	turn      int
	eaten     int
	lastDied  []core.PlayerID
	boardFull bool
	finished  bool
	err       error
}

// NewReplay builds the starting position of rec: snakes respawned at their
// recorded spawns and the first recorded apple placed.
func NewReplay(rec Recording) (*Replay, error) {
	if len(rec.Players) == 0 {
		return nil, errors.New("snake: recording has no players")
	}
	grid, err := NewGrid(rec.Width, rec.Height)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	r := &Replay{
		rec:    rec,
		grid:   grid,
		moves:  make(map[core.PlayerID][]Direction, len(rec.Players)),
		apples: NewAppleReplayer(grid, rec.Apples),
	}
	for _, p := range rec.Players {
		s := NewSnake(p.ID, grid)
		if err := s.Respawn(p.Spawn, rec.InitialLength); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
		r.snakes = append(r.snakes, s)
		r.moves[p.ID] = p.Moves
	}
	if len(rec.Apples) > 0 {
		if _, err := r.apples.ReplayNext(); err != nil {
			return nil, fmt.Errorf("replay: %w", err)
		}
	}
	return r, nil
}

// Step plays the next recorded turn. Each player receives its i-th logged
// move on turn i; players without one stay as they are.
func (r *Replay) Step() (done bool, err error) {
	if r.Done() {
		return true, nil
	}

	i := r.turn
	r.turn++
	rep, err := playRound(r.grid, r.snakes,
		func(s *Snake) (MoveOutcome, error) {
			logged := r.moves[s.ID()]
			if i >= len(logged) {
				return Idle, nil
			}
			return s.Move(logged[i])
		},
		func() error {
			_, err := r.apples.ReplayNext()
			return err
		},
	)
	r.eaten += rep.eaten
	if err != nil {
		r.err = err
		r.finished = true
		return true, fmt.Errorf("replay turn %d: %w", r.turn, err)
	}
	if len(rep.died) > 0 {
		r.lastDied = rep.died
	}
	if rep.boardFull {
		r.boardFull = true
		r.finished = true
	}
	if aliveCount(r.snakes) == 0 {
		r.finished = true
	}
	return r.Done(), nil
}

// Done reports whether the replay reached the recorded turn count or a terminal position.
func (r *Replay) Done() bool {
	return r.finished || r.turn >= r.rec.TotalTurns
}

// Outcome recomputes the result from the replayed position.
func (r *Replay) Outcome() Outcome {
	o := Outcome{
		Players: len(r.snakes),
		Turns:   r.turn,
		Apples:  r.eaten,
		Lengths: lengths(r.snakes),
	}
	switch {
	case r.err != nil:
		o.Reason = ReasonAborted
		o.Err = r.err.Error()
	case r.boardFull:
		o.Reason = ReasonBoardFull
	case aliveCount(r.snakes) == 0:
		o.Reason = ReasonEliminated
		o.Winner = decideWinner(len(r.snakes), r.lastDied)
	case r.Done():
		o.Reason = ReasonAborted
	}
	return o
}

// Turn returns the number of turns replayed so far.
func (r *Replay) Turn() int {
	return r.turn
}

// Grid returns the replay board.
func (r *Replay) Grid() *Grid {
	return r.grid
}

// Snakes returns views of the replayed snakes in roster order.
func (r *Replay) Snakes() []SnakeView {
	return views(r.snakes)
}

// Apple returns the current apple position.
func (r *Replay) Apple() (Coord, bool) {
	return r.apples.Current()
}

// roundReport summarises one turn.
type roundReport struct {
	died      []core.PlayerID
	eaten     int
	boardFull bool
}

// playRound moves every living snake once in roster order. A head entering a
// cell another head took earlier in the same turn dies. The turn stops as soon
// as the board fills up.
func playRound(grid *Grid, snakes []*Snake, move func(*Snake) (MoveOutcome, error), nextApple func() error) (roundReport, error) {
	var rep roundReport
	for _, s := range snakes {
		if !s.Alive() {
			continue
		}
		out, err := move(s)
		if err != nil {
			return rep, fmt.Errorf("player %d: %w", s.ID(), err)
		}
		switch out {
		case Died:
			rep.died = append(rep.died, s.ID())
		case AteApple:
			rep.eaten++
			if grid.Filled() {
				rep.boardFull = true
				return rep, nil
			}
			if err := nextApple(); err != nil {
				return rep, err
			}
		}
	}
	return rep, nil
}

func aliveCount(snakes []*Snake) int {
	n := 0
	for _, s := range snakes {
		if s.Alive() {
			n++
		}
	}
	return n
}

func lengths(snakes []*Snake) map[core.PlayerID]int {
	out := make(map[core.PlayerID]int, len(snakes))
	for _, s := range snakes {
		out[s.ID()] = s.Len()
	}
	return out
}

func views(snakes []*Snake) []SnakeView {
	out := make([]SnakeView, len(snakes))
	for i, s := range snakes {
		out[i] = s.View()
	}
	return out
}
