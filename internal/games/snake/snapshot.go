package snake

// Snapshot is a detached copy of everything a renderer needs.
type Snapshot struct {
	State     State
	Turn      int
	Width     int
	Height    int
	Cells     []Content // Row-major, nil before the board exists
	Apple     Coord
	HasApple  bool
	Snakes    []SnakeView
	Countdown int // Seconds left while counting down
	Apples    int
	Outcome   Outcome
	Replaying bool // The board shown is the replay board
}

// TileAt returns the content at (x, y), Empty when outside the board.
func (s Snapshot) TileAt(x, y int) Content {
	if x < 0 || y < 0 || x >= s.Width || y >= s.Height || s.Cells == nil {
		return Empty
	}
	return s.Cells[y*s.Width+x]
}

// Snapshot returns a read-only copy of the board being shown.
func (m *Match) Snapshot() Snapshot {
	snap := Snapshot{
		State:     m.state,
		Turn:      m.turn,
		Width:     m.cfg.Board.Width,
		Height:    m.cfg.Board.Height,
		Countdown: m.lastCountdown,
		Apples:    m.eaten,
		Outcome:   m.outcome,
	}
	if snap.Countdown < 0 {
		snap.Countdown = 0
	}

	switch {
	case m.showReplay && m.replay != nil:
		snap.Replaying = true
		snap.Turn = m.replay.Turn()
		snap.Cells = m.replay.Grid().Cells()
		snap.Snakes = m.replay.Snakes()
		snap.Apple, snap.HasApple = m.replay.Apple()
	case m.grid != nil:
		snap.Cells = m.grid.Cells()
		snap.Snakes = views(m.snakes)
		snap.Apple, snap.HasApple = m.apples.Current()
	}
	return snap
}
