package snake

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// MoveOutcome is the typed result of a single move.
type MoveOutcome int

const (
	Idle     MoveOutcome = iota // Snake was already dead
	Moved                       // Entered an empty cell
	AteApple                    // Entered the apple cell
	Died                        // Hit a border or a snake body
)

func (o MoveOutcome) String() string {
	switch o {
	case Idle:
		return "idle"
	case Moved:
		return "moved"
	case AteApple:
		return "ate_apple"
	case Died:
		return "died"
	default:
		return "unknown"
	}
}

// Snake is one player's segment chain on a shared grid.
type Snake struct {
	id   core.PlayerID
	grid *Grid

	segments []Coord // Head at index 0
	dir      Direction
	next     Direction // Buffered direction for the next tick
	alive    bool
	growing  bool // Append a tail segment on the next move

	moves         []Direction
	spawn         Coord
	initialLength int
}

// NewSnake creates a dead snake bound to grid. Call Respawn to place it.
func NewSnake(id core.PlayerID, grid *Grid) *Snake {
	return &Snake{id: id, grid: grid}
}

// Respawn resets the snake at pos with length segments laid out behind the head.
// A head in the left half faces right, otherwise it faces left.
func (s *Snake) Respawn(pos Coord, length int) error {
	if length < 1 {
		return fmt.Errorf("snake: respawn length %d", length)
	}

	facing := spawnFacing(s.grid.Width(), pos)
	for i := range length {
		c := Coord{X: pos.X - i*deltaX(facing), Y: pos.Y}
		if !s.grid.IsInterior(c) {
			return fmt.Errorf("respawn player %d at %v: %w", s.id, pos, ErrOutOfBounds)
		}
	}

	if s.alive {
		s.clear()
	}
	s.segments = s.segments[:0]
	s.dir = facing
	s.next = facing
	s.growing = false
	s.moves = nil
	s.spawn = pos
	s.initialLength = length
	s.alive = true

	for i := range length {
		if err := s.AddSegment(Coord{X: pos.X - i*deltaX(facing), Y: pos.Y}); err != nil {
			return err
		}
	}
	return nil
}

// spawnFacing returns the inward heading for a head at pos.
func spawnFacing(width int, pos Coord) Direction {
	if pos.X <= width/2 {
		return DirRight
	}
	return DirLeft
}

func deltaX(d Direction) int {
	dx, _ := d.Delta()
	return dx
}

// AddSegment appends a tail segment at c and marks the cell as snake body.
func (s *Snake) AddSegment(c Coord) error {
	if err := s.grid.SetContent(c, SnakeBody); err != nil {
		return err
	}
	s.segments = append(s.segments, c)
	return nil
}

// ChangeDirection buffers a heading for the next tick.
// The exact reverse of the committed heading is ignored.
func (s *Snake) ChangeDirection(d Direction) {
	if !d.Valid() || d == s.dir.Opposite() {
		return
	}
	s.next = d
}

// Tick moves the snake in its buffered direction and logs the move.
func (s *Snake) Tick() (MoveOutcome, error) {
	if !s.alive {
		return Idle, nil
	}
	s.moves = append(s.moves, s.next)
	return s.Move(s.next)
}

// Move advances the snake one cell in direction d.
// Collisions are resolved before anything on the board changes.
func (s *Snake) Move(d Direction) (MoveOutcome, error) {
	if !s.alive {
		return Idle, nil
	}
	if !d.Valid() {
		return Idle, fmt.Errorf("snake: player %d move %v", s.id, d)
	}

	target := s.Head().Step(d)
	content, err := s.grid.TileAt(target)
	if err != nil {
		return Idle, err
	}

	switch content {
	case SnakeBody, Border:
		s.die()
		return Died, nil
	}

	s.dir = d
	s.next = d
	grow := s.growing
	s.growing = false

	last := len(s.segments) - 1
	vacated := s.segments[last]
	copy(s.segments[1:], s.segments[:last])
	s.segments[0] = target
	if err := s.grid.SetContent(target, SnakeBody); err != nil {
		return Idle, err
	}

	if grow {
		s.segments = append(s.segments, vacated)
	} else if err := s.grid.SetContent(vacated, Empty); err != nil {
		return Idle, err
	}

	if content == Apple {
		s.growing = true
		return AteApple, nil
	}
	return Moved, nil
}

// die clears every owned cell and marks the snake dead.
func (s *Snake) die() {
	s.clear()
	s.segments = s.segments[:0]
	s.alive = false
	s.growing = false
}

func (s *Snake) clear() {
	for _, c := range s.segments {
		_ = s.grid.SetContent(c, Empty)
	}
}

// ID returns the owning player.
func (s *Snake) ID() core.PlayerID {
	return s.id
}

// Alive reports whether the snake is still on the board.
func (s *Snake) Alive() bool {
	return s.alive
}

// Head returns the head cell. It is the zero Coord for a dead snake.
func (s *Snake) Head() Coord {
	if len(s.segments) == 0 {
		return Coord{}
	}
	return s.segments[0]
}

// Len returns the segment count.
func (s *Snake) Len() int {
	return len(s.segments)
}

// Segments returns a copy of the chain, head first.
func (s *Snake) Segments() []Coord {
	out := make([]Coord, len(s.segments))
	copy(out, s.segments)
	return out
}

// Direction returns the committed heading.
func (s *Snake) Direction() Direction {
	return s.dir
}

// Growing reports whether the next move appends a segment.
func (s *Snake) Growing() bool {
	return s.growing
}

// Moves returns a copy of the move log.
func (s *Snake) Moves() []Direction {
	out := make([]Direction, len(s.moves))
	copy(out, s.moves)
	return out
}

// Spawn returns the head position of the last respawn.
func (s *Snake) Spawn() Coord {
	return s.spawn
}

// InitialLength returns the length of the last respawn.
func (s *Snake) InitialLength() int {
	return s.initialLength
}

// View returns a read-only copy for presenters.
func (s *Snake) View() SnakeView {
	return SnakeView{
		ID:        s.id,
		Segments:  s.Segments(),
		Direction: s.dir,
		Alive:     s.alive,
	}
}

// SnakeView is a detached copy of a snake's visible state.
type SnakeView struct {
	ID        core.PlayerID
	Segments  []Coord
	Direction Direction
	Alive     bool
}

// Len returns the segment count.
func (v SnakeView) Len() int {
	return len(v.Segments)
}
