package snake

import (
	"testing"
)

func newTestSnake(t *testing.T, w, h int, pos Coord, length int) (*Grid, *Snake) {
	t.Helper()
	g, err := NewGrid(w, h)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	s := NewSnake(1, g)
	if err := s.Respawn(pos, length); err != nil {
		t.Fatalf("Respawn failed: %v", err)
	}
	return g, s
}

// assertChain checks that segments form a connected orthogonal path without repeats.
func assertChain(t *testing.T, s *Snake) {
	t.Helper()
	segs := s.Segments()
	seen := make(map[Coord]bool, len(segs))
	for i, c := range segs {
		if seen[c] {
			t.Fatalf("duplicate segment %v in %v", c, segs)
		}
		seen[c] = true
		if i > 0 && !c.Adjacent(segs[i-1]) {
			t.Fatalf("segments %v and %v are not adjacent in %v", segs[i-1], c, segs)
		}
	}
}

func TestThreeMovesRightVacatesSpawn(t *testing.T) {
	g, s := newTestSnake(t, 10, 15, Coord{X: 4, Y: 5}, 3)

	if s.Direction() != DirRight {
		t.Fatalf("snake in left half should face right, got %v", s.Direction())
	}

	for i := range 3 {
		out, err := s.Move(DirRight)
		if err != nil || out != Moved {
			t.Fatalf("move %d = %v, %v; expected moved", i+1, out, err)
		}
	}

	if s.Head() != (Coord{X: 7, Y: 5}) {
		t.Errorf("head = %v, expected (7,5)", s.Head())
	}
	for _, c := range []Coord{{2, 5}, {3, 5}, {4, 5}} {
		if got, _ := g.TileAt(c); got != Empty {
			t.Errorf("vacated cell %v = %v, expected empty", c, got)
		}
	}
	for _, c := range []Coord{{5, 5}, {6, 5}, {7, 5}} {
		if got, _ := g.TileAt(c); got != SnakeBody {
			t.Errorf("cell %v = %v, expected snake", c, got)
		}
	}
}

func TestRespawnFacesInward(t *testing.T) {
	g, _ := NewGrid(10, 15)

	s := NewSnake(2, g)
	if err := s.Respawn(Coord{X: 6, Y: 3}, 3); err != nil {
		t.Fatalf("Respawn failed: %v", err)
	}
	if s.Direction() != DirLeft {
		t.Errorf("snake in right half should face left, got %v", s.Direction())
	}
	expected := []Coord{{6, 3}, {7, 3}, {8, 3}}
	for i, c := range s.Segments() {
		if c != expected[i] {
			t.Errorf("segment %d = %v, expected %v", i, c, expected[i])
		}
	}

	// Body would reach the border column
	if err := NewSnake(3, g).Respawn(Coord{X: 7, Y: 3}, 3); err == nil {
		t.Error("expected error when the body does not fit")
	}
}

func TestGrowthIsDeferredByOneMove(t *testing.T) {
	g, s := newTestSnake(t, 10, 15, Coord{X: 4, Y: 5}, 3)
	_ = g.SetContent(Coord{X: 5, Y: 5}, Apple)

	out, err := s.Move(DirRight)
	if err != nil || out != AteApple {
		t.Fatalf("Move onto apple = %v, %v; expected ate_apple", out, err)
	}
	if s.Len() != 3 {
		t.Errorf("length right after eating = %d, expected 3", s.Len())
	}
	if !s.Growing() {
		t.Error("growth should be pending after eating")
	}

	out, _ = s.Move(DirRight)
	if out != Moved {
		t.Fatalf("second move = %v, expected moved", out)
	}
	if s.Len() != 4 {
		t.Errorf("length after the following move = %d, expected 4", s.Len())
	}
	if s.Growing() {
		t.Error("growth flag should be consumed")
	}
	if got, _ := g.TileAt(Coord{X: 3, Y: 5}); got != SnakeBody {
		t.Errorf("growth segment cell = %v, expected snake", got)
	}
	assertChain(t, s)

	s.Move(DirRight)
	if s.Len() != 4 {
		t.Errorf("length should not change without apples, got %d", s.Len())
	}
}

func TestChainStaysConnected(t *testing.T) {
	g, s := newTestSnake(t, 20, 20, Coord{X: 5, Y: 5}, 4)

	path := []Direction{
		DirRight, DirRight, DirDown, DirDown, DirDown, DirLeft, DirLeft,
		DirDown, DirRight, DirRight, DirRight, DirRight, DirUp, DirUp,
	}
	// Apples along the way make the snake grow while turning
	for _, c := range []Coord{{6, 5}, {7, 6}, {7, 8}, {6, 9}, {8, 9}} {
		_ = g.SetContent(c, Apple)
	}

	expectedLen := 4
	pending := false
	for i, d := range path {
		out, err := s.Move(d)
		if err != nil {
			t.Fatalf("move %d failed: %v", i, err)
		}
		if out == Died {
			t.Fatalf("move %d: unexpected death at %v", i, s.Head())
		}
		if pending {
			expectedLen++
		}
		pending = out == AteApple
		if s.Len() != expectedLen {
			t.Fatalf("move %d: length %d, expected %d", i, s.Len(), expectedLen)
		}
		assertChain(t, s)
	}
}

func TestBorderCollisionClearsSnake(t *testing.T) {
	g, s := newTestSnake(t, 10, 15, Coord{X: 4, Y: 5}, 3)

	for i := range 4 {
		if out, _ := s.Move(DirUp); out != Moved {
			t.Fatalf("move %d = %v, expected moved", i+1, out)
		}
	}
	out, err := s.Move(DirUp)
	if err != nil || out != Died {
		t.Fatalf("move into border = %v, %v; expected died", out, err)
	}
	if s.Alive() || s.Len() != 0 {
		t.Errorf("dead snake: alive=%v len=%d", s.Alive(), s.Len())
	}

	g.Each(func(c Coord, content Content) {
		if content == SnakeBody {
			t.Errorf("cell %v still holds a snake after death", c)
		}
	})

	if out, _ := s.Move(DirDown); out != Idle {
		t.Errorf("move of dead snake = %v, expected idle", out)
	}
}

func TestSelfCollisionClearsSnake(t *testing.T) {
	g, s := newTestSnake(t, 10, 15, Coord{X: 5, Y: 5}, 5)

	s.Move(DirDown)
	s.Move(DirLeft)
	out, _ := s.Move(DirUp)
	if out != Died {
		t.Fatalf("move into own body = %v, expected died", out)
	}

	g.Each(func(c Coord, content Content) {
		if content == SnakeBody {
			t.Errorf("cell %v still holds a snake after death", c)
		}
	})
}

func TestCollisionWithOtherSnake(t *testing.T) {
	g, a := newTestSnake(t, 15, 10, Coord{X: 3, Y: 3}, 3)
	b := NewSnake(2, g)
	if err := b.Respawn(Coord{X: 3, Y: 4}, 3); err != nil {
		t.Fatalf("Respawn failed: %v", err)
	}

	out, _ := b.Move(DirUp)
	if out != Died {
		t.Fatalf("b moved into a's body: %v, expected died", out)
	}
	if a.Len() != 3 || !a.Alive() {
		t.Error("victim of a collision must be untouched")
	}
	for _, c := range a.Segments() {
		if got, _ := g.TileAt(c); got != SnakeBody {
			t.Errorf("a's cell %v = %v after b died", c, got)
		}
	}
}

func TestChangeDirectionIgnoresReverse(t *testing.T) {
	_, s := newTestSnake(t, 10, 15, Coord{X: 4, Y: 5}, 3)

	s.ChangeDirection(DirLeft)
	s.Tick()
	if s.Head() != (Coord{X: 5, Y: 5}) {
		t.Errorf("reverse request should be ignored, head = %v", s.Head())
	}

	s.ChangeDirection(DirDown)
	if s.Direction() != DirRight {
		t.Error("direction change must not apply before the next move")
	}
	s.Tick()
	if s.Head() != (Coord{X: 5, Y: 6}) {
		t.Errorf("head = %v, expected (5,6)", s.Head())
	}

	// Up is the reverse of the committed heading now
	s.ChangeDirection(DirUp)
	s.Tick()
	if s.Head() != (Coord{X: 5, Y: 7}) {
		t.Errorf("head = %v, expected (5,7)", s.Head())
	}
}

func TestTickLogsEveryMove(t *testing.T) {
	_, s := newTestSnake(t, 10, 15, Coord{X: 4, Y: 5}, 3)

	s.Tick()
	s.ChangeDirection(DirUp)
	for s.Alive() {
		s.Tick()
	}
	s.Tick() // dead, not logged

	moves := s.Moves()
	// One right, then up from y=5 until the border at y=0
	if len(moves) != 6 {
		t.Fatalf("logged %d moves, expected 6: %v", len(moves), moves)
	}
	if moves[0] != DirRight {
		t.Errorf("first move = %v, expected right", moves[0])
	}
	for i, d := range moves[1:] {
		if d != DirUp {
			t.Errorf("move %d = %v, expected up", i+1, d)
		}
	}
}
