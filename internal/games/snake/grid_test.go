package snake

import (
	"errors"
	"testing"
)

func TestNewGridRejectsTinySizes(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{0, 0}, {2, 5}, {5, 2}, {-1, 10},
	}
	for _, tc := range tests {
		if _, err := NewGrid(tc.w, tc.h); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewGrid(%d, %d) error = %v, expected ErrInvalidSize", tc.w, tc.h, err)
		}
	}
}

func TestNewGridStampsBorder(t *testing.T) {
	g, err := NewGrid(10, 15)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if g.Interior() != 8*13 {
		t.Errorf("Interior() = %d, expected %d", g.Interior(), 8*13)
	}

	g.Each(func(c Coord, content Content) {
		expected := Empty
		if c.X == 0 || c.Y == 0 || c.X == 9 || c.Y == 14 {
			expected = Border
		}
		if content != expected {
			t.Errorf("cell %v = %v, expected %v", c, content, expected)
		}
	})
}

func TestSetContentThenTileAt(t *testing.T) {
	g, _ := NewGrid(6, 5)

	for _, content := range []Content{SnakeBody, Apple, Empty, SnakeBody} {
		for y := 1; y < 4; y++ {
			for x := 1; x < 5; x++ {
				c := Coord{X: x, Y: y}
				if err := g.SetContent(c, content); err != nil {
					t.Fatalf("SetContent(%v) failed: %v", c, err)
				}
				got, err := g.TileAt(c)
				if err != nil || got != content {
					t.Errorf("TileAt(%v) = %v, %v; expected %v", c, got, err, content)
				}
			}
		}
	}
}

func TestBorderCellsAreImmutable(t *testing.T) {
	g, _ := NewGrid(5, 4)

	var border []Coord
	g.Each(func(c Coord, content Content) {
		if content == Border {
			border = append(border, c)
		}
	})
	if len(border) != 2*5+2*2 {
		t.Fatalf("found %d border cells, expected 14", len(border))
	}

	for _, c := range border {
		for _, content := range []Content{Empty, SnakeBody, Apple} {
			if err := g.SetContent(c, content); !errors.Is(err, ErrBorderImmutable) {
				t.Errorf("SetContent(%v) on border error = %v, expected ErrBorderImmutable", c, err)
			}
		}
	}
	_ = g.SetContent(Coord{X: 2, Y: 2}, SnakeBody)

	for _, c := range border {
		if got, _ := g.TileAt(c); got != Border {
			t.Errorf("border cell %v changed to %v", c, got)
		}
	}
}

func TestOutOfBounds(t *testing.T) {
	g, _ := NewGrid(5, 5)

	for _, c := range []Coord{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {7, 7}} {
		if _, err := g.TileAt(c); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("TileAt(%v) error = %v, expected ErrOutOfBounds", c, err)
		}
		if err := g.SetContent(c, Apple); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("SetContent(%v) error = %v, expected ErrOutOfBounds", c, err)
		}
	}
}

func TestFilled(t *testing.T) {
	g, _ := NewGrid(5, 5)
	if g.Filled() {
		t.Fatal("fresh grid should not be filled")
	}

	for _, c := range g.EmptyCells() {
		_ = g.SetContent(c, SnakeBody)
	}
	if !g.Filled() {
		t.Error("grid with every interior cell as snake body should be filled")
	}

	_ = g.SetContent(Coord{X: 2, Y: 2}, Apple)
	if g.Filled() {
		t.Error("an apple cell still counts as free")
	}
}

func TestObserverSeesInteriorWrites(t *testing.T) {
	g, _ := NewGrid(5, 5)

	var seen []Coord
	g.SetObserver(func(c Coord, _ Content) {
		seen = append(seen, c)
	})
	_ = g.SetContent(Coord{X: 1, Y: 1}, Apple)
	_ = g.SetContent(Coord{X: 0, Y: 0}, Apple) // border, ignored

	if len(seen) != 1 || seen[0] != (Coord{X: 1, Y: 1}) {
		t.Errorf("observer saw %v, expected only (1,1)", seen)
	}

	clone := g.Clone()
	_ = clone.SetContent(Coord{X: 2, Y: 2}, Apple)
	if len(seen) != 1 {
		t.Error("clone should not carry the observer")
	}
	if got, _ := g.TileAt(Coord{X: 2, Y: 2}); got != Empty {
		t.Error("clone writes leaked into the original")
	}
}
