package snake

import "fmt"

// Content is the value held by a single grid cell.
type Content uint8

const (
	Empty Content = iota
	SnakeBody
	Apple
	Border
)

func (c Content) String() string {
	switch c {
	case Empty:
		return "empty"
	case SnakeBody:
		return "snake"
	case Apple:
		return "apple"
	case Border:
		return "border"
	default:
		return "unknown"
	}
}

// Coord is a cell position. X grows to the right, Y grows downwards.
type Coord struct {
	X, Y int
}

// Step returns the neighbouring cell in direction d.
func (c Coord) Step(d Direction) Coord {
	dx, dy := d.Delta()
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Adjacent reports whether two cells share an edge.
func (c Coord) Adjacent(o Coord) bool {
	dx, dy := c.X-o.X, c.Y-o.Y
	return dx*dx+dy*dy == 1
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Grid is a fixed-size board surrounded by a permanent border ring.
// It stores contents only; resolving who owns a cell is up to the caller.
type Grid struct {
	width    int
	height   int
	cells    []Content // Row-major
	observer func(Coord, Content)
}

// NewGrid creates a width x height grid with the border stamped and an empty interior.
func NewGrid(width, height int) (*Grid, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	g := &Grid{
		width:  width,
		height: height,
		cells:  make([]Content, width*height),
	}
	for y := range height {
		for x := range width {
			if g.IsBorder(Coord{X: x, Y: y}) {
				g.cells[y*width+x] = Border
			}
		}
	}
	return g, nil
}

// Width returns the number of columns, border included.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows, border included.
func (g *Grid) Height() int {
	return g.height
}

// InBounds reports whether c lies inside the allocated array.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

// IsBorder reports whether c is on the outer ring.
func (g *Grid) IsBorder(c Coord) bool {
	if !g.InBounds(c) {
		return false
	}
	return c.X == 0 || c.Y == 0 || c.X == g.width-1 || c.Y == g.height-1
}

// IsInterior reports whether c is a playable cell.
func (g *Grid) IsInterior(c Coord) bool {
	return g.InBounds(c) && !g.IsBorder(c)
}

// TileAt returns the content at c.
func (g *Grid) TileAt(c Coord) (Content, error) {
	if !g.InBounds(c) {
		return Empty, fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	return g.cells[c.Y*g.width+c.X], nil
}

// SetContent overwrites an interior cell unconditionally.
// Border cells are never changed; writing one returns ErrBorderImmutable.
func (g *Grid) SetContent(c Coord, content Content) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v on %dx%d grid", ErrOutOfBounds, c, g.width, g.height)
	}
	if g.IsBorder(c) {
		return fmt.Errorf("%w: %v", ErrBorderImmutable, c)
	}
	g.cells[c.Y*g.width+c.X] = content
	if g.observer != nil {
		g.observer(c, content)
	}
	return nil
}

// SetObserver registers a callback invoked after every interior write.
// Pass nil to remove it.
func (g *Grid) SetObserver(fn func(Coord, Content)) {
	g.observer = fn
}

// Interior returns the number of playable cells.
func (g *Grid) Interior() int {
	return (g.width - 2) * (g.height - 2)
}

// Filled reports whether no interior cell is Empty or Apple.
func (g *Grid) Filled() bool {
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			switch g.cells[y*g.width+x] {
			case Empty, Apple:
				return false
			}
		}
	}
	return true
}

// EmptyCells lists the Empty interior cells in row-major order.
func (g *Grid) EmptyCells() []Coord {
	var out []Coord
	for y := 1; y < g.height-1; y++ {
		for x := 1; x < g.width-1; x++ {
			if g.cells[y*g.width+x] == Empty {
				out = append(out, Coord{X: x, Y: y})
			}
		}
	}
	return out
}

// Cells returns a copy of the row-major cell array.
func (g *Grid) Cells() []Content {
	out := make([]Content, len(g.cells))
	copy(out, g.cells)
	return out
}

// Clone returns an independent copy without the observer.
func (g *Grid) Clone() *Grid {
	return &Grid{
		width:  g.width,
		height: g.height,
		cells:  g.Cells(),
	}
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(Coord, Content)) {
	for i, c := range g.cells {
		fn(Coord{X: i % g.width, Y: i / g.width}, c)
	}
}
