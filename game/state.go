// Package game implements the snakewalls simulation core.
//
// The core is a single-threaded, tick-driven state machine: a snake moves on a
// toroidal grid, grows by eating food and resets when it hits itself or one of
// the walls generated at session start. Rendering, input polling and frame
// pacing live outside this package and talk to it through Session.Input and
// Snapshot.
package game

import "fmt"

// Point is a grid cell. Coordinates are in cells, not pixels.
// (0,0) is the top-left cell; y grows downward.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four unit moves.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction in a fixed order.
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

// Delta is the unit vector for d in grid space.
func (d Direction) Delta() Point {
	switch d {
	case Up:
		return Point{X: 0, Y: -1}
	case Down:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{X: 1, Y: 0}
	}
}

func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// ParseDirection accepts the names produced by Direction.String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// Grid is the playfield. Movement wraps on both axes.
type Grid struct {
	Width    int
	Height   int
	TileSize int
}

// WrapAxis maps v into [0, extent).
func WrapAxis(v, extent int) int {
	v %= extent
	if v < 0 {
		v += extent
	}
	return v
}

// Wrap maps p onto the torus: leaving the right edge re-enters on the left,
// leaving the top re-enters at the bottom.
func (g Grid) Wrap(p Point) Point {
	return Point{X: WrapAxis(p.X, g.Width), Y: WrapAxis(p.Y, g.Height)}
}

func (g Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.Width && p.Y >= 0 && p.Y < g.Height
}

// Center is the spawn cell.
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}

func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Rect is a pixel rectangle for renderers that draw tiles.
type Rect struct {
	X, Y, W, H int
}

// PixelRect maps a cell to its on-screen tile.
func (g Grid) PixelRect(p Point) Rect {
	return Rect{X: p.X * g.TileSize, Y: p.Y * g.TileSize, W: g.TileSize, H: g.TileSize}
}

// ManhattanDistance is the shortest wrap-aware step count between a and b.
func (g Grid) ManhattanDistance(a, b Point) int {
	dx := WrapAxis(a.X-b.X, g.Width)
	if alt := g.Width - dx; alt < dx {
		dx = alt
	}
	dy := WrapAxis(a.Y-b.Y, g.Height)
	if alt := g.Height - dy; alt < dy {
		dy = alt
	}
	return dx + dy
}
