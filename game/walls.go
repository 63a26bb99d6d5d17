package game

import (
	"fmt"
	"math/rand"
)

type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) step() Point {
	if o == Vertical {
		return Point{X: 0, Y: 1}
	}
	return Point{X: 1, Y: 0}
}

// WallSegment is a straight run of cells starting at Anchor.
type WallSegment struct {
	Anchor      Point
	Orientation Orientation
	Cells       []Point
}

// region is a half-open rectangle of cells [X0,X1) x [Y0,Y1).
type region struct {
	X0, X1, Y0, Y1 int
}

// wallRegions splits the grid minus the central safe square into four
// disjoint pinwheel blades: west, north, east, south.
func wallRegions(g Grid, safe int) [4]region {
	sx0 := g.Width/2 - safe/2
	sx1 := sx0 + safe
	sy0 := g.Height/2 - safe/2
	sy1 := sy0 + safe
	return [4]region{
		{X0: 0, X1: sx0, Y0: 0, Y1: sy1},
		{X0: sx0, X1: g.Width, Y0: 0, Y1: sy0},
		{X0: sx1, X1: g.Width, Y0: sy0, Y1: g.Height},
		{X0: 0, X1: sx1, Y0: sy1, Y1: g.Height},
	}
}

// SafeZone returns the rectangle walls never enter as half-open [lo, hi) corners.
func SafeZone(g Grid, safe int) (lo, hi Point) {
	sx0 := g.Width/2 - safe/2
	sy0 := g.Height/2 - safe/2
	return Point{X: sx0, Y: sy0}, Point{X: sx0 + safe, Y: sy0 + safe}
}

// WallConfig controls wall generation.
type WallConfig struct {
	NumWalls int
	Length   int
	SafeZone int
}

// WallLayout is the immutable set of walls for one session.
type WallLayout struct {
	segments []WallSegment
	cells    []Point
	occupied map[Point]struct{}
}

// NewWallLayout places cfg.NumWalls segments: the first half vertical, the
// second half horizontal. Slot i of each orientation draws its anchor from
// region i%4. The anchor range is shortened along the segment's axis so every
// cell stays inside its region, which keeps walls on the grid and out of the
// safe zone. Segments may overlap one another.
func NewWallLayout(g Grid, cfg WallConfig, rng *rand.Rand) (*WallLayout, error) {
	if cfg.NumWalls%2 != 0 {
		return nil, configErrorf("NumWalls", "must be even, got %d", cfg.NumWalls)
	}
	regions := wallRegions(g, cfg.SafeZone)

	w := &WallLayout{
		segments: make([]WallSegment, 0, cfg.NumWalls),
		occupied: make(map[Point]struct{}, cfg.NumWalls*cfg.Length),
	}
	for _, o := range [...]Orientation{Vertical, Horizontal} {
		for i := 0; i < cfg.NumWalls/2; i++ {
			anchor, err := drawAnchor(regions[i%4], o, cfg.Length, rng)
			if err != nil {
				return nil, fmt.Errorf("%s wall %d: %w", o, i, err)
			}
			w.add(buildSegment(anchor, o, cfg.Length))
		}
	}
	return w, nil
}

func drawAnchor(r region, o Orientation, length int, rng *rand.Rand) (Point, error) {
	x1, y1 := r.X1, r.Y1
	if o == Vertical {
		y1 -= length - 1
	} else {
		x1 -= length - 1
	}
	if x1 <= r.X0 || y1 <= r.Y0 {
		return Point{}, configErrorf("SafeZone", "region [%d,%d)x[%d,%d) too small for a %d-cell %s wall",
			r.X0, r.X1, r.Y0, r.Y1, length, o)
	}
	return Point{X: r.X0 + rng.Intn(x1-r.X0), Y: r.Y0 + rng.Intn(y1-r.Y0)}, nil
}

func buildSegment(anchor Point, o Orientation, length int) WallSegment {
	cells := make([]Point, length)
	p := anchor
	for i := range cells {
		cells[i] = p
		p = p.Add(o.step())
	}
	return WallSegment{Anchor: anchor, Orientation: o, Cells: cells}
}

func (w *WallLayout) add(s WallSegment) {
	w.segments = append(w.segments, s)
	for _, c := range s.Cells {
		if _, ok := w.occupied[c]; ok {
			continue
		}
		w.occupied[c] = struct{}{}
		w.cells = append(w.cells, c)
	}
}

// Occupies reports whether p is a wall cell.
func (w *WallLayout) Occupies(p Point) bool {
	if w == nil {
		return false
	}
	_, ok := w.occupied[p]
	return ok
}

// Segments returns a copy of the generated walls in generation order.
func (w *WallLayout) Segments() []WallSegment {
	if w == nil {
		return nil
	}
	out := make([]WallSegment, len(w.segments))
	for i, s := range w.segments {
		out[i] = WallSegment{Anchor: s.Anchor, Orientation: s.Orientation, Cells: append([]Point(nil), s.Cells...)}
	}
	return out
}

// Cells returns every distinct wall cell, in segment order.
func (w *WallLayout) Cells() []Point {
	if w == nil {
		return nil
	}
	return append([]Point(nil), w.cells...)
}

// Len is the number of distinct wall cells.
func (w *WallLayout) Len() int {
	if w == nil {
		return 0
	}
	return len(w.cells)
}
