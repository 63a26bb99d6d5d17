package game

import (
	"math/rand"
	"strings"
	"testing"
)

// dumpBoard renders a snapshot top row first.
// H head, o body, * food, # wall, @ food on a wall (never expected).
func dumpBoard(s Snapshot) string {
	grid := make([][]byte, s.Height)
	for y := range grid {
		grid[y] = make([]byte, s.Width)
		for x := range grid[y] {
			grid[y][x] = '.'
		}
	}
	put := func(p Point, c byte) {
		if p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height {
			grid[p.Y][p.X] = c
		}
	}
	for _, w := range s.Walls {
		put(w, '#')
	}
	for i, p := range s.Snake {
		if i == 0 {
			put(p, 'H')
		} else {
			put(p, 'o')
		}
	}
	if grid[s.Food.Y][s.Food.X] == '#' {
		put(s.Food, '@')
	} else {
		put(s.Food, '*')
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func logSnapshot(t *testing.T, label string, s Snapshot) {
	t.Helper()
	t.Logf("%s tick=%d score=%d len=%d dir=%s event=%s\n%s", label, s.Tick, s.Score, s.Length, s.Direction, s.Event, dumpBoard(s))
}

// wallsAt builds a layout from explicit cells.
func wallsAt(cells ...Point) *WallLayout {
	w := &WallLayout{occupied: make(map[Point]struct{}, len(cells))}
	w.add(WallSegment{Anchor: firstOr(cells), Orientation: Horizontal, Cells: cells})
	return w
}

func firstOr(ps []Point) Point {
	if len(ps) == 0 {
		return Point{}
	}
	return ps[0]
}

// testSnake builds a snake in an arbitrary state.
func testSnake(grid Grid, walls *WallLayout, positions []Point, dir Direction, length int) *Snake {
	s := NewSnake(grid, walls, grid.Center(), rand.New(rand.NewSource(1)))
	s.positions = append([]Point(nil), positions...)
	s.direction = dir
	s.length = length
	return s
}

func samePoints(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
