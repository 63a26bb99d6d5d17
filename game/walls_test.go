package game

import (
	"errors"
	"math/rand"
	"testing"
)

func TestWallLayout_NeverEntersSafeZone(t *testing.T) {
	g := Grid{Width: 24, Height: 24, TileSize: 20}
	cfg := WallConfig{NumWalls: 8, Length: 5, SafeZone: 8}
	lo, hi := SafeZone(g, cfg.SafeZone)
	if lo != (Point{X: 8, Y: 8}) || hi != (Point{X: 16, Y: 16}) {
		t.Fatalf("safe zone=[%v,%v) want=[(8,8),(16,16))", lo, hi)
	}

	for seed := int64(0); seed < 2000; seed++ {
		w, err := NewWallLayout(g, cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		for _, c := range w.Cells() {
			if !g.Contains(c) {
				t.Fatalf("seed %d: wall cell %v off the grid", seed, c)
			}
			if c.X >= lo.X && c.X < hi.X && c.Y >= lo.Y && c.Y < hi.Y {
				t.Fatalf("seed %d: wall cell %v inside safe zone", seed, c)
			}
		}
		if w.Occupies(g.Center()) {
			t.Fatalf("seed %d: spawn cell is a wall", seed)
		}
	}
}

func TestWallLayout_SegmentShape(t *testing.T) {
	g := Grid{Width: 24, Height: 24, TileSize: 20}
	w, err := NewWallLayout(g, WallConfig{NumWalls: 8, Length: 5, SafeZone: 8}, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatalf("NewWallLayout: %v", err)
	}
	segs := w.Segments()
	if len(segs) != 8 {
		t.Fatalf("segments=%d want=8", len(segs))
	}
	for i, s := range segs {
		wantO := Vertical
		if i >= 4 {
			wantO = Horizontal
		}
		if s.Orientation != wantO {
			t.Fatalf("segment %d orientation=%s want=%s", i, s.Orientation, wantO)
		}
		if len(s.Cells) != 5 || s.Cells[0] != s.Anchor {
			t.Fatalf("segment %d cells=%v anchor=%v", i, s.Cells, s.Anchor)
		}
		for j := 1; j < len(s.Cells); j++ {
			if s.Cells[j] != s.Cells[j-1].Add(s.Orientation.step()) {
				t.Fatalf("segment %d not contiguous: %v", i, s.Cells)
			}
		}
		for _, c := range s.Cells {
			if !w.Occupies(c) {
				t.Fatalf("segment %d cell %v not reported by Occupies", i, c)
			}
		}
	}
	if w.Len() > 40 || w.Len() < 5 {
		t.Fatalf("distinct wall cells=%d", w.Len())
	}
}

func TestWallRegions_Disjoint(t *testing.T) {
	g := Grid{Width: 24, Height: 24}
	regions := wallRegions(g, 8)
	lo, hi := SafeZone(g, 8)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			hits := 0
			for _, r := range regions {
				if x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1 {
					hits++
				}
			}
			inSafe := x >= lo.X && x < hi.X && y >= lo.Y && y < hi.Y
			switch {
			case inSafe && hits != 0:
				t.Fatalf("(%d,%d) in safe zone is covered by %d regions", x, y, hits)
			case !inSafe && hits != 1:
				t.Fatalf("(%d,%d) covered by %d regions want=1", x, y, hits)
			}
		}
	}
}

func TestWallLayout_Reproducible(t *testing.T) {
	g := Grid{Width: 24, Height: 24}
	cfg := WallConfig{NumWalls: 8, Length: 5, SafeZone: 8}
	a, _ := NewWallLayout(g, cfg, rand.New(rand.NewSource(42)))
	b, _ := NewWallLayout(g, cfg, rand.New(rand.NewSource(42)))
	if !samePoints(a.Cells(), b.Cells()) {
		t.Fatalf("same seed produced different walls:\n%v\n%v", a.Cells(), b.Cells())
	}
}

func TestWallLayout_Errors(t *testing.T) {
	g := Grid{Width: 24, Height: 24}
	var cerr *ConfigError

	_, err := NewWallLayout(g, WallConfig{NumWalls: 7, Length: 5, SafeZone: 8}, rand.New(rand.NewSource(1)))
	if !errors.As(err, &cerr) || cerr.Field != "NumWalls" {
		t.Fatalf("odd wall count: err=%v", err)
	}

	// 12x12 with an 8-wide safe zone leaves 2-cell blades: no room for 5-cell walls.
	_, err = NewWallLayout(Grid{Width: 12, Height: 12}, WallConfig{NumWalls: 8, Length: 5, SafeZone: 8}, rand.New(rand.NewSource(1)))
	if !errors.As(err, &cerr) {
		t.Fatalf("small grid: err=%v want ConfigError", err)
	}
}

func TestWallLayout_NoWalls(t *testing.T) {
	w, err := NewWallLayout(Grid{Width: 4, Height: 4}, WallConfig{NumWalls: 0, Length: 5, SafeZone: 2}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewWallLayout: %v", err)
	}
	if w.Len() != 0 || len(w.Segments()) != 0 {
		t.Fatalf("expected no walls, got %v", w.Cells())
	}
}
