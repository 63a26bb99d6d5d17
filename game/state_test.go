package game

import "testing"

func TestWrap_AllEdges(t *testing.T) {
	g := Grid{Width: 24, Height: 24, TileSize: 20}
	cases := []struct {
		in, want Point
	}{
		{Point{X: 24, Y: 5}, Point{X: 0, Y: 5}},
		{Point{X: -1, Y: 5}, Point{X: 23, Y: 5}},
		{Point{X: 5, Y: 24}, Point{X: 5, Y: 0}},
		{Point{X: 5, Y: -1}, Point{X: 5, Y: 23}},
		{Point{X: -25, Y: 49}, Point{X: 23, Y: 1}},
		{Point{X: 12, Y: 12}, Point{X: 12, Y: 12}},
	}
	for _, c := range cases {
		if got := g.Wrap(c.in); got != c.want {
			t.Fatalf("Wrap(%v)=%v want=%v", c.in, got, c.want)
		}
	}
}

func TestDirection_OppositeAndDelta(t *testing.T) {
	for _, d := range Directions {
		if d.Opposite().Opposite() != d {
			t.Fatalf("%s: opposite is not an involution", d)
		}
		if sum := d.Delta().Add(d.Opposite().Delta()); sum != (Point{}) {
			t.Fatalf("%s: delta + opposite delta = %v", d, sum)
		}
		parsed, err := ParseDirection(d.String())
		if err != nil || parsed != d {
			t.Fatalf("ParseDirection(%q)=%v,%v", d.String(), parsed, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestManhattanDistance_Wraps(t *testing.T) {
	g := Grid{Width: 10, Height: 10}
	if d := g.ManhattanDistance(Point{X: 0, Y: 0}, Point{X: 9, Y: 9}); d != 2 {
		t.Fatalf("distance=%d want=2", d)
	}
	if d := g.ManhattanDistance(Point{X: 2, Y: 3}, Point{X: 5, Y: 3}); d != 3 {
		t.Fatalf("distance=%d want=3", d)
	}
}

func TestPixelRect(t *testing.T) {
	g := Grid{Width: 24, Height: 24, TileSize: 20}
	if r := g.PixelRect(Point{X: 3, Y: 4}); r != (Rect{X: 60, Y: 80, W: 20, H: 20}) {
		t.Fatalf("rect=%+v", r)
	}
}
