package game

import (
	"fmt"
	"math/rand"
)

// FoodSpawner picks food cells that are not walls. Snake cells are not
// avoided: food may appear under the body.
type FoodSpawner struct {
	grid        Grid
	walls       *WallLayout
	rng         *rand.Rand
	maxAttempts int
}

// NewFoodSpawner returns a spawner sampling with rng. maxAttempts <= 0 means
// 4*W*H rejection-sampling draws before the free-cell scan.
func NewFoodSpawner(grid Grid, walls *WallLayout, rng *rand.Rand, maxAttempts int) *FoodSpawner {
	if maxAttempts <= 0 {
		maxAttempts = 4 * grid.Cells()
	}
	return &FoodSpawner{grid: grid, walls: walls, rng: rng, maxAttempts: maxAttempts}
}

// RandomizePosition draws a uniformly random cell that is neither a wall nor
// one of exclude. Rejection sampling is bounded; once the budget is spent the
// remaining free cells are enumerated and one is picked uniformly.
func (f *FoodSpawner) RandomizePosition(exclude ...Point) (Point, error) {
	for i := 0; i < f.maxAttempts; i++ {
		p := Point{X: f.rng.Intn(f.grid.Width), Y: f.rng.Intn(f.grid.Height)}
		if f.free(p, exclude) {
			return p, nil
		}
	}

	freeCells := make([]Point, 0, f.grid.Cells()-f.walls.Len())
	for y := 0; y < f.grid.Height; y++ {
		for x := 0; x < f.grid.Width; x++ {
			if p := (Point{X: x, Y: y}); f.free(p, exclude) {
				freeCells = append(freeCells, p)
			}
		}
	}
	if len(freeCells) == 0 {
		return Point{}, fmt.Errorf("%dx%d grid with %d wall cells: %w", f.grid.Width, f.grid.Height, f.walls.Len(), ErrNoFreeCell)
	}
	return freeCells[f.rng.Intn(len(freeCells))], nil
}

func (f *FoodSpawner) free(p Point, exclude []Point) bool {
	if f.walls.Occupies(p) {
		return false
	}
	for _, e := range exclude {
		if p == e {
			return false
		}
	}
	return true
}
