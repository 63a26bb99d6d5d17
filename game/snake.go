package game

import "math/rand"

// Collision is the outcome of a single Move.
type Collision int

const (
	CollisionNone Collision = iota
	CollisionSelf
	CollisionWall
)

func (c Collision) String() string {
	switch c {
	case CollisionSelf:
		return "self"
	case CollisionWall:
		return "wall"
	default:
		return "none"
	}
}

// Snake is the player. It has no terminal state: any collision resets it to a
// single cell at the spawn point and play continues.
type Snake struct {
	grid  Grid
	walls *WallLayout
	rng   *rand.Rand
	spawn Point

	// strictWalls tests the post-move head against walls.
	strictWalls bool

	positions []Point // head first
	direction Direction
	length    int
	score     int
}

// NewSnake spawns a length-1 snake at spawn facing a random direction.
func NewSnake(grid Grid, walls *WallLayout, spawn Point, rng *rand.Rand) *Snake {
	s := &Snake{grid: grid, walls: walls, rng: rng, spawn: spawn}
	s.Reset()
	return s
}

// Reset returns the snake to its initial state. Walls and food are untouched.
func (s *Snake) Reset() {
	s.length = 1
	s.positions = append(s.positions[:0], s.spawn)
	s.direction = Directions[s.rng.Intn(len(Directions))]
	s.score = 0
}

// Turn sets the heading. Reversing straight into the neck is ignored once the
// snake is longer than its head; the return value reports whether d was taken.
func (s *Snake) Turn(d Direction) bool {
	if !d.Valid() {
		return false
	}
	if s.length > 1 && d == s.direction.Opposite() {
		return false
	}
	s.direction = d
	return true
}

// Move advances the head one cell.
//
// The self check uses the new head against positions[2:]. The wall check uses
// the head as it was before this move unless strict walls are enabled, so by
// default a snake resets one tick after entering a wall cell.
func (s *Snake) Move() Collision {
	cur := s.Head()
	next := s.grid.Wrap(cur.Add(s.direction.Delta()))

	if len(s.positions) > 2 && contains(s.positions[2:], next) {
		s.Reset()
		return CollisionSelf
	}

	wallProbe := cur
	if s.strictWalls {
		wallProbe = next
	}
	if s.walls.Occupies(wallProbe) {
		s.Reset()
		return CollisionWall
	}

	s.positions = append(s.positions, Point{})
	copy(s.positions[1:], s.positions)
	s.positions[0] = next
	if len(s.positions) > s.length {
		s.positions = s.positions[:s.length]
	}
	return CollisionNone
}

// Grow extends the target length and scores one food.
func (s *Snake) Grow() {
	s.length++
	s.score++
}

func (s *Snake) Head() Point {
	return s.positions[0]
}

// Positions returns a copy of the body, head first.
func (s *Snake) Positions() []Point {
	return append([]Point(nil), s.positions...)
}

func (s *Snake) Direction() Direction { return s.direction }
func (s *Snake) Length() int          { return s.length }
func (s *Snake) Score() int           { return s.score }
func (s *Snake) Spawn() Point         { return s.spawn }

func contains(ps []Point, p Point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}
