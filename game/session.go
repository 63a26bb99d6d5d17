package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Event is what happened to the snake on the last tick.
type Event string

const (
	EventNone          Event = "none"
	EventAte           Event = "ate"
	EventSelfCollision Event = "self_collision"
	EventWallCollision Event = "wall_collision"
)

// Snapshot is the renderable state after a tick. Slices are copies owned by
// the caller.
type Snapshot struct {
	SessionID string    `json:"session_id"`
	Tick      uint64    `json:"tick"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	TileSize  int       `json:"tile_size"`
	Snake     []Point   `json:"snake"`
	Direction Direction `json:"direction"`
	Length    int       `json:"length"`
	Score     int       `json:"score"`
	Food      Point     `json:"food"`
	Walls     []Point   `json:"walls"`
	Event     Event     `json:"event"`
	Resets    int       `json:"resets"`
}

func (s Snapshot) Grid() Grid {
	return Grid{Width: s.Width, Height: s.Height, TileSize: s.TileSize}
}

func (s Snapshot) Head() Point {
	if len(s.Snake) == 0 {
		return Point{}
	}
	return s.Snake[0]
}

// Rand holds the independent random sources of a session.
type Rand struct {
	Walls *rand.Rand
	Snake *rand.Rand
	Food  *rand.Rand
}

// SeededRand derives the three sources from one seed so walls, spawn
// direction and food can each be reproduced on their own.
func SeededRand(seed int64) Rand {
	return Rand{
		Walls: rand.New(rand.NewSource(seed)),
		Snake: rand.New(rand.NewSource(seed + 1)),
		Food:  rand.New(rand.NewSource(seed + 2)),
	}
}

type Option func(*sessionOptions)

type sessionOptions struct {
	rng *Rand
	id  string
}

// WithRand overrides the seed-derived random sources. Nil fields fall back
// to the seed.
func WithRand(r Rand) Option {
	return func(o *sessionOptions) { o.rng = &r }
}

// WithID sets the session id instead of generating one.
func WithID(id string) Option {
	return func(o *sessionOptions) { o.id = id }
}

// Session is one game: walls are generated once, the snake and food change
// per tick. A Session is not safe for concurrent use; a single driver calls
// Input and Tick.
type Session struct {
	id      string
	cfg     Config
	grid    Grid
	walls   *WallLayout
	snake   *Snake
	spawner *FoodSpawner

	food    Point
	pending []Direction
	tick    uint64
	resets  int
	event   Event
}

// NewSession validates cfg and builds walls, snake and the first food.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var o sessionOptions
	for _, opt := range opts {
		opt(&o)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := SeededRand(seed)
	if o.rng != nil {
		if o.rng.Walls != nil {
			rng.Walls = o.rng.Walls
		}
		if o.rng.Snake != nil {
			rng.Snake = o.rng.Snake
		}
		if o.rng.Food != nil {
			rng.Food = o.rng.Food
		}
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	grid := cfg.Grid()
	walls, err := NewWallLayout(grid, WallConfig{NumWalls: cfg.NumWalls, Length: cfg.WallLength, SafeZone: cfg.SafeZone}, rng.Walls)
	if err != nil {
		return nil, fmt.Errorf("generate walls: %w", err)
	}

	snake := NewSnake(grid, walls, grid.Center(), rng.Snake)
	snake.strictWalls = cfg.StrictWalls

	s := &Session{
		id:      o.id,
		cfg:     cfg,
		grid:    grid,
		walls:   walls,
		snake:   snake,
		spawner: NewFoodSpawner(grid, walls, rng.Food, cfg.foodAttempts()),
		pending: make([]Direction, 0, cfg.InputQueue),
		event:   EventNone,
	}
	if s.food, err = s.spawner.RandomizePosition(); err != nil {
		return nil, fmt.Errorf("place food: %w", err)
	}
	return s, nil
}

// Input queues a directional command for the next tick. When the queue is
// full the oldest command is dropped; only the newest is applied anyway.
func (s *Session) Input(d Direction) {
	if !d.Valid() {
		return
	}
	if len(s.pending) == cap(s.pending) {
		copy(s.pending, s.pending[1:])
		s.pending = s.pending[:len(s.pending)-1]
	}
	s.pending = append(s.pending, d)
}

// Tick advances the simulation by one step: apply the latest input, move,
// then eat and re-roll food if the head landed on it.
func (s *Session) Tick() (Snapshot, error) {
	if n := len(s.pending); n > 0 {
		s.snake.Turn(s.pending[n-1])
		s.pending = s.pending[:0]
	}

	s.tick++
	s.event = EventNone
	switch s.snake.Move() {
	case CollisionSelf:
		s.event = EventSelfCollision
		s.resets++
	case CollisionWall:
		s.event = EventWallCollision
		s.resets++
	}

	if s.snake.Head() == s.food {
		s.snake.Grow()
		if s.event == EventNone {
			s.event = EventAte
		}
		food, err := s.spawner.RandomizePosition(s.food)
		if err != nil {
			return s.Snapshot(), fmt.Errorf("tick %d: re-roll food: %w", s.tick, err)
		}
		s.food = food
	}
	return s.Snapshot(), nil
}

// Snapshot returns the current renderable state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		SessionID: s.id,
		Tick:      s.tick,
		Width:     s.grid.Width,
		Height:    s.grid.Height,
		TileSize:  s.grid.TileSize,
		Snake:     s.snake.Positions(),
		Direction: s.snake.Direction(),
		Length:    s.snake.Length(),
		Score:     s.snake.Score(),
		Food:      s.food,
		Walls:     s.walls.Cells(),
		Event:     s.event,
		Resets:    s.resets,
	}
}

func (s *Session) ID() string         { return s.id }
func (s *Session) Config() Config     { return s.cfg }
func (s *Session) Grid() Grid         { return s.grid }
func (s *Session) Walls() *WallLayout { return s.walls }
func (s *Session) Snake() *Snake      { return s.snake }
func (s *Session) Food() Point        { return s.food }
func (s *Session) TickCount() uint64  { return s.tick }
func (s *Session) PendingInputs() int { return len(s.pending) }
