package game

import "time"

// Config holds the session parameters. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	Width    int // cells
	Height   int // cells
	TileSize int // pixels per cell, used by renderers only

	NumWalls   int // must be even: half vertical, half horizontal
	WallLength int // cells per wall segment
	SafeZone   int // side of the central square kept free of walls

	TickRate int // ticks per second
	Seed     int64

	// StrictWalls checks the post-move head against walls instead of the
	// pre-move head. Off by default: a snake only resets on the tick after
	// it has entered a wall cell.
	StrictWalls bool

	// MaxFoodAttempts bounds rejection sampling before falling back to a
	// free-cell scan. Zero means 4*Width*Height.
	MaxFoodAttempts int

	// InputQueue is the number of buffered directional commands per tick.
	InputQueue int
}

// DefaultConfig matches the classic 480x480 board: 24x24 cells of 20px,
// eight walls, eight ticks per second.
func DefaultConfig() Config {
	return Config{
		Width:      24,
		Height:     24,
		TileSize:   20,
		NumWalls:   8,
		WallLength: 5,
		SafeZone:   8,
		TickRate:   8,
		InputQueue: 4,
	}
}

// Validate fails fast on parameters that would otherwise surface mid-tick.
// Wall regions that are too small for a segment are reported by
// NewWallLayout.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return configErrorf("Width", "must be positive, got %d", c.Width)
	case c.Height <= 0:
		return configErrorf("Height", "must be positive, got %d", c.Height)
	case c.TileSize <= 0:
		return configErrorf("TileSize", "must be positive, got %d", c.TileSize)
	case c.NumWalls < 0:
		return configErrorf("NumWalls", "must not be negative, got %d", c.NumWalls)
	case c.NumWalls%2 != 0:
		return configErrorf("NumWalls", "must be even, got %d", c.NumWalls)
	case c.WallLength <= 0:
		return configErrorf("WallLength", "must be positive, got %d", c.WallLength)
	case c.SafeZone <= 0:
		return configErrorf("SafeZone", "must be positive, got %d", c.SafeZone)
	case c.SafeZone > c.Width || c.SafeZone > c.Height:
		return configErrorf("SafeZone", "%d does not fit a %dx%d grid", c.SafeZone, c.Width, c.Height)
	case c.TickRate <= 0:
		return configErrorf("TickRate", "must be positive, got %d", c.TickRate)
	case c.MaxFoodAttempts < 0:
		return configErrorf("MaxFoodAttempts", "must not be negative, got %d", c.MaxFoodAttempts)
	case c.InputQueue <= 0:
		return configErrorf("InputQueue", "must be positive, got %d", c.InputQueue)
	}
	return nil
}

func (c Config) Grid() Grid {
	return Grid{Width: c.Width, Height: c.Height, TileSize: c.TileSize}
}

// TickInterval is the wall-clock time between ticks.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

func (c Config) foodAttempts() int {
	if c.MaxFoodAttempts > 0 {
		return c.MaxFoodAttempts
	}
	return 4 * c.Width * c.Height
}
