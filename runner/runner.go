// Package runner drives a session at a fixed tick rate without a terminal:
// the loop, input and output that the game core leaves to its caller.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brensch/snakewalls/game"
)

// Pilot chooses the next direction from the current state.
type Pilot interface {
	Next(game.Snapshot) game.Direction
}

// Sink receives every post-tick snapshot, in tick order.
type Sink interface {
	Frame(game.Snapshot) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(game.Snapshot) error

func (f SinkFunc) Frame(s game.Snapshot) error { return f(s) }

// Options configures Run.
type Options struct {
	// Interval between ticks. Zero or negative runs as fast as possible.
	Interval time.Duration
	// MaxTicks stops the run after this many ticks. Zero means until ctx ends.
	MaxTicks uint64
	// Pilot, when set, feeds one direction per tick.
	Pilot  Pilot
	Sinks  []Sink
	Logger *slog.Logger
}

// Stats summarises a finished run.
type Stats struct {
	Ticks     uint64
	Food      int
	Resets    int
	BestScore int
	Final     game.Snapshot
}

// Run ticks sess until ctx is done or MaxTicks is reached. A sink error or a
// session error stops the run and is returned; context cancellation is not
// an error.
func Run(ctx context.Context, sess *game.Session, opts Options) (Stats, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session", sess.ID())

	var tickC <-chan time.Time
	if opts.Interval > 0 {
		ticker := time.NewTicker(opts.Interval)
		defer ticker.Stop()
		tickC = ticker.C
	}

	stats := Stats{Final: sess.Snapshot()}
	for opts.MaxTicks == 0 || stats.Ticks < opts.MaxTicks {
		if tickC != nil {
			select {
			case <-ctx.Done():
				return stats, nil
			case <-tickC:
			}
		} else if ctx.Err() != nil {
			return stats, nil
		}

		if opts.Pilot != nil {
			sess.Input(opts.Pilot.Next(stats.Final))
		}
		snap, err := sess.Tick()
		if err != nil {
			return stats, err
		}
		stats.Ticks++
		stats.Final = snap
		if snap.Score > stats.BestScore {
			stats.BestScore = snap.Score
		}

		switch snap.Event {
		case game.EventAte:
			stats.Food++
			logger.Debug("food eaten", "tick", snap.Tick, "score", snap.Score, "next_food", snap.Food)
		case game.EventSelfCollision, game.EventWallCollision:
			stats.Resets++
			logger.Debug("snake reset", "tick", snap.Tick, "cause", snap.Event)
		}

		var errs []error
		for _, sink := range opts.Sinks {
			if err := sink.Frame(snap); err != nil {
				errs = append(errs, err)
			}
		}
		if err := errors.Join(errs...); err != nil {
			return stats, fmt.Errorf("tick %d: %w", snap.Tick, err)
		}
	}
	return stats, nil
}
