// Command snakewalls plays the walls-and-wraparound snake game in a terminal,
// runs it headless for recording and spectating, or replays a recording.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brensch/snakewalls/game"
	"github.com/brensch/snakewalls/logging"
	"github.com/brensch/snakewalls/rules"
	"github.com/brensch/snakewalls/runner"
	"github.com/brensch/snakewalls/spectate"
	"github.com/brensch/snakewalls/store"
	"github.com/brensch/snakewalls/tui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

type options struct {
	cfg       game.Config
	mode      string
	autopilot bool
	recordDir string
	replay    string
	spectate  string
	ticks     uint64
	logFormat string
	logLevel  string
	logFile   string
}

func parseFlags() options {
	def := game.DefaultConfig()
	var o options
	var ticks int

	flag.IntVar(&o.cfg.Width, "width", getEnvIntOrDefault("WIDTH", def.Width), "Grid width in cells")
	flag.IntVar(&o.cfg.Height, "height", getEnvIntOrDefault("HEIGHT", def.Height), "Grid height in cells")
	flag.IntVar(&o.cfg.TileSize, "tile-size", getEnvIntOrDefault("TILE_SIZE", def.TileSize), "Tile size in pixels (reported to renderers)")
	flag.IntVar(&o.cfg.NumWalls, "walls", getEnvIntOrDefault("WALLS", def.NumWalls), "Number of walls (even)")
	flag.IntVar(&o.cfg.WallLength, "wall-length", getEnvIntOrDefault("WALL_LENGTH", def.WallLength), "Cells per wall")
	flag.IntVar(&o.cfg.SafeZone, "safe-zone", getEnvIntOrDefault("SAFE_ZONE", def.SafeZone), "Side of the wall-free square around the spawn")
	flag.IntVar(&o.cfg.TickRate, "tick-rate", getEnvIntOrDefault("TICK_RATE", def.TickRate), "Ticks per second")
	flag.Int64Var(&o.cfg.Seed, "seed", getEnvInt64OrDefault("SEED", 0), "Random seed (0 = time based)")
	flag.BoolVar(&o.cfg.StrictWalls, "strict-walls", getEnvBoolOrDefault("STRICT_WALLS", false), "Reset on entering a wall instead of on the tick after")
	flag.IntVar(&o.cfg.MaxFoodAttempts, "food-attempts", getEnvIntOrDefault("FOOD_ATTEMPTS", 0), "Food sampling attempts before scanning free cells (0 = 4*W*H)")
	flag.IntVar(&o.cfg.InputQueue, "input-queue", getEnvIntOrDefault("INPUT_QUEUE", def.InputQueue), "Buffered key presses per tick")

	flag.StringVar(&o.mode, "mode", getEnvOrDefault("MODE", "tui"), "tui or headless")
	flag.BoolVar(&o.autopilot, "autopilot", getEnvBoolOrDefault("AUTOPILOT", false), "Let the greedy autopilot steer")
	flag.StringVar(&o.recordDir, "record", getEnvOrDefault("RECORD_DIR", ""), "Directory to write a Parquet recording to")
	flag.StringVar(&o.replay, "replay", getEnvOrDefault("REPLAY", ""), "Parquet recording to play back")
	flag.StringVar(&o.spectate, "spectate", getEnvOrDefault("SPECTATE_ADDR", ""), "Serve a websocket spectator stream on this address (headless)")
	flag.IntVar(&ticks, "ticks", getEnvIntOrDefault("TICKS", 0), "Stop after this many ticks (headless, 0 = until interrupted)")
	flag.StringVar(&o.logFormat, "log-format", getEnvOrDefault("LOG_FORMAT", logging.FormatText), "text, json or pretty")
	flag.StringVar(&o.logLevel, "log-level", getEnvOrDefault("LOG_LEVEL", "info"), "debug, info, warn or error")
	flag.StringVar(&o.logFile, "log-file", getEnvOrDefault("LOG_FILE", "snakewalls.log"), "Log file in tui mode (the terminal is busy drawing)")
	flag.Parse()

	if ticks > 0 {
		o.ticks = uint64(ticks)
	}
	return o
}

func main() {
	o := parseFlags()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("snakewalls: mode=%s grid=%dx%d walls=%d tick_rate=%d autopilot=%v",
		o.mode, o.cfg.Width, o.cfg.Height, o.cfg.NumWalls, o.cfg.TickRate, o.autopilot)

	var err error
	switch {
	case o.replay != "":
		err = runReplay(o)
	case o.mode == "headless":
		err = runHeadless(ctx, o)
	case o.mode == "tui":
		err = runTUI(o)
	default:
		err = fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		log.Fatalf("snakewalls: %v", err)
	}
}

func newLogger(o options, w io.Writer) (*slog.Logger, error) {
	return logging.New(w, logging.Options{Format: o.logFormat, Level: o.logLevel})
}

func newSession(o options, logger *slog.Logger) (*game.Session, error) {
	sess, err := game.NewSession(o.cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("session started",
		"session", sess.ID(),
		"grid", fmt.Sprintf("%dx%d", o.cfg.Width, o.cfg.Height),
		"walls", sess.Walls().Len(),
		"tick_rate", o.cfg.TickRate,
		"strict_walls", o.cfg.StrictWalls,
	)
	return sess, nil
}

func openRecorder(o options, sess *game.Session, logger *slog.Logger) (*store.Recorder, func(), error) {
	if o.recordDir == "" {
		return nil, func() {}, nil
	}
	rec, err := store.NewRecorder(o.recordDir, sess.Snapshot())
	if err != nil {
		return nil, nil, fmt.Errorf("open recorder: %w", err)
	}
	closeFn := func() {
		path, frames, err := rec.Close()
		if err != nil {
			logger.Error("recording failed", "err", err)
			return
		}
		logger.Info("recording written", "path", path, "frames", frames)
	}
	return rec, closeFn, nil
}

func runTUI(o options) error {
	f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()
	logger, err := newLogger(o, f)
	if err != nil {
		return err
	}

	sess, err := newSession(o, logger)
	if err != nil {
		return err
	}
	rec, closeRec, err := openRecorder(o, sess, logger)
	if err != nil {
		return err
	}
	defer closeRec()

	tuiOpts := tui.Options{Logger: logger}
	if o.autopilot {
		tuiOpts.Pilot = rules.Autopilot{}
	}
	if rec != nil {
		tuiOpts.Sinks = append(tuiOpts.Sinks, rec)
	}

	final, err := tea.NewProgram(tui.New(sess, tuiOpts), tea.WithAltScreen()).Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	m := final.(tui.Model)
	fmt.Printf("Final score %d after %d ticks\n", m.Snapshot().Score, m.Snapshot().Tick)
	return m.Err()
}

func runReplay(o options) error {
	rec, err := store.ReadRecording(o.replay)
	if err != nil {
		return err
	}
	rate := o.cfg.TickRate
	if rate <= 0 {
		rate = game.DefaultConfig().TickRate
	}
	_, err = tea.NewProgram(tui.NewReplay(rec.Snapshots(), time.Second/time.Duration(rate)), tea.WithAltScreen()).Run()
	return err
}

func runHeadless(ctx context.Context, o options) error {
	logger, err := newLogger(o, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	sess, err := newSession(o, logger)
	if err != nil {
		return err
	}
	rec, closeRec, err := openRecorder(o, sess, logger)
	if err != nil {
		return err
	}
	defer closeRec()

	runOpts := runner.Options{
		Interval: o.cfg.TickInterval(),
		MaxTicks: o.ticks,
		Logger:   logger,
	}
	if o.autopilot {
		runOpts.Pilot = rules.Autopilot{}
	}
	if rec != nil {
		runOpts.Sinks = append(runOpts.Sinks, rec)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	if o.spectate != "" {
		hub := spectate.NewHub(spectate.DefaultConfig(), logger)
		_ = hub.Frame(sess.Snapshot())
		runOpts.Sinks = append(runOpts.Sinks, hub)

		srv := &http.Server{Addr: o.spectate, Handler: hub, ReadHeaderTimeout: 5 * time.Second}
		g.Go(func() error {
			logger.Info("spectator stream listening", "addr", o.spectate)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("spectator server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			_ = hub.Close()
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancelShutdown()
			return srv.Shutdown(shutdownCtx)
		})
	}

	g.Go(func() error {
		// The server goroutines exit once the run is over.
		defer cancel()
		stats, err := runner.Run(ctx, sess, runOpts)
		logger.Info("session finished",
			"ticks", stats.Ticks,
			"food", stats.Food,
			"resets", stats.Resets,
			"best_score", stats.BestScore,
			"final_score", stats.Final.Score,
		)
		return err
	})
	return g.Wait()
}
