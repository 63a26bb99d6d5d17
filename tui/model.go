package tui

import (
	"log/slog"
	"time"

	"github.com/brensch/snakewalls/game"
	"github.com/brensch/snakewalls/runner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TickMsg advances the simulation by one step.
type TickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

var keyDirections = map[string]game.Direction{
	"up": game.Up, "w": game.Up, "k": game.Up,
	"down": game.Down, "s": game.Down, "j": game.Down,
	"left": game.Left, "a": game.Left, "h": game.Left,
	"right": game.Right, "d": game.Right, "l": game.Right,
}

// Options configures a playable Model.
type Options struct {
	// Pilot steers instead of the keyboard when set.
	Pilot  runner.Pilot
	Sinks  []runner.Sink
	Styles *Styles
	Logger *slog.Logger
}

// Model plays a live session. Keys queue input; each TickMsg runs one
// session tick, so the bubbletea event loop is the only goroutine touching
// the session.
type Model struct {
	sess     *game.Session
	snap     game.Snapshot
	interval time.Duration
	opts     Options
	styles   Styles
	logger   *slog.Logger

	paused bool
	err    error
}

func New(sess *game.Session, opts Options) Model {
	st := DefaultStyles()
	if opts.Styles != nil {
		st = *opts.Styles
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return Model{
		sess:     sess,
		snap:     sess.Snapshot(),
		interval: sess.Config().TickInterval(),
		opts:     opts,
		styles:   st,
		logger:   logger.With("session", sess.ID()),
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
		default:
			if d, ok := keyDirections[k]; ok && m.opts.Pilot == nil {
				m.sess.Input(d)
			}
		}
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd(m.interval)
		}
		if m.opts.Pilot != nil {
			m.sess.Input(m.opts.Pilot.Next(m.snap))
		}
		snap, err := m.sess.Tick()
		m.snap = snap
		if err != nil {
			m.err = err
			m.logger.Error("tick failed", "tick", snap.Tick, "err", err)
			return m, tea.Quit
		}
		for _, sink := range m.opts.Sinks {
			if err := sink.Frame(snap); err != nil {
				m.err = err
				m.logger.Error("sink failed", "tick", snap.Tick, "err", err)
				return m, tea.Quit
			}
		}
		switch snap.Event {
		case game.EventAte:
			m.logger.Debug("food eaten", "tick", snap.Tick, "score", snap.Score)
		case game.EventSelfCollision, game.EventWallCollision:
			m.logger.Info("snake reset", "tick", snap.Tick, "cause", snap.Event)
		}
		return m, tickCmd(m.interval)
	}
	return m, nil
}

func (m Model) View() string {
	help := "arrows/wasd move · p pause · q quit"
	if m.opts.Pilot != nil {
		help = "autopilot · p pause · q quit"
	}
	if m.paused {
		help = "paused · p resume · q quit"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		ScoreLine(m.snap, m.styles),
		Board(m.snap, m.styles),
		m.styles.Help.Render(help),
	)
}

// Snapshot is the state currently on screen.
func (m Model) Snapshot() game.Snapshot { return m.snap }

// Err is the error that ended the program, if any.
func (m Model) Err() error { return m.err }
