package tui

import (
	"fmt"
	"time"

	"github.com/brensch/snakewalls/game"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Replay plays recorded frames back at a fixed rate.
type Replay struct {
	frames   []game.Snapshot
	idx      int
	interval time.Duration
	styles   Styles
	paused   bool
}

func NewReplay(frames []game.Snapshot, interval time.Duration) Replay {
	return Replay{frames: frames, interval: interval, styles: DefaultStyles()}
}

func (r Replay) Init() tea.Cmd {
	if len(r.frames) == 0 {
		return tea.Quit
	}
	return tickCmd(r.interval)
}

func (r Replay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return r, tea.Quit
		case "p", " ":
			r.paused = !r.paused
		case "right", "l":
			r.step(1)
		case "left", "h":
			r.step(-1)
		}
		return r, nil
	case TickMsg:
		if !r.paused && r.idx < len(r.frames)-1 {
			r.idx++
		}
		return r, tickCmd(r.interval)
	}
	return r, nil
}

func (r *Replay) step(n int) {
	r.paused = true
	r.idx += n
	if r.idx < 0 {
		r.idx = 0
	}
	if r.idx > len(r.frames)-1 {
		r.idx = len(r.frames) - 1
	}
}

func (r Replay) View() string {
	if len(r.frames) == 0 {
		return "empty recording\n"
	}
	s := r.frames[r.idx]
	status := fmt.Sprintf("tick %d/%d · %s · p pause · ←/→ step · q quit", s.Tick, r.frames[len(r.frames)-1].Tick, s.Event)
	return lipgloss.JoinVertical(lipgloss.Left,
		ScoreLine(s, r.styles),
		Board(s, r.styles),
		r.styles.Help.Render(status),
	)
}

// Frame is the index of the frame on screen.
func (r Replay) Frame() int { return r.idx }
