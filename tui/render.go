// Package tui is the terminal front-end: bubbletea supplies keyboard input
// and the frame clock, lipgloss draws the board.
package tui

import (
	"fmt"
	"strings"

	"github.com/brensch/snakewalls/game"
	"github.com/charmbracelet/lipgloss"
)

// Styles maps board elements to terminal cells. Every glyph is two columns
// wide so tiles come out roughly square.
type Styles struct {
	Empty lipgloss.Style
	Alt   lipgloss.Style
	Wall  lipgloss.Style
	Head  lipgloss.Style
	Body  lipgloss.Style
	Food  lipgloss.Style
	Score lipgloss.Style
	Help  lipgloss.Style
}

// DefaultStyles follows the classic palette: blue checkerboard, green snake,
// orange food, black walls.
func DefaultStyles() Styles {
	return Styles{
		Empty: lipgloss.NewStyle().Background(lipgloss.Color("#556DA9")),
		Alt:   lipgloss.NewStyle().Background(lipgloss.Color("#5796DA")),
		Wall:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5DD8E4")).Background(lipgloss.Color("#000000")),
		Head:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5DD8E4")).Background(lipgloss.Color("#1DC503")).Bold(true),
		Body:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5DD8E4")).Background(lipgloss.Color("#1DC503")),
		Food:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5DD8E4")).Background(lipgloss.Color("#DFA331")),
		Score: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true),
		Help:  lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")),
	}
}

const (
	glyphEmpty = "  "
	glyphWall  = "##"
	glyphHead  = "@@"
	glyphBody  = "[]"
	glyphFood  = "<>"
)

// Board draws the snapshot, top row first. Layers go snake, food, walls, so
// food shows on top of the body and walls on top of everything.
func Board(s game.Snapshot, st Styles) string {
	const (
		empty = iota
		wall
		food
		body
		head
	)
	cells := make([]int, s.Width*s.Height)
	set := func(p game.Point, kind int) {
		if p.X >= 0 && p.X < s.Width && p.Y >= 0 && p.Y < s.Height {
			cells[p.Y*s.Width+p.X] = kind
		}
	}
	for i := len(s.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			set(s.Snake[i], head)
		} else {
			set(s.Snake[i], body)
		}
	}
	set(s.Food, food)
	for _, w := range s.Walls {
		set(w, wall)
	}

	var b strings.Builder
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			switch cells[y*s.Width+x] {
			case wall:
				b.WriteString(st.Wall.Render(glyphWall))
			case head:
				b.WriteString(st.Head.Render(glyphHead))
			case body:
				b.WriteString(st.Body.Render(glyphBody))
			case food:
				b.WriteString(st.Food.Render(glyphFood))
			default:
				if (x+y)%2 == 0 {
					b.WriteString(st.Empty.Render(glyphEmpty))
				} else {
					b.WriteString(st.Alt.Render(glyphEmpty))
				}
			}
		}
		if y < s.Height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ScoreLine is the text shown above the board.
func ScoreLine(s game.Snapshot, st Styles) string {
	return st.Score.Render(fmt.Sprintf("Score %d", s.Score))
}
