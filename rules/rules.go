// Package rules holds move evaluation shared by the autopilot and tests.
//
// Everything here works on game.Snapshot only, so it never mutates a
// session and can run on recorded frames as well as live ones.
package rules

import (
	"github.com/brensch/snakewalls/game"
)

// NextHead returns where the head lands after moving d, wrapping on the torus.
func NextHead(s game.Snapshot, d game.Direction) game.Point {
	return s.Grid().Wrap(s.Head().Add(d.Delta()))
}

// IsLegal reports whether the snake would accept d as a turn.
func IsLegal(s game.Snapshot, d game.Direction) bool {
	if !d.Valid() {
		return false
	}
	return s.Length <= 1 || d != s.Direction.Opposite()
}

// IsSafe reports whether moving d keeps the snake alive for the next two
// ticks: the new head is neither a wall (walls are checked one tick late)
// nor part of the body beyond the neck.
func IsSafe(s game.Snapshot, d game.Direction, walls map[game.Point]bool) bool {
	if !IsLegal(s, d) {
		return false
	}
	next := NextHead(s, d)

	// 1. Walls
	if walls[next] {
		return false
	}

	// 2. Body, mirroring the positions[2:] self-collision rule
	if len(s.Snake) > 2 {
		for _, p := range s.Snake[2:] {
			if p == next {
				return false
			}
		}
	}
	return true
}

// WallSet indexes snapshot walls for repeated IsSafe calls.
func WallSet(s game.Snapshot) map[game.Point]bool {
	out := make(map[game.Point]bool, len(s.Walls))
	for _, w := range s.Walls {
		out[w] = true
	}
	return out
}

// SafeMoves lists the safe directions in game.Directions order.
func SafeMoves(s game.Snapshot) []game.Direction {
	walls := WallSet(s)
	moves := make([]game.Direction, 0, 4)
	for _, d := range game.Directions {
		if IsSafe(s, d, walls) {
			moves = append(moves, d)
		}
	}
	return moves
}

// Autopilot steers greedily toward food along safe moves.
type Autopilot struct{}

// Next picks the safe move with the shortest wrap-aware distance to food,
// keeping the current heading on ties. With no safe move it keeps heading.
func (Autopilot) Next(s game.Snapshot) game.Direction {
	moves := SafeMoves(s)
	if len(moves) == 0 {
		return s.Direction
	}
	g := s.Grid()
	best := moves[0]
	bestDist := g.ManhattanDistance(NextHead(s, best), s.Food)
	for _, d := range moves[1:] {
		dist := g.ManhattanDistance(NextHead(s, d), s.Food)
		if dist < bestDist || (dist == bestDist && d == s.Direction) {
			best, bestDist = d, dist
		}
	}
	return best
}
