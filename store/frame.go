// Package store records sessions to Parquet, one row per tick.
package store

import (
	"github.com/brensch/snakewalls/game"
)

// SchemaVersion is written to the file metadata under "schema".
const SchemaVersion = "snakewalls_frame_v1"

// FrameRow is the post-tick state of one session tick.
//
// Walls are static per session, so they are not repeated per row; they live
// in the file's key/value metadata under "walls" as JSON.
type FrameRow struct {
	SessionID string `parquet:"session_id,dict"`
	Tick      int64  `parquet:"tick"`
	Width     int32  `parquet:"width"`
	Height    int32  `parquet:"height"`
	TileSize  int32  `parquet:"tile_size"`

	BodyX     []int32 `parquet:"body_x"`
	BodyY     []int32 `parquet:"body_y"`
	Direction string  `parquet:"direction,dict"`
	Length    int32   `parquet:"length"`
	Score     int32   `parquet:"score"`

	FoodX int32 `parquet:"food_x"`
	FoodY int32 `parquet:"food_y"`

	Event  string `parquet:"event,dict"`
	Resets int32  `parquet:"resets"`
}

// FrameFromSnapshot flattens a snapshot into a row.
func FrameFromSnapshot(s game.Snapshot) FrameRow {
	row := FrameRow{
		SessionID: s.SessionID,
		Tick:      int64(s.Tick),
		Width:     int32(s.Width),
		Height:    int32(s.Height),
		TileSize:  int32(s.TileSize),
		BodyX:     make([]int32, len(s.Snake)),
		BodyY:     make([]int32, len(s.Snake)),
		Direction: s.Direction.String(),
		Length:    int32(s.Length),
		Score:     int32(s.Score),
		FoodX:     int32(s.Food.X),
		FoodY:     int32(s.Food.Y),
		Event:     string(s.Event),
		Resets:    int32(s.Resets),
	}
	for i, p := range s.Snake {
		row.BodyX[i] = int32(p.X)
		row.BodyY[i] = int32(p.Y)
	}
	return row
}

// Snapshot rebuilds the renderable state of a row. An unknown direction
// string decodes as game.Up.
func (r FrameRow) Snapshot(walls []game.Point) game.Snapshot {
	dir, _ := game.ParseDirection(r.Direction)
	body := make([]game.Point, len(r.BodyX))
	for i := range body {
		body[i] = game.Point{X: int(r.BodyX[i]), Y: int(r.BodyY[i])}
	}
	return game.Snapshot{
		SessionID: r.SessionID,
		Tick:      uint64(r.Tick),
		Width:     int(r.Width),
		Height:    int(r.Height),
		TileSize:  int(r.TileSize),
		Snake:     body,
		Direction: dir,
		Length:    int(r.Length),
		Score:     int(r.Score),
		Food:      game.Point{X: int(r.FoodX), Y: int(r.FoodY)},
		Walls:     append([]game.Point(nil), walls...),
		Event:     game.Event(r.Event),
		Resets:    int(r.Resets),
	}
}
