package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/brensch/snakewalls/game"
	"github.com/parquet-go/parquet-go"
)

// Recording is a session read back from disk.
type Recording struct {
	SessionID string
	Walls     []game.Point
	Frames    []FrameRow
}

// Snapshots rebuilds every frame with the session walls attached.
func (r Recording) Snapshots() []game.Snapshot {
	out := make([]game.Snapshot, len(r.Frames))
	for i, f := range r.Frames {
		out[i] = f.Snapshot(r.Walls)
	}
	return out
}

// ReadRecording loads a file written by Recorder.
func ReadRecording(path string) (Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return Recording{}, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return Recording{}, fmt.Errorf("stat recording: %w", err)
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return Recording{}, fmt.Errorf("open parquet: %w", err)
	}

	if schema, _ := pf.Lookup("schema"); schema != SchemaVersion {
		return Recording{}, fmt.Errorf("unexpected schema %q in %s", schema, path)
	}
	rec := Recording{}
	rec.SessionID, _ = pf.Lookup("session_id")
	if raw, ok := pf.Lookup("walls"); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &rec.Walls); err != nil {
			return Recording{}, fmt.Errorf("decode walls: %w", err)
		}
	}

	reader := parquet.NewGenericReader[FrameRow](pf)
	defer reader.Close()

	for {
		// Fresh buffer per batch: Read reuses slice fields of the rows it is given.
		buf := make([]FrameRow, 256)
		n, err := reader.Read(buf)
		rec.Frames = append(rec.Frames, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return Recording{}, fmt.Errorf("read frames: %w", err)
		}
	}
	return rec, nil
}
