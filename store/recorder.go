package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brensch/snakewalls/game"
	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// Recorder streams frames of a single session into outDir/tmp and moves the
// finished file into outDir on Close, so readers never see a partial file.
type Recorder struct {
	tmpPath string
	outPath string

	file   *os.File
	writer *parquet.GenericWriter[FrameRow]

	frames int
}

// NewRecorder opens session_<id>.parquet for the session described by
// initial. The initial snapshot is only used for metadata; it is not a frame.
func NewRecorder(outDir string, initial game.Snapshot) (*Recorder, error) {
	if outDir == "" {
		return nil, fmt.Errorf("outDir is required")
	}
	if initial.SessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		absOut = outDir
	}
	tmpDir := filepath.Join(absOut, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return nil, fmt.Errorf("create tmp dir: %w", err)
	}

	walls, err := json.Marshal(initial.Walls)
	if err != nil {
		return nil, fmt.Errorf("encode walls: %w", err)
	}

	name := fmt.Sprintf("session_%s.parquet", initial.SessionID)
	tmpPath := filepath.Join(tmpDir, name)
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open tmp parquet: %w", err)
	}

	w := parquet.NewGenericWriter[FrameRow](
		f,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
	)
	w.SetKeyValueMetadata("schema", SchemaVersion)
	w.SetKeyValueMetadata("session_id", initial.SessionID)
	w.SetKeyValueMetadata("walls", string(walls))

	return &Recorder{
		tmpPath: tmpPath,
		outPath: filepath.Join(absOut, name),
		file:    f,
		writer:  w,
	}, nil
}

func (r *Recorder) OutPath() string { return r.outPath }
func (r *Recorder) Frames() int     { return r.frames }

// Frame appends one tick.
func (r *Recorder) Frame(s game.Snapshot) error {
	if r.writer == nil {
		return fmt.Errorf("recorder is closed")
	}
	if _, err := r.writer.Write([]FrameRow{FrameFromSnapshot(s)}); err != nil {
		return fmt.Errorf("write frame %d: %w", s.Tick, err)
	}
	r.frames++
	return nil
}

// Close finalizes the file. With no frames written the tmp file is removed
// and the returned path is empty.
func (r *Recorder) Close() (outPath string, frames int, err error) {
	if r.writer == nil && r.file == nil {
		return "", 0, nil
	}

	var closeErr, fileErr error
	if r.writer != nil {
		closeErr = r.writer.Close()
		r.writer = nil
	}
	if r.file != nil {
		_ = r.file.Sync()
		fileErr = r.file.Close()
		r.file = nil
	}
	if closeErr != nil {
		return "", 0, fmt.Errorf("close parquet writer: %w", closeErr)
	}
	if fileErr != nil {
		return "", 0, fmt.Errorf("close parquet file: %w", fileErr)
	}

	if r.frames == 0 {
		_ = os.Remove(r.tmpPath)
		return "", 0, nil
	}
	if err := os.Rename(r.tmpPath, r.outPath); err != nil {
		return "", 0, fmt.Errorf("rename parquet: %w", err)
	}
	return r.outPath, r.frames, nil
}
