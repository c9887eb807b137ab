// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image/color"
	"path/filepath"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// Contact sheet geometry.
const (
	MaxSheetFrames = 16
	sheetColumns   = 4
	cellSize       = 128
	cellPadding    = 8
	labelHeight    = 16
)

var (
	sheetBackground = color.NRGBA{R: 0x24, G: 0x24, B: 0x24, A: 0xff}
	checkerLight    = color.NRGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
	checkerDark     = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xff}
	labelColor      = color.White
)

// Sink saves debug output to files under baseDir/<request id>/.
type Sink struct {
	baseDir  string
	fs       ports.FileSystem
	renderer ports.Renderer
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, renderer ports.Renderer) *Sink {
	return &Sink{
		baseDir:  baseDir,
		fs:       fs,
		renderer: renderer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveDurationsJSON saves the decoded duration list as durations.json.
func (s *Sink) SaveDurationsJSON(requestID string, data []byte) error {
	return s.write(requestID, "durations.json", data)
}

// SaveScheduleJSON saves the repeat schedule as schedule.json.
func (s *Sink) SaveScheduleJSON(requestID string, data []byte) error {
	return s.write(requestID, "schedule.json", data)
}

// SavePlanJSON saves the encode plan as plan.json.
func (s *Sink) SavePlanJSON(requestID string, data []byte) error {
	return s.write(requestID, "plan.json", data)
}

// SaveContactSheet renders up to MaxSheetFrames evenly spaced staged frames
// into contact.png. Each cell has a checkerboard so transparency is visible.
func (s *Sink) SaveContactSheet(requestID string, seq media.FrameSequence) error {
	indices := sampleIndices(seq.Count, MaxSheetFrames)
	if len(indices) == 0 {
		return nil
	}

	cols := min(sheetColumns, len(indices))
	rows := (len(indices) + cols - 1) / cols
	pitchX := cellSize + cellPadding
	pitchY := cellSize + labelHeight + cellPadding
	canvas := s.renderer.CreateCanvas(cols*pitchX+cellPadding, rows*pitchY+cellPadding, sheetBackground)

	pattern := seq.Pattern
	if pattern == "" {
		pattern = media.FramePattern
	}
	for i, index := range indices {
		data, err := s.fs.ReadFile(filepath.Join(seq.Dir, fmt.Sprintf(pattern, index)))
		if err != nil {
			return fmt.Errorf("read frame %d: %w", index, err)
		}
		img, err := s.renderer.DecodeImage(data)
		if err != nil {
			return fmt.Errorf("decode frame %d: %w", index, err)
		}

		x := cellPadding + (i%cols)*pitchX
		y := cellPadding + (i/cols)*pitchY
		canvas.DrawChecker(x, y, cellSize, cellSize, 8, checkerLight, checkerDark)
		canvas.DrawImageFit(img, x, y, cellSize, cellSize)
		canvas.DrawRectStroke(x, y, cellSize, cellSize, labelColor, 1)
		canvas.DrawText(fmt.Sprintf("#%d", index), x, y+cellSize+labelHeight-4, labelColor)
	}

	data, err := s.renderer.EncodeImage(canvas.ToImage())
	if err != nil {
		return fmt.Errorf("encode contact sheet: %w", err)
	}
	return s.write(requestID, "contact.png", data)
}

func (s *Sink) write(requestID, name string, data []byte) error {
	dir := filepath.Join(s.baseDir, requestID)
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	return s.fs.WriteFile(filepath.Join(dir, name), data)
}

// sampleIndices picks up to limit indices spread evenly over [0, count),
// always including the first and last frame.
func sampleIndices(count, limit int) []int {
	if count <= 0 || limit <= 0 {
		return nil
	}
	if count <= limit {
		out := make([]int, count)
		for i := range out {
			out[i] = i
		}
		return out
	}
	if limit == 1 {
		return []int{0}
	}
	out := make([]int, limit)
	for i := range out {
		out[i] = i * (count - 1) / (limit - 1)
	}
	return out
}

var _ ports.DebugSink = (*Sink)(nil)
