// Package avifdecoder implements ports.FrameDecoder for AVIF image
// sequences, including sequences whose alpha lives in a separate track.
package avifdecoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"math"
	"os"
	"sync"

	"github.com/Eyevinn/mp4ff/mp4"
	xdraw "golang.org/x/image/draw"

	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/frameseq"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

var errNoSequence = errors.New("no image sequence in file")

// Options configures the decoder.
type Options struct {
	// FFmpegPath is the AV1 decoder binary. Empty means "ffmpeg" on PATH.
	FFmpegPath string
	// Writers is the number of PNG writers used by Materialize.
	Writers int
}

// Decoder holds a parsed AVIF container.
type Decoder struct {
	opts   Options
	logger ports.Logger

	mu       sync.Mutex
	data     []byte
	totalMs  int
	primary  *track
	alpha    *track
	pipes    []*framePipe
	released bool
}

// Open reads and parses the file at path.
func Open(path string, opts Options, logger ports.Logger) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, media.NewDecodeError(media.KindAVIF, "open", err)
	}
	return Parse(data, opts, logger)
}

// Parse selects the primary and alpha tracks of an in-memory AVIF. A file
// without a movie box is a still image and parses to a decoder with no
// frames.
func Parse(data []byte, opts Options, logger ports.Logger) (*Decoder, error) {
	if opts.FFmpegPath == "" {
		opts.FFmpegPath = toolpath.FFmpeg
	}
	d := &Decoder{opts: opts, logger: logger, data: data}

	file, err := mp4.DecodeFile(bytes.NewReader(data))
	if err != nil {
		return nil, media.NewDecodeError(media.KindAVIF, "parse container", err)
	}
	if file.Moov == nil {
		logger.Debug("AVIF has no image sequence, treating as still")
		return d, nil
	}

	tracks := readTracks(file.Moov)
	for _, t := range tracks {
		logger.Debug("AVIF %s", t)
	}
	d.primary, d.alpha, err = selectStreams(tracks)
	if err != nil {
		return nil, media.NewDecodeError(media.KindAVIF, "select streams", err)
	}
	if mvhd := file.Moov.Mvhd; mvhd != nil && mvhd.Timescale > 0 {
		d.totalMs = int(math.Round(float64(mvhd.Duration) * 1000 / float64(mvhd.Timescale)))
	}

	if d.alpha != nil {
		logger.Debug("AVIF primary track %d, alpha track %d", d.primary.id, d.alpha.id)
	} else {
		logger.Debug("AVIF primary track %d without alpha track", d.primary.id)
	}
	return d, nil
}

// Durations derives per-frame durations from the primary track timestamps.
func (d *Decoder) Durations(ctx context.Context) (media.DurationList, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, media.NewDecodeError(media.KindAVIF, "use after release", os.ErrClosed)
	}
	if d.primary == nil {
		return nil, nil
	}

	ts, deltas := d.primary.timestampsMs()
	if len(ts) == 0 {
		return nil, media.NewDecodeError(media.KindAVIF, "read timestamps", errNoSampleTable)
	}
	return durationsFromTimestamps(ts, d.totalMs, deltas[len(deltas)-1]), nil
}

// Materialize decodes the primary track, and the alpha track in lock-step
// when there is one, and writes the expanded sequence to staging.
func (d *Decoder) Materialize(ctx context.Context, schedule media.RepeatSchedule, staging ports.FrameStore) (int, error) {
	colorPipe, alphaPipe, err := d.start(ctx)
	if err != nil {
		return 0, media.NewDecodeError(media.KindAVIF, "materialize", err)
	}
	defer func() {
		colorPipe.close()
		if alphaPipe != nil {
			alphaPipe.close()
		}
	}()

	var lastMask image.Image
	next := func(ctx context.Context) (image.Image, error) {
		img, err := colorPipe.next()
		if err != nil {
			return nil, err
		}
		frame := frameseq.ToNRGBA(img)
		if alphaPipe == nil {
			return frame, nil
		}

		mask, err := alphaPipe.next()
		switch {
		case errors.Is(err, io.EOF) && lastMask != nil:
			mask = lastMask
		case err != nil:
			return nil, fmt.Errorf("alpha: %w", err)
		}
		lastMask = mask
		return applyAlpha(frame, mask), nil
	}

	n, err := frameseq.Expand(ctx, next, schedule, staging, d.opts.Writers)
	if err != nil {
		return 0, media.NewDecodeError(media.KindAVIF, "materialize", err)
	}
	return n, nil
}

func (d *Decoder) start(ctx context.Context) (colorPipe, alphaPipe *framePipe, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, nil, os.ErrClosed
	}
	if d.primary == nil {
		return nil, nil, errNoSequence
	}

	colorPipe, err = d.startTrack(ctx, d.primary, "rgba")
	if err != nil {
		return nil, nil, fmt.Errorf("color track %d: %w", d.primary.id, err)
	}
	if d.alpha != nil {
		alphaPipe, err = d.startTrack(ctx, d.alpha, "gray")
		if err != nil {
			colorPipe.close()
			return nil, nil, fmt.Errorf("alpha track %d: %w", d.alpha.id, err)
		}
	}
	return colorPipe, alphaPipe, nil
}

// startTrack must be called with d.mu held.
func (d *Decoder) startTrack(ctx context.Context, t *track, pixFmt string) (*framePipe, error) {
	samples, err := t.sampleData(d.data)
	if err != nil {
		return nil, err
	}
	p, err := startPipe(ctx, d.opts.FFmpegPath, obuStream(t.entry.configOBUs, samples), pixFmt)
	if err != nil {
		return nil, err
	}
	d.pipes = append(d.pipes, p)
	return p, nil
}

// Release stops any running decoder process and drops the file data.
func (d *Decoder) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, p := range d.pipes {
		p.close()
	}
	d.pipes = nil
	d.data = nil
	d.released = true
	return nil
}

// applyAlpha uses the luma of mask as the alpha channel of frame, scaling
// the mask to the frame size when they differ.
func applyAlpha(frame *image.NRGBA, mask image.Image) *image.NRGBA {
	bounds := frame.Bounds()
	gray := image.NewGray(bounds)
	if mask.Bounds().Size() == bounds.Size() {
		draw.Draw(gray, bounds, mask, mask.Bounds().Min, draw.Src)
	} else {
		xdraw.BiLinear.Scale(gray, bounds, mask, mask.Bounds(), xdraw.Src, nil)
	}

	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		row := frame.Pix[y*frame.Stride:]
		alpha := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			row[x*4+3] = alpha[x]
		}
	}
	return frame
}

var _ ports.FrameDecoder = (*Decoder)(nil)
