// Package webpdecoder implements ports.FrameDecoder for animated WebP.
//
// Durations come from the webpmux metadata tool; pixels are demuxed from the
// RIFF container and decoded with golang.org/x/image/webp.
package webpdecoder

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"sync"

	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/frameseq"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// Options configures the decoder.
type Options struct {
	// Writers is the number of PNG writers used by Materialize.
	Writers int
}

// Decoder holds a demuxed WebP file.
type Decoder struct {
	path   string
	runner ports.ToolRunner
	opts   Options
	logger ports.Logger

	mu       sync.Mutex
	box      *container
	released bool
}

// Open reads and demuxes the file at path.
func Open(path string, runner ports.ToolRunner, opts Options, logger ports.Logger) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, media.NewDecodeError(media.KindWebP, "open", err)
	}
	box, err := demux(data)
	if err != nil {
		return nil, media.NewDecodeError(media.KindWebP, "demux", err)
	}

	logger.Debug("WebP opened: %d frames, %dx%d canvas", len(box.frames), box.canvasWidth, box.canvasHeight)
	return &Decoder{path: path, runner: runner, opts: opts, logger: logger, box: box}, nil
}

// Durations reads the frame table printed by `webpmux -info`. A missing
// tool or an unparsable table yields an empty list, which callers treat as
// a still image.
func (d *Decoder) Durations(ctx context.Context) (media.DurationList, error) {
	box, err := d.current()
	if err != nil {
		return nil, err
	}

	out, err := d.runner.Run(ctx, toolpath.WebPMux, "-info", d.path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		d.logger.Warn("webpmux unavailable, treating WebP as still: %v", err)
		return nil, nil
	}

	durations := parseFrameTable(out)
	d.logger.Debug("webpmux reported %d frames", len(durations))
	if err := checkFrameTable(durations, box); err != nil {
		d.logger.Warn("WebP frame table disagrees with container: %v", err)
	}
	return durations, nil
}

// Materialize decodes and composites every ANMF frame.
func (d *Decoder) Materialize(ctx context.Context, schedule media.RepeatSchedule, staging ports.FrameStore) (int, error) {
	box, err := d.current()
	if err != nil {
		return 0, err
	}
	if len(box.frames) < len(schedule.Repeats) {
		return 0, media.NewDecodeError(media.KindWebP, "materialize",
			fmt.Errorf("%w: container has %d frames, schedule %d",
				frameseq.ErrSourceExhausted, len(box.frames), len(schedule.Repeats)))
	}

	n, err := frameseq.Expand(ctx, newCompositor(box).next, schedule, staging, d.opts.Writers)
	if err != nil {
		return 0, media.NewDecodeError(media.KindWebP, "materialize", err)
	}
	return n, nil
}

// Release drops the demuxed data.
func (d *Decoder) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.box = nil
	d.released = true
	return nil
}

func (d *Decoder) current() (*container, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, media.NewDecodeError(media.KindWebP, "use after release", os.ErrClosed)
	}
	return d.box, nil
}

type compositor struct {
	box    *container
	canvas *image.NRGBA
	index  int
}

func newCompositor(box *container) *compositor {
	w, h := box.canvasWidth, box.canvasHeight
	if w == 0 || h == 0 {
		for _, f := range box.frames {
			w = max(w, f.x+f.width)
			h = max(h, f.y+f.height)
		}
	}
	return &compositor{box: box, canvas: image.NewNRGBA(image.Rect(0, 0, w, h))}
}

func (c *compositor) next(ctx context.Context) (image.Image, error) {
	if c.index >= len(c.box.frames) {
		return nil, io.EOF
	}
	f := c.box.frames[c.index]
	c.index++

	img, err := decodeFrame(f.payload, f.width, f.height)
	if err != nil {
		return nil, fmt.Errorf("decode frame %d: %w", c.index-1, err)
	}

	rect := image.Rect(f.x, f.y, f.x+f.width, f.y+f.height)
	op := draw.Src
	if f.blend {
		op = draw.Over
	}
	draw.Draw(c.canvas, rect, img, img.Bounds().Min, op)
	out := frameseq.Clone(c.canvas)

	if f.dispose {
		frameseq.ClearRect(c.canvas, rect)
	}
	return out, nil
}

var _ ports.FrameDecoder = (*Decoder)(nil)
