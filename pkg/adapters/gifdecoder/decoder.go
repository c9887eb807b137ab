// Package gifdecoder implements ports.FrameDecoder for animated GIF.
package gifdecoder

import (
	"bytes"
	"context"
	"image"
	"image/draw"
	"image/gif"
	"io"
	"os"
	"sync"

	"github.com/user/stickerize/pkg/frameseq"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// DefaultZeroDelayMs replaces a stored frame delay of 0, matching how
// browsers play such files.
const DefaultZeroDelayMs = 100

// Options configures the decoder.
type Options struct {
	// ZeroDelayMs replaces a stored delay of 0. Negative keeps 0, which
	// drops the frame from the schedule.
	ZeroDelayMs int
	// Writers is the number of PNG writers used by Materialize.
	Writers int
}

// DefaultOptions returns the default decoder options.
func DefaultOptions() Options {
	return Options{ZeroDelayMs: DefaultZeroDelayMs, Writers: frameseq.DefaultWriters}
}

// Decoder holds a fully parsed GIF.
type Decoder struct {
	opts   Options
	logger ports.Logger

	mu       sync.Mutex
	anim     *gif.GIF
	released bool
}

// Open parses the GIF at path. Failing to read frame 0 is a DecodeError.
func Open(path string, opts Options, logger ports.Logger) (*Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, media.NewDecodeError(media.KindGIF, "open", err)
	}
	defer f.Close()

	return Decode(f, opts, logger)
}

// Decode parses a GIF from r. A stream that breaks off after frame 0, such
// as a download missing its trailer, keeps the frames stored before the
// break.
func Decode(r io.Reader, opts Options, logger ports.Logger) (*Decoder, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, media.NewDecodeError(media.KindGIF, "read", err)
	}

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		end, images := completePrefix(data)
		if images == 0 {
			return nil, media.NewDecodeError(media.KindGIF, "read frame 0", err)
		}
		salvaged, serr := gif.DecodeAll(bytes.NewReader(withTrailer(data, end)))
		if serr != nil {
			return nil, media.NewDecodeError(media.KindGIF, "read frames", err)
		}
		logger.Warn("GIF stream is cut short, keeping %d complete frames: %v", len(salvaged.Image), err)
		anim = salvaged
	}
	if len(anim.Image) == 0 {
		return nil, media.NewDecodeError(media.KindGIF, "read frame 0", io.ErrUnexpectedEOF)
	}

	logger.Debug("GIF opened: %d frames, %dx%d", len(anim.Image), anim.Config.Width, anim.Config.Height)
	return &Decoder{opts: opts, logger: logger, anim: anim}, nil
}

// Durations returns delay*10 ms per frame.
func (d *Decoder) Durations(ctx context.Context) (media.DurationList, error) {
	anim, err := d.current()
	if err != nil {
		return nil, err
	}

	durations := make(media.DurationList, len(anim.Image))
	for i := range anim.Image {
		delay := 0
		if i < len(anim.Delay) {
			delay = anim.Delay[i] * 10
		}
		if delay == 0 && d.opts.ZeroDelayMs > 0 {
			delay = d.opts.ZeroDelayMs
		}
		durations[i] = delay
	}
	return durations, nil
}

// Materialize composites every frame onto the logical screen and writes the
// expanded sequence.
func (d *Decoder) Materialize(ctx context.Context, schedule media.RepeatSchedule, staging ports.FrameStore) (int, error) {
	anim, err := d.current()
	if err != nil {
		return 0, err
	}

	n, err := frameseq.Expand(ctx, newCompositor(anim).next, schedule, staging, d.opts.Writers)
	if err != nil {
		return 0, media.NewDecodeError(media.KindGIF, "materialize", err)
	}
	return n, nil
}

// Release drops the decoded frames.
func (d *Decoder) Release() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.anim = nil
	d.released = true
	return nil
}

func (d *Decoder) current() (*gif.GIF, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.released {
		return nil, media.NewDecodeError(media.KindGIF, "use after release", os.ErrClosed)
	}
	return d.anim, nil
}

// compositor replays GIF disposal semantics frame by frame.
type compositor struct {
	anim     *gif.GIF
	canvas   *image.NRGBA
	previous *image.NRGBA
	index    int
}

func newCompositor(anim *gif.GIF) *compositor {
	w, h := anim.Config.Width, anim.Config.Height
	if w == 0 || h == 0 {
		b := anim.Image[0].Bounds()
		for _, frame := range anim.Image[1:] {
			b = b.Union(frame.Bounds())
		}
		w, h = b.Max.X, b.Max.Y
	}
	return &compositor{
		anim:   anim,
		canvas: image.NewNRGBA(image.Rect(0, 0, w, h)),
	}
}

func (c *compositor) next(ctx context.Context) (image.Image, error) {
	if c.index >= len(c.anim.Image) {
		return nil, io.EOF
	}
	i := c.index
	c.index++

	frame := c.anim.Image[i]
	disposal := byte(0)
	if i < len(c.anim.Disposal) {
		disposal = c.anim.Disposal[i]
	}

	if disposal == gif.DisposalPrevious {
		c.previous = frameseq.Clone(c.canvas)
	}

	draw.Draw(c.canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
	out := frameseq.Clone(c.canvas)

	switch disposal {
	case gif.DisposalBackground:
		frameseq.ClearRect(c.canvas, frame.Bounds())
	case gif.DisposalPrevious:
		if c.previous != nil {
			c.canvas = c.previous
			c.previous = nil
		}
	}
	return out, nil
}

var _ ports.FrameDecoder = (*Decoder)(nil)
