// Package nativestatic encodes still stickers in-process with libwebp, for
// hosts without an ffmpeg build that has libwebp.
package nativestatic

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder for imaging.Open

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// ErrAnimatedOnly is returned by EncodeAnimated; frame sequences need ffmpeg.
var ErrAnimatedOnly = errors.New("nativestatic: animated output is not supported")

// qualitySteps are tried in order until the output fits the profile.
var qualitySteps = []float32{90, 80, 70, 60, 50, 40, 30, 20}

// Encoder implements the static half of ports.EncodeSink.
type Encoder struct {
	logger ports.Logger
}

// New creates an Encoder.
func New(logger ports.Logger) *Encoder {
	return &Encoder{logger: logger}
}

// EncodeStatic decodes inputPath, scales it to the profile and encodes it as
// lossy WebP, lowering quality until it fits profile.MaxBytes. When no
// quality fits, the smallest attempt is returned.
func (e *Encoder) EncodeStatic(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error) {
	src, err := imaging.Open(inputPath, imaging.AutoOrientation(true))
	if err != nil {
		return nil, &media.EncodeError{Container: media.ContainerWebP, Err: fmt.Errorf("decode input: %w", err)}
	}
	return e.Encode(ctx, src, profile)
}

// Encode scales and encodes an already decoded image.
func (e *Encoder) Encode(ctx context.Context, src image.Image, profile media.Profile) ([]byte, error) {
	b := src.Bounds()
	w, h := profile.FitSize(b.Dx(), b.Dy())
	scaled := imaging.Resize(src, w, h, imaging.Lanczos)

	var best []byte
	for _, q := range qualitySteps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := webp.Encode(&buf, scaled, &webp.Options{Quality: q}); err != nil {
			return nil, &media.EncodeError{Container: media.ContainerWebP, Err: err}
		}
		best = buf.Bytes()
		if profile.MaxBytes <= 0 || len(best) <= profile.MaxBytes {
			e.logger.Debug("Static WebP %dx%d at quality %.0f: %d bytes", w, h, q, len(best))
			return best, nil
		}
	}
	if len(best) == 0 {
		return nil, &media.EncodeError{Container: media.ContainerWebP, Err: errors.New("empty output")}
	}
	return best, nil
}

// EncodeAnimated always fails.
func (e *Encoder) EncodeAnimated(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error) {
	return nil, &media.EncodeError{Container: media.ContainerWebM, Err: ErrAnimatedOnly}
}

var _ ports.EncodeSink = (*Encoder)(nil)
