// Package ffmpegencoder implements ports.EncodeSink on top of the ffmpeg
// command line tool.
package ffmpegencoder

import (
	"context"
	"errors"

	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// ErrEmptyOutput is wrapped by an EncodeError when ffmpeg succeeded but
// wrote nothing.
var ErrEmptyOutput = errors.New("ffmpeg produced no output")

// Options configures the encoder.
type Options struct {
	// CRF is the VP9 constant rate factor. Zero means DefaultCRF.
	CRF int
}

// Encoder runs ffmpeg through a ToolRunner.
type Encoder struct {
	runner ports.ToolRunner
	opts   Options
	logger ports.Logger
}

// New creates an Encoder.
func New(runner ports.ToolRunner, opts Options, logger ports.Logger) *Encoder {
	if opts.CRF <= 0 {
		opts.CRF = DefaultCRF
	}
	return &Encoder{runner: runner, opts: opts, logger: logger}
}

// EncodeAnimated encodes seq into a VP9 WebM following plan.
func (e *Encoder) EncodeAnimated(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error) {
	args := animatedArgs(seq, plan, e.opts.CRF)
	e.logger.Debug("Encoding %d frames at %s fps, speed-up %.5f", seq.Count, inputRate(plan), plan.SpeedUp)
	return e.run(ctx, media.ContainerWebM, args)
}

// EncodeStatic encodes the first frame of inputPath as a WebP image.
func (e *Encoder) EncodeStatic(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error) {
	e.logger.Debug("Encoding static image %s", inputPath)
	return e.run(ctx, media.ContainerWebP, staticArgs(inputPath, profile))
}

func (e *Encoder) run(ctx context.Context, container media.Container, args []string) ([]byte, error) {
	out, err := e.runner.Run(ctx, toolpath.FFmpeg, args...)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		encErr := &media.EncodeError{Container: container, Err: err}
		var runErr *toolpath.RunError
		if errors.As(err, &runErr) {
			encErr.Stderr = runErr.Stderr
			encErr.Err = runErr.Err
		}
		return nil, encErr
	}
	if len(out) == 0 {
		return nil, &media.EncodeError{Container: container, Err: ErrEmptyOutput}
	}
	return out, nil
}

var _ ports.EncodeSink = (*Encoder)(nil)
