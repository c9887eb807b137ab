// Package smartencoder combines the ffmpeg and in-process encoders into one
// ports.EncodeSink and picks the still-image backend with fallback support.
package smartencoder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// StaticMode selects how still stickers are encoded.
type StaticMode string

const (
	// StaticAuto uses ffmpeg when available and falls back to native.
	StaticAuto StaticMode = "auto"
	// StaticFFmpeg always uses ffmpeg with libwebp.
	StaticFFmpeg StaticMode = "ffmpeg"
	// StaticNative always encodes in-process.
	StaticNative StaticMode = "native"
)

// ParseStaticMode parses a configuration value. Empty means StaticAuto.
func ParseStaticMode(s string) (StaticMode, error) {
	switch m := StaticMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return StaticAuto, nil
	case StaticAuto, StaticFFmpeg, StaticNative:
		return m, nil
	default:
		return "", fmt.Errorf("unknown static encoder %q", s)
	}
}

// Backend represents the encoding backend used.
type Backend string

const (
	// BackendFFmpeg represents ffmpeg-based encoding.
	BackendFFmpeg Backend = "ffmpeg"
	// BackendNative represents in-process libwebp encoding.
	BackendNative Backend = "native"
)

// Info contains information about the selected still-image encoder.
type Info struct {
	// Static is the backend still stickers are encoded with.
	Static Backend
	// Requested is the configured mode.
	Requested StaticMode
	// FallbackUsed indicates ffmpeg was wanted but is not available.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	Mode StaticMode
	// FFmpegAvailable reports whether the ffmpeg binary was found.
	FFmpegAvailable bool
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

// ErrNoEncoderAvailable is returned when the requested backend is missing.
var ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")

// Encoder routes animated output to ffmpeg and still output to the
// selected backend.
type Encoder struct {
	ffmpeg ports.EncodeSink
	native ports.EncodeSink
	static Backend
}

// New selects the still-image backend.
//
// The selection flow for StaticAuto:
//  1. ffmpeg when it is available
//  2. native otherwise
//
// Selection happens once; a failed encode is never retried on the other
// backend.
func New(ffmpeg, native ports.EncodeSink, opts Options) (*Encoder, Info, error) {
	if opts.Mode == "" {
		opts.Mode = StaticAuto
	}
	e := &Encoder{ffmpeg: ffmpeg, native: native}
	info := Info{Requested: opts.Mode}

	switch opts.Mode {
	case StaticFFmpeg:
		if !opts.FFmpegAvailable {
			return nil, Info{}, fmt.Errorf("%w: ffmpeg not found", ErrNoEncoderAvailable)
		}
		e.static = BackendFFmpeg
	case StaticNative:
		e.static = BackendNative
	case StaticAuto:
		if opts.FFmpegAvailable {
			e.static = BackendFFmpeg
		} else {
			if opts.Logger != nil {
				opts.Logger.Warn("ffmpeg not available, encoding still images natively")
			}
			e.static = BackendNative
			info.FallbackUsed = true
		}
	default:
		return nil, Info{}, fmt.Errorf("unknown static encoder %q", opts.Mode)
	}

	info.Static = e.static
	return e, info, nil
}

// EncodeAnimated always uses ffmpeg.
func (e *Encoder) EncodeAnimated(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error) {
	return e.ffmpeg.EncodeAnimated(ctx, seq, plan)
}

// EncodeStatic uses the selected backend.
func (e *Encoder) EncodeStatic(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error) {
	if e.static == BackendNative {
		return e.native.EncodeStatic(ctx, inputPath, profile)
	}
	return e.ffmpeg.EncodeStatic(ctx, inputPath, profile)
}

var _ ports.EncodeSink = (*Encoder)(nil)
