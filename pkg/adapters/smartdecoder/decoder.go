// Package smartdecoder selects the frame decoder for a detected content
// kind.
package smartdecoder

import (
	"context"
	"fmt"

	"github.com/user/stickerize/pkg/adapters/avifdecoder"
	"github.com/user/stickerize/pkg/adapters/gifdecoder"
	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/adapters/webpdecoder"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// Backend names the machinery behind a decoder.
type Backend string

const (
	// BackendNative decodes in-process with image/gif.
	BackendNative Backend = "native"
	// BackendWebPMux reads durations through webpmux and pixels in-process.
	BackendWebPMux Backend = "webpmux"
	// BackendFFmpeg decodes AV1 samples with an ffmpeg subprocess.
	BackendFFmpeg Backend = "ffmpeg"
)

// Info describes the decoder chosen for a kind.
type Info struct {
	Kind    media.ContentKind
	Backend Backend
}

// Options configures the decoders the factory creates.
type Options struct {
	GIF gifdecoder.Options
	// Writers overrides the PNG writer count of every decoder when > 0.
	Writers int
}

// Factory implements ports.DecoderFactory.
type Factory struct {
	runner *toolpath.Runner
	opts   Options
	logger ports.Logger
}

// New creates a factory. Tool paths resolve through runner.
func New(runner *toolpath.Runner, opts Options, logger ports.Logger) *Factory {
	if opts.GIF == (gifdecoder.Options{}) {
		opts.GIF = gifdecoder.DefaultOptions()
	}
	return &Factory{runner: runner, opts: opts, logger: logger}
}

// Describe reports which decoder Open would use for kind.
func Describe(kind media.ContentKind) (Info, error) {
	switch kind {
	case media.KindGIF:
		return Info{Kind: kind, Backend: BackendNative}, nil
	case media.KindWebP:
		return Info{Kind: kind, Backend: BackendWebPMux}, nil
	case media.KindAVIF:
		return Info{Kind: kind, Backend: BackendFFmpeg}, nil
	default:
		return Info{}, fmt.Errorf("%w: %s", media.ErrUnrecognizedFormat, kind)
	}
}

// Open opens path with the decoder for kind.
func (f *Factory) Open(ctx context.Context, kind media.ContentKind, path string) (ports.FrameDecoder, error) {
	info, err := Describe(kind)
	if err != nil {
		return nil, err
	}
	log := f.logger.WithComponent("decode")
	log.Debug("Opening %s decoder (%s)", info.Kind, info.Backend)

	switch kind {
	case media.KindGIF:
		opts := f.opts.GIF
		if f.opts.Writers > 0 {
			opts.Writers = f.opts.Writers
		}
		return gifdecoder.Open(path, opts, log)

	case media.KindWebP:
		return webpdecoder.Open(path, f.runner, webpdecoder.Options{Writers: f.opts.Writers}, log)

	case media.KindAVIF:
		ffmpeg, err := f.runner.Path(toolpath.FFmpeg)
		if err != nil {
			return nil, media.NewDecodeError(kind, "find decoder", err)
		}
		return avifdecoder.Open(path, avifdecoder.Options{FFmpegPath: ffmpeg, Writers: f.opts.Writers}, log)
	}
	return nil, fmt.Errorf("%w: %s", media.ErrUnrecognizedFormat, kind)
}

var _ ports.DecoderFactory = (*Factory)(nil)
