package ports

import (
	"context"

	"github.com/user/stickerize/pkg/media"
)

// EncodeSink turns staged frames or a still input into the final sticker.
type EncodeSink interface {
	// EncodeAnimated encodes the frame sequence as a WebM clip.
	EncodeAnimated(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error)

	// EncodeStatic encodes the file at inputPath as a single WebP image.
	EncodeStatic(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error)
}

// ToolRunner runs an external program and returns its standard output.
type ToolRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
