package ports

import (
	"context"
	"image"

	"github.com/user/stickerize/pkg/media"
)

// FrameDecoder abstracts one opened animated container.
//
// A decoder exclusively owns its container handle. Release must be called on
// every exit path, may be called more than once and is safe after any
// failure.
type FrameDecoder interface {
	// Durations returns the display duration of every frame in milliseconds.
	// An empty list means the input is treated as a still image.
	Durations(ctx context.Context) (media.DurationList, error)

	// Materialize writes the duration-expanded frame sequence described by
	// schedule into staging and returns the number of files written.
	Materialize(ctx context.Context, schedule media.RepeatSchedule, staging FrameStore) (int, error)

	// Release frees the container handle and any helper process.
	Release() error
}

// DecoderFactory opens a FrameDecoder for a staged input file.
type DecoderFactory interface {
	// Open returns media.ErrUnrecognizedFormat for kinds without a decoder.
	Open(ctx context.Context, kind media.ContentKind, path string) (FrameDecoder, error)
}

// FrameStore is the write side of a staging area.
type FrameStore interface {
	// WriteFrame stores img under the frame name of index.
	// Distinct indices may be written concurrently.
	WriteFrame(index int, img image.Image) error

	// Sequence describes the frames written so far.
	Sequence(count int) media.FrameSequence
}

// Staging is a per-request scratch directory.
type Staging interface {
	FrameStore

	// Dir returns the absolute directory path.
	Dir() string

	// WriteInput stores the raw request bytes and returns their path.
	WriteInput(name string, data []byte) (string, error)

	// Release removes the directory and everything in it. Idempotent.
	Release() error
}

// StagingFactory acquires staging areas.
type StagingFactory interface {
	Acquire(requestID string) (Staging, error)
}
