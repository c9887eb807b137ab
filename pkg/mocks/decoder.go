package mocks

import (
	"context"
	"image"
	"image/color"
	"sync"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// FrameDecoder is a mock implementation of ports.FrameDecoder.
// Without a MaterializeFunc it writes solid frames following the schedule.
type FrameDecoder struct {
	DurationsFunc   func(ctx context.Context) (media.DurationList, error)
	MaterializeFunc func(ctx context.Context, schedule media.RepeatSchedule, staging ports.FrameStore) (int, error)
	ReleaseFunc     func() error

	mu sync.Mutex

	// Recorded calls
	DurationsCalls   int
	MaterializeCalls []media.RepeatSchedule
	ReleaseCalls     int
}

func (m *FrameDecoder) Durations(ctx context.Context) (media.DurationList, error) {
	m.mu.Lock()
	m.DurationsCalls++
	m.mu.Unlock()
	if m.DurationsFunc != nil {
		return m.DurationsFunc(ctx)
	}
	return media.DurationList{100, 100}, nil
}

func (m *FrameDecoder) Materialize(ctx context.Context, schedule media.RepeatSchedule, staging ports.FrameStore) (int, error) {
	m.mu.Lock()
	m.MaterializeCalls = append(m.MaterializeCalls, schedule)
	m.mu.Unlock()
	if m.MaterializeFunc != nil {
		return m.MaterializeFunc(ctx, schedule, staging)
	}

	idx := 0
	for frame, repeat := range schedule.Repeats {
		img := SolidFrame(8, 8, color.NRGBA{R: uint8(frame * 40), A: 255})
		for r := 0; r < repeat; r++ {
			if err := staging.WriteFrame(idx, img); err != nil {
				return idx, err
			}
			idx++
		}
	}
	return idx, nil
}

func (m *FrameDecoder) Release() error {
	m.mu.Lock()
	m.ReleaseCalls++
	m.mu.Unlock()
	if m.ReleaseFunc != nil {
		return m.ReleaseFunc()
	}
	return nil
}

var _ ports.FrameDecoder = (*FrameDecoder)(nil)

// SolidFrame returns a w x h image filled with c.
func SolidFrame(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// DecoderFactory is a mock implementation of ports.DecoderFactory.
type DecoderFactory struct {
	Decoder  *FrameDecoder
	OpenFunc func(ctx context.Context, kind media.ContentKind, path string) (ports.FrameDecoder, error)

	// Recorded calls
	OpenedKinds []media.ContentKind
	OpenedPaths []string
}

func (m *DecoderFactory) Open(ctx context.Context, kind media.ContentKind, path string) (ports.FrameDecoder, error) {
	m.OpenedKinds = append(m.OpenedKinds, kind)
	m.OpenedPaths = append(m.OpenedPaths, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, kind, path)
	}
	if !kind.Animatable() {
		return nil, media.ErrUnrecognizedFormat
	}
	if m.Decoder == nil {
		m.Decoder = &FrameDecoder{}
	}
	return m.Decoder, nil
}

var _ ports.DecoderFactory = (*DecoderFactory)(nil)
