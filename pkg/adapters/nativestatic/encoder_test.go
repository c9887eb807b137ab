package nativestatic

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/stickerize/pkg/adapters/logger"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
)

func writePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
	return path
}

func TestEncodeStatic_Sizes(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		kind         media.StickerKind
		wantW, wantH int
	}{
		{"wide regular", 300, 150, media.StickerRegular, 512, 256},
		{"tall regular", 100, 400, media.StickerRegular, 128, 512},
		{"emoji", 300, 150, media.StickerEmoji, 100, 100},
	}

	enc := New(logger.NewNoop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePNG(t, mocks.SolidFrame(tt.w, tt.h, color.NRGBA{R: 10, G: 200, B: 30, A: 255}))

			out, err := enc.EncodeStatic(context.Background(), path, media.ProfileFor(tt.kind))
			require.NoError(t, err)

			cfg, err := webp.DecodeConfig(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, cfg.Width)
			assert.Equal(t, tt.wantH, cfg.Height)
			assert.LessOrEqual(t, len(out), media.ProfileFor(tt.kind).MaxBytes)
		})
	}
}

func TestEncodeStatic_BadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0644))

	_, err := New(logger.NewNoop()).EncodeStatic(context.Background(), path, media.ProfileFor(media.StickerRegular))
	assert.ErrorIs(t, err, media.ErrEncode)
}

func TestEncode_KeepsSmallestWhenOversize(t *testing.T) {
	noise := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for i := range noise.Pix {
		noise.Pix[i] = byte(i * 7919 % 251)
	}
	profile := media.ProfileFor(media.StickerEmoji)
	profile.MaxBytes = 10

	out, err := New(logger.NewNoop()).Encode(context.Background(), noise, profile)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Greater(t, len(out), profile.MaxBytes)
}

func TestEncodeAnimated_Unsupported(t *testing.T) {
	_, err := New(logger.NewNoop()).EncodeAnimated(context.Background(), media.FrameSequence{}, media.EncodePlan{})
	assert.ErrorIs(t, err, ErrAnimatedOnly)
	assert.ErrorIs(t, err, media.ErrEncode)
}
