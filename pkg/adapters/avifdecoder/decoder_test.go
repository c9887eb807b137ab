package avifdecoder

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/stickerize/pkg/adapters/logger"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
)

func box(kind string, payload []byte) []byte {
	out := make([]byte, 8, 8+len(payload))
	binary.BigEndian.PutUint32(out[0:4], uint32(8+len(payload)))
	copy(out[4:8], kind)
	return append(out, payload...)
}

func ids(v ...uint32) []byte {
	out := make([]byte, 4*len(v))
	for i, id := range v {
		binary.BigEndian.PutUint32(out[i*4:], id)
	}
	return out
}

func TestTrackRole(t *testing.T) {
	tests := []struct {
		name  string
		track track
		want  trackRole
	}{
		{"picture handler", track{handler: "pict"}, roleColor},
		{"video handler", track{handler: "vide"}, roleColor},
		{"auxiliary handler", track{handler: "auxv"}, roleAlpha},
		{"auxl reference", track{handler: "pict", auxl: []uint32{1}}, roleAlpha},
		{"named alpha", track{handler: "pict", name: "Alpha"}, roleAlpha},
		{"monochrome config", track{handler: "pict", entry: sampleEntry{monochrome: true}}, roleAlpha},
		{"sound", track{handler: "soun"}, roleOther},
		{"metadata", track{handler: "meta"}, roleOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.track.role())
		})
	}
}

func TestSelectStreams(t *testing.T) {
	color1 := &track{id: 1, handler: "pict", samples: 10}
	color2 := &track{id: 2, handler: "pict", samples: 10}
	empty := &track{id: 3, handler: "pict"}
	alphaFor1 := &track{id: 4, handler: "auxv", auxl: []uint32{1}, samples: 10}
	alphaFor2 := &track{id: 5, handler: "auxv", auxl: []uint32{2}, samples: 10}
	loose := &track{id: 6, handler: "pict", name: "Alpha", samples: 10}
	loose2 := &track{id: 7, handler: "pict", entry: sampleEntry{monochrome: true}, samples: 10}

	tests := []struct {
		name        string
		tracks      []*track
		wantPrimary *track
		wantAlpha   *track
		ambiguous   bool
	}{
		{"single color", []*track{color1}, color1, nil, false},
		{"linked alpha", []*track{color1, alphaFor1}, color1, alphaFor1, false},
		{"alpha first in file", []*track{alphaFor1, color1}, color1, alphaFor1, false},
		{"skips empty color track", []*track{empty, color2, alphaFor2}, color2, alphaFor2, false},
		{"linked wins over unlinked", []*track{color1, loose, alphaFor1}, color1, alphaFor1, false},
		{"alpha of another track ignored", []*track{color1, color2, alphaFor2}, color1, nil, false},
		{"single unlinked alpha", []*track{color1, loose}, color1, loose, false},
		{"two unlinked alphas", []*track{color1, loose, loose2}, nil, nil, true},
		{"two linked alphas", []*track{color1, alphaFor1, {id: 8, handler: "auxv", auxl: []uint32{1}}}, nil, nil, true},
		{"no color track", []*track{alphaFor1, loose}, nil, nil, true},
		{"no tracks", nil, nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary, alpha, err := selectStreams(tt.tracks)
			if tt.ambiguous {
				assert.ErrorIs(t, err, media.ErrAmbiguousContainer)
				return
			}
			require.NoError(t, err)
			assert.Same(t, tt.wantPrimary, primary)
			if tt.wantAlpha == nil {
				assert.Nil(t, alpha)
			} else {
				assert.Same(t, tt.wantAlpha, alpha)
			}
		})
	}
}

func TestDurationsFromTimestamps(t *testing.T) {
	tests := []struct {
		name      string
		ts        []int
		totalMs   int
		lastDelta int
		want      media.DurationList
	}{
		{"uniform", []int{0, 40, 80}, 120, 40, media.DurationList{40, 40, 40}},
		{"variable", []int{0, 100, 130}, 200, 30, media.DurationList{100, 30, 70}},
		{"total missing", []int{0, 50}, 0, 50, media.DurationList{50, 50}},
		{"total before last frame", []int{0, 50, 100}, 90, 50, media.DurationList{50, 50, 50}},
		{"single frame", []int{0}, 500, 500, media.DurationList{500}},
		{"empty", nil, 100, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, durationsFromTimestamps(tt.ts, tt.totalMs, tt.lastDelta))
		})
	}
}

func TestObuStream(t *testing.T) {
	config := []byte{0x0a, 0x01, 0xff}
	got := obuStream(config, [][]byte{{0x32, 0x01, 0xaa}, {0x32, 0x01, 0xbb}})
	want := []byte{
		0x12, 0x00, 0x0a, 0x01, 0xff, 0x32, 0x01, 0xaa,
		0x12, 0x00, 0x32, 0x01, 0xbb,
	}
	assert.Equal(t, want, got)
	assert.Empty(t, obuStream(config, nil))
}

func TestParseTref(t *testing.T) {
	payload := append(box("auxl", ids(1, 3)), box("cdsc", ids(9))...)
	assert.Equal(t, []uint32{1, 3}, parseTref(payload, "auxl"))
	assert.Equal(t, []uint32{9}, parseTref(payload, "cdsc"))
	assert.Nil(t, parseTref(payload, "thmb"))

	truncated := box("auxl", ids(1))[:10]
	assert.Nil(t, parseTref(truncated, "auxl"))
}

func TestParseSampleEntry(t *testing.T) {
	body := make([]byte, visualEntryHeader)
	binary.BigEndian.PutUint16(body[24:26], 320)
	binary.BigEndian.PutUint16(body[26:28], 240)

	config := []byte{0x81, 0x00, 0x10, 0x00, 0x0a, 0x02, 0x00, 0x00}
	entry, ok := unwrap(box("av01", append(body, box("av1C", config)...)))
	require.True(t, ok)

	got := parseSampleEntry(entry)
	assert.Equal(t, "av01", got.format)
	assert.Equal(t, 320, got.width)
	assert.Equal(t, 240, got.height)
	assert.True(t, got.hasConfig)
	assert.True(t, got.monochrome)
	assert.Equal(t, []byte{0x0a, 0x02, 0x00, 0x00}, got.configOBUs)

	short, _ := unwrap(box("av01", []byte{1, 2, 3}))
	assert.False(t, parseSampleEntry(short).hasConfig)
}

func TestSplitBoxes_LargeSize(t *testing.T) {
	data := make([]byte, 20)
	binary.BigEndian.PutUint32(data[0:4], 1)
	copy(data[4:8], "free")
	binary.BigEndian.PutUint64(data[8:16], 20)

	boxes := splitBoxes(data)
	require.Len(t, boxes, 1)
	assert.Equal(t, "free", boxes[0].kind)
	assert.Len(t, boxes[0].payload, 4)
}

func TestApplyAlpha(t *testing.T) {
	t.Run("same size", func(t *testing.T) {
		frame := mocks.SolidFrame(2, 2, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		mask := image.NewGray(image.Rect(0, 0, 2, 2))
		mask.SetGray(1, 1, color.Gray{Y: 128})

		out := applyAlpha(frame, mask)
		assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 0}, out.NRGBAAt(0, 0))
		assert.Equal(t, color.NRGBA{R: 200, G: 100, B: 50, A: 128}, out.NRGBAAt(1, 1))
	})

	t.Run("scaled mask covers the frame", func(t *testing.T) {
		frame := mocks.SolidFrame(8, 6, color.NRGBA{G: 255, A: 255})
		mask := image.NewGray(image.Rect(0, 0, 4, 3))
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}

		out := applyAlpha(frame, mask)
		assert.Equal(t, frame.Bounds(), out.Bounds())
		for y := 0; y < 6; y++ {
			for x := 0; x < 8; x++ {
				assert.Equal(t, uint8(255), out.NRGBAAt(x, y).A, "pixel %d,%d", x, y)
			}
		}
	})
}

func TestPipeArgs(t *testing.T) {
	args := pipeArgs("gray")
	assert.Equal(t, []string{"-f", "obu", "-i", "pipe:0"}, args[3:7])
	assert.Equal(t, "gray", args[len(args)-2])
	assert.Equal(t, "pipe:1", args[len(args)-1])
}

type discard struct{}

func (discard) WriteFrame(int, image.Image) error { return nil }

func (discard) Sequence(count int) media.FrameSequence { return media.FrameSequence{Count: count} }

func stillAVIF() []byte {
	var payload bytes.Buffer
	payload.WriteString("avif")
	binary.Write(&payload, binary.BigEndian, uint32(0))
	payload.WriteString("avifmif1")
	return box("ftyp", payload.Bytes())
}

func TestDecoder_StillImage(t *testing.T) {
	dec, err := Parse(stillAVIF(), Options{}, logger.NewNoop())
	require.NoError(t, err)

	durations, err := dec.Durations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, durations)

	_, err = dec.Materialize(context.Background(), media.RepeatSchedule{Quantum: 10, Repeats: []int{1, 1}}, discard{})
	assert.ErrorIs(t, err, media.ErrDecode)
	assert.True(t, errors.Is(err, errNoSequence))
}

func TestDecoder_ReleaseIdempotent(t *testing.T) {
	dec, err := Parse(stillAVIF(), Options{}, logger.NewNoop())
	require.NoError(t, err)

	require.NoError(t, dec.Release())
	require.NoError(t, dec.Release())

	_, err = dec.Durations(context.Background())
	assert.ErrorIs(t, err, media.ErrDecode)
}

func TestDecoder_InvalidContainer(t *testing.T) {
	truncated := box("ftyp", []byte("avif\x00\x00\x00\x00avif"))
	binary.BigEndian.PutUint32(truncated[0:4], 4096)

	_, err := Parse(truncated, Options{}, logger.NewNoop())
	assert.ErrorIs(t, err, media.ErrDecode)
}
