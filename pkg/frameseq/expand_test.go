package frameseq

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
)

// memStore records which source frame ended up at each index.
type memStore struct {
	mu     sync.Mutex
	frames map[int]uint8
	failAt int
}

func newMemStore() *memStore {
	return &memStore{frames: make(map[int]uint8), failAt: -1}
}

func (s *memStore) WriteFrame(index int, img image.Image) error {
	if index == s.failAt {
		return errors.New("disk full")
	}
	r, _, _, _ := img.At(0, 0).RGBA()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames[index] = uint8(r >> 8)
	return nil
}

func (s *memStore) Sequence(count int) media.FrameSequence {
	return media.FrameSequence{Pattern: media.FramePattern, Count: count}
}

func sourceFrames(n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		frames[i] = mocks.SolidFrame(2, 2, color.NRGBA{R: uint8(i + 1), A: 255})
	}
	return frames
}

func TestExpand_Order(t *testing.T) {
	store := newMemStore()
	schedule := media.RepeatSchedule{Quantum: 50, Repeats: []int{2, 1, 0, 3}}

	n, err := Expand(context.Background(), SliceSource(sourceFrames(4)), schedule, store, 3)
	if err != nil {
		t.Fatalf("Expand failed: %v", err)
	}
	if n != 6 {
		t.Fatalf("expected 6 frames, got %d", n)
	}

	want := []uint8{1, 1, 2, 4, 4, 4}
	for i, w := range want {
		if store.frames[i] != w {
			t.Errorf("index %d: expected source frame %d, got %d", i, w, store.frames[i])
		}
	}
}

func TestExpand_SourceExhausted(t *testing.T) {
	schedule := media.RepeatSchedule{Quantum: 40, Repeats: []int{1, 1, 1}}

	_, err := Expand(context.Background(), SliceSource(sourceFrames(2)), schedule, newMemStore(), 2)
	if !errors.Is(err, ErrSourceExhausted) {
		t.Errorf("expected ErrSourceExhausted, got %v", err)
	}
}

func TestExpand_WriteError(t *testing.T) {
	store := newMemStore()
	store.failAt = 2
	schedule := media.RepeatSchedule{Quantum: 40, Repeats: []int{1, 1, 1, 1, 1}}

	_, err := Expand(context.Background(), SliceSource(sourceFrames(5)), schedule, store, 1)
	if err == nil || err.Error() != "disk full" {
		t.Errorf("expected write error, got %v", err)
	}
}

func TestExpand_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	schedule := media.RepeatSchedule{Quantum: 40, Repeats: []int{1, 1}}

	_, err := Expand(ctx, SliceSource(sourceFrames(2)), schedule, newMemStore(), 1)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestClone_Independent(t *testing.T) {
	src := mocks.SolidFrame(2, 2, color.NRGBA{R: 5, A: 255})
	dup := Clone(src)
	ClearRect(src, src.Bounds())

	if dup.Pix[0] != 5 || dup.Pix[3] != 255 {
		t.Error("clone shares pixels with source")
	}
	if src.Pix[3] != 0 {
		t.Error("ClearRect did not clear alpha")
	}
}
