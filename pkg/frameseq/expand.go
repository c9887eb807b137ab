// Package frameseq expands decoded frames into the duration-expanded,
// sequentially numbered frame files the encoder consumes.
package frameseq

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// ErrSourceExhausted is returned when the schedule names more frames than
// the source yields.
var ErrSourceExhausted = errors.New("frameseq: source has fewer frames than the schedule")

// Source yields fully composited frames in display order and io.EOF after
// the last one. A returned image must not be modified afterwards; writers
// may still be encoding it.
type Source func(ctx context.Context) (image.Image, error)

// DefaultWriters is the number of PNG writers per request.
const DefaultWriters = 4

type job struct {
	index int
	img   image.Image
}

// Expand pulls one frame per schedule entry from next and writes it
// repeats[i] times under strictly increasing indices starting at 0.
// Frames with a repeat count of 0 are read and dropped.
//
// Decoding stays on the calling goroutine; PNG encoding fans out to writers
// goroutines. The number of files written is returned.
func Expand(ctx context.Context, next Source, schedule media.RepeatSchedule, store ports.FrameStore, writers int) (int, error) {
	if writers < 1 {
		writers = DefaultWriters
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, writers*2)
	errChan := make(chan error, writers)

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go writer(ctx, &wg, store, jobs, errChan, cancel)
	}

	index, produceErr := produce(ctx, next, schedule, jobs)
	close(jobs)
	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return 0, err
	}
	if produceErr != nil {
		return 0, produceErr
	}
	return index, nil
}

func produce(ctx context.Context, next Source, schedule media.RepeatSchedule, jobs chan<- job) (int, error) {
	index := 0
	for frame, repeat := range schedule.Repeats {
		if err := ctx.Err(); err != nil {
			return index, err
		}

		img, err := next(ctx)
		if errors.Is(err, io.EOF) {
			return index, fmt.Errorf("%w: frame %d of %d", ErrSourceExhausted, frame, len(schedule.Repeats))
		}
		if err != nil {
			return index, fmt.Errorf("frame %d: %w", frame, err)
		}

		for r := 0; r < repeat; r++ {
			select {
			case jobs <- job{index: index, img: img}:
				index++
			case <-ctx.Done():
				return index, ctx.Err()
			}
		}
	}
	return index, nil
}

func writer(
	ctx context.Context,
	wg *sync.WaitGroup,
	store ports.FrameStore,
	jobs <-chan job,
	errChan chan<- error,
	cancel context.CancelFunc,
) {
	defer wg.Done()

	for j := range jobs {
		if ctx.Err() != nil {
			continue // drain
		}
		if err := store.WriteFrame(j.index, j.img); err != nil {
			select {
			case errChan <- err:
			default:
			}
			cancel()
		}
	}
}
