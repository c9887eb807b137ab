package schedule

import (
	"context"
	"errors"
	"testing"

	"github.com/user/stickerize/pkg/adapters/logger"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/workerpool"
)

func decoderWith(durations media.DurationList, err error) *mocks.FrameDecoder {
	return &mocks.FrameDecoder{
		DurationsFunc: func(ctx context.Context) (media.DurationList, error) {
			return durations, err
		},
	}
}

func TestStage_Execute(t *testing.T) {
	stage := NewStage(workerpool.New(2), logger.NewNoop())

	result, err := stage.Execute(context.Background(), pipeline.ScheduleInput{
		Decoder: decoderWith(media.DurationList{100, 50, 150}, nil),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Static || result.Reason != nil {
		t.Fatalf("expected animated result, got reason %v", result.Reason)
	}
	if result.Schedule.Quantum != 50 {
		t.Errorf("expected quantum 50, got %d", result.Schedule.Quantum)
	}
	if result.Schedule.TotalFrames() != 6 {
		t.Errorf("expected 6 expanded frames, got %d", result.Schedule.TotalFrames())
	}
}

func TestStage_StaticInputs(t *testing.T) {
	stage := NewStage(workerpool.New(1), logger.NewNoop())
	for _, durations := range []media.DurationList{nil, {}, {70}, {0, 0}} {
		result, err := stage.Execute(context.Background(), pipeline.ScheduleInput{Decoder: decoderWith(durations, nil)})
		if err != nil {
			t.Fatalf("%v: unexpected error: %v", durations, err)
		}
		if !result.Static {
			t.Errorf("%v: expected static result", durations)
		}
		if !errors.Is(result.Reason, media.ErrEmptyDurationSchedule) {
			t.Errorf("%v: expected ErrEmptyDurationSchedule reason, got %v", durations, result.Reason)
		}
	}
}

func TestStage_DecoderError(t *testing.T) {
	stage := NewStage(workerpool.New(1), logger.NewNoop())
	decodeErr := media.NewDecodeError(media.KindGIF, "read frame 0", errors.New("bad block"))

	_, err := stage.Execute(context.Background(), pipeline.ScheduleInput{Decoder: decoderWith(nil, decodeErr)})
	if !errors.Is(err, media.ErrDecode) {
		t.Errorf("expected DecodeError, got %v", err)
	}
}

func TestStage_Cancelled(t *testing.T) {
	pool := workerpool.New(1)
	stage := NewStage(pool, logger.NewNoop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := stage.Execute(ctx, pipeline.ScheduleInput{Decoder: decoderWith(media.DurationList{10, 10}, nil)})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
