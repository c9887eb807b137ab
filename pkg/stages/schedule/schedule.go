// Package schedule reads frame durations and quantizes them.
package schedule

import (
	"context"
	"fmt"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/ports"
	"github.com/user/stickerize/pkg/workerpool"
)

// Stage runs duration extraction on the shared worker pool.
type Stage struct {
	pool   *workerpool.Pool
	logger ports.Logger
}

// NewStage creates a new schedule stage.
func NewStage(pool *workerpool.Pool, logger ports.Logger) *Stage {
	return &Stage{pool: pool, logger: logger.WithComponent("schedule")}
}

// Execute returns a static result rather than an error when the decoder
// yields at most one usable duration.
func (s *Stage) Execute(ctx context.Context, input pipeline.ScheduleInput) (pipeline.ScheduleResult, error) {
	durations, err := workerpool.Go(ctx, s.pool, input.Decoder.Durations)
	if err != nil {
		return pipeline.ScheduleResult{}, fmt.Errorf("list durations: %w", err)
	}

	sched := media.Quantize(durations)
	result := pipeline.ScheduleResult{Durations: durations, Schedule: sched}
	if len(durations) <= 1 || sched.IsStatic() {
		s.logger.Info("No animation found (%d frames), using still image path", len(durations))
		result.Static = true
		result.Reason = fmt.Errorf("%w: %d durations, %d usable", media.ErrEmptyDurationSchedule, len(durations), usable(durations))
		return result, nil
	}

	s.logger.Info("%d frames, quantum %d ms, %d expanded frames", len(durations), sched.Quantum, sched.TotalFrames())
	return result, nil
}

func usable(durations media.DurationList) int {
	n := 0
	for _, d := range durations {
		if d > 0 {
			n++
		}
	}
	return n
}
