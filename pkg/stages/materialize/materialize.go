// Package materialize writes the expanded frame sequence to staging.
package materialize

import (
	"context"
	"fmt"

	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/ports"
	"github.com/user/stickerize/pkg/workerpool"
)

// Stage drives a decoder on the shared worker pool.
type Stage struct {
	pool   *workerpool.Pool
	logger ports.Logger
}

// NewStage creates a new materialize stage.
func NewStage(pool *workerpool.Pool, logger ports.Logger) *Stage {
	return &Stage{pool: pool, logger: logger.WithComponent("materialize")}
}

// Execute fails when the decoder wrote a different number of frames than
// the schedule expands to.
func (s *Stage) Execute(ctx context.Context, input pipeline.MaterializeInput) (pipeline.MaterializeResult, error) {
	want := input.Schedule.TotalFrames()
	s.logger.Debug("Materializing %d frames", want)

	n, err := workerpool.Go(ctx, s.pool, func(ctx context.Context) (int, error) {
		return input.Decoder.Materialize(ctx, input.Schedule, input.Staging)
	})
	if err != nil {
		return pipeline.MaterializeResult{}, err
	}
	if n != want {
		return pipeline.MaterializeResult{}, fmt.Errorf("materialized %d frames, schedule expands to %d", n, want)
	}

	s.logger.Info("Materialized %d frames", n)
	return pipeline.MaterializeResult{Sequence: input.Staging.Sequence(n)}, nil
}
