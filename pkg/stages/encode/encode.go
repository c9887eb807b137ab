// Package encode implements the sticker encoding stage.
package encode

import (
	"context"
	"errors"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/ports"
)

var errEmptyOutput = errors.New("encoder returned no data")

// Stage encodes the staged frames or the still input.
type Stage struct {
	encoder ports.EncodeSink
	logger  ports.Logger
}

// NewStage creates a new encode stage.
func NewStage(encoder ports.EncodeSink, logger ports.Logger) *Stage {
	return &Stage{
		encoder: encoder,
		logger:  logger.WithComponent("encode"),
	}
}

// Execute encodes to WebM when the plan is animated and to WebP otherwise.
// Output above the profile limit is returned with Oversize set.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	container := input.Plan.Container()

	var (
		data []byte
		err  error
	)
	if input.Plan.IsAnimated {
		data, err = s.encoder.EncodeAnimated(ctx, input.Sequence, input.Plan)
	} else {
		data, err = s.encoder.EncodeStatic(ctx, input.Input, input.Profile)
	}
	if err != nil {
		return pipeline.EncodeResult{}, err
	}
	if len(data) == 0 {
		return pipeline.EncodeResult{}, &media.EncodeError{Container: container, Err: errEmptyOutput}
	}

	result := pipeline.EncodeResult{
		Data:      data,
		Container: container,
		FileSize:  int64(len(data)),
	}
	if limit := input.Profile.MaxBytes; limit > 0 && len(data) > limit {
		result.Oversize = true
		s.logger.Warn("Output is %d bytes, above the %d byte limit", len(data), limit)
	}
	s.logger.Info("Encoded %s: %d bytes", container, len(data))
	return result, nil
}
