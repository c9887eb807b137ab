// Package detect implements the content sniffing stage.
package detect

import (
	"context"

	"github.com/user/stickerize/pkg/adapters/contentdetect"
	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/ports"
)

// Stage classifies request bytes.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new detect stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("detect")}
}

// Execute never fails; unknown content is reported as media.KindOther.
func (s *Stage) Execute(ctx context.Context, input pipeline.DetectInput) (pipeline.DetectResult, error) {
	r := contentdetect.Detect(input.Data)
	s.logger.Debug("Detected %s (%s), %d bytes", r.Kind, r.MIME, len(input.Data))
	return pipeline.DetectResult{Kind: r.Kind, MIME: r.MIME}, nil
}
