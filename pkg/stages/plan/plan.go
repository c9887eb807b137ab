// Package plan derives the encode plan from a schedule.
package plan

import (
	"context"

	"github.com/user/stickerize/pkg/pipeline"
	"github.com/user/stickerize/pkg/planner"
	"github.com/user/stickerize/pkg/ports"
)

// Stage wraps planner.Plan.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new plan stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("plan")}
}

// Execute computes the plan. A static schedule yields a non-animated plan.
func (s *Stage) Execute(ctx context.Context, input pipeline.PlanInput) (pipeline.PlanResult, error) {
	sched := input.Schedule
	frames := sched.TotalFrames()
	if sched.IsStatic() {
		frames = 1
	}
	p := planner.Plan(sched.Quantum, frames, input.Profile)

	if p.IsAnimated {
		s.logger.Info("Plan: %.2f s at %.2f fps, speed-up %.5f, target %d fps", p.DurationSeconds, p.SourceFPS, p.SpeedUp, p.TargetFPS)
	} else {
		s.logger.Info("Plan: still image")
	}
	return pipeline.PlanResult{Plan: p}, nil
}
