package ports

import (
	"github.com/user/stickerize/pkg/media"
)

// DebugSink receives intermediate results of a conversion for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveDurationsJSON saves the decoded duration list.
	SaveDurationsJSON(requestID string, data []byte) error

	// SaveScheduleJSON saves the quantized repeat schedule.
	SaveScheduleJSON(requestID string, data []byte) error

	// SavePlanJSON saves the encode plan.
	SavePlanJSON(requestID string, data []byte) error

	// SaveContactSheet renders a sample of the staged frames to one image.
	// It must be called before the staging area is released.
	SaveContactSheet(requestID string, seq media.FrameSequence) error
}
