package pipeline

import (
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// =============================================================================
// Detect Stage Types
// =============================================================================

// DetectInput holds the raw request bytes.
type DetectInput struct {
	Data []byte
}

// DetectResult is the sniffed content kind.
type DetectResult struct {
	Kind media.ContentKind
	MIME string
}

// =============================================================================
// Schedule Stage Types
// =============================================================================

// ScheduleInput names the opened decoder to read durations from.
type ScheduleInput struct {
	Decoder ports.FrameDecoder
}

// ScheduleResult holds the durations and their quantized schedule.
type ScheduleResult struct {
	Durations media.DurationList
	Schedule  media.RepeatSchedule
	// Static is true when the input has at most one usable frame.
	Static bool
	// Reason wraps media.ErrEmptyDurationSchedule when Static is set.
	Reason error
}

// =============================================================================
// Materialize Stage Types
// =============================================================================

// MaterializeInput contains what the materializer needs.
type MaterializeInput struct {
	Decoder  ports.FrameDecoder
	Schedule media.RepeatSchedule
	Staging  ports.FrameStore
}

// MaterializeResult describes the written sequence.
type MaterializeResult struct {
	Sequence media.FrameSequence
}

// =============================================================================
// Plan Stage Types
// =============================================================================

// PlanInput contains the quantized timeline and the target profile.
type PlanInput struct {
	Schedule media.RepeatSchedule
	Profile  media.Profile
}

// PlanResult wraps the computed plan.
type PlanResult struct {
	Plan media.EncodePlan
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput selects the animated or static path through Plan.IsAnimated.
type EncodeInput struct {
	Plan     media.EncodePlan
	Sequence media.FrameSequence // animated path
	Input    string              // static path: staged input file
	Profile  media.Profile
}

// EncodeResult contains the encoder output.
type EncodeResult struct {
	Data      []byte
	Container media.Container
	FileSize  int64
	// Oversize is true when Data exceeds the profile's byte limit.
	Oversize bool
}
