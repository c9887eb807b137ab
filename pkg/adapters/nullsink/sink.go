// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// Sink discards all debug output.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

func (s *Sink) SaveDurationsJSON(requestID string, data []byte) error { return nil }

func (s *Sink) SaveScheduleJSON(requestID string, data []byte) error { return nil }

func (s *Sink) SavePlanJSON(requestID string, data []byte) error { return nil }

func (s *Sink) SaveContactSheet(requestID string, seq media.FrameSequence) error { return nil }

var _ ports.DebugSink = (*Sink)(nil)
