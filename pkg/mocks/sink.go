package mocks

import (
	"sync"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.Mutex

	enabled bool

	Durations     map[string][]byte
	Schedules     map[string][]byte
	Plans         map[string][]byte
	ContactSheets map[string]media.FrameSequence
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:       enabled,
		Durations:     make(map[string][]byte),
		Schedules:     make(map[string][]byte),
		Plans:         make(map[string][]byte),
		ContactSheets: make(map[string]media.FrameSequence),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveDurationsJSON(requestID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations[requestID] = data
	return nil
}

func (m *DebugSink) SaveScheduleJSON(requestID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Schedules[requestID] = data
	return nil
}

func (m *DebugSink) SavePlanJSON(requestID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans[requestID] = data
	return nil
}

func (m *DebugSink) SaveContactSheet(requestID string, seq media.FrameSequence) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContactSheets[requestID] = seq
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
