package mocks

import (
	"context"
	"sync"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// EncodeSink is a mock implementation of ports.EncodeSink.
type EncodeSink struct {
	EncodeAnimatedFunc func(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error)
	EncodeStaticFunc   func(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error)

	mu sync.Mutex

	// Recorded calls
	AnimatedCalls []AnimatedCall
	StaticCalls   []StaticCall
}

// AnimatedCall records a call to EncodeAnimated.
type AnimatedCall struct {
	Sequence media.FrameSequence
	Plan     media.EncodePlan
}

// StaticCall records a call to EncodeStatic.
type StaticCall struct {
	InputPath string
	Profile   media.Profile
}

func (m *EncodeSink) EncodeAnimated(ctx context.Context, seq media.FrameSequence, plan media.EncodePlan) ([]byte, error) {
	m.mu.Lock()
	m.AnimatedCalls = append(m.AnimatedCalls, AnimatedCall{Sequence: seq, Plan: plan})
	m.mu.Unlock()
	if m.EncodeAnimatedFunc != nil {
		return m.EncodeAnimatedFunc(ctx, seq, plan)
	}
	return []byte("webm-data"), nil
}

func (m *EncodeSink) EncodeStatic(ctx context.Context, inputPath string, profile media.Profile) ([]byte, error) {
	m.mu.Lock()
	m.StaticCalls = append(m.StaticCalls, StaticCall{InputPath: inputPath, Profile: profile})
	m.mu.Unlock()
	if m.EncodeStaticFunc != nil {
		return m.EncodeStaticFunc(ctx, inputPath, profile)
	}
	return []byte("webp-data"), nil
}

var _ ports.EncodeSink = (*EncodeSink)(nil)

// ToolRunner is a mock implementation of ports.ToolRunner.
type ToolRunner struct {
	RunFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

	// Recorded calls
	Calls [][]string
}

func (m *ToolRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, append([]string{name}, args...))
	if m.RunFunc != nil {
		return m.RunFunc(ctx, name, args...)
	}
	return nil, nil
}

var _ ports.ToolRunner = (*ToolRunner)(nil)
