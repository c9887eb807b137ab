// Package media defines the domain types shared by every stage of sticker
// conversion: content kinds, duration schedules, frame sequences and plans.
package media

import (
	"fmt"
	"strings"
)

// Hard limits imposed by the sticker platform.
const (
	MaxSizeSticker = 200 * 1024 // bytes
	MaxSizeEmoji   = 60 * 1024  // bytes
	MaxDuration    = 3.00       // seconds
	MaxFPS         = 30
)

// FramePattern is the file name pattern of staged frames.
const FramePattern = "%08d.png"

// =============================================================================
// Content classification
// =============================================================================

// ContentKind is the container family detected from the leading bytes.
type ContentKind string

const (
	KindGIF   ContentKind = "gif"
	KindWebP  ContentKind = "webp"
	KindAVIF  ContentKind = "avif"
	KindOther ContentKind = "other"
)

// Animatable reports whether the kind has a frame decoder.
func (k ContentKind) Animatable() bool {
	switch k {
	case KindGIF, KindWebP, KindAVIF:
		return true
	default:
		return false
	}
}

// RawMedia is the classified input of one conversion request.
// It is not modified after classification.
type RawMedia struct {
	Data []byte
	Kind ContentKind
	MIME string
	Path string // staged copy of Data, set once the request has a staging area
}

// =============================================================================
// Sticker kinds
// =============================================================================

// StickerKind selects the output profile.
type StickerKind string

const (
	StickerRegular StickerKind = "regular"
	StickerEmoji   StickerKind = "emoji"
)

// ParseStickerKind accepts the canonical names plus the aliases used by the
// sticker API ("sticker", "custom_emoji").
func ParseStickerKind(s string) (StickerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "sticker":
		return StickerRegular, nil
	case "emoji", "custom_emoji":
		return StickerEmoji, nil
	default:
		return "", fmt.Errorf("unknown sticker kind %q", s)
	}
}

// =============================================================================
// Schedules and frames
// =============================================================================

// DurationList holds per-frame display durations in milliseconds.
type DurationList []int

// Total returns the sum of all positive durations.
func (d DurationList) Total() int {
	total := 0
	for _, v := range d {
		if v > 0 {
			total += v
		}
	}
	return total
}

// RepeatSchedule expresses a duration list as a common quantum and the
// number of quantum-long slots each source frame occupies.
type RepeatSchedule struct {
	Quantum int   `json:"quantum"`
	Repeats []int `json:"repeats"`
}

// TotalFrames is the length of the expanded sequence.
func (s RepeatSchedule) TotalFrames() int {
	n := 0
	for _, r := range s.Repeats {
		n += r
	}
	return n
}

// IsStatic reports whether the schedule describes a still image.
func (s RepeatSchedule) IsStatic() bool {
	return len(s.Repeats) <= 1 || s.Quantum <= 0
}

// FrameSequence describes the staged, duration-expanded frames.
type FrameSequence struct {
	Dir     string
	Pattern string // printf pattern relative to Dir
	Count   int
}

// FrameName returns the file name of the frame at index.
func FrameName(index int) string {
	return fmt.Sprintf(FramePattern, index)
}

// =============================================================================
// Encode plan
// =============================================================================

// ScaleMode selects the scale filter applied by the encoder.
type ScaleMode string

const (
	// ScaleFitLongest scales so that the longest side equals the bounding box.
	ScaleFitLongest ScaleMode = "fit-longest"
	// ScaleFixed scales to an exact width and height.
	ScaleFixed ScaleMode = "fixed"
)

// Container is the declared format of the encoder output.
type Container string

const (
	ContainerWebP Container = "webp"
	ContainerWebM Container = "webm"
)

// Extension returns the file extension for the container, with a dot.
func (c Container) Extension() string {
	return "." + string(c)
}

// EncodePlan carries everything the encoder needs besides the frames.
type EncodePlan struct {
	IsAnimated      bool      `json:"is_animated"`
	Quantum         int       `json:"quantum_ms,omitempty"`
	FrameCount      int       `json:"frame_count"`
	SourceFPS       float64   `json:"source_fps,omitempty"`
	DurationSeconds float64   `json:"duration_seconds,omitempty"`
	SpeedUp         float64   `json:"speed_up,omitempty"`
	Compressed      bool      `json:"compressed"` // true when SpeedUp was derived from MaxDuration
	TargetFPS       int       `json:"target_fps,omitempty"`
	ScaleMode       ScaleMode `json:"scale_mode"`
	Width           int       `json:"width"`
	Height          int       `json:"height"`
	BitrateCap      int       `json:"bitrate_cap_k"` // ffmpeg "K" units, used for -b:v, -maxrate and -bufsize
	MaxBytes        int       `json:"max_bytes"`
}

// Container returns the output container implied by the plan.
func (p EncodePlan) Container() Container {
	if p.IsAnimated {
		return ContainerWebM
	}
	return ContainerWebP
}
