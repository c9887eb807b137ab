// Package planner derives encoder parameters from a repeat schedule.
package planner

import (
	"math"

	"github.com/user/stickerize/pkg/media"
)

// Plan computes the encode plan for frameCount expanded frames of quantum
// milliseconds each.
//
// Clips reaching media.MaxDuration are sped up by duration/MaxDuration
// (rounded to five decimals) and the output frame rate is capped at
// media.MaxFPS.
func Plan(quantum, frameCount int, profile media.Profile) media.EncodePlan {
	plan := media.EncodePlan{
		FrameCount: frameCount,
		ScaleMode:  profile.ScaleMode,
		Width:      profile.Width,
		Height:     profile.Height,
		BitrateCap: profile.BitrateCap,
		MaxBytes:   profile.MaxBytes,
		SpeedUp:    1,
	}
	if frameCount <= 1 || quantum <= 0 {
		return plan
	}

	plan.IsAnimated = true
	plan.Quantum = quantum
	plan.SourceFPS = SourceFPS(quantum)
	plan.DurationSeconds = float64(frameCount) / plan.SourceFPS

	if plan.DurationSeconds >= media.MaxDuration {
		plan.SpeedUp = roundTo(plan.DurationSeconds/media.MaxDuration, 5)
		plan.Compressed = true
	}

	target := int(math.Round(plan.SourceFPS * plan.SpeedUp))
	if target > media.MaxFPS {
		target = media.MaxFPS
	}
	if target < 1 {
		target = 1
	}
	plan.TargetFPS = target

	return plan
}

// SourceFPS is the input frame rate at which one expanded frame lasts one
// quantum, capped at media.MaxFPS.
func SourceFPS(quantum int) float64 {
	if quantum <= 0 {
		return 0
	}
	return math.Min(1000/float64(quantum), media.MaxFPS)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
