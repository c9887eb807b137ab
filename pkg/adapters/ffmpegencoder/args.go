package ffmpegencoder

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/user/stickerize/pkg/media"
)

// DefaultCRF is the VP9 constant rate factor for animated output.
const DefaultCRF = 17

func scaleFilter(mode media.ScaleMode, w, h int) string {
	if mode == media.ScaleFixed {
		return fmt.Sprintf("scale=%d:%d", w, h)
	}
	return fmt.Sprintf("scale=w=%d:h=%d:force_original_aspect_ratio=decrease:force_divisible_by=2", w, h)
}

// inputRate is the -framerate of the image sequence: one quantum per frame,
// or media.MaxFPS when that is faster.
func inputRate(plan media.EncodePlan) string {
	if plan.Quantum <= 0 || plan.SourceFPS >= media.MaxFPS {
		return strconv.Itoa(media.MaxFPS)
	}
	return fmt.Sprintf("1000/%d", plan.Quantum)
}

func filterGraph(plan media.EncodePlan) string {
	graph := "[0:v]" + scaleFilter(plan.ScaleMode, plan.Width, plan.Height) + "[scaled];"
	src := "[scaled]"
	if plan.Compressed {
		speed := strconv.FormatFloat(plan.SpeedUp, 'f', -1, 64)
		graph += fmt.Sprintf("[scaled]fps=%d,setpts=(1/%s)*PTS[speedup];", plan.TargetFPS, speed)
		src = "[speedup]"
	}
	return graph + src + "[1:v]overlay=shortest=1,format=yuva420p[out]"
}

// animatedArgs encodes a numbered PNG sequence into a VP9 WebM with alpha
// written to stdout.
func animatedArgs(seq media.FrameSequence, plan media.EncodePlan, crf int) []string {
	bitrate := fmt.Sprintf("%dK", plan.BitrateCap)
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-framerate", inputRate(plan),
		"-start_number", "0",
		"-i", filepath.Join(seq.Dir, seq.Pattern),
		"-f", "lavfi", "-i", "color=c=white@0.0,format=rgba",
		"-shortest",
		"-filter_complex", filterGraph(plan),
		"-map", "[out]",
		"-c:v", "libvpx-vp9",
		"-f", "webm",
		"-pix_fmt", "yuva420p",
		"-crf", strconv.Itoa(crf),
		"-b:v", bitrate, "-maxrate", bitrate, "-bufsize", bitrate,
		"-an",
		"pipe:",
	}
}

// staticArgs encodes the first frame of inputPath as WebP to stdout.
func staticArgs(inputPath string, profile media.Profile) []string {
	var scale string
	if profile.ScaleMode == media.ScaleFixed {
		scale = scaleFilter(profile.ScaleMode, profile.Width, profile.Height)
	} else {
		scale = fmt.Sprintf("scale=w=%d:h=%d:force_original_aspect_ratio=decrease", profile.Width, profile.Height)
	}
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-i", inputPath,
		"-frames:v", "1",
		"-f", "webp",
		"-c:v", "libwebp",
		"-vf", scale,
		"-",
	}
}
