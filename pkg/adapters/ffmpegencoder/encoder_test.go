package ffmpegencoder

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/stickerize/pkg/adapters/logger"
	"github.com/user/stickerize/pkg/adapters/toolpath"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
	"github.com/user/stickerize/pkg/planner"
)

func argValue(t *testing.T, args []string, flag string) string {
	t.Helper()
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag {
			return args[i+1]
		}
	}
	t.Fatalf("flag %s not found in %v", flag, args)
	return ""
}

var seq = media.FrameSequence{Dir: "/tmp/stage", Pattern: media.FramePattern, Count: 60}

func TestAnimatedArgs_Compressed(t *testing.T) {
	plan := planner.Plan(100, 60, media.ProfileFor(media.StickerRegular))
	args := animatedArgs(seq, plan, DefaultCRF)

	assert.Equal(t, "1000/100", argValue(t, args, "-framerate"))
	assert.Equal(t, "/tmp/stage/%08d.png", argValue(t, args, "-i"))
	assert.Equal(t,
		"[0:v]scale=w=512:h=512:force_original_aspect_ratio=decrease:force_divisible_by=2[scaled];"+
			"[scaled]fps=20,setpts=(1/2)*PTS[speedup];"+
			"[speedup][1:v]overlay=shortest=1,format=yuva420p[out]",
		argValue(t, args, "-filter_complex"))
	assert.Equal(t, "libvpx-vp9", argValue(t, args, "-c:v"))
	assert.Equal(t, "17", argValue(t, args, "-crf"))
	assert.Equal(t, "50K", argValue(t, args, "-b:v"))
	assert.Equal(t, "50K", argValue(t, args, "-maxrate"))
	assert.Equal(t, "50K", argValue(t, args, "-bufsize"))
	assert.Equal(t, "pipe:", args[len(args)-1])
}

func TestAnimatedArgs_ShortEmoji(t *testing.T) {
	plan := planner.Plan(50, 10, media.ProfileFor(media.StickerEmoji))
	args := animatedArgs(seq, plan, 30)

	assert.Equal(t, "1000/50", argValue(t, args, "-framerate"))
	assert.Equal(t,
		"[0:v]scale=100:100[scaled];[scaled][1:v]overlay=shortest=1,format=yuva420p[out]",
		argValue(t, args, "-filter_complex"))
	assert.Equal(t, "20K", argValue(t, args, "-b:v"))
	assert.Equal(t, "30", argValue(t, args, "-crf"))
}

func TestAnimatedArgs_CappedRate(t *testing.T) {
	plan := planner.Plan(10, 20, media.ProfileFor(media.StickerRegular))
	assert.Equal(t, "30", inputRate(plan))

	plan = planner.Plan(33, 90, media.ProfileFor(media.StickerRegular))
	assert.Equal(t, "30", inputRate(plan))
	assert.Contains(t, filterGraph(plan), "fps=30,setpts=(1/1)*PTS")
}

func TestStaticArgs(t *testing.T) {
	args := staticArgs("/tmp/in.png", media.ProfileFor(media.StickerRegular))
	assert.Equal(t, "/tmp/in.png", argValue(t, args, "-i"))
	assert.Equal(t, "libwebp", argValue(t, args, "-c:v"))
	assert.Equal(t, "scale=w=512:h=512:force_original_aspect_ratio=decrease", argValue(t, args, "-vf"))
	assert.Equal(t, "-", args[len(args)-1])

	args = staticArgs("/tmp/in.png", media.ProfileFor(media.StickerEmoji))
	assert.Equal(t, "scale=100:100", argValue(t, args, "-vf"))
}

func TestEncoder_EncodeAnimated(t *testing.T) {
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte("webm"), nil
		},
	}
	enc := New(runner, Options{}, logger.NewNoop())

	out, err := enc.EncodeAnimated(context.Background(), seq, planner.Plan(100, 60, media.ProfileFor(media.StickerRegular)))
	require.NoError(t, err)
	assert.Equal(t, []byte("webm"), out)
	require.Len(t, runner.Calls, 1)
	assert.Equal(t, toolpath.FFmpeg, runner.Calls[0][0])
}

func TestEncoder_Failures(t *testing.T) {
	exitErr := errors.New("exit status 1")
	tests := []struct {
		name       string
		out        []byte
		err        error
		wantStderr string
		wantErr    error
	}{
		{"empty output", nil, nil, "", ErrEmptyOutput},
		{"nonzero exit", nil, &toolpath.RunError{Tool: "ffmpeg", Stderr: "Invalid data", Err: exitErr}, "Invalid data", exitErr},
		{"missing tool", nil, toolpath.ErrToolNotFound, "", toolpath.ErrToolNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &mocks.ToolRunner{
				RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
					return tt.out, tt.err
				},
			}
			enc := New(runner, Options{}, logger.NewNoop())

			_, err := enc.EncodeStatic(context.Background(), "/tmp/in.png", media.ProfileFor(media.StickerRegular))
			require.ErrorIs(t, err, media.ErrEncode)
			assert.ErrorIs(t, err, tt.wantErr)

			var encErr *media.EncodeError
			require.True(t, errors.As(err, &encErr))
			assert.Equal(t, media.ContainerWebP, encErr.Container)
			assert.Equal(t, tt.wantStderr, encErr.Stderr)
		})
	}
}

func TestEncoder_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runner := &mocks.ToolRunner{
		RunFunc: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return nil, errors.New("signal: killed")
		},
	}

	_, err := New(runner, Options{}, logger.NewNoop()).EncodeAnimated(ctx, seq, media.EncodePlan{IsAnimated: true})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, strings.Contains(err.Error(), "encode"))
}
