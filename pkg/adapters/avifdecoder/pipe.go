package avifdecoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strings"
	"sync"

	"github.com/user/stickerize/pkg/adapters/toolpath"
)

// framePipe is an ffmpeg process turning an AV1 OBU stream into a stream
// of PNG images.
type framePipe struct {
	cmd    *exec.Cmd
	cancel context.CancelFunc
	out    *bufio.Reader
	stderr bytes.Buffer

	waitOnce sync.Once
	waitErr  error
}

func pipeArgs(pixFmt string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "obu", "-i", "pipe:0",
		"-fps_mode", "passthrough",
		"-f", "image2pipe", "-c:v", "png", "-pix_fmt", pixFmt,
		"pipe:1",
	}
}

func startPipe(ctx context.Context, ffmpeg string, stream []byte, pixFmt string) (*framePipe, error) {
	ctx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(ctx, ffmpeg, pipeArgs(pixFmt)...)
	cmd.WaitDelay = toolpath.WaitDelay
	cmd.Stdin = bytes.NewReader(stream)

	p := &framePipe{cmd: cmd, cancel: cancel}
	cmd.Stderr = &p.stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("start %s: %w", ffmpeg, err)
	}
	p.out = bufio.NewReaderSize(stdout, 1<<16)
	return p, nil
}

// next returns the following decoded frame, or io.EOF once ffmpeg exited
// cleanly after its last frame.
func (p *framePipe) next() (image.Image, error) {
	if _, err := p.out.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			if werr := p.wait(); werr != nil {
				return nil, werr
			}
			return nil, io.EOF
		}
		return nil, err
	}
	img, err := png.Decode(p.out)
	if err != nil {
		if werr := p.wait(); werr != nil {
			return nil, werr
		}
		return nil, fmt.Errorf("read frame: %w", err)
	}
	return img, nil
}

func (p *framePipe) wait() error {
	p.waitOnce.Do(func() {
		if err := p.cmd.Wait(); err != nil {
			p.waitErr = fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(p.stderr.String()))
		}
	})
	return p.waitErr
}

// close kills the process if it is still running and reaps it.
func (p *framePipe) close() {
	p.cancel()
	_ = p.wait()
}
