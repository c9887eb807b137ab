// Package toolpath locates external programs (ffmpeg, webpmux) and runs them.
package toolpath

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/user/stickerize/pkg/ports"
)

// ErrToolNotFound is returned when a program cannot be located.
var ErrToolNotFound = errors.New("toolpath: tool not found")

// Tool names with their environment override variable.
const (
	FFmpeg  = "ffmpeg"
	WebPMux = "webpmux"
)

// RunError is returned when a program exits unsuccessfully.
type RunError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *RunError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s failed: %v\nstderr: %s", e.Tool, e.Err, e.Stderr)
}

func (e *RunError) Unwrap() error { return e.Err }

// WaitDelay bounds how long a cancelled subprocess may keep its pipes open.
const WaitDelay = 5 * time.Second

// Find searches for a program.
// Priority: 1) custom path, 2) <NAME>_PATH env, 3) PATH, 4) common install locations.
func Find(name, custom string) (string, error) {
	if custom != "" {
		if _, err := os.Stat(custom); err == nil {
			return custom, nil
		}
		return "", fmt.Errorf("%w: custom path %s not found", ErrToolNotFound, custom)
	}

	envVar := strings.ToUpper(name) + "_PATH"
	if envPath := os.Getenv(envVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s %s not found", ErrToolNotFound, envVar, envPath)
	}

	execName := name
	if runtime.GOOS == "windows" {
		execName += ".exe"
	}
	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	for _, dir := range commonDirs() {
		p := dir + string(os.PathSeparator) + execName
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
}

func commonDirs() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{`C:\ffmpeg\bin`, `C:\Program Files\ffmpeg\bin`, `C:\Program Files\libwebp\bin`}
	case "darwin":
		return []string{"/opt/homebrew/bin", "/usr/local/bin", "/usr/bin"}
	default:
		return []string{"/usr/bin", "/usr/local/bin", "/snap/bin", "/opt/homebrew/bin"}
	}
}

// Runner implements ports.ToolRunner with exec.CommandContext.
// Names are resolved through Find with the configured overrides.
type Runner struct {
	paths map[string]string
}

// NewRunner creates a Runner. overrides maps tool names to custom paths.
func NewRunner(overrides map[string]string) *Runner {
	paths := make(map[string]string, len(overrides))
	for k, v := range overrides {
		paths[k] = v
	}
	return &Runner{paths: paths}
}

// Path resolves a tool name.
func (r *Runner) Path(name string) (string, error) {
	return Find(name, r.paths[name])
}

// Run executes the tool and returns stdout. The process is killed when ctx
// is cancelled.
func (r *Runner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = WaitDelay

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, &RunError{Tool: name, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return stdout.Bytes(), nil
}

var _ ports.ToolRunner = (*Runner)(nil)
