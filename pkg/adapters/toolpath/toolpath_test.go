package toolpath

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFind_CustomPath(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}

	got, err := Find(FFmpeg, fake)
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got != fake {
		t.Errorf("expected %s, got %s", fake, got)
	}
}

func TestFind_MissingCustomPath(t *testing.T) {
	_, err := Find(FFmpeg, filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestFind_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "webpmux")
	if err := os.WriteFile(fake, nil, 0755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WEBPMUX_PATH", fake)

	got, err := Find(WebPMux, "")
	if err != nil {
		t.Fatalf("Find failed: %v", err)
	}
	if got != fake {
		t.Errorf("expected %s, got %s", fake, got)
	}
}

func TestRunner_UnknownTool(t *testing.T) {
	r := NewRunner(nil)
	_, err := r.Run(context.Background(), "definitely-not-a-real-tool-xyz")
	if !errors.Is(err, ErrToolNotFound) {
		t.Errorf("expected ErrToolNotFound, got %v", err)
	}
}

func TestRunner_RunErrorCarriesStderr(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "ffmpeg")
	script := "#!/bin/sh\necho 'bad input' >&2\nexit 3\n"
	if err := os.WriteFile(fake, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}

	r := NewRunner(map[string]string{FFmpeg: fake})
	_, err := r.Run(context.Background(), FFmpeg, "-i", "x")

	var runErr *RunError
	if !errors.As(err, &runErr) {
		t.Fatalf("expected RunError, got %v", err)
	}
	if runErr.Tool != FFmpeg || runErr.Stderr != "bad input" {
		t.Errorf("unexpected error fields %+v", runErr)
	}
}

func TestRunner_Stdout(t *testing.T) {
	dir := t.TempDir()
	fake := filepath.Join(dir, "webpmux")
	if err := os.WriteFile(fake, []byte("#!/bin/sh\necho \"$1\"\n"), 0755); err != nil {
		t.Fatal(err)
	}

	out, err := NewRunner(map[string]string{WebPMux: fake}).Run(context.Background(), WebPMux, "-info")
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if string(out) != "-info\n" {
		t.Errorf("unexpected stdout %q", out)
	}
}
