package staging

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/user/stickerize/pkg/adapters/osfilesystem"
	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/mocks"
)

func TestFactory_AcquireAndRelease(t *testing.T) {
	root := t.TempDir()
	factory := NewFactory(osfilesystem.New(), root)

	area, err := factory.Acquire("req-1")
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(area.Dir()), DirPrefix+"req-1-") {
		t.Errorf("unexpected dir name %s", area.Dir())
	}
	if _, err := os.Stat(area.Dir()); err != nil {
		t.Fatalf("staging dir missing: %v", err)
	}

	if err := area.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(area.Dir()); !os.IsNotExist(err) {
		t.Errorf("expected staging dir to be removed, stat err=%v", err)
	}

	// Idempotent.
	if err := area.Release(); err != nil {
		t.Errorf("second Release failed: %v", err)
	}
}

func TestFactory_DistinctDirs(t *testing.T) {
	factory := NewFactory(osfilesystem.New(), t.TempDir())

	a, err := factory.Acquire("same")
	if err != nil {
		t.Fatal(err)
	}
	defer a.Release()
	b, err := factory.Acquire("same")
	if err != nil {
		t.Fatal(err)
	}
	defer b.Release()

	if a.Dir() == b.Dir() {
		t.Error("concurrent requests must not share a staging dir")
	}
}

func TestArea_WriteFrame(t *testing.T) {
	factory := NewFactory(osfilesystem.New(), t.TempDir())
	area, err := factory.Acquire("")
	if err != nil {
		t.Fatal(err)
	}
	defer area.Release()

	img := mocks.SolidFrame(4, 3, color.NRGBA{R: 10, G: 20, B: 30, A: 128})
	if err := area.WriteFrame(7, img); err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	f, err := os.Open(filepath.Join(area.Dir(), "00000007.png"))
	if err != nil {
		t.Fatalf("frame file missing: %v", err)
	}
	defer f.Close()

	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("frame is not a PNG: %v", err)
	}
	if decoded.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("unexpected bounds %v", decoded.Bounds())
	}
	_, _, _, a := decoded.At(1, 1).RGBA()
	if a>>8 != 128 {
		t.Errorf("alpha not preserved: %d", a>>8)
	}

	seq := area.Sequence(8)
	if seq.Dir != area.Dir() || seq.Pattern != media.FramePattern || seq.Count != 8 {
		t.Errorf("unexpected sequence %+v", seq)
	}
}

func TestArea_WriteInput(t *testing.T) {
	fs := mocks.NewFileSystem()
	area, err := NewFactory(fs, "/scratch").Acquire("r")
	if err != nil {
		t.Fatal(err)
	}

	path, err := area.WriteInput("../../cat.gif", []byte("GIF89a"))
	if err != nil {
		t.Fatalf("WriteInput failed: %v", err)
	}
	if filepath.Dir(path) != area.Dir() {
		t.Errorf("input escaped staging dir: %s", path)
	}
	if data, ok := fs.GetFile(path); !ok || string(data) != "GIF89a" {
		t.Errorf("input not stored")
	}

	area.Release()
	if len(fs.Paths()) != 0 {
		t.Errorf("files left after release: %v", fs.Paths())
	}
}

func TestArea_ReleaseFailure(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.RemoveAllFunc = func(path string) error { return errors.New("device busy") }

	area, err := NewFactory(fs, "/scratch").Acquire("r")
	if err != nil {
		t.Fatal(err)
	}

	err = area.Release()
	var cleanup *media.ResourceCleanupFailure
	if !errors.As(err, &cleanup) {
		t.Fatalf("expected ResourceCleanupFailure, got %v", err)
	}

	area.Release()
	if len(fs.RemoveAllCalls) != 1 {
		t.Errorf("expected a single RemoveAll, got %d", len(fs.RemoveAllCalls))
	}
}
