// Package staging provides per-request scratch directories for staged
// input files and expanded frames.
package staging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/user/stickerize/pkg/media"
	"github.com/user/stickerize/pkg/ports"
)

// DirPrefix starts the name of every staging directory.
const DirPrefix = "stickerize-"

// Factory creates staging areas below a root directory.
type Factory struct {
	fs   ports.FileSystem
	root string
}

// NewFactory creates a Factory. An empty root uses fs.TempDir().
func NewFactory(fs ports.FileSystem, root string) *Factory {
	if root == "" {
		root = fs.TempDir()
	}
	return &Factory{fs: fs, root: root}
}

// Acquire creates a fresh directory for one request. requestID only makes
// the name easier to correlate with logs; uniqueness comes from a UUID.
func (f *Factory) Acquire(requestID string) (ports.Staging, error) {
	name := DirPrefix + uuid.NewString()
	if requestID != "" {
		name = DirPrefix + sanitize(requestID) + "-" + uuid.NewString()[:8]
	}
	dir := filepath.Join(f.root, name)
	if err := f.fs.MkdirAll(dir); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Area{fs: f.fs, dir: dir}, nil
}

// Area is one staging directory.
type Area struct {
	fs  ports.FileSystem
	dir string

	once       sync.Once
	releaseErr error
}

// Dir returns the directory path.
func (a *Area) Dir() string {
	return a.dir
}

// WriteInput stores the raw input bytes under name.
func (a *Area) WriteInput(name string, data []byte) (string, error) {
	path := filepath.Join(a.dir, "input-"+filepath.Base(name))
	if err := a.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("stage input: %w", err)
	}
	return path, nil
}

// WriteFrame encodes img as PNG under the frame name of index.
// Frames favor encode speed over size; they only live until the encoder reads them.
func (a *Area) WriteFrame(index int, img image.Image) error {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := a.fs.WriteFile(a.FramePath(index), buf.Bytes()); err != nil {
		return fmt.Errorf("write frame %d: %w", index, err)
	}
	return nil
}

// FramePath returns the absolute path of the frame at index.
func (a *Area) FramePath(index int) string {
	return filepath.Join(a.dir, media.FrameName(index))
}

// Sequence describes count frames written to this area.
func (a *Area) Sequence(count int) media.FrameSequence {
	return media.FrameSequence{
		Dir:     a.dir,
		Pattern: media.FramePattern,
		Count:   count,
	}
}

// Release removes the directory. Only the first call touches the disk; later
// calls return the first result.
func (a *Area) Release() error {
	a.once.Do(func() {
		if err := a.fs.RemoveAll(a.dir); err != nil {
			a.releaseErr = &media.ResourceCleanupFailure{Resource: a.dir, Err: err}
		}
	})
	return a.releaseErr
}

func sanitize(id string) string {
	out := make([]byte, 0, len(id))
	for i := 0; i < len(id) && len(out) < 32; i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			out = append(out, c)
		default:
			out = append(out, '_')
		}
	}
	return string(out)
}

var (
	_ ports.StagingFactory = (*Factory)(nil)
	_ ports.Staging        = (*Area)(nil)
)
