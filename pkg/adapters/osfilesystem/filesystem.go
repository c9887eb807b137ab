// Package osfilesystem implements ports.FileSystem on the local disk.
package osfilesystem

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/user/stickerize/pkg/ports"
)

// FileSystem implements ports.FileSystem using the os package.
// It backs staging areas, debug artifacts and CLI input/output.
type FileSystem struct {
	tempRoot string
}

// New creates a FileSystem whose TempDir is the OS temporary directory.
func New() *FileSystem {
	return &FileSystem{}
}

// NewWithTempRoot creates a FileSystem whose TempDir is root.
func NewWithTempRoot(root string) *FileSystem {
	return &FileSystem{tempRoot: root}
}

func (f *FileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes through a temporary sibling and renames it into place so
// readers never observe a partially written sticker.
func (f *FileSystem) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}

func (f *FileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0755)
}

func (f *FileSystem) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func (f *FileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (f *FileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}

func (f *FileSystem) TempDir() string {
	if f.tempRoot != "" {
		return f.tempRoot
	}
	return os.TempDir()
}

var _ ports.FileSystem = (*FileSystem)(nil)
