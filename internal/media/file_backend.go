package media

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/terraincognita07/daylog/internal/db"
)

const DirName = "media"

type FileBackend struct {
	dir string
}

func NewFileBackend(dataDir string) *FileBackend {
	return &FileBackend{dir: filepath.Join(dataDir, DirName)}
}

func (backend *FileBackend) Dir() string {
	return backend.dir
}

func (backend *FileBackend) Write(ctx context.Context, filename string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return db.WriteFileAtomic(filepath.Join(backend.dir, filename), data, 0o644)
}

func (backend *FileBackend) Read(ctx context.Context, filename string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(backend.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read media %s: %w", filename, err)
	}
	return data, nil
}

func (backend *FileBackend) Exists(ctx context.Context, filename string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(backend.dir, filename))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat media %s: %w", filename, err)
	}
	return !info.IsDir(), nil
}
