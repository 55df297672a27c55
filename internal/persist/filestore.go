package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"chillista/internal/ports"
)

// FileStore keeps one JSON save per player in a directory.
type FileStore struct {
	dir string
}

var _ ports.SaveStore = (*FileStore)(nil)

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("persist: create save dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (f *FileStore) path(userID string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, userID)
	if name == "" {
		name = SaveKey
	}
	return filepath.Join(f.dir, name+".json")
}

// LoadSave reads the player's save file.
func (f *FileStore) LoadSave(ctx context.Context, userID string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("persist: read save: %w", err)
	}
	return data, nil
}

// WriteSave replaces the save atomically: a crash mid-write leaves the old file intact.
func (f *FileStore) WriteSave(ctx context.Context, userID string, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := f.writeTemp(blob)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, f.path(userID)); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("persist: replace save: %w", err)
	}
	return nil
}

// CreateSaveOnce links a fully written temp file into place, which fails if a save exists.
func (f *FileStore) CreateSaveOnce(ctx context.Context, userID string, blob []byte) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	tmp, err := f.writeTemp(blob)
	if err != nil {
		return false, err
	}
	defer os.Remove(tmp)

	if err := os.Link(tmp, f.path(userID)); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("persist: create save: %w", err)
	}
	return true, nil
}

// DeleteSave removes the save file if present.
func (f *FileStore) DeleteSave(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := os.Remove(f.path(userID))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("persist: delete save: %w", err)
	}
	return nil
}

func (f *FileStore) writeTemp(blob []byte) (string, error) {
	tmp, err := os.CreateTemp(f.dir, ".save-*.tmp")
	if err != nil {
		return "", fmt.Errorf("persist: create temp: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf("persist: write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(name)
		return "", fmt.Errorf("persist: sync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return "", fmt.Errorf("persist: close temp: %w", err)
	}
	return name, nil
}
