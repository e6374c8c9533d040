// AngelaMos | 2026
// local.go

package asset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const tempPrefix = ".tmp-"

type LocalStorage struct {
	root string
}

func NewLocalStorage(root string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{root: root}, nil
}

// Put writes to a temp file in the same directory and renames it into
// place, so readers never see a partial file.
func (s *LocalStorage) Put(
	_ context.Context,
	name string,
	r io.Reader,
	_ int64,
	_ string,
) error {
	if !validName(name) {
		return fmt.Errorf("put %q: %w", name, ErrInvalidName)
	}

	tmp, err := os.CreateTemp(s.root, tempPrefix+"*")
	if err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := io.Copy(tmp, r); err != nil {
		cleanup()
		return fmt.Errorf("put %q: %w", name, err)
	}
	//nolint:gosec // G302: uploads are served publicly
	if err := tmp.Chmod(0o644); err != nil {
		cleanup()
		return fmt.Errorf("put %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("put %q: %w", name, err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.root, name)); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("put %q: %w", name, err)
	}

	return nil
}

func (s *LocalStorage) Delete(_ context.Context, name string) error {
	if !validName(name) {
		return fmt.Errorf("delete %q: %w", name, ErrInvalidName)
	}

	err := os.Remove(filepath.Join(s.root, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", name, err)
	}

	return nil
}

func (s *LocalStorage) List(_ context.Context) ([]Object, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}

	objects := make([]Object, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("list uploads: %w", err)
		}

		objects = append(objects, Object{
			Name:    entry.Name(),
			ModTime: info.ModTime(),
		})
	}

	return objects, nil
}

func (s *LocalStorage) Ping(_ context.Context) error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("stat upload dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("upload dir %q is not a directory", s.root)
	}
	return nil
}
