package storage

import (
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps committed avatars in a directory served as static
// content. The directory is explicit configuration, never derived from
// the process location.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{dir: dir}, nil
}

// Commit renames srcPath into the store. Rename is atomic on a single
// volume; when the temp and avatar directories sit on different volumes
// the rename fails and Commit falls back to copy-then-delete, which has
// the same observable effect.
func (s *LocalStore) Commit(_ context.Context, srcPath, name string) error {
	dstPath := filepath.Join(s.dir, name)
	if err := os.Rename(srcPath, dstPath); err == nil {
		return nil
	}
	return copyThenDelete(srcPath, dstPath)
}

func (s *LocalStore) PublicPath(name string) string {
	return path.Join(PublicPrefix, name)
}

func copyThenDelete(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return err
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return err
	}

	return os.Remove(srcPath)
}
