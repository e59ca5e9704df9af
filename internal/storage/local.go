package storage

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"ecotech_server/pkg/errorx"
)

const maxNameAttempts = 100

// LocalStore writes resumes into a directory on disk.
type LocalStore struct {
	dir string
}

// NewLocalStore creates dir if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errorx.Wrapf(err, errorx.CodeStorageError, "create upload dir %s", dir)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir is the upload directory.
func (s *LocalStore) Dir() string { return s.dir }

// Save never overwrites: the file is created with O_EXCL and a numeric suffix is added on collision.
func (s *LocalStore) Save(_ context.Context, base string, r io.Reader, _ int64) (string, error) {
	name := base
	var f *os.File
	var err error
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		f, err = os.OpenFile(filepath.Join(s.dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil || !errors.Is(err, fs.ErrExist) {
			break
		}
		name = withSuffix(base, attempt)
	}
	if err != nil {
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "create resume file %s", name)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "write resume file %s", name)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "close resume file %s", name)
	}
	return name, nil
}

func (s *LocalStore) Open(_ context.Context, name string) (io.ReadCloser, int64, error) {
	if !validName(name) {
		return nil, 0, errorx.Newf(errorx.CodeFileMissing, "invalid resume name %q", name)
	}
	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, errorx.Wrapf(err, errorx.CodeFileMissing, "resume %s not found", name)
		}
		return nil, 0, errorx.Wrapf(err, errorx.CodeStorageError, "open resume %s", name)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, errorx.Wrapf(err, errorx.CodeStorageError, "stat resume %s", name)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, 0, errorx.Newf(errorx.CodeFileMissing, "resume %s is a directory", name)
	}
	return f, info.Size(), nil
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errorx.Wrapf(err, errorx.CodeStorageError, "remove resume %s", name)
	}
	return nil
}
