// Package storage keeps uploaded resumes, on the local filesystem or in an S3-compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"ecotech_server/internal/config"
	"ecotech_server/pkg/constants"

	"golang.org/x/text/unicode/norm"
)

// ResumeStore persists resume files under a generated name.
type ResumeStore interface {
	// Save writes r under base, usually built by StoredName, and returns the name actually used.
	// A taken name gets a numeric suffix rather than being overwritten.
	Save(ctx context.Context, base string, r io.Reader, size int64) (string, error)
	// Open returns the stored object and its size. A missing object yields errorx.CodeFileMissing.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, name string) error
}

// New builds the store selected by cfg.Backend.
func New(ctx context.Context, cfg *config.StorageConfig) (ResumeStore, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.UploadDir)
	case "s3", "minio":
		return NewMinioStore(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// SecureFilename reduces an uploaded filename to a safe ASCII basename.
// Accents are folded, path separators and whitespace become underscores,
// and anything outside [A-Za-z0-9_.-] is dropped. An empty result becomes "resume.pdf".
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, name)
	name = strings.Join(strings.Fields(name), "_")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '.', r == '-':
			return r
		}
		return -1
	}, name)
	name = strings.Trim(name, "._")
	if name == "" {
		return "resume.pdf"
	}
	return name
}

// StoredName is the object name for an upload received at now.
func StoredName(now time.Time, originalName string) string {
	return now.Format(constants.RESUME_TIMESTAMP_LAYOUT) + SecureFilename(originalName)
}

// withSuffix inserts _n before the extension, used when a name is already taken.
func withSuffix(name string, n int) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s_%d%s", strings.TrimSuffix(name, ext), n, ext)
}

// validName rejects anything that is not a plain basename.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && filepath.Base(name) == name
}
