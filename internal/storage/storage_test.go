package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ecotech_server/internal/config"
	"ecotech_server/pkg/errorx"
)

func TestSecureFilename(t *testing.T) {
	cases := map[string]string{
		"resume.pdf":                "resume.pdf",
		"My Resume 2025.pdf":        "My_Resume_2025.pdf",
		"../../etc/passwd":          "etc_passwd",
		`C:\Users\asha\cv.pdf`:      "C_Users_asha_cv.pdf",
		"résumé.pdf":                "resume.pdf",
		"__.pdf":                    "pdf",
		"":                          "resume.pdf",
		"日本語":                       "resume.pdf",
		"weird$chars&(1).pdf":       "weirdchars1.pdf",
		"  spaced   out  name.pdf ": "spaced_out_name.pdf",
	}
	for in, want := range cases {
		if got := SecureFilename(in); got != want {
			t.Errorf("SecureFilename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestStoredName(t *testing.T) {
	at := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	if got := StoredName(at, "cv.pdf"); got != "20250304_050607_cv.pdf" {
		t.Fatalf("StoredName = %q", got)
	}
}

var stamp = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func newLocal(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("new local store: %v", err)
	}
	return s
}

func TestLocalStoreRoundTrip(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	name, err := s.Save(ctx, StoredName(stamp, "resume.pdf"), strings.NewReader("%PDF-data"), 9)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if name != "20250101_120000_resume.pdf" {
		t.Fatalf("name = %q", name)
	}

	rc, size, err := s.Open(ctx, name)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(data) != "%PDF-data" || size != 9 {
		t.Fatalf("got %q size %d", data, size)
	}

	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := s.Open(ctx, name); errorx.GetCode(err) != errorx.CodeFileMissing {
		t.Fatalf("expected CodeFileMissing after delete, got %v", err)
	}
	if err := s.Delete(ctx, name); err != nil {
		t.Fatalf("second delete should be a no-op: %v", err)
	}
}

func TestLocalStoreNeverOverwrites(t *testing.T) {
	s := newLocal(t)
	ctx := context.Background()
	first, err := s.Save(ctx, StoredName(stamp, "cv.pdf"), bytes.NewReader([]byte("one")), 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.Save(ctx, StoredName(stamp, "cv.pdf"), bytes.NewReader([]byte("two")), 3)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("second upload reused name %q", first)
	}
	if second != "20250101_120000_cv_1.pdf" {
		t.Fatalf("second name = %q", second)
	}
	data, err := os.ReadFile(filepath.Join(s.Dir(), first))
	if err != nil || string(data) != "one" {
		t.Fatalf("first file changed: %q %v", data, err)
	}
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	s := newLocal(t)
	for _, name := range []string{"../secret", "a/b.pdf", "..", ""} {
		if _, _, err := s.Open(context.Background(), name); errorx.GetCode(err) != errorx.CodeFileMissing {
			t.Fatalf("Open(%q) = %v", name, err)
		}
	}
}

func TestNewSelectsBackend(t *testing.T) {
	store, err := New(context.Background(), &config.StorageConfig{Backend: "local", UploadDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, ok := store.(*LocalStore); !ok {
		t.Fatalf("expected *LocalStore, got %T", store)
	}
	if _, err := New(context.Background(), &config.StorageConfig{Backend: "ftp"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
