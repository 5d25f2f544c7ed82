package localfs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func TestSaveAndOpenRoundTrip(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new storage: %v", err)
	}

	if err := store.Save(context.Background(), "reports/answers.txt", strings.NewReader("hello")); err != nil {
		t.Fatalf("save: %v", err)
	}
	rc, err := store.Open(context.Background(), "reports/answers.txt")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer rc.Close()
	raw, _ := io.ReadAll(rc)
	if string(raw) != "hello" {
		t.Fatalf("unexpected content %q", raw)
	}
}

func TestOpenMissingIsNotFound(t *testing.T) {
	store, _ := New(t.TempDir())
	_, err := store.Open(context.Background(), "missing.pdf")
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestRejectsEscapingKeys(t *testing.T) {
	store, _ := New(t.TempDir())
	for _, key := range []string{"../etc/passwd", "", "/abs/path"} {
		if err := store.Save(context.Background(), key, strings.NewReader("x")); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("key %q: expected ErrInvalidInput, got %v", key, err)
		}
	}
}

func TestCatalogListsSupportedFilesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Wipro.pdf", "Infosys.txt", "notes.docx", ".hidden.pdf", "TCS.PDF"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	docs, err := NewCatalog(dir).List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Infosys", "TCS", "Wipro"}
	if len(docs) != len(want) {
		t.Fatalf("expected %d docs, got %+v", len(want), docs)
	}
	for i, name := range want {
		if docs[i].CompanyName != name || docs[i].ID != name {
			t.Fatalf("doc %d: expected %s, got %+v", i, name, docs[i])
		}
	}
	if docs[0].MimeType != "text/plain" || docs[1].MimeType != "application/pdf" {
		t.Fatalf("unexpected mime types: %+v", docs)
	}
}

func TestCatalogMissingDir(t *testing.T) {
	_, err := NewCatalog(filepath.Join(t.TempDir(), "nope")).List(context.Background())
	if !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
}

func TestExistingRequiresDirectory(t *testing.T) {
	dir := t.TempDir()
	if _, err := Existing(filepath.Join(dir, "missing")); !errors.Is(err, domain.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	file := filepath.Join(dir, "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Existing(file); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := Existing(dir); err != nil {
		t.Fatalf("existing dir: %v", err)
	}
}
