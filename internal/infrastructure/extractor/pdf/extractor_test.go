package pdf

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

type memStorage map[string][]byte

func (m memStorage) Save(context.Context, string, io.Reader) error { return nil }

func (m memStorage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	raw, ok := m[key]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(raw)), nil
}

func TestExtractRejectsNonPDF(t *testing.T) {
	store := memStorage{"fake.pdf": []byte("plain text pretending")}
	_, err := NewExtractor(store).Extract(context.Background(), &domain.Document{Filename: "fake.pdf", SourcePath: "fake.pdf"})
	if !errors.Is(err, domain.ErrExtractionUnavailable) {
		t.Fatalf("expected ErrExtractionUnavailable, got %v", err)
	}
}

func TestExtractCorruptPDFDoesNotPanic(t *testing.T) {
	store := memStorage{"broken.pdf": []byte("%PDF-1.4\n%%garbage without xref")}
	_, err := NewExtractor(store).Extract(context.Background(), &domain.Document{Filename: "broken.pdf", SourcePath: "broken.pdf"})
	if !errors.Is(err, domain.ErrExtractionUnavailable) {
		t.Fatalf("expected ErrExtractionUnavailable, got %v", err)
	}
}

func TestExtractMissingSource(t *testing.T) {
	_, err := NewExtractor(memStorage{}).Extract(context.Background(), &domain.Document{Filename: "gone.pdf", SourcePath: "gone.pdf"})
	if !errors.Is(err, domain.ErrExtractionUnavailable) {
		t.Fatalf("expected ErrExtractionUnavailable, got %v", err)
	}
}
