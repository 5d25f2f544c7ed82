package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/resilience"
)

type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(context.Context, *domain.Document) (string, error) {
	s.calls++
	return s.text, s.err
}

func TestRouterDispatchesByExtension(t *testing.T) {
	pdfStub := &stubExtractor{text: "from pdf"}
	txtStub := &stubExtractor{text: "from txt"}
	router := NewRouter(map[string]ports.TextExtractor{"PDF": pdfStub, ".txt": txtStub})

	got, err := router.Extract(context.Background(), &domain.Document{Filename: "Wipro.Pdf"})
	if err != nil {
		t.Fatalf("extract pdf: %v", err)
	}
	if got != "from pdf" {
		t.Fatalf("expected pdf extractor, got %q", got)
	}

	got, err = router.Extract(context.Background(), &domain.Document{Filename: "notes.txt"})
	if err != nil {
		t.Fatalf("extract txt: %v", err)
	}
	if got != "from txt" {
		t.Fatalf("expected txt extractor, got %q", got)
	}
	if !router.Supports("a.PDF") || router.Supports("a.docx") {
		t.Fatalf("unexpected Supports result")
	}
}

func TestRouterRejectsUnknownExtension(t *testing.T) {
	router := NewRouter(map[string]ports.TextExtractor{".pdf": &stubExtractor{}})

	_, err := router.Extract(context.Background(), &domain.Document{Filename: "sheet.xlsx"})
	if !errors.Is(err, domain.ErrExtractionUnavailable) {
		t.Fatalf("expected ErrExtractionUnavailable, got %v", err)
	}
}

func TestGuardedRetriesTemporaryErrors(t *testing.T) {
	stub := &stubExtractor{err: domain.WrapError(domain.ErrTemporary, "read", errors.New("busy"))}
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: 1,
		RetryMaxBackoff:     1,
		RetryMultiplier:     1,
	}, nil)
	guarded := NewGuarded(stub, exec)

	_, err := guarded.Extract(context.Background(), &domain.Document{Filename: "a.txt"})
	if !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected temporary error, got %v", err)
	}
	if stub.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", stub.calls)
	}
}

func TestGuardedSingleAttemptPassesTextThrough(t *testing.T) {
	stub := &stubExtractor{text: "Revenue: 1.0 Cr"}
	guarded := NewGuarded(stub, resilience.NewExecutor(resilience.ExtractionConfig(), nil))

	got, err := guarded.Extract(context.Background(), &domain.Document{Filename: "a.txt"})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "Revenue: 1.0 Cr" || stub.calls != 1 {
		t.Fatalf("unexpected result %q after %d calls", got, stub.calls)
	}
}
