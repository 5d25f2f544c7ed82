package ports

import (
	"context"
	"io"
	"time"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

// SourceCatalog lists the source documents of a batch.
type SourceCatalog interface {
	List(ctx context.Context) ([]domain.Document, error)
}

// ObjectStorage stores source documents and generated reports.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// TextExtractor extracts plain text from a source document.
type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.Document) (string, error)
}

// Chunker splits text into sentences.
type Chunker interface {
	Split(text string) []string
}

// FinancialExtractor pulls structured facts out of raw text.
type FinancialExtractor interface {
	Extract(text string, strategy domain.FinancialStrategy) domain.Financials
}

// ReportWriter persists the artifacts of a finished batch.
type ReportWriter interface {
	Write(ctx context.Context, result *domain.BatchResult) error
}

// OutcomePublisher emits per-document outcome events.
type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, runID string, outcome domain.DocumentOutcome) error
}

// BatchMetrics records batch progress.
type BatchMetrics interface {
	StartDocument()
	FinishDocument(status domain.DocumentStatus, duration time.Duration)
	ObserveRank(mode domain.RankMode, outcome domain.AnswerOutcome, duration time.Duration)
	ObserveFacts(strategy domain.FinancialStrategy, found int)
}
