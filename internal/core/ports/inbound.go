package ports

import (
	"context"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

// ReportAnalyzer is the inbound contract for the retrieval and extraction core.
type ReportAnalyzer interface {
	Segment(text string) []string
	Rank(query string, corpus []string, opts domain.RankOptions) (domain.RankedAnswer, error)
	ExtractFinancials(text string, strategy domain.FinancialStrategy) domain.Financials
	ExtractYear(text string) (domain.Year, error)
}

// BatchRunner is the inbound contract for the document batch.
type BatchRunner interface {
	Run(ctx context.Context, req domain.BatchRequest) (*domain.BatchResult, error)
}
