package usecase

import (
	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

// AnalyzeUseCase exposes the segmentation, ranking and extraction core.
type AnalyzeUseCase struct {
	chunker    ports.Chunker
	ranker     *Ranker
	financials ports.FinancialExtractor
	years      *YearExtractor
}

func NewAnalyzeUseCase(chunker ports.Chunker, ranker *Ranker, financials ports.FinancialExtractor) *AnalyzeUseCase {
	return &AnalyzeUseCase{
		chunker:    chunker,
		ranker:     ranker,
		financials: financials,
		years:      NewYearExtractor(chunker),
	}
}

func (uc *AnalyzeUseCase) Segment(text string) []string {
	return uc.chunker.Split(text)
}

// Rank reports an empty corpus as a no_match answer; the returned error still
// carries ErrEmptyCorpus for callers that want to count it.
func (uc *AnalyzeUseCase) Rank(query string, corpus []string, opts domain.RankOptions) (domain.RankedAnswer, error) {
	answer, err := uc.ranker.Rank(query, corpus, opts)
	if domain.IsKind(err, domain.ErrEmptyCorpus) {
		return domain.NoMatchAnswer(), err
	}
	return answer, err
}

func (uc *AnalyzeUseCase) ExtractFinancials(text string, strategy domain.FinancialStrategy) domain.Financials {
	return uc.financials.Extract(text, strategy)
}

func (uc *AnalyzeUseCase) ExtractYear(text string) (domain.Year, error) {
	return uc.years.Extract(text)
}
