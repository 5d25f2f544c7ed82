package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

// BatchUseCase runs every source document through extraction, segmentation,
// fact extraction and query answering, one document at a time.
type BatchUseCase struct {
	catalog   ports.SourceCatalog
	extractor ports.TextExtractor
	analyzer  ports.ReportAnalyzer
	writer    ports.ReportWriter
	publisher ports.OutcomePublisher
	metrics   ports.BatchMetrics
	logger    *slog.Logger
	now       func() time.Time
}

func NewBatchUseCase(
	catalog ports.SourceCatalog,
	extractor ports.TextExtractor,
	analyzer ports.ReportAnalyzer,
	writer ports.ReportWriter,
	publisher ports.OutcomePublisher,
	metrics ports.BatchMetrics,
	logger *slog.Logger,
) *BatchUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BatchUseCase{
		catalog:   catalog,
		extractor: extractor,
		analyzer:  analyzer,
		writer:    writer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (uc *BatchUseCase) Run(ctx context.Context, req domain.BatchRequest) (*domain.BatchResult, error) {
	req, err := normalizeBatchRequest(req)
	if err != nil {
		return nil, err
	}

	docs, err := uc.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source documents: %w", err)
	}

	result := &domain.BatchResult{
		RunID:     uuid.NewString(),
		Scope:     req.Scope,
		Mode:      req.Mode,
		Outcomes:  make([]domain.DocumentOutcome, 0, len(docs)),
		StartedAt: uc.now(),
	}
	uc.logger.Info("batch_started",
		"run_id", result.RunID,
		"documents", len(docs),
		"queries", len(req.Queries),
		"scope", string(req.Scope),
		"mode", string(req.Mode),
		"strategy", string(req.Strategy),
	)

	for i := range docs {
		if err := ctx.Err(); err != nil {
			result.FinishedAt = uc.now()
			return result, err
		}
		outcome := uc.processDocument(ctx, docs[i], req)
		result.Outcomes = append(result.Outcomes, outcome)
		uc.publish(ctx, result.RunID, outcome)
	}

	if req.Scope == domain.ScopePooled {
		result.Pooled = uc.answerPooled(req, buildSentencePool(result.Outcomes))
	}
	result.FinishedAt = uc.now()

	if uc.writer != nil {
		if err := uc.writer.Write(ctx, result); err != nil {
			return result, fmt.Errorf("write reports: %w", err)
		}
	}

	uc.logger.Info("batch_completed",
		"run_id", result.RunID,
		"documents", len(result.Outcomes),
		"skipped", result.SkippedCount(),
		"duration_ms", float64(result.FinishedAt.Sub(result.StartedAt).Microseconds())/1000.0,
	)
	return result, nil
}

func normalizeBatchRequest(req domain.BatchRequest) (domain.BatchRequest, error) {
	if req.Mode == "" {
		req.Mode = domain.RankModePlain
	}
	if req.Scope == "" {
		req.Scope = domain.ScopePerDocument
	}
	if req.Strategy == "" {
		req.Strategy = domain.StrategyLabelValue
	}
	if req.Mode == domain.RankModeDocumentFiltered {
		req.Scope = domain.ScopePooled
	}
	queries := make([]string, 0, len(req.Queries))
	for _, q := range req.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 && len(req.Queries) > 0 {
		return req, domain.WrapError(domain.ErrInvalidInput, "batch request", errors.New("all queries are blank"))
	}
	req.Queries = queries
	return req, nil
}

func (uc *BatchUseCase) processDocument(ctx context.Context, doc domain.Document, req domain.BatchRequest) domain.DocumentOutcome {
	start := time.Now()
	if uc.metrics != nil {
		uc.metrics.StartDocument()
	}

	outcome := uc.analyzeDocument(ctx, doc, req)

	if uc.metrics != nil {
		uc.metrics.FinishDocument(outcome.Status(), time.Since(start))
	}
	if outcome.Skip != nil {
		uc.logger.Warn("document_skipped",
			"document_id", doc.ID,
			"company", doc.CompanyName,
			"reason", outcome.Skip.Message,
		)
	}
	return outcome
}

func (uc *BatchUseCase) analyzeDocument(ctx context.Context, doc domain.Document, req domain.BatchRequest) domain.DocumentOutcome {
	text, err := uc.extractText(ctx, doc)
	if err != nil {
		return skipOutcome(doc, err)
	}

	report := &domain.DocumentReport{
		Document:   doc,
		Sentences:  uc.analyzer.Segment(text),
		Financials: uc.analyzer.ExtractFinancials(text, req.Strategy),
	}
	if uc.metrics != nil {
		uc.metrics.ObserveFacts(req.Strategy, len(report.Financials))
	}

	year, err := uc.analyzer.ExtractYear(text)
	if err != nil {
		uc.logger.Debug("year_unknown", "document_id", doc.ID, "error", err)
	}
	report.Year = year

	if req.Scope == domain.ScopePerDocument {
		report.Answers = make([]domain.QueryAnswer, 0, len(req.Queries))
		for _, query := range req.Queries {
			answer := uc.rank(query, report.Sentences, domain.RankOptions{Mode: req.Mode})
			report.Answers = append(report.Answers, domain.QueryAnswer{Query: query, Answer: answer})
		}
	}

	return domain.DocumentOutcome{Document: doc, Report: report}
}

func (uc *BatchUseCase) extractText(ctx context.Context, doc domain.Document) (string, error) {
	text, err := uc.extractor.Extract(ctx, &doc)
	if err != nil {
		if domain.KindOf(err) == nil {
			err = domain.WrapError(domain.ErrExtractionUnavailable, "extract text", err)
		}
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrInvalidInput, "extract text", errors.New("empty extracted text"))
	}
	return text, nil
}

func skipOutcome(doc domain.Document, err error) domain.DocumentOutcome {
	return domain.DocumentOutcome{
		Document: doc,
		Skip: &domain.SkipReason{
			Kind:    domain.KindOf(err),
			Message: err.Error(),
		},
	}
}

// buildSentencePool concatenates the sentences of every successful report in
// batch order. The pool is read-only once built.
func buildSentencePool(outcomes []domain.DocumentOutcome) []domain.Sentence {
	var pool []domain.Sentence
	for _, outcome := range outcomes {
		if outcome.Report == nil {
			continue
		}
		for i, sentence := range outcome.Report.Sentences {
			pool = append(pool, domain.Sentence{
				DocumentID: outcome.Document.ID,
				Index:      i,
				Text:       sentence,
			})
		}
	}
	return pool
}

func (uc *BatchUseCase) answerPooled(req domain.BatchRequest, pool []domain.Sentence) []domain.QueryAnswer {
	corpus := make([]string, len(pool))
	ids := make([]string, len(pool))
	for i, sentence := range pool {
		corpus[i] = sentence.Text
		ids[i] = sentence.DocumentID
	}

	out := make([]domain.QueryAnswer, 0, len(req.Queries))
	for _, query := range req.Queries {
		answer := uc.rank(query, corpus, domain.RankOptions{
			Mode:             req.Mode,
			DocumentIDs:      ids,
			AllowedDocuments: req.AllowedDocuments,
		})
		if answer.Matched() && answer.Index >= 0 && answer.Index < len(pool) {
			answer.DocumentID = pool[answer.Index].DocumentID
		}
		out = append(out, domain.QueryAnswer{Query: query, Answer: answer})
	}
	return out
}

func (uc *BatchUseCase) rank(query string, corpus []string, opts domain.RankOptions) domain.RankedAnswer {
	start := time.Now()
	answer, err := uc.analyzer.Rank(query, corpus, opts)
	if err != nil {
		if !domain.IsKind(err, domain.ErrEmptyCorpus) {
			uc.logger.Warn("rank_failed", "query", query, "error", err)
		}
		answer = domain.NoMatchAnswer()
	}
	if uc.metrics != nil {
		uc.metrics.ObserveRank(opts.Mode, answer.Outcome, time.Since(start))
	}
	return answer
}

func (uc *BatchUseCase) publish(ctx context.Context, runID string, outcome domain.DocumentOutcome) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishOutcome(ctx, runID, outcome); err != nil {
		uc.logger.Warn("outcome_publish_failed",
			"run_id", runID,
			"document_id", outcome.Document.ID,
			"error", err,
		)
	}
}
