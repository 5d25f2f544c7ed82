package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/finreport-qa/internal/config"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
	"github.com/kirillkom/finreport-qa/internal/core/usecase"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/chunking"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/extractor"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/extractor/pdf"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/extractor/plaintext"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/financial"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/queue/nats"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/report"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/resilience"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/storage/localfs"
	"github.com/kirillkom/finreport-qa/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Analyzer ports.ReportAnalyzer
	BatchUC  ports.BatchRunner
	Metrics  *metrics.BatchMetrics
	// Queue is nil when NATS_URL is empty.
	Queue *nats.Queue

	closeFn func()
}

// NewAnalyzer builds the stateless analysis core used by the API and by the
// batch.
func NewAnalyzer(cfg config.Config, logger *slog.Logger) *usecase.AnalyzeUseCase {
	chunker := chunking.NewSentenceSplitter()
	ranker := usecase.NewRanker(cfg.AnswerMaxSegments, cfg.RankTopCandidates)
	return usecase.NewAnalyzeUseCase(chunker, ranker, financial.NewExtractor(logger))
}

// NewTextExtractor routes .pdf and .txt sources read from storage through the
// extraction guard.
func NewTextExtractor(sources ports.ObjectStorage, cfg config.Config, logger *slog.Logger) ports.TextExtractor {
	extractCfg := resilience.ExtractionConfig()
	if cfg.ExtractRetryMaxAttempts > 0 {
		extractCfg.RetryMaxAttempts = cfg.ExtractRetryMaxAttempts
	}
	extractCfg.BreakerEnabled = cfg.ExtractBreakerEnabled
	return extractor.NewGuarded(
		extractor.NewRouter(map[string]ports.TextExtractor{
			".pdf": pdf.NewExtractor(sources),
			".txt": plaintext.NewExtractor(sources),
		}),
		resilience.NewExecutor(extractCfg, logger),
	)
}

// New wires the batch over SOURCE_DIR and OUTPUT_DIR.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	sources, err := localfs.Existing(cfg.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("init source storage: %w", err)
	}
	outputs, err := localfs.New(cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("init output storage: %w", err)
	}

	textExtractor := NewTextExtractor(sources, cfg, logger)

	var (
		queue     *nats.Queue
		publisher ports.OutcomePublisher = nats.Noop{}
	)
	if cfg.NATSURL != "" {
		queue, err = nats.New(cfg.NATSURL, cfg.NATSSubject, nats.Options{
			RequestSubject:     cfg.NATSRequestSubject,
			ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig(), logger),
			Logger:             logger,
		})
		if err != nil {
			return nil, fmt.Errorf("init message queue: %w", err)
		}
		publisher = queue
	}

	analyzer := NewAnalyzer(cfg, logger)
	batchMetrics := metrics.NewBatchMetrics("reportqa")
	batchUC := usecase.NewBatchUseCase(
		localfs.NewCatalog(cfg.SourceDir, ".pdf", ".txt"),
		textExtractor,
		analyzer,
		report.NewWriter(outputs, cfg.ReportXLSXEnabled, logger),
		publisher,
		batchMetrics,
		logger,
	)

	return &App{
		Config:   cfg,
		Analyzer: analyzer,
		BatchUC:  batchUC,
		Metrics:  batchMetrics,
		Queue:    queue,
		closeFn: func() {
			if queue != nil {
				queue.Close()
			}
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// BatchRequest builds a batch request from the configured defaults.
func BatchRequest(cfg config.Config, queries []string) (domain.BatchRequest, error) {
	mode, err := domain.ParseRankMode(cfg.RankMode)
	if err != nil {
		return domain.BatchRequest{}, err
	}
	scope, err := domain.ParseBatchScope(cfg.BatchScope)
	if err != nil {
		return domain.BatchRequest{}, err
	}
	strategy, err := domain.ParseFinancialStrategy(cfg.FinancialStrategy)
	if err != nil {
		return domain.BatchRequest{}, err
	}
	return domain.BatchRequest{
		Queries:          queries,
		Mode:             mode,
		Scope:            scope,
		Strategy:         strategy,
		AllowedDocuments: cfg.AllowedDocuments,
	}, nil
}
