package nats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/resilience"
)

// conn is the subset of *nats.Conn used for publishing.
type conn interface {
	Publish(subject string, data []byte) error
}

// Queue publishes per-document outcome events and consumes batch requests.
type Queue struct {
	nc             *nats.Conn
	pub            conn
	outcomeSubject string
	requestSubject string
	executor       *resilience.Executor
	logger         *slog.Logger
	now            func() time.Time
}

type Options struct {
	RequestSubject       string
	ConnectTimeout       time.Duration
	ReconnectWait        time.Duration
	MaxReconnects        int
	RetryOnFailedConnect *bool
	ResilienceExecutor   *resilience.Executor
	Logger               *slog.Logger
}

func New(url, outcomeSubject string, options Options) (*Queue, error) {
	connectTimeout := options.ConnectTimeout
	if connectTimeout <= 0 {
		connectTimeout = 2 * time.Second
	}
	reconnectWait := options.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}
	maxReconnects := options.MaxReconnects
	if maxReconnects <= 0 {
		maxReconnects = 60
	}
	retryOnFailedConnect := true
	if options.RetryOnFailedConnect != nil {
		retryOnFailedConnect = *options.RetryOnFailedConnect
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}

	nc, err := nats.Connect(
		url,
		nats.Name("finreport-qa"),
		nats.Timeout(connectTimeout),
		nats.ReconnectWait(reconnectWait),
		nats.MaxReconnects(maxReconnects),
		nats.RetryOnFailedConnect(retryOnFailedConnect),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats_disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats_reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	q := newQueue(nc, outcomeSubject, options.ResilienceExecutor, logger)
	q.nc = nc
	q.requestSubject = options.RequestSubject
	return q, nil
}

func newQueue(pub conn, outcomeSubject string, executor *resilience.Executor, logger *slog.Logger) *Queue {
	if logger == nil {
		logger = slog.Default()
	}
	return &Queue{
		pub:            pub,
		outcomeSubject: outcomeSubject,
		executor:       executor,
		logger:         logger,
		now:            time.Now,
	}
}

func (q *Queue) Close() {
	if q.nc != nil {
		q.nc.Close()
	}
}

// OutcomeEvent is the JSON payload published for every processed document.
type OutcomeEvent struct {
	RunID       string                `json:"run_id"`
	DocumentID  string                `json:"document_id"`
	CompanyName string                `json:"company_name"`
	Filename    string                `json:"filename"`
	Status      domain.DocumentStatus `json:"status"`
	Year        int                   `json:"year,omitempty"`
	Financials  domain.Financials     `json:"financials,omitempty"`
	SkipReason  string                `json:"skip_reason,omitempty"`
	EmittedAt   time.Time             `json:"emitted_at"`
}

func newOutcomeEvent(runID string, outcome domain.DocumentOutcome, now time.Time) OutcomeEvent {
	event := OutcomeEvent{
		RunID:       runID,
		DocumentID:  outcome.Document.ID,
		CompanyName: outcome.Document.CompanyName,
		Filename:    outcome.Document.Filename,
		Status:      outcome.Status(),
		EmittedAt:   now.UTC(),
	}
	if outcome.Report != nil {
		event.Year = int(outcome.Report.Year)
		event.Financials = outcome.Report.Financials
	}
	if outcome.Skip != nil {
		event.SkipReason = outcome.Skip.Message
	}
	return event
}

func (q *Queue) PublishOutcome(ctx context.Context, runID string, outcome domain.DocumentOutcome) error {
	payload, err := json.Marshal(newOutcomeEvent(runID, outcome, q.now()))
	if err != nil {
		return fmt.Errorf("encode outcome event: %w", err)
	}

	call := func(_ context.Context) error {
		if err := q.pub.Publish(q.outcomeSubject, payload); err != nil {
			return fmt.Errorf("nats publish: %w", err)
		}
		return nil
	}

	if q.executor != nil {
		err = q.executor.Execute(ctx, "nats.publish", call, classifyNATSError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return wrapTemporaryIfNeeded(err)
	}
	return nil
}

// BatchRequestMessage triggers one batch run. Empty fields fall back to the
// worker's configured defaults.
type BatchRequestMessage struct {
	Queries          []string `json:"queries,omitempty"`
	Mode             string   `json:"mode,omitempty"`
	Scope            string   `json:"scope,omitempty"`
	Strategy         string   `json:"strategy,omitempty"`
	AllowedDocuments []string `json:"allowed_documents,omitempty"`
}

// SubscribeBatchRequests blocks until ctx is cancelled, handing every request
// on the request subject to handler. Requests are load-balanced across workers.
func (q *Queue) SubscribeBatchRequests(ctx context.Context, handler func(context.Context, BatchRequestMessage) error) error {
	if q.nc == nil {
		return fmt.Errorf("nats subscribe: no connection")
	}
	if q.requestSubject == "" {
		return domain.WrapError(domain.ErrInvalidInput, "nats subscribe", fmt.Errorf("request subject is empty"))
	}

	sub, err := q.nc.QueueSubscribe(q.requestSubject, "reportqa-workers", func(msg *nats.Msg) {
		if errors.Is(ctx.Err(), context.Canceled) {
			return
		}

		var req BatchRequestMessage
		if len(msg.Data) > 0 {
			if err := json.Unmarshal(msg.Data, &req); err != nil {
				q.logger.Error("batch_request_decode_failed", "error", err)
				return
			}
		}

		handlerCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		if err := handler(handlerCtx, req); err != nil {
			q.logger.Error("batch_request_failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("nats subscribe: %w", err)
	}

	if err := q.nc.Flush(); err != nil {
		return fmt.Errorf("nats flush: %w", err)
	}

	<-ctx.Done()
	if err := sub.Drain(); err != nil {
		return fmt.Errorf("nats drain subscription: %w", err)
	}
	if err := q.nc.FlushTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("nats flush after drain: %w", err)
	}
	return nil
}

// Noop discards outcome events when no broker is configured.
type Noop struct{}

func (Noop) PublishOutcome(context.Context, string, domain.DocumentOutcome) error {
	return nil
}
