package extractor

import (
	"context"
	"errors"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/resilience"
)

const guardedOperation = "text.extract"

// Guarded runs an extractor through the resilience executor. With the
// default config every document gets one attempt.
type Guarded struct {
	next     ports.TextExtractor
	executor *resilience.Executor
}

func NewGuarded(next ports.TextExtractor, executor *resilience.Executor) *Guarded {
	return &Guarded{next: next, executor: executor}
}

func (g *Guarded) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	var text string
	err := g.executor.Execute(ctx, guardedOperation, func(callCtx context.Context) error {
		out, err := g.next.Extract(callCtx, doc)
		if err != nil {
			return err
		}
		text = out
		return nil
	}, classifyExtractionError)
	if err != nil {
		if resilience.IsCircuitOpen(err) {
			return "", domain.WrapError(domain.ErrExtractionUnavailable, "extract text", err)
		}
		return "", err
	}
	return text, nil
}

func classifyExtractionError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	}
	if domain.IsKind(err, domain.ErrTemporary) {
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	}
	return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
}
