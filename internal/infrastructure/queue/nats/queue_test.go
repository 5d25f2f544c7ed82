package nats

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/resilience"
)

type fakeConn struct {
	subject  string
	payloads [][]byte
	errs     []error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	f.subject = subject
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return err
		}
	}
	f.payloads = append(f.payloads, data)
	return nil
}

func TestPublishOutcomeEncodesReport(t *testing.T) {
	conn := &fakeConn{}
	q := newQueue(conn, "reportqa.outcomes", nil, nil)
	q.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	doc := domain.Document{ID: "Wipro", CompanyName: "Wipro", Filename: "Wipro.pdf"}
	outcome := domain.DocumentOutcome{Document: doc, Report: &domain.DocumentReport{
		Document:   doc,
		Year:       2022,
		Financials: domain.Financials{domain.FieldRevenue: {Kind: domain.FieldRevenue, Value: 10.5}},
	}}
	if err := q.PublishOutcome(context.Background(), "run-1", outcome); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if conn.subject != "reportqa.outcomes" || len(conn.payloads) != 1 {
		t.Fatalf("unexpected publish: subject=%s payloads=%d", conn.subject, len(conn.payloads))
	}
	var event OutcomeEvent
	if err := json.Unmarshal(conn.payloads[0], &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.RunID != "run-1" || event.Status != domain.StatusReady || event.Year != 2022 {
		t.Fatalf("unexpected event %+v", event)
	}
	if event.Financials[domain.FieldRevenue].Value != 10.5 {
		t.Fatalf("unexpected financials %+v", event.Financials)
	}
}

func TestPublishOutcomeSkip(t *testing.T) {
	conn := &fakeConn{}
	q := newQueue(conn, "s", nil, nil)

	outcome := domain.DocumentOutcome{
		Document: domain.Document{ID: "Broken"},
		Skip:     &domain.SkipReason{Kind: domain.ErrExtractionUnavailable, Message: "corrupt"},
	}
	if err := q.PublishOutcome(context.Background(), "run", outcome); err != nil {
		t.Fatalf("publish: %v", err)
	}
	var event OutcomeEvent
	if err := json.Unmarshal(conn.payloads[0], &event); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Status != domain.StatusSkipped || event.SkipReason != "corrupt" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestPublishOutcomeRetriesDisconnects(t *testing.T) {
	conn := &fakeConn{errs: []error{nats.ErrDisconnected, nil}}
	exec := resilience.NewExecutor(resilience.Config{
		RetryMaxAttempts:    2,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     time.Millisecond,
		RetryMultiplier:     1,
	}, nil)
	q := newQueue(conn, "s", exec, nil)

	if err := q.PublishOutcome(context.Background(), "run", domain.DocumentOutcome{}); err != nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if len(conn.payloads) != 1 {
		t.Fatalf("expected one delivered payload, got %d", len(conn.payloads))
	}
}

func TestPublishOutcomeWrapsTemporary(t *testing.T) {
	conn := &fakeConn{errs: []error{nats.ErrConnectionClosed}}
	q := newQueue(conn, "s", nil, nil)

	err := q.PublishOutcome(context.Background(), "run", domain.DocumentOutcome{})
	if !errors.Is(err, domain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary, got %v", err)
	}
}

func TestSubscribeWithoutConnection(t *testing.T) {
	q := newQueue(&fakeConn{}, "s", nil, nil)
	if err := q.SubscribeBatchRequests(context.Background(), nil); err == nil {
		t.Fatalf("expected error without connection")
	}
}
