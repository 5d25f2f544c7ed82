package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func TestBatchMetricsCountsDocuments(t *testing.T) {
	m := NewBatchMetrics("reportqa")

	m.StartDocument()
	m.FinishDocument(domain.StatusReady, 10*time.Millisecond)
	m.StartDocument()
	m.FinishDocument(domain.StatusSkipped, time.Millisecond)
	m.StartDocument()
	m.FinishDocument(domain.StatusReady, time.Millisecond)

	body := scrape(t, m)
	for _, want := range []string{
		`frqa_batch_documents_total{service="reportqa",status="ready"} 2`,
		`frqa_batch_documents_total{service="reportqa",status="skipped"} 1`,
		`frqa_batch_documents_in_flight{service="reportqa"} 0`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func scrape(t *testing.T, m *BatchMetrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected scrape status %d", rec.Code)
	}
	return rec.Body.String()
}

func TestBatchMetricsRankAndHandler(t *testing.T) {
	m := NewBatchMetrics("reportqa")
	m.ObserveRank(domain.RankModePlain, domain.OutcomeMatched, time.Millisecond)
	m.ObserveFacts(domain.StrategyLabelValue, 2)

	body := scrape(t, m)
	for _, want := range []string{
		`frqa_rank_queries_total{mode="plain",outcome="matched",service="reportqa"} 1`,
		`frqa_financials_facts_found_count{service="reportqa",strategy="label-value"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q:\n%s", want, body)
		}
	}
}

func TestWriteTextfile(t *testing.T) {
	m := NewBatchMetrics("reportqa")
	m.ObserveFacts(domain.StrategyLineScan, 1)

	path := filepath.Join(t.TempDir(), "reportqa.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("write textfile: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(raw), "frqa_financials_facts_found") {
		t.Fatalf("textfile missing metric:\n%s", raw)
	}
	if err := m.WriteTextfile(""); err != nil {
		t.Fatalf("empty path must be a no-op, got %v", err)
	}
}
