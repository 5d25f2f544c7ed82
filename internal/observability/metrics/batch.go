package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

// BatchMetrics implements ports.BatchMetrics on a private registry.
type BatchMetrics struct {
	registry *prometheus.Registry
	service  string

	documentTotal    *prometheus.CounterVec
	documentDuration *prometheus.HistogramVec
	documentInFlight prometheus.Gauge
	rankTotal        *prometheus.CounterVec
	rankDuration     *prometheus.HistogramVec
	factsFound       *prometheus.HistogramVec
}

func NewBatchMetrics(service string) *BatchMetrics {
	registry := prometheus.NewRegistry()

	documentTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frqa",
			Subsystem: "batch",
			Name:      "documents_total",
			Help:      "Total processed documents by status.",
		},
		[]string{"service", "status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frqa",
			Subsystem: "batch",
			Name:      "document_duration_seconds",
			Help:      "Document processing duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "status"},
	)
	documentInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "frqa",
			Subsystem: "batch",
			Name:      "documents_in_flight",
			Help:      "Number of documents being processed.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	rankTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frqa",
			Subsystem: "rank",
			Name:      "queries_total",
			Help:      "Total ranked queries by mode and outcome.",
		},
		[]string{"service", "mode", "outcome"},
	)
	rankDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frqa",
			Subsystem: "rank",
			Name:      "duration_seconds",
			Help:      "Ranking duration in seconds by mode.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"service", "mode"},
	)
	factsFound := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frqa",
			Subsystem: "financials",
			Name:      "facts_found",
			Help:      "Financial facts found per document by strategy.",
			Buckets:   []float64{0, 1, 2, 3},
		},
		[]string{"service", "strategy"},
	)

	registry.MustRegister(documentTotal, documentDuration, documentInFlight, rankTotal, rankDuration, factsFound)

	return &BatchMetrics{
		registry:         registry,
		service:          service,
		documentTotal:    documentTotal,
		documentDuration: documentDuration,
		documentInFlight: documentInFlight,
		rankTotal:        rankTotal,
		rankDuration:     rankDuration,
		factsFound:       factsFound,
	}
}

func (m *BatchMetrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *BatchMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *BatchMetrics) StartDocument() {
	m.documentInFlight.Inc()
}

func (m *BatchMetrics) FinishDocument(status domain.DocumentStatus, duration time.Duration) {
	m.documentInFlight.Dec()
	m.documentTotal.WithLabelValues(m.service, string(status)).Inc()
	m.documentDuration.WithLabelValues(m.service, string(status)).Observe(duration.Seconds())
}

func (m *BatchMetrics) ObserveRank(mode domain.RankMode, outcome domain.AnswerOutcome, duration time.Duration) {
	m.rankTotal.WithLabelValues(m.service, string(mode), string(outcome)).Inc()
	m.rankDuration.WithLabelValues(m.service, string(mode)).Observe(duration.Seconds())
}

func (m *BatchMetrics) ObserveFacts(strategy domain.FinancialStrategy, found int) {
	m.factsFound.WithLabelValues(m.service, string(strategy)).Observe(float64(found))
}

// WriteTextfile dumps the registry in the node-exporter textfile format.
// The batch CLI uses it instead of serving /metrics.
func (m *BatchMetrics) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
