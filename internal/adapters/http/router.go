package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/kirillkom/finreport-qa/internal/config"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
	"github.com/kirillkom/finreport-qa/internal/observability/metrics"
)

const (
	serviceName      = "api"
	maxRequestBytes  = 16 << 20
	maxInFlight      = 64
	backpressureWait = 250 * time.Millisecond
)

type Router struct {
	cfg      config.Config
	analyzer ports.ReportAnalyzer
	metrics  *metrics.HTTPServerMetrics
}

func NewRouter(cfg config.Config, analyzer ports.ReportAnalyzer, httpMetrics *metrics.HTTPServerMetrics) *Router {
	return &Router{
		cfg:      cfg,
		analyzer: analyzer,
		metrics:  httpMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/segment", rt.segment)
	mux.HandleFunc("/v1/rank", rt.rank)
	mux.HandleFunc("/v1/financials", rt.financials)
	mux.HandleFunc("/v1/year", rt.year)

	var handler http.Handler = mux
	handler = backpressureMiddleware(handler, maxInFlight, backpressureWait)
	handler = rateLimitMiddleware(handler, rt.cfg.APIRateLimitRPS, rt.cfg.APIRateLimitBurst)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		handler = rt.metrics.Middleware(serviceName, handler)
	}
	return requestIDMiddleware(accessLogMiddleware(handler))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type segmentRequest struct {
	Text string `json:"text"`
}

func (rt *Router) segment(w http.ResponseWriter, r *http.Request) {
	var req segmentRequest
	if !decodePost(w, r, &req) {
		return
	}
	sentences := rt.analyzer.Segment(req.Text)
	rt.record("segment", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"sentences": sentences, "count": len(sentences)})
}

type rankRequest struct {
	Query            string   `json:"query"`
	Corpus           []string `json:"corpus"`
	Mode             string   `json:"mode"`
	DocumentIDs      []string `json:"document_ids"`
	AllowedDocuments []string `json:"allowed_documents"`
}

func (rt *Router) rank(w http.ResponseWriter, r *http.Request) {
	var req rankRequest
	if !decodePost(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}
	mode, err := domain.ParseRankMode(req.Mode)
	if err != nil {
		rt.writeError(w, r, "rank", err)
		return
	}
	if req.Corpus == nil {
		req.Corpus = []string{}
	}

	answer, err := rt.analyzer.Rank(req.Query, req.Corpus, domain.RankOptions{
		Mode:             mode,
		DocumentIDs:      req.DocumentIDs,
		AllowedDocuments: req.AllowedDocuments,
	})
	if err != nil && !errors.Is(err, domain.ErrEmptyCorpus) {
		rt.writeError(w, r, "rank", err)
		return
	}
	rt.record("rank", string(answer.Outcome))
	writeJSON(w, http.StatusOK, answer)
}

type financialsRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

func (rt *Router) financials(w http.ResponseWriter, r *http.Request) {
	var req financialsRequest
	if !decodePost(w, r, &req) {
		return
	}
	strategy, err := domain.ParseFinancialStrategy(req.Strategy)
	if err != nil {
		rt.writeError(w, r, "financials", err)
		return
	}
	facts := rt.analyzer.ExtractFinancials(req.Text, strategy)
	if facts == nil {
		facts = domain.Financials{}
	}
	rt.record("financials", "ok")
	writeJSON(w, http.StatusOK, map[string]any{"strategy": strategy, "financials": facts})
}

type yearRequest struct {
	Text string `json:"text"`
}

type yearResponse struct {
	Year  *int `json:"year"`
	Found bool `json:"found"`
}

func (rt *Router) year(w http.ResponseWriter, r *http.Request) {
	var req yearRequest
	if !decodePost(w, r, &req) {
		return
	}
	year, err := rt.analyzer.ExtractYear(req.Text)
	if err != nil && !errors.Is(err, domain.ErrNoYearFound) {
		rt.writeError(w, r, "year", err)
		return
	}
	resp := yearResponse{Found: year.Known()}
	if year.Known() {
		v := int(year)
		resp.Year = &v
	}
	result := "unknown"
	if resp.Found {
		result = "found"
	}
	rt.record("year", result)
	writeJSON(w, http.StatusOK, resp)
}

// decodePost enforces POST with a JSON body and writes the error response
// itself when it returns false.
func decodePost(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "request body too large"})
			return false
		}
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return false
	}
	return true
}

func (rt *Router) writeError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	status := mapErrorToHTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("analyzer_call_failed",
			"request_id", requestIDFromContext(r.Context()),
			"operation", operation,
			"error", err,
		)
	}
	rt.record(operation, "error")
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (rt *Router) record(operation, result string) {
	if rt.metrics != nil {
		rt.metrics.RecordAnalyzerCall(serviceName, operation, result)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
