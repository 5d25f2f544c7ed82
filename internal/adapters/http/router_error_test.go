package httpadapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kirillkom/finreport-qa/internal/config"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

type analyzerErrFake struct {
	rankErr error
	yearErr error
}

func (f analyzerErrFake) Segment(string) []string { return nil }

func (f analyzerErrFake) Rank(string, []string, domain.RankOptions) (domain.RankedAnswer, error) {
	return domain.RankedAnswer{}, f.rankErr
}

func (f analyzerErrFake) ExtractFinancials(string, domain.FinancialStrategy) domain.Financials {
	return nil
}

func (f analyzerErrFake) ExtractYear(string) (domain.Year, error) {
	return domain.UnknownYear, f.yearErr
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)
	return res
}

func TestRankMapsDomainInvalidInputTo400(t *testing.T) {
	handler := NewRouter(config.Config{}, analyzerErrFake{
		rankErr: domain.WrapError(domain.ErrInvalidInput, "rank", errors.New("bad ids")),
	}, nil).Handler()

	res := postJSON(t, handler, "/v1/rank", map[string]any{"query": "q", "corpus": []string{"a"}})
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}

func TestRankMapsUnexpectedErrorTo500(t *testing.T) {
	handler := NewRouter(config.Config{}, analyzerErrFake{rankErr: errors.New("boom")}, nil).Handler()

	res := postJSON(t, handler, "/v1/rank", map[string]any{"query": "q", "corpus": []string{"a"}})
	if res.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", res.Code)
	}
}

func TestYearUnknownIsNotAnError(t *testing.T) {
	handler := NewRouter(config.Config{}, analyzerErrFake{
		yearErr: domain.WrapError(domain.ErrNoYearFound, "extract year", errors.New("no token")),
	}, nil).Handler()

	res := postJSON(t, handler, "/v1/year", map[string]any{"text": "no digits"})
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", res.Code)
	}
	var resp yearResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Found || resp.Year != nil {
		t.Fatalf("expected unknown year, got %+v", resp)
	}
}

func TestMapErrorToHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.WrapError(domain.ErrInvalidInput, "op", errors.New("x")), http.StatusBadRequest},
		{domain.WrapError(domain.ErrDocumentNotFound, "op", errors.New("x")), http.StatusNotFound},
		{domain.WrapError(domain.ErrExtractionUnavailable, "op", errors.New("x")), http.StatusUnprocessableEntity},
		{domain.WrapError(domain.ErrTemporary, "op", errors.New("x")), http.StatusServiceUnavailable},
		{errors.New("x"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
			t.Fatalf("mapErrorToHTTPStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}
