package config

import (
	"errors"
	"testing"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func TestLoadIncludesBatchDefaults(t *testing.T) {
	for _, key := range []string{"RANK_MODE", "BATCH_SCOPE", "FINANCIAL_STRATEGY", "ANSWER_MAX_SEGMENTS", "RANK_TOP_CANDIDATES", "ALLOWED_DOCUMENTS", "NATS_URL", "EXTRACT_RETRY_MAX_ATTEMPTS"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.RankMode != "plain" {
		t.Fatalf("expected default rank mode plain, got %q", cfg.RankMode)
	}
	if cfg.BatchScope != "per-document" {
		t.Fatalf("expected default scope per-document, got %q", cfg.BatchScope)
	}
	if cfg.FinancialStrategy != "label-value" {
		t.Fatalf("expected default strategy label-value, got %q", cfg.FinancialStrategy)
	}
	if cfg.AnswerMaxSegments != 3 || cfg.RankTopCandidates != 3 {
		t.Fatalf("expected 3/3 answer defaults, got %d/%d", cfg.AnswerMaxSegments, cfg.RankTopCandidates)
	}
	if cfg.AllowedDocuments != nil {
		t.Fatalf("expected no allowed documents, got %v", cfg.AllowedDocuments)
	}
	if cfg.NATSURL != "" {
		t.Fatalf("expected publishing disabled by default, got %q", cfg.NATSURL)
	}
	if cfg.ExtractRetryMaxAttempts != 1 {
		t.Fatalf("expected single extraction attempt, got %d", cfg.ExtractRetryMaxAttempts)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate, got %v", err)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("RANK_MODE", "document-filtered")
	t.Setenv("ALLOWED_DOCUMENTS", " Wipro, ,TCS ")
	t.Setenv("ANSWER_MAX_SEGMENTS", "2")
	t.Setenv("REPORT_XLSX_ENABLED", "true")
	t.Setenv("API_RATE_LIMIT_RPS", "2.5")
	t.Setenv("API_RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()
	if cfg.RankMode != "document-filtered" {
		t.Fatalf("expected rank mode override, got %q", cfg.RankMode)
	}
	if len(cfg.AllowedDocuments) != 2 || cfg.AllowedDocuments[0] != "Wipro" || cfg.AllowedDocuments[1] != "TCS" {
		t.Fatalf("unexpected allowed documents %v", cfg.AllowedDocuments)
	}
	if cfg.AnswerMaxSegments != 2 {
		t.Fatalf("expected 2 answer segments, got %d", cfg.AnswerMaxSegments)
	}
	if !cfg.ReportXLSXEnabled {
		t.Fatalf("expected xlsx enabled")
	}
	if cfg.APIRateLimitRPS != 2.5 {
		t.Fatalf("expected rps 2.5, got %v", cfg.APIRateLimitRPS)
	}
	if cfg.APIRateLimitBurst != 40 {
		t.Fatalf("expected burst fallback 40, got %d", cfg.APIRateLimitBurst)
	}
}

func TestValidateRejectsUnknownEnums(t *testing.T) {
	t.Setenv("RANK_MODE", "semantic")
	t.Setenv("FINANCIAL_STRATEGY", "llm")

	err := Load().Validate()
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
