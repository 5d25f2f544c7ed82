package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

type Config struct {
	APIPort  string
	LogLevel string

	SourceDir   string
	OutputDir   string
	QueriesFile string

	RankMode          string
	BatchScope        string
	AllowedDocuments  []string
	FinancialStrategy string
	AnswerMaxSegments int
	RankTopCandidates int

	ReportXLSXEnabled bool
	MetricsTextfile   string

	ExtractRetryMaxAttempts int
	ExtractBreakerEnabled   bool

	NATSURL            string
	NATSSubject        string
	NATSRequestSubject string

	APIRateLimitRPS   float64
	APIRateLimitBurst int

	WorkerMetricsPort string
}

func Load() Config {
	return Config{
		APIPort:  mustEnv("API_PORT", "8080"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		SourceDir:   mustEnv("SOURCE_DIR", "./data/reports"),
		OutputDir:   mustEnv("OUTPUT_DIR", "./data/output"),
		QueriesFile: mustEnv("QUERIES_FILE", ""),

		RankMode:          mustEnv("RANK_MODE", string(domain.RankModePlain)),
		BatchScope:        mustEnv("BATCH_SCOPE", string(domain.ScopePerDocument)),
		AllowedDocuments:  mustEnvList("ALLOWED_DOCUMENTS", nil),
		FinancialStrategy: mustEnv("FINANCIAL_STRATEGY", string(domain.StrategyLabelValue)),
		AnswerMaxSegments: mustEnvInt("ANSWER_MAX_SEGMENTS", 3),
		RankTopCandidates: mustEnvInt("RANK_TOP_CANDIDATES", 3),

		ReportXLSXEnabled: mustEnvBool("REPORT_XLSX_ENABLED", false),
		MetricsTextfile:   mustEnv("METRICS_TEXTFILE", ""),

		ExtractRetryMaxAttempts: mustEnvInt("EXTRACT_RETRY_MAX_ATTEMPTS", 1),
		ExtractBreakerEnabled:   mustEnvBool("EXTRACT_BREAKER_ENABLED", false),

		NATSURL:            mustEnv("NATS_URL", ""),
		NATSSubject:        mustEnv("NATS_SUBJECT", "reportqa.outcomes"),
		NATSRequestSubject: mustEnv("NATS_REQUEST_SUBJECT", "reportqa.requests"),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 20),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 40),

		WorkerMetricsPort: mustEnv("WORKER_METRICS_PORT", "9090"),
	}
}

// Validate checks the enumerated settings. It is the only configuration
// failure that aborts a batch.
func (c Config) Validate() error {
	var errs []error
	if _, err := domain.ParseRankMode(c.RankMode); err != nil {
		errs = append(errs, err)
	}
	if _, err := domain.ParseBatchScope(c.BatchScope); err != nil {
		errs = append(errs, err)
	}
	if _, err := domain.ParseFinancialStrategy(c.FinancialStrategy); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(c.SourceDir) == "" {
		errs = append(errs, domain.WrapError(domain.ErrInvalidInput, "validate config", errors.New("SOURCE_DIR is empty")))
	}
	return errors.Join(errs...)
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// mustEnvList splits a comma separated value, dropping blank items.
func mustEnvList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
