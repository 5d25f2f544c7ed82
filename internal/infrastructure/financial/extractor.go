package financial

import (
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

type strategy interface {
	extract(text string, kind domain.FieldKind) (raw rawFact, ok bool)
}

type rawFact struct {
	value      string
	unit       string
	comparison string
}

// Extractor pulls revenue, profit and expenses facts out of report text with
// one of two interchangeable strategies.
type Extractor struct {
	logger     *slog.Logger
	strategies map[domain.FinancialStrategy]strategy
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		logger: logger,
		strategies: map[domain.FinancialStrategy]strategy{
			domain.StrategyLabelValue: newLabelValueStrategy(),
			domain.StrategyLineScan:   lineScanStrategy{},
		},
	}
}

// Extract never fails: kinds without a match, or whose number does not
// parse, are left out of the result.
func (e *Extractor) Extract(text string, strategyName domain.FinancialStrategy) domain.Financials {
	out := make(domain.Financials, len(domain.FieldKinds))
	if text == "" {
		return out
	}
	s, ok := e.strategies[strategyName]
	if !ok {
		s = e.strategies[domain.StrategyLabelValue]
	}

	for _, kind := range domain.FieldKinds {
		raw, found := s.extract(text, kind)
		if !found {
			continue
		}
		value, err := parseAmount(raw.value)
		if err != nil {
			e.logger.Warn("financial_value_malformed",
				"kind", string(kind),
				"strategy", string(strategyName),
				"raw", raw.value,
				"error", err,
			)
			continue
		}
		fact := domain.FinancialFact{Kind: kind, Value: value}
		if raw.unit != "" {
			fact.Unit = domain.StringPtr(raw.unit)
		}
		if raw.comparison != "" {
			fact.Comparison = domain.StringPtr(raw.comparison)
		}
		out[kind] = fact
	}
	return out
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, domain.WrapError(domain.ErrMalformedNumeric, "parse amount", err)
	}
	value := d.InexactFloat64()
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return 0, domain.WrapError(domain.ErrMalformedNumeric, "parse amount", fmt.Errorf("value %q out of range", raw))
	}
	return value, nil
}
