package domain

import (
	"fmt"
	"strings"
)

type FieldKind string

const (
	FieldRevenue  FieldKind = "revenue"
	FieldProfit   FieldKind = "profit"
	FieldExpenses FieldKind = "expenses"
)

// FieldKinds lists the extracted kinds in report column order.
var FieldKinds = []FieldKind{FieldRevenue, FieldProfit, FieldExpenses}

type FinancialFact struct {
	Kind       FieldKind `json:"kind"`
	Value      float64   `json:"value"`
	Unit       *string   `json:"unit,omitempty"`
	Comparison *string   `json:"comparison,omitempty"`
}

// Financials holds at most one fact per kind; a missing key means not found.
type Financials map[FieldKind]FinancialFact

type FinancialStrategy string

const (
	StrategyLabelValue FinancialStrategy = "label-value"
	StrategyLineScan   FinancialStrategy = "line-scan"
)

func ParseFinancialStrategy(raw string) (FinancialStrategy, error) {
	switch FinancialStrategy(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StrategyLabelValue:
		return StrategyLabelValue, nil
	case StrategyLineScan:
		return StrategyLineScan, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse financial strategy", fmt.Errorf("unsupported strategy %q", raw))
	}
}

func StringPtr(s string) *string {
	return &s
}
