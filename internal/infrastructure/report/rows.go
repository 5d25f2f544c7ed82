package report

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

const (
	FinancialsCSV  = "financials.csv"
	FinancialsXLSX = "financials.xlsx"
	AnswersText    = "answers.txt"
)

var financialHeader = []string{
	"company_name", "year",
	"revenue_value", "revenue_unit", "revenue_comparison",
	"profit_value", "profit_unit", "profit_comparison",
	"expense_value", "expense_unit", "expense_comparison",
}

// financialRows flattens the successful reports in batch order. Missing
// facts and an unknown year become empty cells.
func financialRows(result *domain.BatchResult) [][]string {
	reports := result.Reports()
	rows := make([][]string, 0, len(reports))
	for _, rep := range reports {
		row := make([]string, 0, len(financialHeader))
		row = append(row, rep.Document.CompanyName, formatYear(rep.Year))
		for _, kind := range domain.FieldKinds {
			fact, ok := rep.Financials[kind]
			if !ok {
				row = append(row, "", "", "")
				continue
			}
			row = append(row, FormatValue(fact.Value), deref(fact.Unit), deref(fact.Comparison))
		}
		rows = append(rows, row)
	}
	return rows
}

func formatYear(y domain.Year) string {
	if !y.Known() {
		return ""
	}
	return strconv.Itoa(int(y))
}

// FormatValue renders an amount without exponent or trailing zeros.
func FormatValue(v float64) string {
	return decimal.NewFromFloat(v).String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
