package report

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

const (
	financialsSheet = "Financials"
	skippedSheet    = "Skipped"
)

// encodeXLSX writes the same table as the CSV plus a sheet of skipped
// documents. Numeric cells are stored as numbers.
func encodeXLSX(result *domain.BatchResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", financialsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := setRow(f, financialsSheet, 1, toCells(financialHeader)); err != nil {
		return nil, err
	}
	for i, row := range financialRows(result) {
		if err := setRow(f, financialsSheet, i+2, numericCells(row)); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(skippedSheet); err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	if err := setRow(f, skippedSheet, 1, toCells([]string{"company_name", "filename", "reason"})); err != nil {
		return nil, err
	}
	rowNum := 2
	for _, outcome := range result.Outcomes {
		if outcome.Skip == nil {
			continue
		}
		cells := toCells([]string{outcome.Document.CompanyName, outcome.Document.Filename, outcome.Skip.Message})
		if err := setRow(f, skippedSheet, rowNum, cells); err != nil {
			return nil, err
		}
		rowNum++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func setRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("set %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// numericCells keeps the year and the three value columns as numbers.
func numericCells(row []string) []any {
	out := toCells(row)
	for _, idx := range []int{1, 2, 5, 8} {
		if idx >= len(row) || row[idx] == "" {
			continue
		}
		if v, err := strconv.ParseFloat(row[idx], 64); err == nil {
			out[idx] = v
		}
	}
	return out
}
