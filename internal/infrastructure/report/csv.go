package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

func encodeCSV(result *domain.BatchResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(financialHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range financialRows(result) {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
