package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

// Writer stores the batch artifacts through an ObjectStorage.
type Writer struct {
	storage     ports.ObjectStorage
	xlsxEnabled bool
	logger      *slog.Logger
}

func NewWriter(storage ports.ObjectStorage, xlsxEnabled bool, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{storage: storage, xlsxEnabled: xlsxEnabled, logger: logger}
}

func (w *Writer) Write(ctx context.Context, result *domain.BatchResult) error {
	if result == nil {
		return domain.WrapError(domain.ErrInvalidInput, "write report", fmt.Errorf("batch result is nil"))
	}

	csvData, err := encodeCSV(result)
	if err != nil {
		return err
	}
	if err := w.save(ctx, FinancialsCSV, csvData); err != nil {
		return err
	}

	if w.xlsxEnabled {
		xlsxData, err := encodeXLSX(result)
		if err != nil {
			return err
		}
		if err := w.save(ctx, FinancialsXLSX, xlsxData); err != nil {
			return err
		}
	}

	return w.save(ctx, AnswersText, encodeAnswers(result))
}

func (w *Writer) save(ctx context.Context, key string, data []byte) error {
	if err := w.storage.Save(ctx, key, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	w.logger.Info("report_written", "key", key, "bytes", len(data))
	return nil
}
