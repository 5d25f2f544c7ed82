package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

// Extractor concatenates the plain text of every page of a PDF document.
type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := e.storage.Open(ctx, doc.SourcePath)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "open pdf", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "read pdf", err)
	}

	text, err := extractPages(raw)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "extract pdf text", fmt.Errorf("%s: %w", doc.Filename, err))
	}
	return text, nil
}

// extractPages recovers from panics raised by the pdf package on corrupt input.
func extractPages(raw []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("panic during pdf extraction: %v", r)
		}
	}()

	if len(raw) < 4 || string(raw[:4]) != "%PDF" {
		return "", fmt.Errorf("content is not a pdf (%d bytes)", len(raw))
	}

	r, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("open pdf reader: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil {
			continue
		}
		sb.WriteString(pageText)
	}
	return sb.String(), nil
}
