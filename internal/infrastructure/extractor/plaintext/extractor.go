package plaintext

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

type Extractor struct {
	storage ports.ObjectStorage
}

func NewExtractor(storage ports.ObjectStorage) *Extractor {
	return &Extractor{storage: storage}
}

func (e *Extractor) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	reader, err := e.storage.Open(ctx, doc.SourcePath)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "open source document", err)
	}
	defer reader.Close()

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "read source document", err)
	}

	if !utf8.Valid(raw) {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "decode source document", fmt.Errorf("not utf-8 text: %s", doc.Filename))
	}

	return strings.TrimSpace(string(raw)), nil
}
