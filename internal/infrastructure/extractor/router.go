package extractor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

// Router dispatches extraction by file extension.
type Router struct {
	byExtension map[string]ports.TextExtractor
}

func NewRouter(byExtension map[string]ports.TextExtractor) *Router {
	normalized := make(map[string]ports.TextExtractor, len(byExtension))
	for ext, extractor := range byExtension {
		normalized[normalizeExtension(ext)] = extractor
	}
	return &Router{byExtension: normalized}
}

func (r *Router) Extract(ctx context.Context, doc *domain.Document) (string, error) {
	ext := normalizeExtension(filepath.Ext(doc.Filename))
	extractor, ok := r.byExtension[ext]
	if !ok {
		return "", domain.WrapError(domain.ErrExtractionUnavailable, "route extractor", fmt.Errorf("unsupported extension %q", ext))
	}
	return extractor.Extract(ctx, doc)
}

func (r *Router) Supports(filename string) bool {
	_, ok := r.byExtension[normalizeExtension(filepath.Ext(filename))]
	return ok
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
