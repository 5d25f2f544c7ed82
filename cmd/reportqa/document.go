package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/bootstrap"
	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/storage/localfs"
)

// loadDocument extracts the text of a single report file.
func loadDocument(ctx context.Context, opts *rootOptions, path string) (domain.Document, string, error) {
	store, err := localfs.Existing(filepath.Dir(path))
	if err != nil {
		return domain.Document{}, "", err
	}

	name := filepath.Base(path)
	company := strings.TrimSuffix(name, filepath.Ext(name))
	doc := domain.Document{
		ID:          company,
		CompanyName: company,
		Filename:    name,
		SourcePath:  name,
	}

	text, err := bootstrap.NewTextExtractor(store, opts.cfg, opts.logger).Extract(ctx, &doc)
	if err != nil {
		return doc, "", fmt.Errorf("extract %s: %w", name, err)
	}
	return doc, text, nil
}
