package localfs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

var mimeTypes = map[string]string{
	".pdf": "application/pdf",
	".txt": "text/plain",
}

// Catalog lists source reports in a flat directory. The company name is the
// file name without its extension.
type Catalog struct {
	dir        string
	extensions map[string]struct{}
}

func NewCatalog(dir string, extensions ...string) *Catalog {
	if len(extensions) == 0 {
		extensions = []string{".pdf", ".txt"}
	}
	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = struct{}{}
	}
	return &Catalog{dir: dir, extensions: set}
}

func (c *Catalog) List(ctx context.Context) ([]domain.Document, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.WrapError(domain.ErrDocumentNotFound, "list source dir", err)
		}
		return nil, fmt.Errorf("list source dir: %w", err)
	}

	docs := make([]domain.Document, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := c.extensions[ext]; !ok {
			continue
		}
		company := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		mime := mimeTypes[ext]
		if mime == "" {
			mime = "application/octet-stream"
		}
		docs = append(docs, domain.Document{
			ID:          company,
			CompanyName: company,
			Filename:    entry.Name(),
			MimeType:    mime,
			SourcePath:  entry.Name(),
		})
	}

	sort.Slice(docs, func(i, j int) bool { return docs[i].Filename < docs[j].Filename })
	return docs, nil
}
