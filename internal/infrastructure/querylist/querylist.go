package querylist

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

// Defaults are answered when no query file is configured.
var Defaults = []string{
	"What was the key revenue driver for Wipro?",
	"Summarize the chairman's message for TCS",
	"What were the risks outlined by Infosys, and how does that compare?",
}

type file struct {
	Queries []string `yaml:"queries"`
}

// Load reads a YAML query list. An empty path yields a copy of Defaults.
func Load(path string) ([]string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return append([]string(nil), Defaults...), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "read query file", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) ([]string, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "decode query file", err)
	}

	queries := make([]string, 0, len(f.Queries))
	for _, q := range f.Queries {
		if q = strings.TrimSpace(q); q != "" {
			queries = append(queries, q)
		}
	}
	if len(queries) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "decode query file", fmt.Errorf("no queries listed"))
	}
	return queries, nil
}
