package financial

import (
	"regexp"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

var fieldLabels = map[domain.FieldKind]string{
	domain.FieldRevenue:  "revenue",
	domain.FieldProfit:   "profit",
	domain.FieldExpenses: "expenses",
}

// labelValueStrategy matches "Label (descriptive text): 123.45 Unit (comparison 100.00 Unit)".
type labelValueStrategy struct {
	patterns map[domain.FieldKind]*regexp.Regexp
}

func newLabelValueStrategy() labelValueStrategy {
	patterns := make(map[domain.FieldKind]*regexp.Regexp, len(fieldLabels))
	for kind, label := range fieldLabels {
		patterns[kind] = regexp.MustCompile(
			`(?i)\b` + label + `[\w\s()]*?:\s*` +
				`(\d+\.\d+)` +
				`(?:[ \t]*([A-Za-z%][\w%]*))?` +
				`((?:\s*\([^()]*\d+\.\d+[^()]*\))*)`,
		)
	}
	return labelValueStrategy{patterns: patterns}
}

func (s labelValueStrategy) extract(text string, kind domain.FieldKind) (rawFact, bool) {
	pattern, ok := s.patterns[kind]
	if !ok {
		return rawFact{}, false
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return rawFact{}, false
	}
	return rawFact{
		value:      m[1],
		unit:       m[2],
		comparison: strings.TrimSpace(m[3]),
	}, true
}
