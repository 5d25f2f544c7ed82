package financial

import (
	"regexp"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

var fieldKeywords = map[domain.FieldKind]string{
	domain.FieldRevenue:  "revenue",
	domain.FieldProfit:   "profit",
	domain.FieldExpenses: "expense",
}

// numericToken needs at least two digits so stray figures like "5%" or "Q4"
// are passed over.
var numericToken = regexp.MustCompile(`\d+(?:,\d+)*\d(?:\.\d+)?`)

// lineScanStrategy reads the first line mentioning the keyword: its first
// number is the value and its last word is the unit.
type lineScanStrategy struct{}

func (lineScanStrategy) extract(text string, kind domain.FieldKind) (rawFact, bool) {
	keyword, ok := fieldKeywords[kind]
	if !ok {
		return rawFact{}, false
	}
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), keyword) {
			continue
		}
		value := numericToken.FindString(line)
		if value == "" {
			return rawFact{}, false
		}
		fields := strings.Fields(line)
		return rawFact{value: value, unit: fields[len(fields)-1]}, true
	}
	return rawFact{}, false
}
