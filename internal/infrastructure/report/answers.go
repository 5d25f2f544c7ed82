package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
)

// encodeAnswers renders the human-readable answer log.
func encodeAnswers(result *domain.BatchResult) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Run: %s\nScope: %s\nMode: %s\n", result.RunID, result.Scope, result.Mode)

	for _, outcome := range result.Outcomes {
		fmt.Fprintf(&buf, "\nCompany: %s\n", outcome.Document.CompanyName)
		if outcome.Skip != nil {
			fmt.Fprintf(&buf, "Skipped: %s\n", outcome.Skip.Message)
			continue
		}
		rep := outcome.Report
		if rep.Year.Known() {
			fmt.Fprintf(&buf, "Year: %d\n", rep.Year)
		} else {
			buf.WriteString("Year: unknown\n")
		}
		fmt.Fprintf(&buf, "Financials: %s\n", describeFinancials(rep.Financials))
		for _, qa := range rep.Answers {
			fmt.Fprintf(&buf, "Query: %s\nAnswer: %s\n", qa.Query, qa.Answer.Answer)
		}
	}

	for _, qa := range result.Pooled {
		fmt.Fprintf(&buf, "\nFor query: '%s'\n", qa.Query)
		if qa.Answer.DocumentID != "" {
			fmt.Fprintf(&buf, "Source: %s\n", qa.Answer.DocumentID)
		}
		fmt.Fprintf(&buf, "Answer: %s\n", qa.Answer.Answer)
	}
	return buf.Bytes()
}

func describeFinancials(f domain.Financials) string {
	if len(f) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(f))
	for _, kind := range domain.FieldKinds {
		fact, ok := f[kind]
		if !ok {
			continue
		}
		part := fmt.Sprintf("%s=%s", kind, FormatValue(fact.Value))
		if fact.Unit != nil {
			part += " " + *fact.Unit
		}
		if fact.Comparison != nil {
			part += " " + *fact.Comparison
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}
