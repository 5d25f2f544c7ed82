package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/report"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoFormat: tw.On},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
}

func renderSummary(w io.Writer, result *domain.BatchResult) {
	rows := make([][]string, 0, len(result.Outcomes))
	for _, outcome := range result.Outcomes {
		if outcome.Skip != nil {
			rows = append(rows, []string{outcome.Document.CompanyName, "", "", "", "", "skipped: " + outcome.Skip.Message})
			continue
		}
		rep := outcome.Report
		rows = append(rows, []string{
			rep.Document.CompanyName,
			yearCell(rep.Year),
			factCell(rep.Financials, domain.FieldRevenue),
			factCell(rep.Financials, domain.FieldProfit),
			factCell(rep.Financials, domain.FieldExpenses),
			string(outcome.Status()),
		})
	}

	table := newTable(w)
	table.Header([]string{"company", "year", "revenue", "profit", "expenses", "status"})
	table.Bulk(rows)
	table.Render()
}

func renderPooledAnswers(w io.Writer, result *domain.BatchResult) {
	for _, qa := range result.Pooled {
		fmt.Fprintf(w, "\nFor query: '%s'\nAnswer: %s\n", qa.Query, qa.Answer.Answer)
	}
	for _, outcome := range result.Outcomes {
		if outcome.Report == nil || len(outcome.Report.Answers) == 0 {
			continue
		}
		fmt.Fprintf(w, "\nCompany: %s\n", outcome.Document.CompanyName)
		for _, qa := range outcome.Report.Answers {
			fmt.Fprintf(w, "Query: %s\nAnswer: %s\n", qa.Query, qa.Answer.Answer)
		}
	}
}

func renderFacts(w io.Writer, rep domain.DocumentReport) {
	table := newTable(w)
	table.Header([]string{"field", "value", "unit", "comparison"})
	rows := [][]string{{"year", yearCell(rep.Year), "", ""}}
	for _, kind := range domain.FieldKinds {
		fact, ok := rep.Financials[kind]
		if !ok {
			rows = append(rows, []string{string(kind), "-", "", ""})
			continue
		}
		rows = append(rows, []string{string(kind), report.FormatValue(fact.Value), deref(fact.Unit), deref(fact.Comparison)})
	}
	table.Bulk(rows)
	table.Render()
}

func yearCell(y domain.Year) string {
	if !y.Known() {
		return "-"
	}
	return strconv.Itoa(int(y))
}

func factCell(f domain.Financials, kind domain.FieldKind) string {
	fact, ok := f[kind]
	if !ok {
		return "-"
	}
	cell := report.FormatValue(fact.Value)
	if fact.Unit != nil {
		cell += " " + *fact.Unit
	}
	return cell
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
