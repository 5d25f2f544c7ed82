package domain

import "time"

type DocumentStatus string

const (
	StatusReady   DocumentStatus = "ready"
	StatusSkipped DocumentStatus = "skipped"
)

// Document is one source report located by the catalog.
type Document struct {
	ID          string `json:"id"`
	CompanyName string `json:"company_name"`
	Filename    string `json:"filename"`
	MimeType    string `json:"mime_type"`
	SourcePath  string `json:"source_path"`
}

// Year is a fiscal year; the zero value means unknown.
type Year int

const UnknownYear Year = 0

func (y Year) Known() bool {
	return y != UnknownYear
}

// DocumentReport holds everything derived from one document's text.
// It is built once per document and not mutated afterwards.
type DocumentReport struct {
	Document   Document      `json:"document"`
	Sentences  []string      `json:"-"`
	Year       Year          `json:"year,omitempty"`
	Financials Financials    `json:"financials"`
	Answers    []QueryAnswer `json:"answers,omitempty"`
}

type SkipReason struct {
	Kind    error  `json:"-"`
	Message string `json:"message"`
}

// DocumentOutcome is the per-document result of a batch: either a report or
// the reason the document was skipped.
type DocumentOutcome struct {
	Document Document        `json:"document"`
	Report   *DocumentReport `json:"report,omitempty"`
	Skip     *SkipReason     `json:"skip,omitempty"`
}

func (o DocumentOutcome) Status() DocumentStatus {
	if o.Skip != nil {
		return StatusSkipped
	}
	return StatusReady
}

type BatchResult struct {
	RunID      string            `json:"run_id"`
	Scope      BatchScope        `json:"scope"`
	Mode       RankMode          `json:"mode"`
	Outcomes   []DocumentOutcome `json:"outcomes"`
	Pooled     []QueryAnswer     `json:"pooled_answers,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
}

func (r *BatchResult) Reports() []DocumentReport {
	out := make([]DocumentReport, 0, len(r.Outcomes))
	for _, outcome := range r.Outcomes {
		if outcome.Report != nil {
			out = append(out, *outcome.Report)
		}
	}
	return out
}

func (r *BatchResult) SkippedCount() int {
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Skip != nil {
			n++
		}
	}
	return n
}
