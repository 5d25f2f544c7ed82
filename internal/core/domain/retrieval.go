package domain

import (
	"fmt"
	"strings"
)

type RankMode string

const (
	RankModePlain              RankMode = "plain"
	RankModeSubstringPrefilter RankMode = "substring-prefilter"
	RankModeDocumentFiltered   RankMode = "document-filtered"
)

func ParseRankMode(raw string) (RankMode, error) {
	switch RankMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", RankModePlain:
		return RankModePlain, nil
	case RankModeSubstringPrefilter:
		return RankModeSubstringPrefilter, nil
	case RankModeDocumentFiltered:
		return RankModeDocumentFiltered, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse rank mode", fmt.Errorf("unsupported mode %q", raw))
	}
}

type BatchScope string

const (
	ScopePerDocument BatchScope = "per-document"
	ScopePooled      BatchScope = "pooled"
)

func ParseBatchScope(raw string) (BatchScope, error) {
	switch BatchScope(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ScopePerDocument:
		return ScopePerDocument, nil
	case ScopePooled:
		return ScopePooled, nil
	default:
		return "", WrapError(ErrInvalidInput, "parse batch scope", fmt.Errorf("unsupported scope %q", raw))
	}
}

// Sentence is one entry of a pooled corpus.
type Sentence struct {
	DocumentID string `json:"document_id"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
}

type AnswerOutcome string

const (
	OutcomeMatched               AnswerOutcome = "matched"
	OutcomeNoMatch               AnswerOutcome = "no_match"
	OutcomeNoRelevantInformation AnswerOutcome = "no_relevant_information"
	OutcomeNoRelevantAnswer      AnswerOutcome = "no_relevant_answer"
)

const (
	NoRelevantInformationText = "No relevant information found."
	NoRelevantAnswerText      = "No relevant answer found."
	NoMatchText               = "No match."
)

// RankedAnswer is the transient result of one ranking call. Scores are only
// comparable between answers of the same call.
type RankedAnswer struct {
	Outcome    AnswerOutcome `json:"outcome"`
	Sentence   string        `json:"sentence,omitempty"`
	Answer     string        `json:"answer"`
	Score      float64       `json:"score"`
	Index      int           `json:"index"`
	DocumentID string        `json:"document_id,omitempty"`
}

func (a RankedAnswer) Matched() bool {
	return a.Outcome == OutcomeMatched
}

func NoMatchAnswer() RankedAnswer {
	return RankedAnswer{Outcome: OutcomeNoMatch, Answer: NoMatchText, Index: -1}
}

type QueryAnswer struct {
	Query  string       `json:"query"`
	Answer RankedAnswer `json:"answer"`
}

// RankOptions selects the ranking variant for one call.
type RankOptions struct {
	Mode RankMode
	// DocumentIDs is parallel to the corpus; only used by the document-filtered mode.
	DocumentIDs []string
	// AllowedDocuments restricts document-filtered answers. Empty allows every document.
	AllowedDocuments []string
}

// BatchRequest configures one batch run.
type BatchRequest struct {
	Queries          []string
	Mode             RankMode
	Scope            BatchScope
	Strategy         FinancialStrategy
	AllowedDocuments []string
}
