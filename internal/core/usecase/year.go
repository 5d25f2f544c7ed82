package usecase

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/core/ports"
)

const yearTokenLength = 4

// YearExtractor reads the fiscal year from the first sentence of a document.
type YearExtractor struct {
	chunker ports.Chunker
}

func NewYearExtractor(chunker ports.Chunker) *YearExtractor {
	return &YearExtractor{chunker: chunker}
}

func (e *YearExtractor) Extract(text string) (domain.Year, error) {
	sentences := e.chunker.Split(text)
	if len(sentences) == 0 {
		return domain.UnknownYear, domain.WrapError(domain.ErrNoYearFound, "extract year", errors.New("no sentences"))
	}
	return YearFromSentence(sentences[0])
}

// YearFromSentence returns the first whitespace token made of exactly four
// ASCII digits. "0000" collides with UnknownYear and is skipped.
func YearFromSentence(sentence string) (domain.Year, error) {
	for _, token := range strings.Fields(sentence) {
		if len(token) != yearTokenLength || !isASCIIDigits(token) {
			continue
		}
		n, err := strconv.Atoi(token)
		if err != nil || domain.Year(n) == domain.UnknownYear {
			continue
		}
		return domain.Year(n), nil
	}
	return domain.UnknownYear, domain.WrapError(domain.ErrNoYearFound, "extract year", errors.New("no 4-digit token in first sentence"))
}

func isASCIIDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
