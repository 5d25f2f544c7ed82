package chunking

import "strings"

// SentenceSplitter cuts text on every '.', '?' and '!'. It is a punctuation
// splitter, not a sentence boundary detector: decimals such as "12.5" are
// split into two fragments, and extraction heuristics rely on that shape.
type SentenceSplitter struct{}

func NewSentenceSplitter() *SentenceSplitter {
	return &SentenceSplitter{}
}

func (s *SentenceSplitter) Split(text string) []string {
	if text == "" {
		return []string{}
	}

	fragments := strings.FieldsFunc(text, isSentenceDelimiter)
	out := make([]string, 0, len(fragments))
	for _, fragment := range fragments {
		sentence := strings.TrimSpace(fragment)
		if sentence != "" {
			out = append(out, sentence)
		}
	}
	return out
}

func isSentenceDelimiter(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}
