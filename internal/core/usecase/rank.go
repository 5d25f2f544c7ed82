package usecase

import (
	"errors"
	"sort"
	"strings"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/lexical"
)

const (
	defaultAnswerMaxSegments = 3
	defaultTopCandidates     = 3
	answerSegmentDelimiter   = ". "
)

// Ranker selects the corpus sentence most similar to a query. Each call builds
// its own vector space over corpus ++ [query]; nothing is kept between calls.
type Ranker struct {
	maxSegments   int
	topCandidates int
}

func NewRanker(maxSegments, topCandidates int) *Ranker {
	if maxSegments <= 0 {
		maxSegments = defaultAnswerMaxSegments
	}
	if topCandidates <= 0 {
		topCandidates = defaultTopCandidates
	}
	return &Ranker{maxSegments: maxSegments, topCandidates: topCandidates}
}

func (r *Ranker) Rank(query string, corpus []string, opts domain.RankOptions) (domain.RankedAnswer, error) {
	switch opts.Mode {
	case "", domain.RankModePlain:
		return r.rankPlain(query, corpus)
	case domain.RankModeSubstringPrefilter:
		return r.rankPrefiltered(query, corpus)
	case domain.RankModeDocumentFiltered:
		return r.rankDocumentFiltered(query, corpus, opts)
	default:
		return domain.RankedAnswer{}, domain.WrapError(domain.ErrInvalidInput, "rank", errors.New("unsupported rank mode "+string(opts.Mode)))
	}
}

func (r *Ranker) rankPlain(query string, corpus []string) (domain.RankedAnswer, error) {
	scores, err := scoreCorpus(query, corpus)
	if err != nil {
		return domain.NoMatchAnswer(), err
	}
	best := argmax(scores)
	return r.matched(corpus[best], scores[best], best), nil
}

func (r *Ranker) rankPrefiltered(query string, corpus []string) (domain.RankedAnswer, error) {
	needle := strings.ToLower(query)
	relevant := make([]string, 0, len(corpus))
	positions := make([]int, 0, len(corpus))
	for i, sentence := range corpus {
		if strings.Contains(strings.ToLower(sentence), needle) {
			relevant = append(relevant, sentence)
			positions = append(positions, i)
		}
	}
	if len(relevant) == 0 {
		return domain.RankedAnswer{
			Outcome: domain.OutcomeNoRelevantInformation,
			Answer:  domain.NoRelevantInformationText,
			Index:   -1,
		}, nil
	}

	scores, err := scoreCorpus(query, relevant)
	if err != nil {
		return domain.NoMatchAnswer(), err
	}
	best := argmax(scores)
	return r.matched(relevant[best], scores[best], positions[best]), nil
}

func (r *Ranker) rankDocumentFiltered(query string, corpus []string, opts domain.RankOptions) (domain.RankedAnswer, error) {
	if len(opts.DocumentIDs) != len(corpus) {
		return domain.RankedAnswer{}, domain.WrapError(domain.ErrInvalidInput, "rank document filtered", errors.New("document ids must be parallel to corpus"))
	}
	scores, err := scoreCorpus(query, corpus)
	if err != nil {
		return domain.NoMatchAnswer(), err
	}

	allowed := make(map[string]struct{}, len(opts.AllowedDocuments))
	for _, id := range opts.AllowedDocuments {
		allowed[id] = struct{}{}
	}

	for _, idx := range topIndices(scores, r.topCandidates) {
		if scores[idx] <= 0 {
			continue
		}
		docID := opts.DocumentIDs[idx]
		if len(allowed) > 0 {
			if _, ok := allowed[docID]; !ok {
				continue
			}
		}
		answer := r.matched(corpus[idx], scores[idx], idx)
		answer.DocumentID = docID
		return answer, nil
	}

	return domain.RankedAnswer{
		Outcome: domain.OutcomeNoRelevantAnswer,
		Answer:  domain.NoRelevantAnswerText,
		Index:   -1,
	}, nil
}

func (r *Ranker) matched(sentence string, score float64, index int) domain.RankedAnswer {
	return domain.RankedAnswer{
		Outcome:  domain.OutcomeMatched,
		Sentence: sentence,
		Answer:   ShapeAnswer(sentence, r.maxSegments),
		Score:    score,
		Index:    index,
	}
}

func scoreCorpus(query string, corpus []string) ([]float64, error) {
	if len(corpus) == 0 {
		return nil, domain.WrapError(domain.ErrEmptyCorpus, "rank", errors.New("no candidate sentences"))
	}
	rows := make([]string, 0, len(corpus)+1)
	rows = append(rows, corpus...)
	rows = append(rows, query)
	space := lexical.BuildSpace(rows)
	return space.SimilaritiesTo(len(corpus), len(corpus)), nil
}

// argmax returns the first index holding the maximum score.
func argmax(scores []float64) int {
	best := 0
	for i := 1; i < len(scores); i++ {
		if scores[i] > scores[best] {
			best = i
		}
	}
	return best
}

// topIndices returns up to n indices ordered by score desc, then index asc.
func topIndices(scores []float64, n int) []int {
	indices := make([]int, len(scores))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(i, j int) bool {
		return scores[indices[i]] > scores[indices[j]]
	})
	if n < len(indices) {
		indices = indices[:n]
	}
	return indices
}

// ShapeAnswer keeps at most maxSegments ". "-delimited segments of sentence
// and appends one trailing period.
func ShapeAnswer(sentence string, maxSegments int) string {
	segments := strings.Split(sentence, answerSegmentDelimiter)
	if maxSegments > 0 && len(segments) > maxSegments {
		segments = segments[:maxSegments]
	}
	return strings.Join(segments, answerSegmentDelimiter) + "."
}
