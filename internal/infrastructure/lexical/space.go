package lexical

import (
	"math"
	"sort"
)

type sparseVector struct {
	Indices []int
	Values  []float64
}

// Space is a TF-IDF vector space fitted over a fixed set of rows. A space is
// immutable after BuildSpace; scores are only comparable within one space.
type Space struct {
	vocabulary map[string]int
	idf        []float64
	rows       []sparseVector
}

// BuildSpace fits the vocabulary and smoothed idf over rows and returns the
// L2-normalized row vectors.
func BuildSpace(rows []string) *Space {
	tokenized := make([][]string, len(rows))
	terms := make(map[string]struct{}, 128)
	for i, row := range rows {
		tokenized[i] = Tokenize(row)
		for _, token := range tokenized[i] {
			terms[token] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(terms))
	for term := range terms {
		sorted = append(sorted, term)
	}
	sort.Strings(sorted)
	vocabulary := make(map[string]int, len(sorted))
	for i, term := range sorted {
		vocabulary[term] = i
	}

	termFreqs := make([]map[int]float64, len(rows))
	docFreq := make([]int, len(sorted))
	for i, tokens := range tokenized {
		tf := make(map[int]float64, len(tokens))
		for _, token := range tokens {
			tf[vocabulary[token]]++
		}
		for idx := range tf {
			docFreq[idx]++
		}
		termFreqs[i] = tf
	}

	n := float64(len(rows))
	idf := make([]float64, len(sorted))
	for idx, df := range docFreq {
		idf[idx] = math.Log((1+n)/(1+float64(df))) + 1
	}

	vectors := make([]sparseVector, len(rows))
	for i, tf := range termFreqs {
		vectors[i] = weightAndNormalize(tf, idf)
	}

	return &Space{vocabulary: vocabulary, idf: idf, rows: vectors}
}

func weightAndNormalize(tf map[int]float64, idf []float64) sparseVector {
	if len(tf) == 0 {
		return sparseVector{}
	}
	indices := make([]int, 0, len(tf))
	for idx := range tf {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	var norm float64
	for i, idx := range indices {
		values[i] = tf[idx] * idf[idx]
		norm += values[i] * values[i]
	}
	norm = math.Sqrt(norm)
	if norm == 0 || math.IsNaN(norm) || math.IsInf(norm, 0) {
		return sparseVector{}
	}
	for i := range values {
		values[i] /= norm
	}
	return sparseVector{Indices: indices, Values: values}
}

func (s *Space) Len() int {
	return len(s.rows)
}

func (s *Space) VocabularySize() int {
	return len(s.vocabulary)
}

// IDF returns the idf weight of term and whether it is in the vocabulary.
func (s *Space) IDF(term string) (float64, bool) {
	idx, ok := s.vocabulary[term]
	if !ok {
		return 0, false
	}
	return s.idf[idx], true
}

// Cosine returns the cosine similarity of rows i and j. Empty rows score 0.
func (s *Space) Cosine(i, j int) float64 {
	a, b := s.rows[i], s.rows[j]
	var dot float64
	for x, y := 0, 0; x < len(a.Indices) && y < len(b.Indices); {
		switch {
		case a.Indices[x] == b.Indices[y]:
			dot += a.Values[x] * b.Values[y]
			x++
			y++
		case a.Indices[x] < b.Indices[y]:
			x++
		default:
			y++
		}
	}
	return dot
}

// SimilaritiesTo scores row q against rows [0, n).
func (s *Space) SimilaritiesTo(q, n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = s.Cosine(q, i)
	}
	return out
}
