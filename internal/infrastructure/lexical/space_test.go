package lexical

import (
	"math"
	"testing"
)

func TestTokenizeDropsStopWordsAndShortTokens(t *testing.T) {
	tokens := Tokenize("What was the key Revenue driver for Wipro in 2022? a b x1")
	want := []string{"key", "revenue", "driver", "wipro", "2022", "x1"}
	if len(tokens) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", tokens, want)
	}
	for i := range want {
		if tokens[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, tokens[i], want[i])
		}
	}
}

func TestTokenizeNoiseInput(t *testing.T) {
	if tokens := Tokenize("___ --- !!! . ,"); len(tokens) != 1 || tokens[0] != "___" {
		t.Fatalf("expected underscore run token, got %v", tokens)
	}
	if tokens := Tokenize(""); tokens != nil {
		t.Fatalf("expected nil tokens, got %v", tokens)
	}
}

func TestBuildSpaceSmoothedIDF(t *testing.T) {
	space := BuildSpace([]string{"revenue grew", "revenue fell", "profit"})
	got, ok := space.IDF("revenue")
	if !ok {
		t.Fatalf("expected revenue in vocabulary")
	}
	want := math.Log(4.0/3.0) + 1
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("idf(revenue) = %f, want %f", got, want)
	}
	if _, ok := space.IDF("the"); ok {
		t.Fatalf("stop word must not be in vocabulary")
	}
	if space.VocabularySize() != 4 {
		t.Fatalf("expected 4 terms, got %d", space.VocabularySize())
	}
}

func TestCosineBounds(t *testing.T) {
	space := BuildSpace([]string{"revenue grew strongly", "weather was fine", "the of and", "revenue growth"})
	if s := space.Cosine(0, 0); math.Abs(s-1) > 1e-9 {
		t.Fatalf("self similarity = %f, want 1", s)
	}
	if s := space.Cosine(3, 1); s != 0 {
		t.Fatalf("disjoint similarity = %f, want 0", s)
	}
	if s := space.Cosine(2, 2); s != 0 {
		t.Fatalf("empty row similarity = %f, want 0", s)
	}
	sims := space.SimilaritiesTo(3, 3)
	if len(sims) != 3 || sims[0] <= 0 || sims[0] > 1 {
		t.Fatalf("unexpected similarities %v", sims)
	}
}

func TestBuildSpaceDeterministic(t *testing.T) {
	rows := []string{"alpha beta", "beta gamma", "gamma alpha alpha"}
	a := BuildSpace(rows).SimilaritiesTo(2, 2)
	b := BuildSpace(rows).SimilaritiesTo(2, 2)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("similarity %d differs: %f vs %f", i, a[i], b[i])
		}
	}
}
