package usecase

import (
	"testing"

	"github.com/kirillkom/finreport-qa/internal/core/domain"
	"github.com/kirillkom/finreport-qa/internal/infrastructure/chunking"
)

func TestExtractYear(t *testing.T) {
	e := NewYearExtractor(chunking.NewSentenceSplitter())
	cases := []struct {
		text string
		want domain.Year
	}{
		{"In 2022 growth continued.", 2022},
		{"Annual Report 2021-22 and FY 2023. In 2019 we began.", 2023},
		{"Revenue 20225 and 12 then 1999 closing", 1999},
		{"First sentence. Then 2020 later", domain.UnknownYear},
	}
	for _, tc := range cases {
		got, _ := e.Extract(tc.text)
		if got != tc.want {
			t.Fatalf("Extract(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestExtractYearUnknownIsNonFatal(t *testing.T) {
	e := NewYearExtractor(chunking.NewSentenceSplitter())
	for _, text := range []string{"No year mentioned.", "", " . ! "} {
		got, err := e.Extract(text)
		if got.Known() {
			t.Fatalf("Extract(%q) expected unknown year, got %d", text, got)
		}
		if !domain.IsKind(err, domain.ErrNoYearFound) {
			t.Fatalf("Extract(%q) expected ErrNoYearFound, got %v", text, err)
		}
	}
}

func TestExtractYearSkipsZeroToken(t *testing.T) {
	e := NewYearExtractor(chunking.NewSentenceSplitter())

	got, err := e.Extract("Code 0000 then 2022")
	if err != nil || got != 2022 {
		t.Fatalf("Extract() = %d, %v; want 2022, nil", got, err)
	}

	got, err = e.Extract("Code 0000 only")
	if got.Known() || !domain.IsKind(err, domain.ErrNoYearFound) {
		t.Fatalf("Extract() = %d, %v; want unknown year with ErrNoYearFound", got, err)
	}
}
