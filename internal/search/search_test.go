package search

import (
	"reflect"
	"testing"

	"github.com/aryannaik/foundation-site/internal/index"
)

func testIndex(t *testing.T) *index.Index {
	t.Helper()
	entries, err := index.Build([]index.Provider{
		{Name: "technology", Sections: []index.Section{
			{Title: "Consensus", Subtitle: "Proof of stake finality", Category: "Technology", Keywords: index.Keywords{"validators"}},
			{Title: "Rollups", Subtitle: "Layer two execution", Category: "Technology", Keywords: index.Keywords{"scaling", "proof"}},
		}},
		{Name: "community", Sections: []index.Section{
			{Title: "Validator Program", Subtitle: "Run a node", Category: "Community"},
		}},
	})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return index.New(entries)
}

func ids(results []Result) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.ID)
	}
	return out
}

func TestSearchRanksTitleMatchesFirst(t *testing.T) {
	s := NewSearcher(testIndex(t))
	got := ids(s.Search("validator", 10))
	want := []string{"community-validator-program", "technology-consensus"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("results = %v, want %v", got, want)
	}
}

func TestSearchMatchesKeywordsAndSubtitle(t *testing.T) {
	s := NewSearcher(testIndex(t))
	got := ids(s.Search("PROOF", 10))
	want := []string{"technology-consensus", "technology-rollups"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("results = %v, want %v", got, want)
	}
}

func TestSearchMatchesCategory(t *testing.T) {
	s := NewSearcher(testIndex(t))
	if got := ids(s.Search("community", 10)); !reflect.DeepEqual(got, []string{"community-validator-program"}) {
		t.Fatalf("results = %v", got)
	}
}

func TestSearchLimitAndEmptyQuery(t *testing.T) {
	s := NewSearcher(testIndex(t))
	if got := s.Search("technology", 1); len(got) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(got))
	}
	if got := s.Search("   ", 10); len(got) != 0 {
		t.Fatalf("expected no results for blank query, got %d", len(got))
	}
	if got := s.Search("nothing-matches-this", 10); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil results, got %#v", got)
	}
}

func TestTokenize(t *testing.T) {
	if got := tokenize("a Zero  Knowledge"); !reflect.DeepEqual(got, []string{"zero", "knowledge"}) {
		t.Fatalf("tokenize = %v", got)
	}
	if got := tokenize("a b"); !reflect.DeepEqual(got, []string{"a b"}) {
		t.Fatalf("tokenize short words = %v", got)
	}
}
