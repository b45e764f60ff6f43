package search

import (
	"sort"
	"strings"

	"github.com/aryannaik/foundation-site/internal/index"
)

const (
	defaultLimit = 20
	titleWeight  = 0.6
	textWeight   = 0.4
)

// Result is a search result returned to the frontend.
type Result struct {
	index.Entry
	Score float32 `json:"score"`
}

type document struct {
	entry index.Entry
	title string
	text  string
}

// Searcher matches queries against title, subtitle, category and keywords.
// It holds no mutable state and may be shared between requests.
type Searcher struct {
	docs []document
}

func NewSearcher(idx *index.Index) *Searcher {
	s := &Searcher{docs: make([]document, 0, idx.Len())}
	idx.Each(func(_ int, e index.Entry) {
		s.docs = append(s.docs, document{
			entry: e,
			title: strings.ToLower(e.Title),
			text:  strings.ToLower(e.Title + " " + e.Subtitle + " " + e.Category + " " + strings.Join(e.Keywords, " ")),
		})
	})
	return s
}

// Search returns up to limit entries ordered by score. Entries matching no
// query term are left out; equal scores keep index order.
func (s *Searcher) Search(query string, limit int) []Result {
	if limit <= 0 {
		limit = defaultLimit
	}

	terms := tokenize(query)
	if len(terms) == 0 {
		return []Result{}
	}

	results := make([]Result, 0)
	for _, doc := range s.docs {
		sc := score(doc, terms)
		if sc <= 0 {
			continue
		}
		results = append(results, Result{Entry: doc.entry, Score: sc})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit < len(results) {
		results = results[:limit]
	}
	return results
}

// score weighs the fraction of terms found anywhere against the fraction
// found in the title.
func score(doc document, terms []string) float32 {
	var inText, inTitle int
	for _, term := range terms {
		if strings.Contains(doc.text, term) {
			inText++
		}
		if strings.Contains(doc.title, term) {
			inTitle++
		}
	}
	if inText == 0 {
		return 0
	}
	n := float32(len(terms))
	return textWeight*float32(inText)/n + titleWeight*float32(inTitle)/n
}

// tokenize splits a query into lowercase terms, filtering short ones. A query
// made only of short words is matched as a whole.
func tokenize(s string) []string {
	words := strings.Fields(strings.ToLower(s))
	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) >= 2 {
			terms = append(terms, w)
		}
	}
	if len(terms) == 0 && len(words) > 0 {
		terms = append(terms, strings.Join(words, " "))
	}
	return terms
}
