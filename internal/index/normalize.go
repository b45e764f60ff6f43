package index

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultCategory = "General"
	DefaultBadge    = "Section"
	DefaultHref     = "/"
)

var slugReplacer = strings.NewReplacer(" ", "-", "/", "-", "_", "-", "—", "-")

// CollapseSpace trims s and folds every whitespace run into one space.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func lower(s string) string {
	// cases.Caser is stateful; a fresh one per call keeps this goroutine safe.
	return cases.Lower(language.Und).String(s)
}

// Slug lower-cases s and turns spaces, slashes, underscores and em dashes
// into hyphens.
func Slug(s string) string {
	return slugReplacer.Replace(lower(CollapseSpace(s)))
}

// Normalize applies defaults and canonical formatting to a section. It is
// idempotent: Normalize(e.Section()) == e for any normalized entry e.
func Normalize(s Section) Entry {
	e := Entry{
		Title:    CollapseSpace(s.Title),
		Subtitle: CollapseSpace(s.Subtitle),
		Category: orDefault(CollapseSpace(s.Category), DefaultCategory),
		Badge:    orDefault(CollapseSpace(s.Badge), DefaultBadge),
		Href:     orDefault(CollapseSpace(s.Href), DefaultHref),
		Keywords: normalizeKeywords(s.Keywords),
	}

	if s.External != nil {
		e.External = *s.External
	} else {
		e.External = isExternalHref(e.Href)
	}

	e.ID = CollapseSpace(s.ID)
	if e.ID == "" {
		e.ID = Slug(e.Category) + "-" + Slug(e.Title)
	}
	return e
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func isExternalHref(href string) bool {
	h := strings.ToLower(href)
	return strings.HasPrefix(h, "http://") || strings.HasPrefix(h, "https://") || strings.HasPrefix(h, "mailto:")
}

func normalizeKeywords(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, kw := range in {
		kw = lower(CollapseSpace(kw))
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
