package index

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DuplicateIDError lists every id produced by more than one section.
type DuplicateIDError struct {
	IDs     []string
	Origins map[string][]string
}

func (e *DuplicateIDError) Error() string {
	parts := make([]string, 0, len(e.IDs))
	for _, id := range e.IDs {
		parts = append(parts, fmt.Sprintf("%q (%s)", id, strings.Join(e.Origins[id], ", ")))
	}
	return "duplicate search entry ids: " + strings.Join(parts, "; ")
}

// EmptyTitleError lists sections whose title is blank after normalization.
type EmptyTitleError struct {
	Sources []string
}

func (e *EmptyTitleError) Error() string {
	return "search sections without a title: " + strings.Join(e.Sources, ", ")
}

type sourcedSection struct {
	origin  string
	section Section
}

// Build produces the search index. Page providers are ordered by name so
// the output does not depend on registration order; generated providers
// follow in the order given. Any blank title or repeated id fails the build.
func Build(pages []Provider, generated ...Provider) ([]Entry, error) {
	ordered := append([]Provider(nil), pages...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name < ordered[j].Name
	})
	ordered = append(ordered, generated...)

	var raw []sourcedSection
	for _, p := range ordered {
		for i, s := range p.Sections {
			raw = append(raw, sourcedSection{
				origin:  fmt.Sprintf("%s[%d]", p.Name, i),
				section: s,
			})
		}
	}

	entries := make([]Entry, 0, len(raw))
	origins := make([]string, 0, len(raw))
	var untitled []string
	for _, r := range raw {
		e := Normalize(r.section)
		if e.Title == "" {
			untitled = append(untitled, r.origin)
		}
		entries = append(entries, e)
		origins = append(origins, r.origin)
	}

	var errs []error
	if len(untitled) > 0 {
		errs = append(errs, &EmptyTitleError{Sources: untitled})
	}
	if dupErr := findDuplicates(entries, origins); dupErr != nil {
		errs = append(errs, dupErr)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return entries, nil
}

func findDuplicates(entries []Entry, origins []string) *DuplicateIDError {
	seen := make(map[string][]string, len(entries))
	for i, e := range entries {
		seen[e.ID] = append(seen[e.ID], origins[i])
	}

	var ids []string
	dupOrigins := make(map[string][]string)
	for id, from := range seen {
		if len(from) > 1 {
			ids = append(ids, id)
			dupOrigins[id] = from
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)
	return &DuplicateIDError{IDs: ids, Origins: dupOrigins}
}
