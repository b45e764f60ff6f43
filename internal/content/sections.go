package content

import (
	"fmt"

	"github.com/aryannaik/foundation-site/internal/index"
)

const (
	DocsURL    = "https://docs.meridian.foundation"
	SourceURL  = "https://github.com/meridian-foundation"
	ContactURL = "mailto:hello@meridian.foundation"
)

// TrackSections maps technology tracks to search sections; a track's points
// become its keywords.
func TrackSections(tracks []Track) []index.Section {
	out := make([]index.Section, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, index.Section{
			ID:       "track-" + t.Slug,
			Title:    t.Title,
			Subtitle: t.Summary,
			Category: "Technology",
			Badge:    "Track",
			Href:     t.Href,
			Keywords: index.Keywords(t.Points),
		})
	}
	return out
}

func InitiativeSections(initiatives []Initiative) []index.Section {
	out := make([]index.Section, 0, len(initiatives))
	for _, in := range initiatives {
		out = append(out, index.Section{
			ID:       "initiative-" + in.Slug,
			Title:    in.Name,
			Subtitle: in.Summary,
			Category: "Ecosystem",
			Badge:    "Initiative",
			Href:     in.Href,
			Keywords: index.Keywords(in.Tags),
		})
	}
	return out
}

// StackSections badges each component with its layer.
func StackSections(stack []StackComponent) []index.Section {
	out := make([]index.Section, 0, len(stack))
	for _, c := range stack {
		out = append(out, index.Section{
			ID:       "stack-" + c.Slug,
			Title:    c.Name,
			Subtitle: c.Description,
			Category: "Stack",
			Badge:    c.Layer,
			Href:     c.Href,
			Keywords: append(index.Keywords{c.Layer}, c.Keywords...),
		})
	}
	return out
}

// Resources are the hand-written links to sites outside this one.
func Resources() []index.Section {
	return []index.Section{
		{
			Title:    "Documentation",
			Subtitle: "Guides, protocol specs and node operator manuals.",
			Category: "Resources",
			Badge:    "Link",
			Href:     DocsURL,
			Keywords: index.Keywords{"docs", "guides", "reference"},
		},
		{
			Title:    "Source Code",
			Subtitle: "Every client, SDK and tool we maintain, on GitHub.",
			Category: "Resources",
			Badge:    "Link",
			Href:     SourceURL,
			Keywords: index.Keywords{"github", "open source", "repository"},
		},
		{
			Title:    "Contact",
			Subtitle: "Reach the foundation team by email.",
			Category: "Resources",
			Badge:    "Email",
			Href:     ContactURL,
			Keywords: index.Keywords{"email", "support", "press"},
		},
	}
}

// SearchIndex builds the site's search entries from every page and table.
func SearchIndex() ([]index.Entry, error) {
	tables, err := LoadTables()
	if err != nil {
		return nil, fmt.Errorf("content tables: %w", err)
	}
	return index.Build(Pages(),
		index.Provider{Name: "tracks", Sections: TrackSections(tables.Tracks)},
		index.Provider{Name: "initiatives", Sections: InitiativeSections(tables.Initiatives)},
		index.Provider{Name: "stack", Sections: StackSections(tables.Stack)},
		index.Provider{Name: "resources", Sections: Resources()},
	)
}
