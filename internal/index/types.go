package index

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Section is the raw descriptor a page or content table contributes to
// search. Only Title is required; every other field has a default.
type Section struct {
	ID       string   `json:"id,omitempty" yaml:"id,omitempty"`
	Title    string   `json:"title" yaml:"title"`
	Subtitle string   `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Category string   `json:"category,omitempty" yaml:"category,omitempty"`
	Badge    string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Href     string   `json:"href,omitempty" yaml:"href,omitempty"`
	External *bool    `json:"external,omitempty" yaml:"external,omitempty"`
	Keywords Keywords `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Provider is a named group of sections, typically one site page.
type Provider struct {
	Name     string
	Sections []Section
}

// Entry is a normalized search record.
type Entry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Category string   `json:"category"`
	Badge    string   `json:"badge"`
	Href     string   `json:"href"`
	External bool     `json:"external"`
	Keywords []string `json:"keywords"`
}

// Section converts an entry back into a fully specified descriptor.
func (e Entry) Section() Section {
	external := e.External
	return Section{
		ID:       e.ID,
		Title:    e.Title,
		Subtitle: e.Subtitle,
		Category: e.Category,
		Badge:    e.Badge,
		Href:     e.Href,
		External: &external,
		Keywords: append(Keywords(nil), e.Keywords...),
	}
}

// Keywords accepts either a single string or a list of strings when decoded.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*k = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*k = Keywords{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("keywords must be a string or a list of strings: %w", err)
	}
	*k = many
	return nil
}

func (k *Keywords) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var one string
		if err := value.Decode(&one); err != nil {
			return err
		}
		*k = Keywords{one}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*k = many
		return nil
	default:
		return fmt.Errorf("line %d: keywords must be a string or a list of strings", value.Line)
	}
}
