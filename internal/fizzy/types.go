package fizzy

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier. Some deployments emit numeric ids, others strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("fizzy id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Column is a named grouping of cards on a board.
type Column struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// ColumnRef is the column assignment embedded in a card record.
type ColumnRef struct {
	ID   ID     `json:"id"`
	Name string `json:"name,omitempty"`
}

// Card is a single unit of work on a board.
type Card struct {
	ID     ID         `json:"id"`
	Number int        `json:"number,omitempty"`
	Title  string     `json:"title"`
	Status string     `json:"status,omitempty"`
	Tags   Tags       `json:"tags,omitempty"`
	URL    string     `json:"url,omitempty"`
	Column *ColumnRef `json:"column,omitempty"`
}

// Tags decodes a single string, a list of strings or a list of tag records
// carrying a title or name.
type Tags []string

func (t *Tags) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = nil
		if single != "" {
			*t = Tags{single}
		}
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("fizzy tags: %w", err)
	}
	out := make(Tags, 0, len(raw))
	for _, item := range raw {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var rec apiTag
		if err := json.Unmarshal(item, &rec); err != nil {
			continue
		}
		if name := rec.label(); name != "" {
			out = append(out, name)
		}
	}
	*t = out
	return nil
}

type apiTag struct {
	Title string `json:"title"`
	Name  string `json:"name"`
}

func (a apiTag) label() string {
	if a.Title != "" {
		return a.Title
	}
	return a.Name
}
