// Package content holds the site's static copy that takes part in search:
// per-page sections, shared content tables and external resource links.
package content

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Track is one technology track on the technology page.
type Track struct {
	Slug    string   `yaml:"slug"`
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Href    string   `yaml:"href"`
	Points  []string `yaml:"points"`
}

// Initiative is an ecosystem program.
type Initiative struct {
	Slug    string   `yaml:"slug"`
	Name    string   `yaml:"name"`
	Summary string   `yaml:"summary"`
	Href    string   `yaml:"href"`
	Tags    []string `yaml:"tags"`
}

// StackComponent is one piece of the protocol stack.
type StackComponent struct {
	Slug        string   `yaml:"slug"`
	Name        string   `yaml:"name"`
	Layer       string   `yaml:"layer"`
	Description string   `yaml:"description"`
	Href        string   `yaml:"href"`
	Keywords    []string `yaml:"keywords"`
}

// Tables groups the shared content tables.
type Tables struct {
	Tracks      []Track
	Initiatives []Initiative
	Stack       []StackComponent
}

// LoadTables decodes the embedded tables. Unknown fields are rejected.
func LoadTables() (*Tables, error) {
	var t Tables
	if err := decodeTable("data/tracks.yaml", &t.Tracks); err != nil {
		return nil, err
	}
	if err := decodeTable("data/initiatives.yaml", &t.Initiatives); err != nil {
		return nil, err
	}
	if err := decodeTable("data/stack.yaml", &t.Stack); err != nil {
		return nil, err
	}
	return &t, nil
}

func decodeTable(name string, out any) error {
	data, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}
