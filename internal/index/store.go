package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Index is the built, read-only search corpus. It is safe for concurrent
// readers once constructed.
type Index struct {
	entries []Entry
	byID    map[string]int
}

// New wraps entries produced by Build. The slice is copied.
func New(entries []Entry) *Index {
	idx := &Index{
		entries: append([]Entry(nil), entries...),
		byID:    make(map[string]int, len(entries)),
	}
	for i, e := range idx.entries {
		idx.byID[e.ID] = i
	}
	return idx
}

// Entries returns a copy of the entries in build order.
func (x *Index) Entries() []Entry {
	return append([]Entry(nil), x.entries...)
}

// Len returns the number of entries.
func (x *Index) Len() int {
	return len(x.entries)
}

// Get returns the entry with the given id.
func (x *Index) Get(id string) (Entry, bool) {
	i, ok := x.byID[id]
	if !ok {
		return Entry{}, false
	}
	return x.entries[i], true
}

// Each calls fn for every entry in build order without copying.
func (x *Index) Each(fn func(i int, e Entry)) {
	for i, e := range x.entries {
		fn(i, e)
	}
}

// MarshalJSON encodes the entries as a JSON array.
func (x *Index) MarshalJSON() ([]byte, error) {
	if x.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(x.entries)
}

// WriteFile writes the index as indented JSON. Output is byte-identical for
// identical input.
func (x *Index) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	entries := x.entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}
