// Package names maps canonical Bulgarian province names to the identifiers
// used by the province geometry layer, and back.
package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrDuplicate = errors.New("duplicate province name")
	ErrEmptyName = errors.New("empty province name")
)

// Entry is one row of the table.
type Entry struct {
	Local    string `json:"local"`
	External string `json:"external"`
}

// Table is an immutable bidirectional name table. Locals keeps table order.
type Table struct {
	entries    []Entry
	toExternal map[string]string
	toLocal    map[string]string
}

// NewTable indexes entries in both directions.
func NewTable(entries []Entry) (*Table, error) {
	t := &Table{
		entries:    make([]Entry, 0, len(entries)),
		toExternal: make(map[string]string, len(entries)),
		toLocal:    make(map[string]string, len(entries)),
	}
	for i, e := range entries {
		e.Local = strings.TrimSpace(e.Local)
		e.External = strings.TrimSpace(e.External)
		if e.Local == "" || e.External == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}
		if _, ok := t.toExternal[e.Local]; ok {
			return nil, fmt.Errorf("local %q: %w", e.Local, ErrDuplicate)
		}
		if _, ok := t.toLocal[e.External]; ok {
			return nil, fmt.Errorf("external %q: %w", e.External, ErrDuplicate)
		}
		t.toExternal[e.Local] = e.External
		t.toLocal[e.External] = e.Local
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// LoadTable reads a JSON array of {"local", "external"} objects.
func LoadTable(r io.Reader) (*Table, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decoding name table: %w", err)
	}
	return NewTable(entries)
}

func (t *Table) ToExternal(local string) (string, bool) {
	ext, ok := t.toExternal[local]
	return ext, ok
}

func (t *Table) ToLocal(external string) (string, bool) {
	local, ok := t.toLocal[external]
	return local, ok
}

// Locals returns the canonical names in table order.
func (t *Table) Locals() []string {
	out := make([]string, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Local
	}
	return out
}

func (t *Table) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Table) Len() int {
	return len(t.entries)
}
