package colour

import (
	"cmp"
	"slices"
	"strings"
)

// Table maps colour names to entries. Adding a name that is already present
// replaces the earlier entry.
type Table struct {
	entries map[string]Entry
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{entries: make(map[string]Entry)}
}

// Add inserts e, overwriting any existing entry with the same name.
// It reports whether an earlier entry was replaced.
func (t *Table) Add(e Entry) bool {
	_, replaced := t.entries[e.Name]
	t.entries[e.Name] = e
	return replaced
}

// Get returns the entry stored under name.
func (t *Table) Get(name string) (Entry, bool) {
	e, ok := t.entries[name]
	return e, ok
}

// Len returns the number of distinct colour names.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns all entries ordered by hex code, highest first.
// Entries sharing a hex code are ordered by name.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, e)
	}
	SortByHexDesc(out)
	return out
}

// Filter returns the sorted entries whose name contains substr, ignoring case.
func (t *Table) Filter(substr string) []Entry {
	all := t.Entries()
	if substr == "" {
		return all
	}
	needle := strings.ToLower(substr)
	return slices.DeleteFunc(all, func(e Entry) bool {
		return !strings.Contains(strings.ToLower(e.Name), needle)
	})
}

// SortByHexDesc sorts entries in place by hex code descending, then name ascending.
func SortByHexDesc(entries []Entry) {
	slices.SortFunc(entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Hex(), a.Hex()); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
}
