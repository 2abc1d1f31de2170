package dotstrings

import (
	"iter"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Table is an ordered collection of entries with unique keys. Iteration
// follows insertion order, which for parsed tables is file order.
//
// A Table is not safe for concurrent mutation.
type Table struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{entries: orderedmap.New[string, Entry]()}
}

// Len returns the number of entries. A nil Table is empty.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.entries.Len()
}

// Get looks up an entry by key.
func (t *Table) Get(key string) (Entry, bool) {
	return t.entries.Get(key)
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.entries.Get(key)
	return ok
}

// Insert appends e. It fails with a *DuplicateKeyError if the key exists.
func (t *Table) Insert(e Entry) error {
	if prev, ok := t.entries.Get(e.Key); ok {
		dup := &DuplicateKeyError{Key: e.Key}
		if prev.Line > 0 {
			dup.First = Position{Line: prev.Line}
		}
		return dup
	}
	t.entries.Set(e.Key, e)
	return nil
}

// Set inserts or replaces e. A replaced entry keeps its position.
func (t *Table) Set(e Entry) {
	t.entries.Set(e.Key, e)
}

// Delete removes key and reports whether it was present.
func (t *Table) Delete(key string) bool {
	_, ok := t.entries.Delete(key)
	return ok
}

// All iterates over the entries in order.
func (t *Table) All() iter.Seq[Entry] {
	return func(yield func(Entry) bool) {
		if t == nil {
			return
		}
		for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Value) {
				return
			}
		}
	}
}

// Entries returns a copy of the entries in order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, t.Len())
	for e := range t.All() {
		out = append(out, e)
	}
	return out
}

// Keys returns the keys in order.
func (t *Table) Keys() []string {
	out := make([]string, 0, t.Len())
	for pair := t.entries.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Sort reorders the entries by key.
func (t *Table) Sort() {
	entries := t.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})
	sorted := orderedmap.New[string, Entry](orderedmap.WithCapacity[string, Entry](len(entries)))
	for _, e := range entries {
		sorted.Set(e.Key, e)
	}
	t.entries = sorted
}

// Equal reports whether both tables hold the same keys, values and comments
// in the same order. Source lines are ignored. A nil Table equals only
// another nil Table.
func (t *Table) Equal(o *Table) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Len() != o.Len() {
		return false
	}
	a, b := t.entries.Oldest(), o.entries.Oldest()
	for ; a != nil && b != nil; a, b = a.Next(), b.Next() {
		if !a.Value.sameContent(b.Value) {
			return false
		}
	}
	return true
}
