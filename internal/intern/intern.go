// Package intern assigns dense indices to distinct byte strings.
//
// The symbol table encoder uses it to deduplicate column values: each symbol's
// wire bytes are interned, and the returned index is the symbol's position in
// the column's symbol table. Keys are hashed with xxHash64 and verified with a
// byte comparison per bucket, so values that collide on the hash still intern
// separately, and payloads that are not comparable as Go values (NaN doubles)
// still deduplicate by their byte representation.
package intern

import (
	"bytes"

	"github.com/arloliu/qvd/internal/hash"
)

// Table tracks distinct byte strings in first-seen order.
type Table struct {
	buckets map[uint64][]int
	keys    [][]byte
}

// NewTable creates an empty intern table.
func NewTable() *Table {
	return &Table{
		buckets: make(map[uint64][]int),
	}
}

// Intern returns the index assigned to key, adding it if unseen.
// The second return value reports whether the key was newly added.
// The table stores its own copy of key; callers may reuse the slice.
func (t *Table) Intern(key []byte) (int, bool) {
	h := hash.Sum(key)

	for _, idx := range t.buckets[h] {
		if bytes.Equal(t.keys[idx], key) {
			return idx, false
		}
	}

	idx := len(t.keys)
	owned := make([]byte, len(key))
	copy(owned, key)

	t.keys = append(t.keys, owned)
	t.buckets[h] = append(t.buckets[h], idx)

	return idx, true
}

// Len returns the number of distinct keys interned.
func (t *Table) Len() int {
	return len(t.keys)
}
