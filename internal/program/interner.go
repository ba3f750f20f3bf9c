package program

import (
	"fmt"
	"slices"

	"fortio.org/safecast"
	"golang.org/x/text/unicode/norm"
)

// NameID identifies one canonical identifier spelling.
type NameID uint32

// NoNameID is the invalid name ID; it maps to the empty string.
const NoNameID NameID = 0

// Interner deduplicates identifier spellings under NFC normalization:
// canonically equivalent spellings intern to the same ID, so lookups are
// insensitive to how a caller composed its combining characters.
type Interner struct {
	byID  []string
	index map[string]NameID
}

// NewInterner allocates an interner holding only the empty string.
func NewInterner() *Interner {
	return &Interner{
		byID:  []string{""},
		index: map[string]NameID{"": 0},
	}
}

// Intern inserts the normalized spelling of s and returns its ID. Known
// spellings return their existing ID.
func (i *Interner) Intern(s string) NameID {
	c := norm.NFC.String(s)
	if id, ok := i.index[c]; ok {
		return id
	}
	value, err := safecast.Conv[uint32](len(i.byID))
	if err != nil {
		panic(fmt.Errorf("interner overflow: %w", err))
	}
	id := NameID(value)
	i.byID = append(i.byID, c)
	i.index[c] = id
	return id
}

// Get returns the ID of s without inserting it.
func (i *Interner) Get(s string) (NameID, bool) {
	id, ok := i.index[norm.NFC.String(s)]
	return id, ok
}

// Lookup returns the canonical spelling behind an ID.
func (i *Interner) Lookup(id NameID) (string, bool) {
	if int(id) >= len(i.byID) {
		return "", false
	}
	return i.byID[id], true
}

// Canonical returns the normalized spelling of s without interning it.
func (i *Interner) Canonical(s string) string {
	return norm.NFC.String(s)
}

// Len returns the number of interned spellings, the empty string included.
func (i *Interner) Len() int { return len(i.byID) }

// Snapshot returns a copy of every interned spelling in ID order.
func (i *Interner) Snapshot() []string {
	return slices.Clone(i.byID)
}
