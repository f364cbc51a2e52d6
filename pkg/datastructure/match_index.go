package datastructure

import (
	"encoding/json"
	"sort"

	"github.com/lintang-b-s/gpxmatch/pkg/util"
)

// MatchIndex maps outer track -> inner track -> index pairs, where each pair's
// A component indexes the outer track and B the inner one. Every unordered
// pair of tracks is stored under exactly one direction.
type MatchIndex struct {
	entries map[string]map[string][]IndexPair
}

func NewMatchIndex() *MatchIndex {
	return &MatchIndex{entries: make(map[string]map[string][]IndexPair)}
}

// Orientation of a stored entry relative to a query (a, b).
type Orientation uint8

const (
	NOT_STORED Orientation = iota
	STORED_AS_QUERIED
	STORED_REVERSED
)

func (mi *MatchIndex) StoredOrientation(a, b string) Orientation {
	if _, ok := mi.entries[a][b]; ok {
		return STORED_AS_QUERIED
	}
	if _, ok := mi.entries[b][a]; ok {
		return STORED_REVERSED
	}
	return NOT_STORED
}

// Set stores pairs under a -> b. Empty pair lists are not stored.
func (mi *MatchIndex) Set(a, b string, pairs []IndexPair) error {
	if a == b {
		return util.WrapErrorf(nil, util.ErrCorruptIndex, "track %q cannot be paired with itself", a)
	}
	if mi.StoredOrientation(a, b) == STORED_REVERSED {
		return util.WrapErrorf(nil, util.ErrCorruptIndex, "pair %q/%q is already stored as %q -> %q", a, b, b, a)
	}
	if len(pairs) == 0 {
		return nil
	}

	inner, ok := mi.entries[a]
	if !ok {
		inner = make(map[string][]IndexPair)
		mi.entries[a] = inner
	}
	stored := make([]IndexPair, len(pairs))
	copy(stored, pairs)
	inner[b] = stored
	return nil
}

// Get returns the pairs for (a, b) with A indexing a and B indexing b, whatever
// direction the entry is stored under. nil if the pair is not stored.
func (mi *MatchIndex) Get(a, b string) []IndexPair {
	switch mi.StoredOrientation(a, b) {
	case STORED_AS_QUERIED:
		out := make([]IndexPair, len(mi.entries[a][b]))
		copy(out, mi.entries[a][b])
		return out
	case STORED_REVERSED:
		return SwapPairs(mi.entries[b][a])
	default:
		return nil
	}
}

// Len is the number of stored track pairs.
func (mi *MatchIndex) Len() int {
	n := 0
	for _, inner := range mi.entries {
		n += len(inner)
	}
	return n
}

// Tracks returns every track identifier appearing in the index, sorted.
func (mi *MatchIndex) Tracks() []string {
	ids := make([]string, 0, len(mi.entries))
	for a, inner := range mi.entries {
		ids = append(ids, a)
		for b := range inner {
			ids = append(ids, b)
		}
	}
	return util.UniqueSorted(ids)
}

// ForEach visits stored entries in the direction they are stored, sorted by outer then inner key.
func (mi *MatchIndex) ForEach(fn func(a, b string, pairs []IndexPair)) {
	outer := make([]string, 0, len(mi.entries))
	for a := range mi.entries {
		outer = append(outer, a)
	}
	sort.Strings(outer)
	for _, a := range outer {
		inner := make([]string, 0, len(mi.entries[a]))
		for b := range mi.entries[a] {
			inner = append(inner, b)
		}
		sort.Strings(inner)
		for _, b := range inner {
			fn(a, b, mi.entries[a][b])
		}
	}
}

// Equal reports whether both indexes store the same entries, in the same
// direction, with the same pair order.
func (mi *MatchIndex) Equal(other *MatchIndex) bool {
	if mi.Len() != other.Len() {
		return false
	}
	equal := true
	mi.ForEach(func(a, b string, pairs []IndexPair) {
		otherPairs, ok := other.entries[a][b]
		if !ok || len(otherPairs) != len(pairs) {
			equal = false
			return
		}
		for i := range pairs {
			if pairs[i] != otherPairs[i] {
				equal = false
				return
			}
		}
	})
	return equal
}

func (mi *MatchIndex) MarshalJSON() ([]byte, error) {
	// encoding/json sorts map keys, so output is deterministic
	return json.Marshal(mi.entries)
}

func (mi *MatchIndex) UnmarshalJSON(data []byte) error {
	var raw map[string]map[string][]IndexPair
	if err := json.Unmarshal(data, &raw); err != nil {
		return util.WrapErrorf(err, util.ErrCorruptIndex, "decode match index: %v", err)
	}

	idx := NewMatchIndex()
	for a, inner := range raw {
		for b, pairs := range inner {
			if len(pairs) == 0 {
				continue
			}
			if err := idx.Set(a, b, pairs); err != nil {
				return err
			}
		}
	}
	mi.entries = idx.entries
	return nil
}
