package matcher

import (
	"math"

	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/spatialindex"
)

// Matcher finds every (i, j) with a[i] equal to b[j] under its Equality rule.
// Output order is that of the naive scan: ascending i, then ascending j.
type Matcher struct {
	eq geo.Equality
}

func NewMatcher(eq geo.Equality) *Matcher {
	return &Matcher{eq: eq}
}

func (m *Matcher) Equality() geo.Equality {
	return m.eq
}

// Prepared is a track's lookup structure, reusable as the B side of many matches.
type Prepared struct {
	coords []geo.Coordinate
	exact  map[geo.Coordinate][]int
	rtree  *spatialindex.PointIndex
}

func (p *Prepared) Len() int {
	return len(p.coords)
}

// Prepare builds the lookup structure for coords. In exact mode it is a hash of
// coordinate to ascending positions, otherwise an r-tree.
func (m *Matcher) Prepare(coords []geo.Coordinate) *Prepared {
	p := &Prepared{coords: coords}
	if m.eq.IsExact() {
		p.exact = make(map[geo.Coordinate][]int, len(coords))
		for j, c := range coords {
			if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
				continue
			}
			p.exact[c] = append(p.exact[c], j)
		}
		return p
	}
	p.rtree = spatialindex.NewPointIndex(coords)
	return p
}

// Match is equivalent to MatchNaive.
func (m *Matcher) Match(a, b []geo.Coordinate) []da.IndexPair {
	if len(a) == 0 || len(b) == 0 {
		return []da.IndexPair{}
	}
	return m.MatchPrepared(a, m.Prepare(b))
}

func (m *Matcher) MatchPrepared(a []geo.Coordinate, b *Prepared) []da.IndexPair {
	pairs := make([]da.IndexPair, 0)
	if len(a) == 0 || b.Len() == 0 {
		return pairs
	}

	for i, c := range a {
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
			continue
		}

		if b.exact != nil {
			for _, j := range b.exact[c] {
				pairs = append(pairs, da.NewIndexPair(i, j))
			}
			continue
		}

		for _, j := range b.rtree.SearchWithinTolerance(c, m.eq.ToleranceMeters()) {
			if m.eq.Equal(c, b.coords[j]) {
				pairs = append(pairs, da.NewIndexPair(i, j))
			}
		}
	}
	return pairs
}

// MatchNaive compares every position of a against every position of b.
func (m *Matcher) MatchNaive(a, b []geo.Coordinate) []da.IndexPair {
	pairs := make([]da.IndexPair, 0)
	for i := range a {
		for j := range b {
			if m.eq.Equal(a[i], b[j]) {
				pairs = append(pairs, da.NewIndexPair(i, j))
			}
		}
	}
	return pairs
}
