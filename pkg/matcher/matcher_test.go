package matcher

import (
	"sort"
	"testing"

	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func coords(latLon ...float64) []geo.Coordinate {
	out := make([]geo.Coordinate, 0, len(latLon)/2)
	for i := 0; i+1 < len(latLon); i += 2 {
		out = append(out, geo.NewCoordinate(latLon[i], latLon[i+1]))
	}
	return out
}

func TestMatchExact(t *testing.T) {
	m := NewMatcher(geo.ExactEquality())

	testCases := []struct {
		name string
		a    []geo.Coordinate
		b    []geo.Coordinate
		want []da.IndexPair
	}{
		{
			name: "shared tail",
			a:    coords(0, 0, 1, 1, 2, 2),
			b:    coords(5, 5, 1, 1, 2, 2),
			want: []da.IndexPair{da.NewIndexPair(1, 1), da.NewIndexPair(2, 2)},
		},
		{
			name: "empty a",
			a:    nil,
			b:    coords(1, 1),
			want: []da.IndexPair{},
		},
		{
			name: "empty b",
			a:    coords(1, 1),
			b:    []geo.Coordinate{},
			want: []da.IndexPair{},
		},
		{
			name: "no overlap",
			a:    coords(0, 0, 1, 1),
			b:    coords(2, 2, 3, 3),
			want: []da.IndexPair{},
		},
		{
			name: "repeated visits",
			a:    coords(1, 1, 9, 9, 1, 1),
			b:    coords(1, 1, 1, 1),
			want: []da.IndexPair{
				da.NewIndexPair(0, 0), da.NewIndexPair(0, 1),
				da.NewIndexPair(2, 0), da.NewIndexPair(2, 1),
			},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.a, tt.b))
			assert.Equal(t, tt.want, m.MatchNaive(tt.a, tt.b))
		})
	}
}

func TestMatchTolerance(t *testing.T) {
	eq, err := geo.NewEquality(5)
	require.NoError(t, err)
	m := NewMatcher(eq)

	a := coords(-7.7956, 110.3695, -7.7000, 110.3000)
	// 0.00003 deg latitude is about 3.3 m, 0.0001 about 11 m
	b := coords(-7.79563, 110.3695, -7.7001, 110.3000, -7.7956, 110.3695)

	want := []da.IndexPair{da.NewIndexPair(0, 0), da.NewIndexPair(0, 2)}
	assert.Equal(t, want, m.Match(a, b))
	assert.Equal(t, want, m.MatchNaive(a, b))
}

func randomTrack(r *rand.Rand, n int, grid float64) []geo.Coordinate {
	out := make([]geo.Coordinate, n)
	for i := range out {
		// snap to a coarse grid so exact matches are frequent
		lat := -7.8 + float64(r.Intn(20))*grid
		lon := 110.3 + float64(r.Intn(20))*grid
		out[i] = geo.NewCoordinate(lat, lon)
	}
	return out
}

func TestMatchEqualsNaive(t *testing.T) {
	r := rand.New(rand.NewSource(42))

	for _, tolerance := range []float64{0, 1, 15, 250} {
		eq, err := geo.NewEquality(tolerance)
		require.NoError(t, err)
		m := NewMatcher(eq)

		for round := 0; round < 30; round++ {
			a := randomTrack(r, r.Intn(60), 0.0001)
			b := randomTrack(r, r.Intn(60), 0.0001)

			got := m.Match(a, b)
			want := m.MatchNaive(a, b)
			require.Equal(t, want, got, "tolerance %v round %d", tolerance, round)
		}
	}
}

func TestMatchSymmetry(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	m := NewMatcher(geo.ExactEquality())

	for round := 0; round < 20; round++ {
		a := randomTrack(r, 40, 0.001)
		b := randomTrack(r, 40, 0.001)

		ab := m.Match(a, b)
		ba := da.SwapPairs(m.Match(b, a))
		sortPairs(ab)
		sortPairs(ba)
		assert.Equal(t, ab, ba)
	}
}

func TestMatchPreparedReuse(t *testing.T) {
	m := NewMatcher(geo.ExactEquality())
	b := m.Prepare(coords(1, 1, 2, 2))

	assert.Equal(t, []da.IndexPair{da.NewIndexPair(0, 0)}, m.MatchPrepared(coords(1, 1), b))
	assert.Equal(t, []da.IndexPair{da.NewIndexPair(1, 1)}, m.MatchPrepared(coords(0, 0, 2, 2), b))
}

func sortPairs(ps []da.IndexPair) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].A != ps[j].A {
			return ps[i].A < ps[j].A
		}
		return ps[i].B < ps[j].B
	})
}
