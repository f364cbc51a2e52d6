package usecases

import (
	"errors"
	"testing"

	"github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/engine"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

type fakeQuery struct {
	lookup        *engine.LookupResult
	coords        []datastructure.CoordinatePair
	resolveErr    error
	resolveCalled bool
}

func (f *fakeQuery) Lookup(trackA, trackB string) (*engine.LookupResult, error) {
	return f.lookup, nil
}

func (f *fakeQuery) ResolveCoords(trackA, trackB string, pairs []datastructure.IndexPair) ([]datastructure.CoordinatePair, error) {
	f.resolveCalled = true
	return f.coords, f.resolveErr
}

type fakeLister []string

func (f fakeLister) ListTracks() ([]string, error) {
	return f, nil
}

func TestMatchesWithoutCoordsSkipsResolve(t *testing.T) {
	q := &fakeQuery{lookup: &engine.LookupResult{
		Pairs:      []datastructure.IndexPair{datastructure.NewIndexPair(1, 2)},
		IndexBuilt: true,
	}}
	ms := NewMatchService(zap.NewNop(), q, fakeLister{})

	got, err := ms.Matches("a", "b", false)
	require.NoError(t, err)
	assert.False(t, q.resolveCalled)
	assert.Equal(t, []datastructure.IndexPair{datastructure.NewIndexPair(1, 2)}, got.Pairs)
	assert.Empty(t, got.Matched)
	assert.Empty(t, got.Polyline)
}

func TestMatchesOffsetAndPolyline(t *testing.T) {
	a := geo.NewCoordinate(-6.2, 106.8)
	b := geo.NewCoordinate(-6.2, 106.80001)
	q := &fakeQuery{
		lookup: &engine.LookupResult{
			Pairs:      []datastructure.IndexPair{datastructure.NewIndexPair(0, 3)},
			IndexBuilt: true,
		},
		coords: []datastructure.CoordinatePair{{A: a, B: b}},
	}
	ms := NewMatchService(zap.NewNop(), q, fakeLister{})

	got, err := ms.Matches("a", "b", true)
	require.NoError(t, err)
	require.Len(t, got.Matched, 1)
	assert.Equal(t, datastructure.NewIndexPair(0, 3), got.Matched[0].Pair)
	assert.InDelta(t, geo.DistanceMeters(a, b), got.Matched[0].OffsetMeters, 0.01)

	decoded, _, err := polyline.DecodeCoords([]byte(got.Polyline))
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	assert.InDelta(t, a.Lat, decoded[0][0], 1e-5)
	assert.InDelta(t, a.Lon, decoded[0][1], 1e-5)
}

func TestMatchesPropagatesResolveError(t *testing.T) {
	q := &fakeQuery{
		lookup: &engine.LookupResult{
			Pairs:      []datastructure.IndexPair{datastructure.NewIndexPair(0, 0)},
			IndexBuilt: true,
		},
		resolveErr: util.WrapErrorf(nil, util.ErrTrackNotFound, "track %q not found", "b"),
	}
	ms := NewMatchService(zap.NewNop(), q, fakeLister{})

	_, err := ms.Matches("a", "b", true)
	assert.True(t, errors.Is(err, util.ErrTrackNotFound))
}

func TestListTracks(t *testing.T) {
	ms := NewMatchService(zap.NewNop(), &fakeQuery{}, fakeLister{"a.gpx", "b.gpx"})

	ids, err := ms.ListTracks()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.gpx", "b.gpx"}, ids)
}
