package engine

import (
	"errors"
	"fmt"

	da "github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/source"
	"github.com/lintang-b-s/gpxmatch/pkg/util"
	"go.uber.org/zap"
)

// StaleReferenceError reports an index pair pointing past the end of a track,
// which happens when a track file changed after the index was built.
type StaleReferenceError struct {
	TrackID string
	Index   int
	Length  int
}

func (e *StaleReferenceError) Error() string {
	return fmt.Sprintf("stale match index: position %d of track %q is out of range (track has %d points), rebuild the index",
		e.Index, e.TrackID, e.Length)
}

func (e *StaleReferenceError) Is(target error) bool {
	return target == util.ErrStaleIndexReference
}

type LookupResult struct {
	// Pairs are oriented by the query: A indexes the first track, B the second.
	Pairs []da.IndexPair
	// IndexBuilt is false when no index file exists yet. Pairs is then empty.
	IndexBuilt bool
}

// QueryService answers lookups against the persisted index. It re-reads the
// index file on every lookup and never writes it.
type QueryService struct {
	repo   *Repository
	source source.CoordinateSource
	log    *zap.Logger
}

func NewQueryService(repo *Repository, src source.CoordinateSource, log *zap.Logger) *QueryService {
	return &QueryService{repo: repo, source: src, log: log}
}

// Lookup returns the matching positions of trackA and trackB in either stored
// direction. A pair that was never stored, or never compared, yields an empty
// result without error. A missing index file yields an empty result with
// IndexBuilt false.
func (qs *QueryService) Lookup(trackA, trackB string) (*LookupResult, error) {
	idx, err := qs.repo.Load()
	if err != nil {
		if errors.Is(err, util.ErrIndexNotBuilt) {
			qs.log.Warn("match index does not exist, run the build command first", zap.String("path", qs.repo.Path()))
			lookupsTotal.WithLabelValues(outcomeNotBuilt).Inc()
			return &LookupResult{Pairs: []da.IndexPair{}, IndexBuilt: false}, nil
		}
		lookupsTotal.WithLabelValues(outcomeLoadFailed).Inc()
		return nil, err
	}

	pairs := idx.Get(trackA, trackB)
	if pairs == nil {
		lookupsTotal.WithLabelValues(outcomeNoMatch).Inc()
		return &LookupResult{Pairs: []da.IndexPair{}, IndexBuilt: true}, nil
	}
	lookupsTotal.WithLabelValues(outcomeFound).Inc()
	return &LookupResult{Pairs: pairs, IndexBuilt: true}, nil
}

// ResolveCoords maps each pair to the coordinates it references, fetching both
// tracks from the source again. Positions are never clamped: a pair outside
// the current track returns a *StaleReferenceError.
func (qs *QueryService) ResolveCoords(trackA, trackB string, pairs []da.IndexPair) ([]da.CoordinatePair, error) {
	coordsA, err := qs.source.Resolve(trackA)
	if err != nil {
		return nil, err
	}
	coordsB, err := qs.source.Resolve(trackB)
	if err != nil {
		return nil, err
	}

	out := make([]da.CoordinatePair, 0, len(pairs))
	for _, p := range pairs {
		if err := checkPosition(trackA, p.A, coordsA); err != nil {
			return nil, err
		}
		if err := checkPosition(trackB, p.B, coordsB); err != nil {
			return nil, err
		}
		out = append(out, da.CoordinatePair{A: coordsA[p.A], B: coordsB[p.B]})
	}
	return out, nil
}

func checkPosition(trackID string, pos int, coords []geo.Coordinate) error {
	if pos < 0 || pos >= len(coords) {
		return &StaleReferenceError{TrackID: trackID, Index: pos, Length: len(coords)}
	}
	return nil
}

// Matches is Lookup followed by ResolveCoords.
func (qs *QueryService) Matches(trackA, trackB string) (*LookupResult, []da.CoordinatePair, error) {
	res, err := qs.Lookup(trackA, trackB)
	if err != nil {
		return nil, nil, err
	}
	if len(res.Pairs) == 0 {
		return res, []da.CoordinatePair{}, nil
	}
	coords, err := qs.ResolveCoords(trackA, trackB, res.Pairs)
	if err != nil {
		return nil, nil, err
	}
	return res, coords, nil
}
