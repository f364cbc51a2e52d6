package usecases

import (
	"github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/engine"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/twpayne/go-polyline"
	"go.uber.org/zap"
)

type MatchService struct {
	log    *zap.Logger
	query  QueryEngine
	tracks TrackLister
}

func NewMatchService(log *zap.Logger, query QueryEngine, tracks TrackLister) *MatchService {
	return &MatchService{
		log:    log,
		query:  query,
		tracks: tracks,
	}
}

type MatchedCoordinate struct {
	Pair         datastructure.IndexPair
	Coords       datastructure.CoordinatePair
	OffsetMeters float64
}

type TrackMatches struct {
	TrackA     string
	TrackB     string
	IndexBuilt bool
	Pairs      []datastructure.IndexPair
	Matched    []MatchedCoordinate
	// Polyline of the shared positions along TrackA, empty when coordinates were not requested.
	Polyline string
}

func (ms *MatchService) ListTracks() ([]string, error) {
	return ms.tracks.ListTracks()
}

func (ms *MatchService) Matches(trackA, trackB string, withCoords bool) (*TrackMatches, error) {
	res, err := ms.query.Lookup(trackA, trackB)
	if err != nil {
		return nil, err
	}
	out := &TrackMatches{
		TrackA:     trackA,
		TrackB:     trackB,
		IndexBuilt: res.IndexBuilt,
		Pairs:      res.Pairs,
		Matched:    []MatchedCoordinate{},
	}
	if !withCoords || len(res.Pairs) == 0 {
		return out, nil
	}

	coords, err := ms.query.ResolveCoords(trackA, trackB, res.Pairs)
	if err != nil {
		return nil, err
	}

	line := make([][]float64, 0, len(coords))
	for i, c := range coords {
		out.Matched = append(out.Matched, MatchedCoordinate{
			Pair:         res.Pairs[i],
			Coords:       c,
			OffsetMeters: geo.CalculateHaversineDistance(c.A.Lat, c.A.Lon, c.B.Lat, c.B.Lon) * 1000,
		})
		line = append(line, []float64{c.A.Lat, c.A.Lon})
	}
	out.Polyline = string(polyline.EncodeCoords(line))
	ms.log.Debug("resolved matches", zap.String("track_a", trackA), zap.String("track_b", trackB),
		zap.Int("pairs", len(res.Pairs)))
	return out, nil
}

var _ QueryEngine = (*engine.QueryService)(nil)
