package usecases

import (
	"github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/engine"
)

type QueryEngine interface {
	Lookup(trackA, trackB string) (*engine.LookupResult, error)
	ResolveCoords(trackA, trackB string, pairs []datastructure.IndexPair) ([]datastructure.CoordinatePair, error)
}

type TrackLister interface {
	ListTracks() ([]string, error)
}
