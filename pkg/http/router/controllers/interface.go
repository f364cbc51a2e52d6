package controllers

import (
	"github.com/lintang-b-s/gpxmatch/pkg/http/usecases"
)

type MatchService interface {
	ListTracks() ([]string, error)
	Matches(trackA, trackB string, withCoords bool) (*usecases.TrackMatches, error)
}
