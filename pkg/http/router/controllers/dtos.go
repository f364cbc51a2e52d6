package controllers

import (
	"github.com/lintang-b-s/gpxmatch/pkg/datastructure"
	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/lintang-b-s/gpxmatch/pkg/http/usecases"
)

type matchesRequest struct {
	TrackA string `json:"track_a" validate:"required,max=255,nefield=TrackB"`
	TrackB string `json:"track_b" validate:"required,max=255"`
	Coords bool   `json:"coords"`
}

type matchedCoordinateResponse struct {
	IndexA       int            `json:"index_a"`
	IndexB       int            `json:"index_b"`
	CoordA       geo.Coordinate `json:"coord_a"`
	CoordB       geo.Coordinate `json:"coord_b"`
	OffsetMeters float64        `json:"offset_meters"`
}

type matchesResponse struct {
	TrackA     string                      `json:"track_a"`
	TrackB     string                      `json:"track_b"`
	IndexBuilt bool                        `json:"index_built"`
	Pairs      []datastructure.IndexPair   `json:"pairs"`
	Matched    []matchedCoordinateResponse `json:"matched,omitempty"`
	Polyline   string                      `json:"polyline,omitempty"`
}

func NewMatchesResponse(m *usecases.TrackMatches) matchesResponse {
	matched := make([]matchedCoordinateResponse, 0, len(m.Matched))
	for _, mc := range m.Matched {
		matched = append(matched, matchedCoordinateResponse{
			IndexA:       mc.Pair.A,
			IndexB:       mc.Pair.B,
			CoordA:       mc.Coords.A,
			CoordB:       mc.Coords.B,
			OffsetMeters: mc.OffsetMeters,
		})
	}
	return matchesResponse{
		TrackA:     m.TrackA,
		TrackB:     m.TrackB,
		IndexBuilt: m.IndexBuilt,
		Pairs:      m.Pairs,
		Matched:    matched,
		Polyline:   m.Polyline,
	}
}

type tracksResponse struct {
	Tracks []string `json:"tracks"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
