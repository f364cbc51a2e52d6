package datastructure

import (
	"encoding/json"
	"fmt"

	"github.com/lintang-b-s/gpxmatch/pkg/geo"
)

// Point is an annotated track position, as written by the track converter.
type Point struct {
	Coords      geo.Coordinate `json:"coords"`
	Name        *string        `json:"name"`
	Description *string        `json:"description"`
	Elevation   *float64       `json:"elevation"`
}

func NewPoint(coord geo.Coordinate) Point {
	return Point{Coords: coord}
}

func PointsToCoordinates(points []Point) []geo.Coordinate {
	coords := make([]geo.Coordinate, len(points))
	for i, p := range points {
		coords[i] = p.Coords
	}
	return coords
}

// IndexPair holds a position in the first track (A) and a position in the
// second track (B). It is encoded as a two element JSON array.
type IndexPair struct {
	A int
	B int
}

func NewIndexPair(a, b int) IndexPair {
	return IndexPair{A: a, B: b}
}

// Swap returns the pair with its components exchanged.
func (p IndexPair) Swap() IndexPair {
	return IndexPair{A: p.B, B: p.A}
}

func (p IndexPair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.A, p.B})
}

func (p *IndexPair) UnmarshalJSON(data []byte) error {
	var raw []int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("index pair must have 2 elements, got %d", len(raw))
	}
	if raw[0] < 0 || raw[1] < 0 {
		return fmt.Errorf("index pair must be non-negative, got [%d,%d]", raw[0], raw[1])
	}
	p.A, p.B = raw[0], raw[1]
	return nil
}

func SwapPairs(pairs []IndexPair) []IndexPair {
	out := make([]IndexPair, len(pairs))
	for i, p := range pairs {
		out[i] = p.Swap()
	}
	return out
}

type CoordinatePair struct {
	A geo.Coordinate `json:"a"`
	B geo.Coordinate `json:"b"`
}
