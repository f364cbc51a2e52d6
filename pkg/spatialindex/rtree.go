package spatialindex

import (
	"math"
	"sort"

	"github.com/lintang-b-s/gpxmatch/pkg/geo"
	"github.com/tidwall/rtree"
)

// PointIndex is an r-tree over the positions of one track. Each leaf is the
// coordinate itself (a zero-area box) and carries its position in the track.
type PointIndex struct {
	tr     *rtree.RTreeG[int]
	coords []geo.Coordinate
}

func NewPointIndex(coords []geo.Coordinate) *PointIndex {
	var tr rtree.RTreeG[int]
	for i, c := range coords {
		if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) {
			// NaN never matches anything
			continue
		}
		p := [2]float64{c.Lon, c.Lat}
		tr.Insert(p, p, i)
	}
	return &PointIndex{
		tr:     &tr,
		coords: coords,
	}
}

func (pi *PointIndex) Len() int {
	return len(pi.coords)
}

func (pi *PointIndex) Coordinates() []geo.Coordinate {
	return pi.coords
}

// SearchWithinTolerance returns, in ascending order, the positions whose
// coordinate lies inside the tolerance box around q. Callers must still run
// the exact distance check: the box is a superset of the tolerance circle.
func (pi *PointIndex) SearchWithinTolerance(q geo.Coordinate, meters float64) []int {
	box := geo.ToleranceBox(q, meters)

	results := make([]int, 0, 4)
	pi.tr.Search([2]float64{box.MinLon, box.MinLat}, [2]float64{box.MaxLon, box.MaxLat},
		func(min, max [2]float64, data int) bool {
			results = append(results, data)
			return true
		})
	sort.Ints(results)
	return results
}
