package geo

import (
	"math"

	"github.com/lintang-b-s/gpxmatch/pkg/util"
)

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) GetLat() float64 {
	return c.Lat
}

func (c Coordinate) GetLon() float64 {
	return c.Lon
}

func NewCoordinate(lat, lon float64) Coordinate {
	return Coordinate{
		Lat: lat,
		Lon: lon,
	}
}

func NewCoordinates(lat, lon []float64) []Coordinate {
	coords := make([]Coordinate, len(lat))
	for i := range lat {
		coords[i] = NewCoordinate(lat[i], lon[i])
	}
	return coords
}

const (
	earthRadiusKM = 6371.0
	earthRadiusM  = earthRadiusKM * 1000
)

func havFunction(angleRad float64) float64 {
	return (1 - math.Cos(angleRad)) / 2.0
}

// CalculateHaversineDistance. calculate haversine distance in km
func CalculateHaversineDistance(latOne, longOne, latTwo, longTwo float64) float64 {
	latOne = util.DegreeToRadians(latOne)
	longOne = util.DegreeToRadians(longOne)
	latTwo = util.DegreeToRadians(latTwo)
	longTwo = util.DegreeToRadians(longTwo)

	a := havFunction(latOne-latTwo) + math.Cos(latOne)*math.Cos(latTwo)*havFunction(longOne-longTwo)
	c := 2.0 * math.Asin(math.Sqrt(a))
	return earthRadiusKM * c
}

// BoundingBox in degrees. Lon bounds may span the whole [-180, 180] range.
type BoundingBox struct {
	MinLat, MinLon float64
	MaxLat, MaxLon float64
}

// boxPadding widens boxes slightly so float rounding never excludes a point
// that the distance check would accept.
const boxPadding = 1e-9

// ToleranceBox returns a box that contains every point within meters of c.
// Near the poles, or when the box would cross the antimeridian, the full
// longitude range is returned.
func ToleranceBox(c Coordinate, meters float64) BoundingBox {
	if meters <= 0 {
		return BoundingBox{MinLat: c.Lat, MinLon: c.Lon, MaxLat: c.Lat, MaxLon: c.Lon}
	}

	angular := meters / earthRadiusM * 1.000001
	dLat := util.RadiansToDegree(angular) + boxPadding

	box := BoundingBox{
		MinLat: math.Max(c.Lat-dLat, -90),
		MaxLat: math.Min(c.Lat+dLat, 90),
		MinLon: -180,
		MaxLon: 180,
	}

	if box.MinLat <= -90 || box.MaxLat >= 90 || angular >= math.Pi/2 {
		return box
	}

	// widest longitude extent of a spherical cap: asin(sin(r) / cos(lat))
	cosLat := math.Cos(util.DegreeToRadians(c.Lat))
	s := math.Sin(angular) / cosLat
	if s >= 1 {
		return box
	}
	dLon := util.RadiansToDegree(math.Asin(s)) + boxPadding

	if c.Lon-dLon < -180 || c.Lon+dLon > 180 {
		return box
	}
	box.MinLon = c.Lon - dLon
	box.MaxLon = c.Lon + dLon
	return box
}
