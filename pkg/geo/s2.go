package geo

import (
	"fmt"
	"math"

	"github.com/golang/geo/s2"
)

// Equality decides whether two coordinates name the same physical location.
// A zero tolerance means exact float equality.
type Equality struct {
	toleranceMeters float64
}

func NewEquality(toleranceMeters float64) (Equality, error) {
	if toleranceMeters < 0 || math.IsNaN(toleranceMeters) || math.IsInf(toleranceMeters, 1) {
		return Equality{}, fmt.Errorf("tolerance must be a non-negative number of meters, got %v", toleranceMeters)
	}
	return Equality{toleranceMeters: toleranceMeters}, nil
}

// ExactEquality compares coordinates with ==.
func ExactEquality() Equality {
	return Equality{}
}

func (eq Equality) IsExact() bool {
	return eq.toleranceMeters == 0
}

func (eq Equality) ToleranceMeters() float64 {
	return eq.toleranceMeters
}

func (eq Equality) Equal(a, b Coordinate) bool {
	if eq.toleranceMeters == 0 {
		return a.Lat == b.Lat && a.Lon == b.Lon
	}
	return DistanceMeters(a, b) <= eq.toleranceMeters
}

// DistanceMeters is the great-circle distance between a and b.
func DistanceMeters(a, b Coordinate) float64 {
	la := s2.LatLngFromDegrees(a.Lat, a.Lon)
	lb := s2.LatLngFromDegrees(b.Lat, b.Lon)
	return la.Distance(lb).Radians() * earthRadiusM
}
