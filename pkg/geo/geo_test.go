package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEquality(t *testing.T) {
	testCases := []struct {
		name      string
		tolerance float64
		wantErr   bool
	}{
		{name: "exact", tolerance: 0},
		{name: "five meters", tolerance: 5},
		{name: "negative", tolerance: -1, wantErr: true},
		{name: "nan", tolerance: math.NaN(), wantErr: true},
		{name: "inf", tolerance: math.Inf(1), wantErr: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			eq, err := NewEquality(tt.tolerance)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tolerance == 0, eq.IsExact())
		})
	}
}

func TestExactEquality(t *testing.T) {
	eq := ExactEquality()

	assert.True(t, eq.Equal(NewCoordinate(1.5, 2.5), NewCoordinate(1.5, 2.5)))
	assert.False(t, eq.Equal(NewCoordinate(1.5, 2.5), NewCoordinate(1.5, 2.5000001)))
	assert.True(t, eq.Equal(NewCoordinate(0, math.Copysign(0, -1)), NewCoordinate(0, 0)))
	assert.False(t, eq.Equal(NewCoordinate(math.NaN(), 0), NewCoordinate(math.NaN(), 0)))
}

func TestToleranceEquality(t *testing.T) {
	eq, err := NewEquality(10)
	require.NoError(t, err)

	origin := NewCoordinate(-7.7956, 110.3695)
	// ~0.0000899 deg of latitude is 10 m
	near := NewCoordinate(-7.7956+0.00008, 110.3695)
	far := NewCoordinate(-7.7956+0.0001, 110.3695)

	assert.True(t, eq.Equal(origin, origin))
	assert.True(t, eq.Equal(origin, near))
	assert.False(t, eq.Equal(origin, far))
}

func TestDistanceMatchesHaversine(t *testing.T) {
	a := NewCoordinate(-7.7956, 110.3695)
	b := NewCoordinate(-7.5666, 110.8316)

	s2Dist := DistanceMeters(a, b)
	havDist := CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon) * 1000
	assert.InDelta(t, havDist, s2Dist, 1.0)
}

func TestToleranceBoxContainsCircle(t *testing.T) {
	testCases := []struct {
		name    string
		center  Coordinate
		meters  float64
		fullLon bool
	}{
		{name: "equator", center: NewCoordinate(0, 0), meters: 50},
		{name: "mid latitude", center: NewCoordinate(60, 10), meters: 500},
		{name: "near pole", center: NewCoordinate(89.9999, 10), meters: 50, fullLon: true},
		{name: "antimeridian", center: NewCoordinate(10, 179.99999), meters: 50, fullLon: true},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			box := ToleranceBox(tt.center, tt.meters)
			if tt.fullLon {
				assert.Equal(t, -180.0, box.MinLon)
				assert.Equal(t, 180.0, box.MaxLon)
			}
			// sample the circle boundary just inside the tolerance
			for bearing := 0.0; bearing < 360; bearing += 5 {
				lat, lon := destinationPoint(tt.center, bearing, tt.meters*0.999)
				assert.GreaterOrEqual(t, lat, box.MinLat, "bearing %v", bearing)
				assert.LessOrEqual(t, lat, box.MaxLat, "bearing %v", bearing)
				if !tt.fullLon {
					assert.GreaterOrEqual(t, lon, box.MinLon, "bearing %v", bearing)
					assert.LessOrEqual(t, lon, box.MaxLon, "bearing %v", bearing)
				}
			}
		})
	}
}

func TestToleranceBoxExact(t *testing.T) {
	c := NewCoordinate(3, 4)
	box := ToleranceBox(c, 0)
	assert.Equal(t, BoundingBox{MinLat: 3, MinLon: 4, MaxLat: 3, MaxLon: 4}, box)
}

// destinationPoint returns the point dist meters from c along bearing (degrees).
func destinationPoint(c Coordinate, bearing, dist float64) (float64, float64) {
	dr := dist / earthRadiusM
	br := bearing * math.Pi / 180
	lat1 := c.Lat * math.Pi / 180
	lon1 := c.Lon * math.Pi / 180

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(dr) + math.Cos(lat1)*math.Sin(dr)*math.Cos(br))
	lon2 := lon1 + math.Atan2(math.Sin(br)*math.Sin(dr)*math.Cos(lat1), math.Cos(dr)-math.Sin(lat1)*math.Sin(lat2))
	return lat2 * 180 / math.Pi, lon2 * 180 / math.Pi
}
