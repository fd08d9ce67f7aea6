package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestDistanceKnownPoints(t *testing.T) {
	// Washington Square Park to the Brooklyn fridge cluster, just over 5km.
	a := Point{Latitude: 40.730, Longitude: -73.997}
	b := Point{Latitude: 40.730, Longitude: -73.935}

	d := DistanceMeters(a, b)
	assert.InDelta(t, 5230, d, 100)
	assert.InDelta(t, d/1609.344, DistanceMiles(a, b), 0.001)
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Latitude: 0, Longitude: 0}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Point{Latitude: 90.1, Longitude: 0}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -180.5}.Valid())
}

func TestDistanceProperties(t *testing.T) {
	genLat := rapid.Float64Range(-90, 90)
	genLon := rapid.Float64Range(-180, 180)

	rapid.Check(t, func(t *rapid.T) {
		a := Point{Latitude: genLat.Draw(t, "latA"), Longitude: genLon.Draw(t, "lonA")}
		b := Point{Latitude: genLat.Draw(t, "latB"), Longitude: genLon.Draw(t, "lonB")}

		ab := DistanceMeters(a, b)
		ba := DistanceMeters(b, a)

		if ab < 0 {
			t.Fatalf("distance must be non-negative, got %f", ab)
		}
		if diff := ab - ba; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("distance must be symmetric: %f vs %f", ab, ba)
		}
		if self := DistanceMeters(a, a); self != 0 {
			t.Fatalf("distance to self must be zero, got %f", self)
		}
		// Antipodal upper bound: half the circumference.
		if ab > 6371000*3.1415927 {
			t.Fatalf("distance exceeds half circumference: %f", ab)
		}
	})
}
