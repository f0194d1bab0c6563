// Package geo provides great-circle distance and bounding-box helpers for
// catalyst scoring.
package geo

import (
	"math"

	"github.com/twpayne/go-geom"
)

const (
	// Mean Earth radius, spherical approximation.
	earthRadiusKM = 6371.0
	milesPerKM    = 0.621371
)

// HaversineMiles computes the great-circle distance in miles between two
// lat/lng points given in degrees. Symmetric; zero for identical points.
// Out-of-range or NaN coordinates propagate as undefined distance.
func HaversineMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c * milesPerKM
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// BoundsAround returns a lat/lng bounding box covering a circle of
// radiusMiles around the given center. The box is widened at high
// latitudes and is a superset of the circle, so it is safe as a cheap
// prefilter before the exact haversine check.
func BoundsAround(lat, lng, radiusMiles float64) *geom.Bounds {
	if radiusMiles < 0 {
		radiusMiles = 0
	}

	radiusKM := radiusMiles / milesPerKM
	dLat := degrees(radiusKM / earthRadiusKM)

	// Longitude degrees shrink with latitude; clamp near the poles.
	cosLat := math.Cos(radians(lat))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLng := dLat / cosLat

	return geom.NewBounds(geom.XY).Set(lng-dLng, lat-dLat, lng+dLng, lat+dLat)
}

// ContainsPoint reports whether the bounds contain the lat/lng point.
func ContainsPoint(b *geom.Bounds, lat, lng float64) bool {
	if b == nil {
		return false
	}
	return b.OverlapsPoint(geom.XY, geom.Coord{lng, lat})
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
