package services

import (
	"fromtodk/internal/domain"

	"github.com/tidwall/geodesic"
)

// DistanceKm returns the geodesic distance between a and b on the WGS84
// ellipsoid, in kilometres. ok is false when either coordinate is absent.
func DistanceKm(a, b *domain.Coordinates) (km float64, ok bool) {
	if a == nil || b == nil {
		return 0, false
	}

	var meters float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &meters, nil, nil)

	return meters / 1000, true
}
