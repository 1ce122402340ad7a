package services

import (
	"fromtodk/internal/domain"
	"math"
	"testing"
)

var (
	lyngby = &domain.Coordinates{Lat: 55.7704, Lon: 12.5035}
	aros   = &domain.Coordinates{Lat: 56.1539, Lon: 10.1999}
)

func TestDistanceKmAbsent(t *testing.T) {
	if _, ok := DistanceKm(nil, aros); ok {
		t.Fatal("expected absent distance for nil from")
	}
	if _, ok := DistanceKm(lyngby, nil); ok {
		t.Fatal("expected absent distance for nil to")
	}
	if _, ok := DistanceKm(nil, nil); ok {
		t.Fatal("expected absent distance for nil pair")
	}
}

func TestDistanceKmSamePoint(t *testing.T) {
	km, ok := DistanceKm(lyngby, lyngby)
	if !ok {
		t.Fatal("expected distance")
	}
	if km != 0 {
		t.Fatalf("distance = %v, want 0", km)
	}
}

func TestDistanceKmLyngbyToAros(t *testing.T) {
	km, ok := DistanceKm(lyngby, aros)
	if !ok {
		t.Fatal("expected distance")
	}
	if km <= 0 || km >= 500 {
		t.Fatalf("distance = %v, want within (0, 500)", km)
	}
	if math.Abs(km-150) > 1.5 {
		t.Fatalf("distance = %v, want about 150", km)
	}

	back, _ := DistanceKm(aros, lyngby)
	if math.Abs(km-back) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", km, back)
	}
}

func TestDistanceKmUsesEllipsoid(t *testing.T) {
	// One degree of longitude along the WGS84 equator.
	km, _ := DistanceKm(&domain.Coordinates{Lat: 0, Lon: 0}, &domain.Coordinates{Lat: 0, Lon: 1})
	if math.Abs(km-111.3195) > 1e-3 {
		t.Fatalf("distance = %v, want 111.3195", km)
	}
}
