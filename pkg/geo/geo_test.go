package geo

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/model"
)

func TestRandomCoordinateRanges(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))

	for i := 0; i < 10000; i++ {
		coord := RandomCoordinate(rnd)
		if coord.Latitude < -90 || coord.Latitude > 90 {
			t.Fatalf("latitude out of range: %f", coord.Latitude)
		}
		if coord.Longitude < -180 || coord.Longitude > 180 {
			t.Fatalf("longitude out of range: %f", coord.Longitude)
		}
	}
}

func TestRandomCoordinateCoversBothHemispheres(t *testing.T) {
	rnd := rand.New(rand.NewSource(2))

	var north, south, east, west bool
	for i := 0; i < 1000; i++ {
		coord := RandomCoordinate(rnd)
		north = north || coord.Latitude > 0
		south = south || coord.Latitude < 0
		east = east || coord.Longitude > 0
		west = west || coord.Longitude < 0
	}
	if !north || !south || !east || !west {
		t.Errorf("expected samples in all hemispheres, got north=%v south=%v east=%v west=%v", north, south, east, west)
	}
}

func TestRandomLocationAltitudeRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 10000; i++ {
		loc := RandomLocation(rnd, 100, 500, now)
		if loc.Altitude < 100 || loc.Altitude > 500 {
			t.Fatalf("altitude out of range: %f", loc.Altitude)
		}
		if !loc.LastUpdated.Equal(now) {
			t.Fatalf("expected last updated %v, got %v", now, loc.LastUpdated)
		}
	}
}

func TestRepairLocationReplacesDegenerate(t *testing.T) {
	rnd := rand.New(rand.NewSource(4))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	degenerate := model.SpaceshipLocation{Latitude: 0, Longitude: 0, Altitude: 0}
	repaired, changed := RepairLocation(rnd, degenerate, 100, 500, now)
	if !changed {
		t.Fatal("expected degenerate location to be repaired")
	}
	if repaired.Latitude == 0 && repaired.Longitude == 0 {
		t.Error("repaired location should not remain at (0, 0)")
	}
	if repaired.Altitude < 100 || repaired.Altitude > 500 {
		t.Errorf("repaired altitude out of range: %f", repaired.Altitude)
	}
}

func TestRepairLocationKeepsValid(t *testing.T) {
	rnd := rand.New(rand.NewSource(5))
	now := time.Now()

	valid := model.SpaceshipLocation{Latitude: 14.5, Longitude: -120.3, Altitude: 250, LastUpdated: now.Add(-time.Hour)}
	kept, changed := RepairLocation(rnd, valid, 100, 500, now)
	if changed {
		t.Fatal("valid location should not be repaired")
	}
	if kept != valid {
		t.Errorf("expected location unchanged, got %+v", kept)
	}
}
