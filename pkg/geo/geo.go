// Package geo generates and repairs spaceship tracking coordinates.
package geo

import (
	"math/rand"
	"time"

	"github.com/Andrics/Beyond-Earth/pkg/model"
)

// RandomCoordinate draws a latitude/longitude pair uniformly over the full
// valid ranges: latitude in [-90, 90], longitude in [-180, 180].
func RandomCoordinate(rnd *rand.Rand) model.Coordinates {
	return model.Coordinates{
		Latitude:  rnd.Float64()*180 - 90,
		Longitude: rnd.Float64()*360 - 180,
	}
}

// RandomLocation produces a full tracking location with an altitude drawn
// uniformly from [minAltKm, maxAltKm].
func RandomLocation(rnd *rand.Rand, minAltKm, maxAltKm float64, now time.Time) model.SpaceshipLocation {
	coord := RandomCoordinate(rnd)
	return model.SpaceshipLocation{
		Latitude:    coord.Latitude,
		Longitude:   coord.Longitude,
		Altitude:    minAltKm + rnd.Float64()*(maxAltKm-minAltKm),
		LastUpdated: now,
	}
}

// RepairLocation detects the degenerate (0, 0) position left behind by
// older records and replaces it with a freshly generated location. The
// returned bool reports whether the record changed and should be persisted.
// Valid locations pass through untouched.
func RepairLocation(rnd *rand.Rand, loc model.SpaceshipLocation, minAltKm, maxAltKm float64, now time.Time) (model.SpaceshipLocation, bool) {
	if loc.Latitude != 0 || loc.Longitude != 0 {
		return loc, false
	}
	return RandomLocation(rnd, minAltKm, maxAltKm, now), true
}
