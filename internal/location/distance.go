package location

import (
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/randytsao24/verdigo/internal/models"
)

// ErrNoPoints is returned when there is nothing to compute bounds for
var ErrNoPoints = errors.New("no points to bound")

// Point converts a coordinate to orb's lon/lat order
func Point(c models.Coordinate) orb.Point {
	return orb.Point{c.Lon, c.Lat}
}

// StraightLineKm is the great-circle distance between two coordinates in kilometers
func StraightLineKm(a, b models.Coordinate) float64 {
	return geo.DistanceHaversine(Point(a), Point(b)) / 1000
}

// PaddedBounds returns the box containing every line and extra point,
// grown on each side by pad times its span.
func PaddedBounds(lines []orb.LineString, extra []models.Coordinate, pad float64) (orb.Bound, error) {
	var (
		bound orb.Bound
		seen  bool
	)
	add := func(p orb.Point) {
		if !seen {
			bound = p.Bound()
			seen = true
			return
		}
		bound = bound.Extend(p)
	}

	for _, line := range lines {
		for _, p := range line {
			add(p)
		}
	}
	for _, c := range extra {
		add(Point(c))
	}
	if !seen {
		return orb.Bound{}, ErrNoPoints
	}

	dLon := (bound.Max.Lon() - bound.Min.Lon()) * pad
	dLat := (bound.Max.Lat() - bound.Min.Lat()) * pad
	return orb.Bound{
		Min: orb.Point{bound.Min.Lon() - dLon, bound.Min.Lat() - dLat},
		Max: orb.Point{bound.Max.Lon() + dLon, bound.Max.Lat() + dLat},
	}, nil
}
