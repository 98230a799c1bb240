// Package location handles waypoint generation and the geometry around it
package location

import "github.com/randytsao24/verdigo/internal/models"

// detourFraction is how far the detour waypoint sits from the start, as a
// share of the start-to-end delta on each axis.
const detourFraction = 0.08

// Path is an ordered list of waypoints for one routing request
type Path []models.Coordinate

// Paths returns the direct path followed by two detour paths. The detours
// pass through a point displaced from the start along and against the
// start-to-end diagonal, so the routing service tends to snap each one onto
// a different road. Nothing checks that the detour point is reachable.
func Paths(start, end models.Coordinate) []Path {
	latOffset := (end.Lat - start.Lat) * detourFraction
	lonOffset := (end.Lon - start.Lon) * detourFraction

	return []Path{
		{start, end},
		{start, {Lat: start.Lat + latOffset, Lon: start.Lon + lonOffset}, end},
		{start, {Lat: start.Lat - latOffset, Lon: start.Lon - lonOffset}, end},
	}
}
