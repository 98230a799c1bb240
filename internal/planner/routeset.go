package planner

import (
	"errors"
	"sort"

	"github.com/paulmach/orb"
)

// ErrSelectionOutOfRange is returned when selecting a route that isn't shown
var ErrSelectionOutOfRange = errors.New("route index out of range")

// Swatch is a display color for a route line
type Swatch struct {
	Color string `json:"color"`
	Name  string `json:"name"`
}

// Palette colors routes by the path they were requested with, not by score
var Palette = [...]Swatch{
	{Color: "#10b981", Name: "eco-route"},
	{Color: "#f59e0b", Name: "balanced-route"},
	{Color: "#ef4444", Name: "fast-route"},
}

// Candidate is one scored route alternative
type Candidate struct {
	Path        int            `json:"path"`
	Geometry    orb.LineString `json:"geometry"`
	DistanceKm  float64        `json:"distance_km"`
	DurationMin int            `json:"duration_min"`
	CO2Grams    int            `json:"co2_grams"`
	EcoScore    int            `json:"eco_score"`
	Swatch      Swatch         `json:"swatch"`
}

// RouteSet is the ranked list of alternatives and the user's current pick
type RouteSet struct {
	Candidates []Candidate `json:"candidates"`
	Selected   int         `json:"selected"`
}

// Rank orders candidates by eco-score, best first, and selects the best.
// Equal scores keep their fetch order.
func (rs *RouteSet) Rank() {
	sort.SliceStable(rs.Candidates, func(i, j int) bool {
		return rs.Candidates[i].EcoScore > rs.Candidates[j].EcoScore
	})
	rs.Selected = 0
}

// Select marks candidate i as the user's choice
func (rs *RouteSet) Select(i int) error {
	if i < 0 || i >= len(rs.Candidates) {
		return ErrSelectionOutOfRange
	}
	rs.Selected = i
	return nil
}

// Current returns the selected candidate
func (rs *RouteSet) Current() (Candidate, bool) {
	if rs.Selected < 0 || rs.Selected >= len(rs.Candidates) {
		return Candidate{}, false
	}
	return rs.Candidates[rs.Selected], true
}

// Len is the number of candidates
func (rs *RouteSet) Len() int {
	return len(rs.Candidates)
}
