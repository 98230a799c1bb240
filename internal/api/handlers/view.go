package handlers

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/emissions"
	"github.com/randytsao24/verdigo/internal/location"
	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/planner"
	"github.com/randytsao24/verdigo/internal/transit"
)

// boundsPadding grows the fitted map box by this share of its span per side
const boundsPadding = 0.15

// Line styles for the drawn routes
const (
	selectedWeight  = 8
	otherWeight     = 6
	selectedOpacity = 1.0
	otherOpacity    = 0.8
	solidDash       = "none"
	alternateDash   = "8, 4"
)

// PlanView is everything a client needs to draw a plan and its ranked list
type PlanView struct {
	SessionID      string             `json:"session_id"`
	From           models.Place       `json:"from"`
	To             models.Place       `json:"to"`
	Mode           models.Mode        `json:"mode"`
	Profile        models.Profile     `json:"profile"`
	StraightLineKm float64            `json:"straight_line_km"`
	Selected       int                `json:"selected"`
	Routes         []RouteEntry       `json:"routes"`
	Advisories     []transit.Advisory `json:"advisories,omitempty"`
	Map            MapView            `json:"map"`
}

// RouteEntry is one line of the ranked list
type RouteEntry struct {
	Rank           int     `json:"rank"`
	DistanceKm     float64 `json:"distance_km"`
	DurationMin    int     `json:"duration_min"`
	CO2Grams       int     `json:"co2_grams"`
	EcoScore       int     `json:"eco_score"`
	Class          string  `json:"class"`
	Label          string  `json:"label"`
	Recommendation string  `json:"recommendation"`
	Color          string  `json:"color"`
	Selected       bool    `json:"selected"`
}

// MapView holds the drawable features and the box to fit the viewport to.
// Bounds is [[minLat, minLon], [maxLat, maxLon]].
type MapView struct {
	Features *geojson.FeatureCollection `json:"features"`
	Bounds   *[2][2]float64             `json:"bounds,omitempty"`
}

func renderPlan(s *planner.Session, log *zap.Logger) PlanView {
	view := PlanView{
		SessionID:      s.ID,
		From:           s.From,
		To:             s.To,
		Mode:           s.Mode,
		Profile:        s.Profile,
		StraightLineKm: s.StraightLineKm,
		Selected:       s.Routes.Selected,
		Routes:         make([]RouteEntry, 0, s.Routes.Len()),
		Advisories:     s.Advisories,
	}

	fc := geojson.NewFeatureCollection()
	lines := make([]orb.LineString, 0, s.Routes.Len())
	current, hasCurrent := s.Routes.Current()

	for i, c := range s.Routes.Candidates {
		// each path yields at most one candidate
		selected := hasCurrent && c.Path == current.Path
		rating := emissions.Classify(c.EcoScore)

		view.Routes = append(view.Routes, RouteEntry{
			Rank:           i + 1,
			DistanceKm:     c.DistanceKm,
			DurationMin:    c.DurationMin,
			CO2Grams:       c.CO2Grams,
			EcoScore:       c.EcoScore,
			Class:          rating.Class,
			Label:          rating.Label,
			Recommendation: rating.Recommendation,
			Color:          c.Swatch.Color,
			Selected:       selected,
		})

		fc.Append(routeFeature(i, c, selected))
		lines = append(lines, c.Geometry)
	}

	fc.Append(markerFeature("A", "Start: "+placeLabel(s.From), s.From.Coordinate))
	fc.Append(markerFeature("B", "Destination: "+placeLabel(s.To), s.To.Coordinate))
	view.Map.Features = fc

	bound, err := location.PaddedBounds(lines, []models.Coordinate{s.From.Coordinate, s.To.Coordinate}, boundsPadding)
	if err != nil {
		log.Warn("could not fit map bounds", zap.String("session", s.ID), zap.Error(err))
		return view
	}
	view.Map.Bounds = &[2][2]float64{
		{bound.Min.Lat(), bound.Min.Lon()},
		{bound.Max.Lat(), bound.Max.Lon()},
	}
	return view
}

func routeFeature(rank int, c planner.Candidate, selected bool) *geojson.Feature {
	f := geojson.NewFeature(c.Geometry)
	f.Properties["kind"] = "route"
	f.Properties["rank"] = rank + 1
	f.Properties["color"] = c.Swatch.Color
	f.Properties["class"] = c.Swatch.Name
	f.Properties["eco_score"] = c.EcoScore

	f.Properties["weight"] = otherWeight
	f.Properties["opacity"] = otherOpacity
	if selected {
		f.Properties["weight"] = selectedWeight
		f.Properties["opacity"] = selectedOpacity
	}

	f.Properties["dash_array"] = alternateDash
	if rank == 0 {
		f.Properties["dash_array"] = solidDash
	}
	return f
}

func markerFeature(label, popup string, at models.Coordinate) *geojson.Feature {
	f := geojson.NewFeature(location.Point(at))
	f.Properties["kind"] = "marker"
	f.Properties["label"] = label
	f.Properties["popup"] = popup
	return f
}

// placeLabel is the address as the user typed it
func placeLabel(p models.Place) string {
	if p.Query != "" {
		return p.Query
	}
	return p.DisplayName
}
