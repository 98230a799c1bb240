// Package emissions estimates the carbon cost and eco-score of a trip.
package emissions

import (
	"math"

	"github.com/randytsao24/verdigo/internal/models"
)

// gramsPerKm holds tailpipe CO2 factors per travel mode
var gramsPerKm = map[models.Mode]float64{
	models.ModeDriving: 192,
	models.ModeWalking: 0,
	models.ModeCycling: 21,
	models.ModeTransit: 68,
}

var baseScores = map[models.Mode]float64{
	models.ModeWalking: 100,
	models.ModeCycling: 95,
	models.ModeTransit: 75,
	models.ModeDriving: 40,
}

const neutralScore = 50

// EstimateCO2 returns the estimated emissions in grams for a trip of
// distanceKm. Unknown modes emit nothing.
func EstimateCO2(mode models.Mode, distanceKm float64) int {
	return int(math.Round(gramsPerKm[mode] * distanceKm))
}

// EstimateEcoScore rates a trip from 0 (worst) to 100 (best).
func EstimateEcoScore(mode models.Mode, distanceKm float64) int {
	score, ok := baseScores[mode]
	if !ok {
		score = neutralScore
	}

	if mode == models.ModeDriving && distanceKm < 2 {
		score -= 10 // short car trips
	}
	if mode == models.ModeWalking && distanceKm > 5 {
		score -= 5
	}
	if mode == models.ModeCycling && distanceKm >= 2 && distanceKm <= 15 {
		score += 5
	}
	if mode == models.ModeTransit && distanceKm > 10 {
		score += 5
	}

	return int(math.Round(math.Max(0, math.Min(100, score))))
}

// Rating is the qualitative reading of an eco-score
type Rating struct {
	Class          string `json:"class"`
	Label          string `json:"label"`
	Recommendation string `json:"recommendation"`
}

var (
	ratingEco = Rating{
		Class:          "eco-route",
		Label:          "Most Eco-Friendly",
		Recommendation: "Lowest emissions - Best for environment",
	}
	ratingBalanced = Rating{
		Class:          "balanced-route",
		Label:          "Balanced",
		Recommendation: "Good balance - Moderate emissions",
	}
	ratingFast = Rating{
		Class:          "fast-route",
		Label:          "Least Eco-Friendly",
		Recommendation: "Fastest route - Higher carbon footprint",
	}
)

// Classify buckets an eco-score into the labels shown next to each route
func Classify(score int) Rating {
	switch {
	case score >= 75:
		return ratingEco
	case score >= 50:
		return ratingBalanced
	default:
		return ratingFast
	}
}
