// Package models defines shared data types
package models

import "strings"

// Coordinate is a WGS84 position in degrees
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Place is a geocoded address
type Place struct {
	Coordinate
	DisplayName string `json:"display_name"`
	Query       string `json:"query"`
}

// Mode is the travel mode chosen by the user
type Mode string

const (
	ModeDriving Mode = "driving"
	ModeWalking Mode = "walking"
	ModeCycling Mode = "cycling"
	ModeTransit Mode = "transit"
)

// Modes lists the modes offered to users, in display order
var Modes = []Mode{ModeDriving, ModeWalking, ModeCycling, ModeTransit}

// ParseMode normalizes user input. Unknown values are returned as-is so
// that callers can decide whether to reject them.
func ParseMode(s string) Mode {
	return Mode(strings.ToLower(strings.TrimSpace(s)))
}

// Valid reports whether m is one of the offered modes
func (m Mode) Valid() bool {
	for _, known := range Modes {
		if m == known {
			return true
		}
	}
	return false
}

// Profile is the routing service's name for a travel mode
type Profile string

const (
	ProfileCar  Profile = "car"
	ProfileBike Profile = "bike"
	ProfileFoot Profile = "foot"
)

// Profile maps a travel mode onto a routing profile. Transit has no
// profile of its own and falls back to car, as does anything unknown.
func (m Mode) Profile() Profile {
	switch m {
	case ModeCycling:
		return ProfileBike
	case ModeWalking:
		return ProfileFoot
	default:
		return ProfileCar
	}
}
