package planner

import (
	"errors"
	"fmt"
	"time"

	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/transit"
)

// ErrNoRoutes means every route request for a plan failed
var ErrNoRoutes = errors.New("no routes found")

// Address roles
const (
	RoleStart       = "start"
	RoleDestination = "destination"
)

var hints = map[string]string{
	RoleStart:       `Try: "Howrah Bridge, Kolkata"`,
	RoleDestination: `Try: "Victoria Memorial, Kolkata"`,
}

// AddressNotFoundError is returned when an address has no geocoding match
type AddressNotFoundError struct {
	Role  string
	Query string
	Hint  string
}

func newAddressNotFound(role, query string) *AddressNotFoundError {
	return &AddressNotFoundError{Role: role, Query: query, Hint: hints[role]}
}

func (e *AddressNotFoundError) Error() string {
	return fmt.Sprintf("could not find %s address %q", e.Role, e.Query)
}

// Session is the outcome of one plan. A new plan yields a new session;
// sessions are never merged.
type Session struct {
	ID             string             `json:"id"`
	From           models.Place       `json:"from"`
	To             models.Place       `json:"to"`
	Mode           models.Mode        `json:"mode"`
	Profile        models.Profile     `json:"profile"`
	StraightLineKm float64            `json:"straight_line_km"`
	Routes         RouteSet           `json:"routes"`
	Advisories     []transit.Advisory `json:"advisories,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}
