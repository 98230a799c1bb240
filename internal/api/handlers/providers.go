package handlers

import (
	"context"

	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/planner"
)

// Planner abstracts route planning for testability.
type Planner interface {
	Plan(ctx context.Context, from, to string, mode models.Mode) (*planner.Session, error)
}

// Geocoder abstracts address lookup.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*models.Place, error)
}
