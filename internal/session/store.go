// Package session keeps planning sessions between requests so a client can
// come back to a plan and change its selected route.
package session

import (
	"context"
	"errors"

	"github.com/paulmach/orb"

	"github.com/randytsao24/verdigo/internal/planner"
)

// ErrNotFound is returned for unknown or expired session IDs
var ErrNotFound = errors.New("session not found")

// Store persists sessions for a limited time
type Store interface {
	Save(ctx context.Context, s *planner.Session) error
	Load(ctx context.Context, id string) (*planner.Session, error)
}

// Select loads a session, changes its selected route and saves it back.
// Concurrent selections on one session are last-write-wins.
func Select(ctx context.Context, store Store, id string, index int) (*planner.Session, error) {
	s, err := store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Routes.Select(index); err != nil {
		return nil, err
	}
	if err := store.Save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// clone copies the slices so stored sessions don't alias caller memory
func clone(s *planner.Session) *planner.Session {
	c := *s
	c.Routes.Candidates = append([]planner.Candidate(nil), s.Routes.Candidates...)
	for i := range c.Routes.Candidates {
		c.Routes.Candidates[i].Geometry = append(orb.LineString(nil), s.Routes.Candidates[i].Geometry...)
	}
	if s.Advisories != nil {
		c.Advisories = append(c.Advisories[:0:0], s.Advisories...)
	}
	return &c
}
