// Package planner turns two addresses into a ranked set of alternative
// routes scored by their estimated emissions.
package planner

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/emissions"
	"github.com/randytsao24/verdigo/internal/location"
	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/pacing"
	"github.com/randytsao24/verdigo/internal/routing"
	"github.com/randytsao24/verdigo/internal/transit"
)

// Geocoder resolves an address. A nil place without error means no match.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (*models.Place, error)
}

// Router fetches one route through a waypoint path
type Router interface {
	Route(ctx context.Context, profile models.Profile, path location.Path) (*routing.Route, error)
}

// Advisor supplies transit service alerts
type Advisor interface {
	Advisories(ctx context.Context) ([]transit.Advisory, error)
}

// Planner runs the geocode, route and score pipeline. It keeps no per-plan
// state, so one Planner serves concurrent requests.
type Planner struct {
	geocoder Geocoder
	router   Router
	advisor  Advisor
	pacer    *pacing.Scheduler
	log      *zap.Logger
	now      func() time.Time
}

// New creates a planner. routePacer spaces route requests across all plans;
// advisor may be nil.
func New(geocoder Geocoder, router Router, routePacer *pacing.Scheduler, advisor Advisor, log *zap.Logger) *Planner {
	return &Planner{
		geocoder: geocoder,
		router:   router,
		advisor:  advisor,
		pacer:    routePacer,
		log:      log.Named("planner"),
		now:      time.Now,
	}
}

// Plan geocodes both addresses, fetches the alternative routes, and returns
// them ranked by eco-score. It fails with *AddressNotFoundError or
// ErrNoRoutes; nothing is returned on failure.
func (p *Planner) Plan(ctx context.Context, from, to string, mode models.Mode) (*Session, error) {
	start, err := p.resolve(ctx, RoleStart, from)
	if err != nil {
		return nil, err
	}
	end, err := p.resolve(ctx, RoleDestination, to)
	if err != nil {
		return nil, err
	}

	profile := mode.Profile()
	candidates, err := p.fetchCandidates(ctx, start.Coordinate, end.Coordinate, mode, profile)
	if err != nil {
		return nil, err
	}

	session := &Session{
		ID:             uuid.NewString(),
		From:           *start,
		To:             *end,
		Mode:           mode,
		Profile:        profile,
		StraightLineKm: round2(location.StraightLineKm(start.Coordinate, end.Coordinate)),
		Routes:         RouteSet{Candidates: candidates},
		CreatedAt:      p.now().UTC(),
	}
	session.Routes.Rank()

	if mode == models.ModeTransit && p.advisor != nil {
		advisories, err := p.advisor.Advisories(ctx)
		if err != nil {
			p.log.Warn("transit advisories unavailable", zap.Error(err))
		}
		session.Advisories = advisories
	}

	p.log.Info("plan ready",
		zap.String("session", session.ID),
		zap.String("mode", string(mode)),
		zap.Int("routes", session.Routes.Len()),
	)
	return session, nil
}

// resolve treats lookup errors like a miss so the user gets a hint either way
func (p *Planner) resolve(ctx context.Context, role, address string) (*models.Place, error) {
	place, err := p.geocoder.Resolve(ctx, address)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		p.log.Warn("geocoding failed",
			zap.String("role", role),
			zap.String("address", address),
			zap.Error(err),
		)
		return nil, newAddressNotFound(role, address)
	}
	if place == nil {
		return nil, newAddressNotFound(role, address)
	}
	return place, nil
}

// fetchCandidates requests each path in order. Failed paths are logged and
// skipped; the palette slot stays tied to the path position.
func (p *Planner) fetchCandidates(ctx context.Context, start, end models.Coordinate, mode models.Mode, profile models.Profile) ([]Candidate, error) {
	paths := location.Paths(start, end)
	candidates := make([]Candidate, 0, len(paths))

	for i, path := range paths {
		if err := p.pacer.Wait(ctx); err != nil {
			return nil, err
		}

		route, err := p.router.Route(ctx, profile, path)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			p.log.Warn("route request failed", zap.Int("path", i), zap.Error(err))
			continue
		}

		candidates = append(candidates, score(i, route, mode))
	}

	if len(candidates) == 0 {
		return nil, ErrNoRoutes
	}
	return candidates, nil
}

func score(path int, route *routing.Route, mode models.Mode) Candidate {
	km := round2(route.DistanceMeters / 1000)
	return Candidate{
		Path:        path,
		Geometry:    route.Geometry,
		DistanceKm:  km,
		DurationMin: int(math.Round(route.DurationSeconds / 60)),
		CO2Grams:    emissions.EstimateCO2(mode, km),
		EcoScore:    emissions.EstimateEcoScore(mode, km),
		Swatch:      Palette[path%len(Palette)],
	}
}

func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}
