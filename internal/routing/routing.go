// Package routing fetches route geometry from an OSRM-compatible service
package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/randytsao24/verdigo/internal/location"
	"github.com/randytsao24/verdigo/internal/models"
)

var (
	// ErrNoRoute means the service answered but had no route for the waypoints
	ErrNoRoute = errors.New("no route in response")
	// ErrBadGeometry means the route geometry was not a line
	ErrBadGeometry = errors.New("route geometry is not a LineString")
)

// Route is the first route the service returned for a path
type Route struct {
	Geometry        orb.LineString
	DistanceMeters  float64
	DurationSeconds float64
}

// Client talks to the routing service
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a routing client against baseURL (no trailing slash)
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// URL builds the route request for a profile and path
func (c *Client) URL(profile models.Profile, path location.Path) string {
	coords := make([]string, len(path))
	for i, wp := range path {
		coords[i] = formatFloat(wp.Lon) + "," + formatFloat(wp.Lat)
	}
	return c.baseURL + "/route/v1/" + string(profile) + "/" + strings.Join(coords, ";") +
		"?geometries=geojson&overview=full"
}

// Route requests a route through every waypoint of path
func (c *Client) Route(ctx context.Context, profile models.Profile, path location.Path) (*Route, error) {
	if len(path) < 2 {
		return nil, fmt.Errorf("path needs at least 2 waypoints, got %d", len(path))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(profile, path), nil)
	if err != nil {
		return nil, fmt.Errorf("building route request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching route: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("routing service returned status %d", resp.StatusCode)
	}

	var result routeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("parsing route response: %w", err)
	}
	if len(result.Routes) == 0 {
		return nil, ErrNoRoute
	}

	first := result.Routes[0]
	if first.Geometry == nil {
		return nil, ErrBadGeometry
	}
	line, ok := first.Geometry.Geometry().(orb.LineString)
	if !ok {
		return nil, ErrBadGeometry
	}

	return &Route{
		Geometry:        line,
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
	}, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry *geojson.Geometry `json:"geometry"`
		Distance float64           `json:"distance"`
		Duration float64           `json:"duration"`
	} `json:"routes"`
}
