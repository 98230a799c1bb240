// Package geocode resolves free-text addresses through a Nominatim-style search API
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/randytsao24/verdigo/internal/cache"
	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/pacing"
)

// Client looks up addresses and caches the hits
type Client struct {
	baseURL   string
	userAgent string
	client    *http.Client
	pacer     *pacing.Scheduler
	cache     *cache.Cache[models.Place]
	group     singleflight.Group
	log       *zap.Logger
}

// NewClient creates a geocoding client against baseURL (no trailing slash)
func NewClient(baseURL, userAgent string, timeout, cacheTTL time.Duration, pacer *pacing.Scheduler, log *zap.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
		pacer:     pacer,
		cache:     cache.New[models.Place](cacheTTL),
		log:       log.Named("geocode"),
	}
}

// Resolve returns the best match for address. A nil place with a nil error
// means the service had no match or answered with a non-success status.
//
// Concurrent lookups of the same address share one upstream call. The shared
// call outlives any single caller's cancellation and is bounded by the HTTP
// client timeout; each caller still returns as soon as its own ctx is done.
func (c *Client) Resolve(ctx context.Context, address string) (*models.Place, error) {
	key := normalize(address)
	if key == "" {
		return nil, nil
	}

	if cached, ok := c.cache.Get(key); ok {
		cached.Query = address
		return &cached, nil
	}

	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (any, error) {
		if err := c.pacer.Wait(shared); err != nil {
			return nil, fmt.Errorf("waiting for geocoder slot: %w", err)
		}
		place, err := c.search(shared, address)
		if err != nil || place == nil {
			return place, err
		}
		c.cache.Set(key, *place)
		return place, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}

	place, _ := res.Val.(*models.Place)
	if place == nil {
		return nil, nil
	}
	found := *place
	found.Query = address
	return &found, nil
}

// Close releases the cache sweeper
func (c *Client) Close() {
	c.cache.Close()
}

func (c *Client) search(ctx context.Context, address string) (*models.Place, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address)
	params.Set("limit", "1")
	params.Set("timeout", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching geocode results: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("geocoder returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.String("address", address),
		)
		return nil, nil
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("parsing geocode response: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	first := results[0]
	lat, err := strconv.ParseFloat(first.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing latitude %q: %w", first.Lat, err)
	}
	lon, err := strconv.ParseFloat(first.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("parsing longitude %q: %w", first.Lon, err)
	}

	return &models.Place{
		Coordinate:  models.Coordinate{Lat: lat, Lon: lon},
		DisplayName: first.DisplayName,
		Query:       address,
	}, nil
}

func normalize(address string) string {
	return strings.Join(strings.Fields(strings.ToLower(address)), " ")
}

// Nominatim returns coordinates as strings
type searchResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}
