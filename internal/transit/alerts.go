// Package transit supplies service advisories for transit trips from a
// GTFS-realtime alerts feed.
package transit

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"

	"github.com/randytsao24/verdigo/internal/cache"
)

// MaxAdvisories caps how many alerts accompany a plan
const MaxAdvisories = 5

const feedCacheKey = "feed"

// Advisory is an active service alert
type Advisory struct {
	ID          string   `json:"id"`
	Routes      []string `json:"routes,omitempty"`
	Header      string   `json:"header"`
	Description string   `json:"description,omitempty"`
}

// AlertService reads and caches a GTFS-realtime alerts feed
type AlertService struct {
	feedURL string
	routes  map[string]bool
	client  *http.Client
	cache   *cache.Cache[[]Advisory]
	now     func() time.Time
}

// NewAlertService creates an alert service for feedURL. When routes is
// non-empty only alerts touching one of those route IDs are reported.
func NewAlertService(feedURL string, routes []string, timeout, cacheTTL time.Duration) *AlertService {
	routeSet := make(map[string]bool, len(routes))
	for _, r := range routes {
		routeSet[r] = true
	}
	return &AlertService{
		feedURL: feedURL,
		routes:  routeSet,
		client:  &http.Client{Timeout: timeout},
		cache:   cache.New[[]Advisory](cacheTTL),
		now:     time.Now,
	}
}

// Advisories returns up to MaxAdvisories active alerts
func (s *AlertService) Advisories(ctx context.Context) ([]Advisory, error) {
	all, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var out []Advisory
	for _, a := range all {
		if len(out) == MaxAdvisories {
			break
		}
		if s.matches(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Close releases the cache sweeper
func (s *AlertService) Close() {
	s.cache.Close()
}

func (s *AlertService) matches(a Advisory) bool {
	if len(s.routes) == 0 {
		return true
	}
	for _, r := range a.Routes {
		if s.routes[r] {
			return true
		}
	}
	return false
}

func (s *AlertService) fetch(ctx context.Context) ([]Advisory, error) {
	if cached, ok := s.cache.Get(feedCacheKey); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building alerts request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching alerts feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alerts feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading alerts response: %w", err)
	}

	feed := &gtfs.FeedMessage{}
	if err := proto.Unmarshal(body, feed); err != nil {
		return nil, fmt.Errorf("parsing alerts protobuf: %w", err)
	}

	advisories := activeAdvisories(feed, s.now().Unix())
	s.cache.Set(feedCacheKey, advisories)
	return advisories, nil
}

func activeAdvisories(feed *gtfs.FeedMessage, now int64) []Advisory {
	var out []Advisory

	for _, entity := range feed.GetEntity() {
		alert := entity.GetAlert()
		if alert == nil || !isActive(alert, now) {
			continue
		}

		header := englishText(alert.GetHeaderText())
		if header == "" {
			continue
		}

		var routes []string
		seen := make(map[string]bool)
		for _, ie := range alert.GetInformedEntity() {
			if id := ie.GetRouteId(); id != "" && !seen[id] {
				seen[id] = true
				routes = append(routes, id)
			}
		}

		out = append(out, Advisory{
			ID:          entity.GetId(),
			Routes:      routes,
			Header:      header,
			Description: englishText(alert.GetDescriptionText()),
		})
	}
	return out
}

// isActive treats an alert without periods as always on; an open end
// (zero) means the period has not finished.
func isActive(alert *gtfs.Alert, now int64) bool {
	periods := alert.GetActivePeriod()
	if len(periods) == 0 {
		return true
	}
	for _, p := range periods {
		start, end := int64(p.GetStart()), int64(p.GetEnd())
		if now >= start && (end == 0 || now < end) {
			return true
		}
	}
	return false
}

func englishText(ts *gtfs.TranslatedString) string {
	translations := ts.GetTranslation()
	for _, t := range translations {
		if lang := t.GetLanguage(); lang == "en" || lang == "" {
			return t.GetText()
		}
	}
	if len(translations) > 0 {
		return translations[0].GetText()
	}
	return ""
}
