// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Port      string
	Env       string
	UserAgent string

	GeocoderURL string
	RouterURL   string
	RedisURL    string

	TransitAlertsURL   string
	TransitAlertRoutes []string

	HTTPTimeout   time.Duration
	CacheTTL      time.Duration
	SessionTTL    time.Duration
	RoutePacing   time.Duration
	GeocodePacing time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "3000"),
		Env:                getEnv("ENV", "development"),
		UserAgent:          getEnv("USER_AGENT", "VerdiGo/1.0"),
		GeocoderURL:        strings.TrimRight(getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"), "/"),
		RouterURL:          strings.TrimRight(getEnv("ROUTER_URL", "https://router.project-osrm.org"), "/"),
		RedisURL:           getEnv("REDIS_URL", ""),
		TransitAlertsURL:   getEnv("TRANSIT_ALERTS_URL", ""),
		TransitAlertRoutes: getListEnv("TRANSIT_ALERT_ROUTES"),
		HTTPTimeout:        getDurationEnv("HTTP_TIMEOUT_SECONDS", 15) * time.Second,
		CacheTTL:           getDurationEnv("CACHE_TTL_SECONDS", 600) * time.Second,
		SessionTTL:         getDurationEnv("SESSION_TTL_SECONDS", 1800) * time.Second,
		RoutePacing:        getDurationEnv("ROUTE_PACING_MS", 600) * time.Millisecond,
		GeocodePacing:      getDurationEnv("GEOCODE_PACING_MS", 800) * time.Millisecond,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	var errs []error
	if c.GeocoderURL == "" {
		errs = append(errs, errors.New("GEOCODER_URL must not be empty"))
	}
	if c.RouterURL == "" {
		errs = append(errs, errors.New("ROUTER_URL must not be empty"))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, errors.New("HTTP_TIMEOUT_SECONDS must be positive"))
	}
	if c.CacheTTL <= 0 || c.SessionTTL <= 0 {
		errs = append(errs, errors.New("cache and session TTLs must be positive"))
	}
	if c.RoutePacing < 0 || c.GeocodePacing < 0 {
		errs = append(errs, errors.New("pacing intervals must not be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultUnits int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if units, err := strconv.Atoi(value); err == nil {
			return time.Duration(units)
		}
	}
	return time.Duration(defaultUnits)
}

func getListEnv(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
