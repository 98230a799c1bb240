package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/api/handlers"
	"github.com/randytsao24/verdigo/internal/config"
	"github.com/randytsao24/verdigo/internal/session"
)

// requestBudget covers two paced geocodes and three paced route calls
const requestBudget = 30 * time.Second

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(
	cfg *config.Config,
	plans handlers.Planner,
	sessions session.Store,
	geocoder handlers.Geocoder,
	log *zap.Logger,
) *gin.Engine {
	r := gin.New()

	timeout := requestBudget
	if budget := 2*cfg.HTTPTimeout + 3*cfg.RoutePacing + 2*cfg.GeocodePacing; budget > timeout {
		timeout = budget
	}

	r.Use(
		Recovery(log),
		Logging(log.Named("http")),
		CORS(),
		Timeout(timeout),
	)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	planHandler := handlers.NewPlanHandler(plans, sessions, log)
	geocodeHandler := handlers.NewGeocodeHandler(geocoder, log)

	// Core routes
	r.GET("/", rootHandler.Index)
	r.GET("/api", rootHandler.Index)
	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		api.POST("/plan", planHandler.Create)
		api.GET("/plans/:id", planHandler.Get)
		api.PUT("/plans/:id/selection", planHandler.Select)
		api.GET("/geocode", geocodeHandler.Lookup)
	}

	r.NoRoute(rootHandler.NotFound)

	return r
}
