package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/randytsao24/verdigo/internal/models"
)

type RootHandler struct{}

func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

func (h *RootHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":        "verdigo",
		"description": "Eco-friendly route planner: compares alternative routes by estimated CO2",
		"version":     version,
		"modes":       models.Modes,
		"endpoints": map[string]string{
			"GET /api":                     "API information",
			"GET /health":                  "Health check",
			"POST /api/plan":               "Plan routes between two addresses",
			"GET /api/plans/:id":           "Fetch a stored plan",
			"PUT /api/plans/:id/selection": "Change the selected route",
			"GET /api/geocode?q=":          "Resolve an address",
		},
	})
}

func (h *RootHandler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{
		"error":   "Route not found",
		"message": "Check the /api endpoint for available routes",
	})
}
