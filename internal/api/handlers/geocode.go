package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GeocodeHandler struct {
	geocoder Geocoder
	log      *zap.Logger
}

func NewGeocodeHandler(g Geocoder, log *zap.Logger) *GeocodeHandler {
	return &GeocodeHandler{geocoder: g, log: log.Named("geocode")}
}

// Lookup resolves the q parameter to a place
func (h *GeocodeHandler) Lookup(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Address is required",
			"message": "Pass the address as ?q=",
		})
		return
	}

	place, err := h.geocoder.Resolve(c.Request.Context(), q)
	if err != nil {
		h.log.Warn("lookup failed", zap.String("q", q), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "Geocoding service unavailable",
			"message": err.Error(),
		})
		return
	}
	if place == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Address not found",
			"message": `Add a city or landmark, e.g. "Howrah Bridge, Kolkata"`,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"place":   place,
	})
}
