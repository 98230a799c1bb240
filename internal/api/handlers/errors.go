package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/planner"
	"github.com/randytsao24/verdigo/internal/session"
)

var notFoundMessages = map[string]string{
	planner.RoleStart:       "Could not find start address",
	planner.RoleDestination: "Could not find destination",
}

// writeError maps domain errors onto HTTP statuses
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var notFound *planner.AddressNotFoundError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   notFoundMessages[notFound.Role],
			"message": notFound.Hint,
			"role":    notFound.Role,
			"query":   notFound.Query,
		})
	case errors.Is(err, planner.ErrNoRoutes):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "No routes found. Check internet and try again.",
		})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Plan not found",
			"message": "Plans expire; request a new one with POST /api/plan",
		})
	case errors.Is(err, planner.ErrSelectionOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Route index out of range",
		})
	case errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusGatewayTimeout, gin.H{
			"error": "Request timeout",
		})
	default:
		log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": err.Error(),
		})
	}
}
