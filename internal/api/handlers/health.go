// Package handlers contains HTTP request handlers
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

type HealthHandler struct {
	startTime time.Time
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{startTime: time.Now()}
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
		"uptime":    time.Since(h.startTime).String(),
	})
}
