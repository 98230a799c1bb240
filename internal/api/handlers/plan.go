package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/randytsao24/verdigo/internal/models"
	"github.com/randytsao24/verdigo/internal/session"
)

type PlanHandler struct {
	planner  Planner
	sessions session.Store
	log      *zap.Logger
}

func NewPlanHandler(p Planner, sessions session.Store, log *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planner:  p,
		sessions: sessions,
		log:      log.Named("plans"),
	}
}

type planRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Mode string `json:"mode"`
}

type selectionRequest struct {
	Index *int `json:"index"`
}

// Create plans routes between two addresses and stores the session
func (h *PlanHandler) Create(c *gin.Context) {
	var req planRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": err.Error(),
		})
		return
	}

	from, to := strings.TrimSpace(req.From), strings.TrimSpace(req.To)
	if from == "" || to == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Please enter both addresses",
		})
		return
	}

	mode := models.ModeDriving
	if req.Mode != "" {
		mode = models.ParseMode(req.Mode)
	}
	if !mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid mode",
			"message": "Mode must be one of driving, walking, cycling, transit",
		})
		return
	}

	s, err := h.planner.Plan(c.Request.Context(), from, to, mode)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, renderPlan(s, h.log))
}

// Get returns a stored plan
func (h *PlanHandler) Get(c *gin.Context) {
	s, err := h.sessions.Load(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, renderPlan(s, h.log))
}

// Select changes which route of a stored plan is highlighted
func (h *PlanHandler) Select(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"message": `Expected {"index": <route index>}`,
		})
		return
	}

	s, err := session.Select(c.Request.Context(), h.sessions, c.Param("id"), *req.Index)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, renderPlan(s, h.log))
}
