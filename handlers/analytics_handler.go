package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/services"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Record ingests one event from a respondent's browser. Public endpoint;
// experience_id, project_id and event_type are required.
func (h *AnalyticsHandler) Record(c *gin.Context) {
	var req services.RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.analyticsService.Record(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// Summary aggregates events for a trivia experience (public). Project-level
// aggregates live under the projects routes.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsService.ForExperience(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
