package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/services"
)

type ProjectHandler struct {
	projectService   *services.ProjectService
	documentService  *services.DocumentService
	triviaService    *services.TriviaService
	analyticsService *services.AnalyticsService
}

func NewProjectHandler(
	projectService *services.ProjectService,
	documentService *services.DocumentService,
	triviaService *services.TriviaService,
	analyticsService *services.AnalyticsService,
) *ProjectHandler {
	return &ProjectHandler{
		projectService:   projectService,
		documentService:  documentService,
		triviaService:    triviaService,
		analyticsService: analyticsService,
	}
}

// Intake creates a project from the client intake form.
func (h *ProjectHandler) Intake(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	projects, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) Detail(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	detail, err := h.projectService.Detail(c.Request.Context(), c.Param("id"), userID, h.documentService, h.triviaService)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Analytics aggregates the project's event stream for its owner.
func (h *ProjectHandler) Analytics(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	projectID := c.Param("id")
	if _, err := h.projectService.Get(c.Request.Context(), projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.analyticsService.ForProject(c.Request.Context(), projectID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
