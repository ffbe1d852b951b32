package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/models"
	"docquiz/services"
)

type TriviaHandler struct {
	triviaService     *services.TriviaService
	conversionService *services.ConversionService
	analyticsService  *services.AnalyticsService
}

func NewTriviaHandler(
	triviaService *services.TriviaService,
	conversionService *services.ConversionService,
	analyticsService *services.AnalyticsService,
) *TriviaHandler {
	return &TriviaHandler{
		triviaService:     triviaService,
		conversionService: conversionService,
		analyticsService:  analyticsService,
	}
}

// Create builds a manually-authored experience.
func (h *TriviaHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.CreateTriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	experience, err := h.triviaService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trivia": experience})
}

// Get serves both the owner's editor fetch and the public play fetch.
// A successful public fetch of a published experience counts as one view.
func (h *TriviaHandler) Get(c *gin.Context) {
	userID := currentUserID(c)

	experience, err := h.triviaService.Get(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	if experience.Published() && userID != experience.UserID {
		emitter := services.NewExperienceEmitter(h.analyticsService, experience)
		emitter.Emit(c.Request.Context(), models.EventView, nil, nil)
	}

	c.JSON(http.StatusOK, gin.H{"trivia": experience})
}

// Save persists the editor's working copy: title and/or full question
// list, last write wins.
func (h *TriviaHandler) Save(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.SaveTriviaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	experience, err := h.triviaService.Save(c.Request.Context(), c.Param("id"), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trivia": experience})
}

// GenerateURL publishes the experience and returns its play link.
func (h *TriviaHandler) GenerateURL(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	experience, url, err := h.triviaService.Publish(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"trivia": experience, "url": url})
}

// ProcessDocument converts a stored document into an AI-generated
// experience. One blocking call, no retries.
func (h *TriviaHandler) ProcessDocument(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req services.ProcessDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	experience, err := h.conversionService.ProcessDocument(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"trivia": experience})
}
