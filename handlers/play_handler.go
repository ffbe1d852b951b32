package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/models"
	"docquiz/services"
)

// PlayHandler exposes the quiz session state machine to respondents. All
// endpoints are public; access control is the experience's published flag.
type PlayHandler struct {
	triviaService    *services.TriviaService
	analyticsService *services.AnalyticsService
	sessions         *services.SessionStore
}

func NewPlayHandler(
	triviaService *services.TriviaService,
	analyticsService *services.AnalyticsService,
	sessions *services.SessionStore,
) *PlayHandler {
	return &PlayHandler{
		triviaService:    triviaService,
		analyticsService: analyticsService,
		sessions:         sessions,
	}
}

// StartSession creates a session over a published experience and starts
// it, emitting the start event.
func (h *PlayHandler) StartSession(c *gin.Context) {
	experience, err := h.triviaService.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	emitter := services.NewExperienceEmitter(h.analyticsService, experience)
	sessionID, session := h.sessions.Create(experience, emitter)

	if err := session.Start(c.Request.Context()); err != nil {
		h.sessions.Delete(sessionID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"session_id": sessionID,
		"session":    session.Snapshot(),
	})
}

// session resolves the sessionId path param and checks the session belongs
// to the experience in the URL; a mismatched pairing reads as not found.
func (h *PlayHandler) session(c *gin.Context) (*services.QuizSession, error) {
	session, err := h.sessions.Get(c.Param("sessionId"))
	if err != nil {
		return nil, err
	}
	if session.ExperienceID() != c.Param("id") {
		return nil, models.ErrSessionNotFound
	}
	return session, nil
}

type answerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required"`
}

// Answer records the respondent's pick for the current question. Duplicate
// submissions return the originally recorded outcome.
func (h *PlayHandler) Answer(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := session.SelectAnswer(c.Request.Context(), *req.OptionIndex)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":       result,
		"reveal_delay": services.RevealDelay.Milliseconds(),
	})
}

// Next is the explicit continue gate after the reveal interval.
func (h *PlayHandler) Next(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := session.Advance(); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session.Snapshot()})
}

// State returns the session's current view.
func (h *PlayHandler) State(c *gin.Context) {
	session, err := h.session(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"session": session.Snapshot()})
}
