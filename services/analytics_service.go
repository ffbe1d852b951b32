package services

import (
	"context"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"docquiz/models"
)

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

type RecordEventRequest struct {
	ExperienceID  string                 `json:"experience_id" binding:"required"`
	ProjectID     string                 `json:"project_id" binding:"required"`
	UserID        *string                `json:"user_id"`
	EventType     string                 `json:"event_type" binding:"required"`
	QuestionIndex *int                   `json:"question_index"`
	Metadata      map[string]interface{} `json:"metadata"`
}

// AnalyticsSummary aggregates an entity's event stream.
type AnalyticsSummary struct {
	Views          int                     `json:"views"`
	Starts         int                     `json:"starts"`
	Completions    int                     `json:"completions"`
	CompletionRate float64                 `json:"completionRate"`
	Events         []models.AnalyticsEvent `json:"events"`
}

// Record appends one analytics event. Events are never updated or deleted.
func (s *AnalyticsService) Record(ctx context.Context, req *RecordEventRequest) (*models.AnalyticsEvent, error) {
	if req.ExperienceID == "" || req.ProjectID == "" || req.EventType == "" {
		return nil, fmt.Errorf("%w: experience_id, project_id and event_type are required", models.ErrValidation)
	}
	if !models.ValidEventType(req.EventType) {
		return nil, fmt.Errorf("%w: unknown event_type %q", models.ErrValidation, req.EventType)
	}

	event := models.AnalyticsEvent{
		ExperienceID:  req.ExperienceID,
		ProjectID:     req.ProjectID,
		UserID:        req.UserID,
		EventType:     req.EventType,
		QuestionIndex: req.QuestionIndex,
		Metadata:      datatypes.JSONMap(req.Metadata),
	}
	if event.Metadata == nil {
		event.Metadata = datatypes.JSONMap{}
	}

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return nil, fmt.Errorf("failed to record analytics event: %w", err)
	}
	return &event, nil
}

// ForExperience summarizes all events recorded against one experience.
func (s *AnalyticsService) ForExperience(ctx context.Context, experienceID string) (*AnalyticsSummary, error) {
	var events []models.AnalyticsEvent
	err := s.db.WithContext(ctx).
		Where("experience_id = ?", experienceID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return Summarize(events), nil
}

// ForProject summarizes all events recorded against a project's experiences.
func (s *AnalyticsService) ForProject(ctx context.Context, projectID string) (*AnalyticsSummary, error) {
	var events []models.AnalyticsEvent
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return Summarize(events), nil
}

// Summarize folds an event stream into view/start/completion counts. The
// completion rate is completions over starts, in percent.
func Summarize(events []models.AnalyticsEvent) *AnalyticsSummary {
	summary := &AnalyticsSummary{Events: events}
	if summary.Events == nil {
		summary.Events = []models.AnalyticsEvent{}
	}
	for _, e := range events {
		switch e.EventType {
		case models.EventView:
			summary.Views++
		case models.EventStart:
			summary.Starts++
		case models.EventQuizComplete:
			summary.Completions++
		}
	}
	if summary.Starts > 0 {
		summary.CompletionRate = float64(summary.Completions) / float64(summary.Starts) * 100
	}
	return summary
}

// experienceEmitter writes session events for one experience. Failures are
// logged and swallowed so telemetry never degrades the play flow.
type experienceEmitter struct {
	analytics    *AnalyticsService
	experienceID string
	projectID    string
	ownerID      string
}

// NewExperienceEmitter builds the production EventEmitter for a session
// over the given experience.
func NewExperienceEmitter(analytics *AnalyticsService, experience *models.TriviaExperience) EventEmitter {
	return &experienceEmitter{
		analytics:    analytics,
		experienceID: experience.ID,
		projectID:    experience.ProjectID,
		ownerID:      experience.UserID,
	}
}

func (e *experienceEmitter) Emit(ctx context.Context, eventType string, questionIndex *int, metadata map[string]interface{}) {
	owner := e.ownerID
	_, err := e.analytics.Record(ctx, &RecordEventRequest{
		ExperienceID:  e.experienceID,
		ProjectID:     e.projectID,
		UserID:        &owner,
		EventType:     eventType,
		QuestionIndex: questionIndex,
		Metadata:      metadata,
	})
	if err != nil {
		log.Printf("dropping analytics event %s for experience %s: %v", eventType, e.experienceID, err)
	}
}
