package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventView           = "view"
	EventStart          = "start"
	EventQuestionAnswer = "question_answer"
	EventQuizComplete   = "quiz_complete"
)

// ValidEventType reports whether t is one of the accepted event types.
func ValidEventType(t string) bool {
	switch t {
	case EventView, EventStart, EventQuestionAnswer, EventQuizComplete:
		return true
	}
	return false
}

// AnalyticsEvent is append-only; rows are never updated or deleted.
type AnalyticsEvent struct {
	ID            string            `json:"id" gorm:"type:uuid;primaryKey"`
	ExperienceID  string            `json:"experience_id" gorm:"type:uuid;index;not null"`
	ProjectID     string            `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID        *string           `json:"user_id" gorm:"type:uuid"`
	EventType     string            `json:"event_type" gorm:"not null"`
	QuestionIndex *int              `json:"question_index"`
	Metadata      datatypes.JSONMap `json:"metadata"`
	CreatedAt     time.Time         `json:"created_at"`
}

func (e *AnalyticsEvent) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}
