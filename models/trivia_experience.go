package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OptionCount is the fixed number of answer options per question.
const OptionCount = 4

// Question is a value object stored inside the experience's JSON column.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Validate enforces the question shape: exactly four options and a
// correct-answer index pointing into them.
func (q Question) Validate() error {
	if len(q.Options) != OptionCount {
		return fmt.Errorf("%w: question must have exactly %d options, got %d", ErrValidation, OptionCount, len(q.Options))
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer >= OptionCount {
		return fmt.Errorf("%w: correct_answer %d outside [0,%d]", ErrValidation, q.CorrectAnswer, OptionCount-1)
	}
	return nil
}

// ValidateQuestions checks every question in a set.
func ValidateQuestions(questions []Question) error {
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i, err)
		}
	}
	return nil
}

type TriviaExperience struct {
	ID            string                        `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID     string                        `json:"project_id" gorm:"type:uuid;index;not null"`
	UserID        string                        `json:"user_id" gorm:"type:uuid;index;not null"`
	Title         string                        `json:"title" gorm:"not null"`
	Questions     datatypes.JSONSlice[Question] `json:"questions"`
	AIGenerated   bool                          `json:"ai_generated"`
	ShareableSlug *string                       `json:"shareable_slug"`
	CreatedAt     time.Time                     `json:"created_at"`
	UpdatedAt     time.Time                     `json:"updated_at"`
}

func (t *TriviaExperience) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// Published reports whether the experience is publicly playable.
func (t *TriviaExperience) Published() bool {
	return t.ShareableSlug != nil && *t.ShareableSlug != ""
}
