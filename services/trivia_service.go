package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"docquiz/models"
)

const playCacheTTL = 2 * time.Hour

type TriviaService struct {
	db         *gorm.DB
	redis      *redis.Client
	appBaseURL string
}

func NewTriviaService(db *gorm.DB, redisClient *redis.Client, appBaseURL string) *TriviaService {
	return &TriviaService{db: db, redis: redisClient, appBaseURL: appBaseURL}
}

type CreateTriviaRequest struct {
	ProjectID string            `json:"project_id" binding:"required"`
	Title     string            `json:"title" binding:"required"`
	Questions []models.Question `json:"questions"`
}

// SaveTriviaRequest carries a partial update: nil fields are left
// untouched, non-nil fields overwrite the stored value entirely.
type SaveTriviaRequest struct {
	Title     *string            `json:"title"`
	Questions *[]models.Question `json:"questions"`
}

// Create builds a manually-authored experience. With no questions given,
// the editor draft seeds a single blank question to edit from.
func (s *TriviaService) Create(ctx context.Context, userID string, req *CreateTriviaRequest) (*models.TriviaExperience, error) {
	questions := req.Questions
	if len(questions) == 0 {
		draft := NewDraft(req.Title, nil)
		draft.AddQuestion()
		questions = draft.Questions()
	}
	if err := models.ValidateQuestions(questions); err != nil {
		return nil, err
	}

	experience := models.TriviaExperience{
		ProjectID:   req.ProjectID,
		UserID:      userID,
		Title:       req.Title,
		Questions:   datatypes.NewJSONSlice(questions),
		AIGenerated: false,
	}
	if err := s.db.WithContext(ctx).Create(&experience).Error; err != nil {
		return nil, fmt.Errorf("failed to create trivia experience: %w", err)
	}
	return &experience, nil
}

// Get fetches an experience with the play-access rules: published
// experiences are public, unpublished ones require the owner. An empty
// userID means an anonymous caller.
func (s *TriviaService) Get(ctx context.Context, id, userID string) (*models.TriviaExperience, error) {
	if cached := s.cacheGet(ctx, id); cached != nil && cached.Published() {
		return cached, nil
	}

	experience, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	if !experience.Published() {
		if userID == "" {
			return nil, models.ErrUnauthorized
		}
		if experience.UserID != userID {
			return nil, models.ErrForbidden
		}
		return experience, nil
	}

	s.cacheSet(ctx, experience)
	return experience, nil
}

// Save persists title and question list as one unit, last write wins.
// Whichever fields the request carries replace the stored values; there is
// no merge and no concurrency check.
func (s *TriviaService) Save(ctx context.Context, id, userID string, req *SaveTriviaRequest) (*models.TriviaExperience, error) {
	experience, err := s.fetchOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Questions != nil {
		if err := models.ValidateQuestions(*req.Questions); err != nil {
			return nil, err
		}
		payload, err := json.Marshal(*req.Questions)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		updates["questions"] = datatypes.JSON(payload)
	}

	if err := s.db.WithContext(ctx).Model(experience).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update trivia experience: %w", err)
	}

	s.cacheInvalidate(ctx, id)
	return s.fetch(ctx, id)
}

// Publish assigns the shareable slug, making the experience publicly
// playable. The slug is the experience's own ID. Re-publishing is a no-op
// that still refreshes updated_at; there is no un-publish.
func (s *TriviaService) Publish(ctx context.Context, id, userID string) (*models.TriviaExperience, string, error) {
	experience, err := s.fetchOwned(ctx, id, userID)
	if err != nil {
		return nil, "", err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}
	if !experience.Published() {
		updates["shareable_slug"] = experience.ID
	}

	if err := s.db.WithContext(ctx).Model(experience).Updates(updates).Error; err != nil {
		return nil, "", fmt.Errorf("failed to publish trivia experience: %w", err)
	}

	s.cacheInvalidate(ctx, id)
	experience, err = s.fetch(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return experience, PlayURL(s.appBaseURL, experience.ID), nil
}

// ListByProject returns a project's experiences, newest first.
func (s *TriviaService) ListByProject(ctx context.Context, projectID string) ([]models.TriviaExperience, error) {
	var experiences []models.TriviaExperience
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&experiences).Error
	return experiences, err
}

// PlayURL builds the public play link for a published experience.
func PlayURL(baseURL, id string) string {
	return fmt.Sprintf("%s/play/%s", baseURL, id)
}

func (s *TriviaService) fetch(ctx context.Context, id string) (*models.TriviaExperience, error) {
	var experience models.TriviaExperience
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&experience).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: trivia experience %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &experience, nil
}

func (s *TriviaService) fetchOwned(ctx context.Context, id, userID string) (*models.TriviaExperience, error) {
	experience, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if experience.UserID != userID {
		return nil, models.ErrForbidden
	}
	return experience, nil
}

func (s *TriviaService) cacheKey(id string) string {
	return "trivia:" + id
}

func (s *TriviaService) cacheGet(ctx context.Context, id string) *models.TriviaExperience {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, s.cacheKey(id)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("trivia cache read failed for %s: %v", id, err)
		}
		return nil
	}
	var experience models.TriviaExperience
	if err := json.Unmarshal([]byte(data), &experience); err != nil {
		log.Printf("trivia cache entry for %s is corrupt: %v", id, err)
		return nil
	}
	return &experience
}

func (s *TriviaService) cacheSet(ctx context.Context, experience *models.TriviaExperience) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(experience)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, s.cacheKey(experience.ID), data, playCacheTTL).Err(); err != nil {
		log.Printf("trivia cache write failed for %s: %v", experience.ID, err)
	}
}

func (s *TriviaService) cacheInvalidate(ctx context.Context, id string) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Del(ctx, s.cacheKey(id)).Err(); err != nil {
		log.Printf("trivia cache invalidation failed for %s: %v", id, err)
	}
}
