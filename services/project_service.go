package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docquiz/models"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	BusinessName string `json:"business_name" binding:"required"`
	ContactEmail string `json:"contact_email" binding:"required,email"`
}

// ProjectDetail bundles a project with its documents and experiences.
type ProjectDetail struct {
	Project           models.Project            `json:"project"`
	Documents         []models.Document         `json:"documents"`
	TriviaExperiences []models.TriviaExperience `json:"triviaExperiences"`
}

// Create handles the intake form: both fields are required.
func (s *ProjectService) Create(ctx context.Context, userID string, req *CreateProjectRequest) (*models.Project, error) {
	if req.BusinessName == "" || req.ContactEmail == "" {
		return nil, fmt.Errorf("%w: business_name and contact_email are required", models.ErrValidation)
	}

	project := models.Project{
		UserID:       userID,
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	return &project, nil
}

// List returns the user's own projects, newest first. Ownership-only
// access: there is no editor role that sees other users' projects.
func (s *ProjectService) List(ctx context.Context, userID string) ([]models.Project, error) {
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Get fetches one project, enforcing ownership.
func (s *ProjectService) Get(ctx context.Context, id, userID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, models.ErrForbidden
	}
	return &project, nil
}

// Detail returns the project plus its documents and trivia experiences.
func (s *ProjectService) Detail(ctx context.Context, id, userID string, documents *DocumentService, trivia *TriviaService) (*ProjectDetail, error) {
	project, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	docs, err := documents.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	experiences, err := trivia.ListByProject(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ProjectDetail{
		Project:           *project,
		Documents:         docs,
		TriviaExperiences: experiences,
	}, nil
}
