package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"docquiz/extract"
	"docquiz/models"
)

type DocumentService struct {
	db *gorm.DB
}

func NewDocumentService(db *gorm.DB) *DocumentService {
	return &DocumentService{db: db}
}

// Store extracts text from the uploaded file and persists it as a
// Document row. The raw bytes are discarded; only the text is kept. When a
// project is given it must belong to the uploader.
func (s *DocumentService) Store(ctx context.Context, userID string, projectID *string, fileName, mimeType string, data []byte) (*models.Document, error) {
	if projectID != nil {
		var project models.Project
		err := s.db.WithContext(ctx).Where("id = ?", *projectID).First(&project).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: project %s", models.ErrNotFound, *projectID)
		}
		if err != nil {
			return nil, err
		}
		if project.UserID != userID {
			return nil, models.ErrForbidden
		}
	}

	text, normalizedMime, err := extract.Text(mimeType, data)
	if err != nil {
		return nil, err
	}

	document := models.Document{
		ProjectID:   projectID,
		UserID:      userID,
		FileName:    fileName,
		FileContent: text,
		FileSize:    int64(len(data)),
		MimeType:    normalizedMime,
	}
	if err := s.db.WithContext(ctx).Create(&document).Error; err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}
	return &document, nil
}

// ListByProject returns a project's documents, newest first.
func (s *DocumentService) ListByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	var documents []models.Document
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("uploaded_at DESC").
		Find(&documents).Error
	return documents, err
}
