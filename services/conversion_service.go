package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"docquiz/models"
)

// Converter turns extracted document text into a question set. The
// production implementation is the Gemini client; tests substitute fakes.
type Converter interface {
	ConvertDocumentToTrivia(ctx context.Context, documentText string) ([]models.Question, error)
}

type ConversionService struct {
	db        *gorm.DB
	converter Converter
}

func NewConversionService(db *gorm.DB, converter Converter) *ConversionService {
	return &ConversionService{db: db, converter: converter}
}

type ProcessDocumentRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	ProjectID  string `json:"project_id" binding:"required"`
	Title      string `json:"title"`
}

// ProcessDocument runs the single blocking conversion call for a stored
// document and creates the resulting AI-generated experience. There are no
// retries; failure is surfaced to the initiating user. Only the document's
// uploader may trigger conversion.
func (s *ConversionService) ProcessDocument(ctx context.Context, userID string, req *ProcessDocumentRequest) (*models.TriviaExperience, error) {
	var document models.Document
	err := s.db.WithContext(ctx).Where("id = ?", req.DocumentID).First(&document).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: document %s", models.ErrNotFound, req.DocumentID)
	}
	if err != nil {
		return nil, err
	}
	if document.UserID != userID {
		return nil, models.ErrForbidden
	}

	questions, err := s.converter.ConvertDocumentToTrivia(ctx, document.FileContent)
	if err != nil {
		return nil, err
	}

	title := req.Title
	if title == "" {
		title = fmt.Sprintf("Trivia from %s", document.FileName)
	}

	experience := models.TriviaExperience{
		ProjectID:   req.ProjectID,
		UserID:      document.UserID,
		Title:       title,
		Questions:   datatypes.NewJSONSlice(questions),
		AIGenerated: true,
	}
	if err := s.db.WithContext(ctx).Create(&experience).Error; err != nil {
		return nil, fmt.Errorf("failed to create trivia experience: %w", err)
	}
	return &experience, nil
}
