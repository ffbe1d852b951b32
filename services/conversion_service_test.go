package services

import (
	"context"
	"errors"
	"testing"

	"docquiz/models"
)

type fakeConverter struct {
	questions []models.Question
	err       error
	gotText   string
}

func (f *fakeConverter) ConvertDocumentToTrivia(ctx context.Context, documentText string) ([]models.Question, error) {
	f.gotText = documentText
	if f.err != nil {
		return nil, f.err
	}
	return f.questions, nil
}

func seedDocument(t *testing.T, svc *DocumentService, userID string) *models.Document {
	t.Helper()
	document, err := svc.Store(context.Background(), userID, nil, "notes.txt", "text/plain", []byte("The capital of France is Paris."))
	if err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}
	return document
}

func TestProcessDocumentCreatesExperienceForOwner(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	document := seedDocument(t, NewDocumentService(db), "user-1")

	converter := &fakeConverter{questions: []models.Question{
		{Question: "Capital of France?", Options: []string{"Paris", "Lyon", "Nice", "Lille"}, CorrectAnswer: 0},
	}}
	svc := NewConversionService(db, converter)

	experience, err := svc.ProcessDocument(ctx, "user-1", &ProcessDocumentRequest{
		DocumentID: document.ID,
		ProjectID:  "proj-1",
	})
	if err != nil {
		t.Fatalf("process failed: %v", err)
	}
	if converter.gotText != document.FileContent {
		t.Fatalf("converter received %q, want the stored text", converter.gotText)
	}
	if !experience.AIGenerated {
		t.Fatal("expected an AI-generated experience")
	}
	if experience.UserID != "user-1" {
		t.Fatalf("experience owned by %q, want the uploader", experience.UserID)
	}
	if experience.Title != "Trivia from notes.txt" {
		t.Fatalf("unexpected default title %q", experience.Title)
	}
	if len(experience.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(experience.Questions))
	}
}

// Knowing another user's document ID is not enough to convert it.
func TestProcessDocumentRejectsForeignDocument(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	document := seedDocument(t, NewDocumentService(db), "owner")

	svc := NewConversionService(db, &fakeConverter{})
	_, err := svc.ProcessDocument(ctx, "intruder", &ProcessDocumentRequest{
		DocumentID: document.ID,
		ProjectID:  "proj-1",
	})
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var count int64
	if err := db.Model(&models.TriviaExperience{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no experience rows, got %d", count)
	}
}

func TestProcessDocumentUnknownDocument(t *testing.T) {
	svc := NewConversionService(testDB(t), &fakeConverter{})
	_, err := svc.ProcessDocument(context.Background(), "user-1", &ProcessDocumentRequest{
		DocumentID: "00000000-0000-0000-0000-000000000000",
		ProjectID:  "proj-1",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProcessDocumentSurfacesConversionFailure(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	document := seedDocument(t, NewDocumentService(db), "user-1")

	svc := NewConversionService(db, &fakeConverter{err: models.ErrConversionFailed})
	_, err := svc.ProcessDocument(ctx, "user-1", &ProcessDocumentRequest{
		DocumentID: document.ID,
		ProjectID:  "proj-1",
	})
	if !errors.Is(err, models.ErrConversionFailed) {
		t.Fatalf("expected ErrConversionFailed, got %v", err)
	}

	var count int64
	if err := db.Model(&models.TriviaExperience{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no experience rows after a failed conversion, got %d", count)
	}
}
