package services

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"docquiz/models"
)

func seedProject(t *testing.T, db *gorm.DB, userID string) *models.Project {
	t.Helper()
	project := &models.Project{
		UserID:       userID,
		BusinessName: "Acme Trivia",
		ContactEmail: "owner@acme.example",
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return project
}

func TestStoreInOwnProject(t *testing.T) {
	db := testDB(t)
	svc := NewDocumentService(db)
	project := seedProject(t, db, "user-1")

	document, err := svc.Store(context.Background(), "user-1", &project.ID, "notes.txt", "text/plain", []byte("hello world"))
	if err != nil {
		t.Fatalf("store failed: %v", err)
	}
	if document.ProjectID == nil || *document.ProjectID != project.ID {
		t.Fatalf("document not attached to project: %+v", document.ProjectID)
	}
	if document.FileContent != "hello world" {
		t.Fatalf("unexpected extracted text %q", document.FileContent)
	}
}

// An upload naming someone else's project is refused before anything is
// written.
func TestStoreRejectsForeignProject(t *testing.T) {
	db := testDB(t)
	svc := NewDocumentService(db)
	project := seedProject(t, db, "owner")

	_, err := svc.Store(context.Background(), "intruder", &project.ID, "notes.txt", "text/plain", []byte("hello"))
	if !errors.Is(err, models.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Document{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no document rows, got %d", count)
	}
}

func TestStoreUnknownProject(t *testing.T) {
	svc := NewDocumentService(testDB(t))
	missing := "00000000-0000-0000-0000-000000000000"

	_, err := svc.Store(context.Background(), "user-1", &missing, "notes.txt", "text/plain", []byte("hello"))
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
