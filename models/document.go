package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document stores the extracted text of an uploaded file, not the raw bytes.
type Document struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	ProjectID   *string   `json:"project_id" gorm:"type:uuid;index"`
	UserID      string    `json:"user_id" gorm:"type:uuid;index;not null"`
	FileName    string    `json:"file_name" gorm:"not null"`
	FileContent string    `json:"file_content"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	UploadedAt  time.Time `json:"uploaded_at" gorm:"autoCreateTime"`
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}
