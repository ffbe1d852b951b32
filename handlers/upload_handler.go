package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"docquiz/services"
)

// maxUploadSize bounds how much of an uploaded file is read into memory.
const maxUploadSize = 20 << 20 // 20 MiB

type UploadHandler struct {
	documentService *services.DocumentService
}

func NewUploadHandler(documentService *services.DocumentService) *UploadHandler {
	return &UploadHandler{documentService: documentService}
}

// Upload accepts a multipart file, extracts its text and stores it as a
// document, optionally attached to a project.
func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	var projectID *string
	if id := c.PostForm("projectId"); id != "" {
		projectID = &id
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	document, err := h.documentService.Store(c.Request.Context(), userID, projectID, fileHeader.Filename, mimeType, data)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"document": document})
}
