package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wholesale-catalog/internal/metrics"
	"wholesale-catalog/internal/models"
)

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler accepts image uploads, stores them under the static
// directory with generated names and persists a File record per upload.
type UploadHandler struct {
	Files Store[models.File, *models.File]
	Dir   string
}

func NewUploadHandler(files Store[models.File, *models.File], dir string) *UploadHandler {
	return &UploadHandler{Files: files, Dir: dir}
}

func (h *UploadHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid multipart form", nil)
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		files = form.File["file"]
	}
	if len(files) == 0 {
		respondError(c, http.StatusBadRequest, "no files provided", nil)
		return
	}

	// Reject the whole batch before writing anything.
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedImageExt[ext] {
			respondError(c, http.StatusBadRequest, "unsupported file extension: "+ext, []models.ErrorDetail{
				{Field: "files", Message: fh.Filename + " is not an allowed image type"},
			})
			return
		}
	}

	created := make([]*models.File, 0, len(files))
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		name := uuid.NewString() + ext

		if err := c.SaveUploadedFile(fh, filepath.Join(h.Dir, name)); err != nil {
			respondError(c, http.StatusInternalServerError, "failed to store file", nil)
			return
		}

		record := &models.File{
			URL:         "/static/" + name,
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		stored, err := h.Files.Create(c.Request.Context(), record)
		if err != nil {
			respondRepoError(c, "file", err)
			return
		}
		created = append(created, stored)
	}

	metrics.RecordOperation("file", "upload")
	respond(c, http.StatusCreated, "files uploaded", created, nil)
}
