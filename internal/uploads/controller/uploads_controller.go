package controller

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storeadmin/internal/api/respond"
	apperrors "storeadmin/internal/errors"
	"storeadmin/internal/storage"
)

// maxUploadBytes caps image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// UploadsController receives multipart image uploads for categories,
// products and branding slides, and hands back the public URL.
type UploadsController struct {
	store  storage.ObjectStore
	logger *zap.Logger
}

func NewUploadsController(store storage.ObjectStore, logger *zap.Logger) *UploadsController {
	return &UploadsController{store: store, logger: logger}
}

func (c *UploadsController) Upload(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid upload", apperrors.ValidationDetail{
			Field:   "file",
			Message: "request must be multipart form data within the size limit",
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.ValidationError(w, c.logger, traceID, "invalid upload", apperrors.ValidationDetail{
			Field:   "file",
			Message: "a file field is required",
		})
		return
	}
	defer file.Close()

	ext := strings.ToLower(path.Ext(header.Filename))
	if !allowedExtensions[ext] {
		respond.ValidationError(w, c.logger, traceID, "invalid upload", apperrors.ValidationDetail{
			Field:   "file",
			Message: "unsupported file type",
		})
		return
	}

	folder := r.FormValue("folder")
	if folder == "" {
		folder = "uploads"
	}

	objectPath := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)
	url, err := c.store.Upload(r.Context(), objectPath, file)
	if err != nil {
		respond.Error(w, c.logger, traceID, apperrors.NewInternalError("storing upload", err))
		return
	}

	c.logger.Info("upload stored",
		zap.String("traceId", traceID),
		zap.String("objectPath", objectPath),
		zap.Int64("size", header.Size))

	respond.JSON(w, c.logger, http.StatusCreated, map[string]string{"url": url})
}
