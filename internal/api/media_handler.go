package api

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	appErrors "elevate-backend/internal/errors"
	"elevate-backend/internal/media"
	"elevate-backend/internal/middleware"
)

const multipartMemory = 8 << 20

// MediaHandler accepts admin uploads and returns the public URL to store on
// an entity.
type MediaHandler struct {
	uploads  *media.Service
	maxBytes int64
	logger   *zap.Logger
}

func NewMediaHandler(uploads *media.Service, maxBytes int64, logger *zap.Logger) *MediaHandler {
	if maxBytes <= 0 {
		maxBytes = media.DefaultMaxVideoBytes
	}
	return &MediaHandler{uploads: uploads, maxBytes: maxBytes, logger: logger}
}

// Upload handles POST /admin/media (multipart: file, folder)
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.uploads == nil || !h.uploads.Available() {
		middleware.WriteError(w, appErrors.Unavailable(appErrors.CodeMediaMissing, "media storage is not configured").Build())
		return
	}

	// Room for the multipart envelope around the largest accepted file.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+1<<20)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			middleware.WriteError(w, appErrors.Validation(appErrors.CodeMediaTooLarge, "upload exceeds the size limit").Build())
			return
		}
		middleware.WriteError(w, appErrors.Validation(appErrors.CodeInvalidRequest, "invalid multipart form").
			WithDetails(err.Error()).
			Build())
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, appErrors.Validation(appErrors.CodeInvalidRequest, "missing file field").Build())
		return
	}
	defer file.Close()

	obj, err := h.uploads.Upload(r.Context(), r.FormValue("folder"), header.Filename, file)
	if err != nil {
		middleware.WriteError(w, err)
		return
	}
	middleware.WriteJSON(w, http.StatusCreated, obj)
}
