package http

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/storage"
)

// MediaHandler serves proof-of-payment uploads and downloads against the
// folder-scoped media store.
type MediaHandler struct {
	store       storage.MediaStorage
	maxFileSize int64
}

func NewMediaHandler(store storage.MediaStorage, maxFileSizeMB int64) *MediaHandler {
	return &MediaHandler{
		store:       store,
		maxFileSize: maxFileSizeMB << 20,
	}
}

// Upload accepts a multipart form with a single "file" field and returns
// the stored file's public URL for use as a proof_of_payment_url.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, fmt.Errorf("%w: multipart form required", domain.ErrValidation))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, fmt.Errorf("%w: file field is required", domain.ErrValidation))
		return
	}
	defer file.Close()

	if header.Size > h.maxFileSize {
		writeError(w, fmt.Errorf("%w: file exceeds size limit", domain.ErrValidation))
		return
	}

	folder := fmt.Sprintf("payment-proofs/%d", claims.UserID)
	url, err := h.store.Upload(r.Context(), file, folder, header.Filename)
	if err != nil {
		writeError(w, fmt.Errorf("upload failed: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}

// DownloadByPath serves a stored file. The router strips the media prefix,
// leaving the storage key (folder/filename) as the request path.
func (h *MediaHandler) DownloadByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" || strings.Contains(key, "..") {
		writeError(w, domain.ErrValidation)
		return
	}

	reader, err := h.store.Open(r.Context(), key)
	if err != nil {
		writeError(w, domain.ErrNotFound)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, reader); err != nil {
		// Headers already sent; nothing left to do but log.
		return
	}
}
