package handler

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"dermalens/internal/model"
	"dermalens/internal/service"
	"dermalens/internal/transport/rest/middleware"
)

// UploadHandler handles lesion image upload endpoints
type UploadHandler struct {
	uploadSvc *service.UploadService
	maxBytes  int64
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadSvc *service.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc, maxBytes: maxBytes}
}

// Store handles POST /v1/uploads/{slot}
func (h *UploadHandler) Store(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	slot := model.UploadSlot(mux.Vars(r)["slot"])

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "image exceeds the upload size limit")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing image file")
		return
	}
	defer file.Close()

	ref, err := h.uploadSvc.StoreImage(r.Context(), sessionID, slot, header.Filename, file, header.Size)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownSlot):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUnsupportedImage):
			writeError(w, http.StatusUnsupportedMediaType, err.Error())
		case errors.Is(err, service.ErrStorageDisabled):
			writeError(w, http.StatusServiceUnavailable, err.Error())
		default:
			writeSessionError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, ref)
}

// UseSample handles POST /v1/uploads/sample
func (h *UploadHandler) UseSample(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	state, err := h.uploadSvc.UseSample(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}
