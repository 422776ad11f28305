package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"dermalens/internal/model"
	"dermalens/internal/service"
	"dermalens/internal/transport/rest/middleware"
)

// SessionHandler handles session lifecycle endpoints
type SessionHandler struct {
	sessionSvc *service.SessionService
	uploadSvc  *service.UploadService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionSvc *service.SessionService, uploadSvc *service.UploadService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc, uploadSvc: uploadSvc}
}

// Create handles POST /v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	resp, err := h.sessionSvc.Create(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Current handles GET /v1/sessions/current
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	state, err := h.sessionSvc.State(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Navigate handles POST /v1/sessions/navigate
func (h *SessionHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var req struct {
		Page model.Page `json:"page"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.sessionSvc.Navigate(r.Context(), sessionID, req.Page)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownPage):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrNoImageData):
			writeError(w, http.StatusConflict, err.Error())
		default:
			writeSessionError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, state)
}

// Reset handles POST /v1/sessions/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	state, err := h.sessionSvc.State(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	// Stored images are orphaned by the reset, drop them first.
	h.uploadSvc.Cleanup(r.Context(), state.Uploads)

	fresh, err := h.sessionSvc.Reset(r.Context(), sessionID)
	if err != nil {
		writeSessionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fresh)
}

func writeSessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

// Helper functions
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
