package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"dermalens/internal/diagnosis"
	"dermalens/internal/model"
	"dermalens/internal/service"
	"dermalens/internal/transport/rest/middleware"
)

// AnalysisHandler handles analysis and report endpoints
type AnalysisHandler struct {
	analysisSvc *service.AnalysisService
	reportSvc   *service.ReportService
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(analysisSvc *service.AnalysisService, reportSvc *service.ReportService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc, reportSvc: reportSvc}
}

// Run handles POST /v1/analyses
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	var attrs diagnosis.PatientAttributes
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := h.analysisSvc.Run(r.Context(), sessionID, attrs)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// RunDemo handles POST /v1/analyses/demo
func (h *AnalysisHandler) RunDemo(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	rec, err := h.analysisSvc.RunDemo(r.Context(), sessionID)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// Latest handles GET /v1/analyses/latest
func (h *AnalysisHandler) Latest(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	rec, err := h.analysisSvc.Latest(r.Context(), sessionID)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// History handles GET /v1/analyses
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	limit := int64(20)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	recs, err := h.analysisSvc.History(r.Context(), sessionID, limit)
	if err != nil {
		writeSessionError(w, err)
		return
	}
	if recs == nil {
		recs = []model.AnalysisRecord{}
	}

	writeJSON(w, http.StatusOK, recs)
}

// Report handles GET /v1/analyses/{analysisId}/report
func (h *AnalysisHandler) Report(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())
	analysisID := mux.Vars(r)["analysisId"]

	report, err := h.reportSvc.Report(r.Context(), sessionID, analysisID)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidAttributes):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrNoImageData):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrAnalysisNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeSessionError(w, err)
	}
}
