package api

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/verselab/verse-api/internal/analysis"
	"github.com/verselab/verse-api/internal/api/shared"
	"github.com/verselab/verse-api/internal/domain"
	"github.com/verselab/verse-api/internal/platform/logger"
	"github.com/verselab/verse-api/internal/service"
)

// SubmitAnalysisRequest represents the request body for submitting an analysis.
// Kind is optional and defaults to the poetry analysis.
type SubmitAnalysisRequest struct {
	Kind  string `json:"kind"  validate:"omitempty,min=1"`
	Input string `json:"input" validate:"required,min=1"`
}

// SubmitAnalysisResponse represents the response data for a freshly
// accepted analysis task
type SubmitAnalysisResponse struct {
	TaskID string `json:"task_id"`
	Kind   string `json:"kind"`
	Status string `json:"status"`
}

// AnalysisStatusResponse represents the response data for a status query
type AnalysisStatusResponse struct {
	TaskID      string     `json:"task_id"`
	Kind        string     `json:"kind"`
	Status      string     `json:"status"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// AnalysisHandler handles analysis-related HTTP requests
type AnalysisHandler struct {
	analysisService service.AnalysisService
	validator       *validator.Validate
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(analysisService service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		validator:       validator.New(),
	}
}

// SubmitAnalysis handles POST /api/analyses requests
func (h *AnalysisHandler) SubmitAnalysis(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	// Parse request body
	var req SubmitAnalysisRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	// Kind is optional on the wire; poetry analysis is the default.
	if req.Kind == "" {
		req.Kind = analysis.KindPoetry
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// Create the task record and schedule background execution
	taskID, err := h.analysisService.Submit(r.Context(), req.Kind, req.Input)
	if err != nil {
		log.Debug("analysis submission rejected",
			"error", err,
			"task_kind", req.Kind)
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// Processing happens asynchronously; the identifier is queryable
	// immediately.
	response := SubmitAnalysisResponse{
		TaskID: taskID.String(),
		Kind:   req.Kind,
		Status: string(domain.TaskStatusPending),
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, response)
}

// GetAnalysis handles GET /api/analyses/{id} requests
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	taskID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	record, err := h.analysisService.GetStatus(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToStatusResponse(record))
}

// taskToStatusResponse converts a domain.AnalysisTask to an AnalysisStatusResponse
func taskToStatusResponse(record *domain.AnalysisTask) AnalysisStatusResponse {
	return AnalysisStatusResponse{
		TaskID:      record.ID.String(),
		Kind:        record.Kind,
		Status:      string(record.Status),
		Result:      record.Result,
		Error:       record.Error,
		CreatedAt:   record.CreatedAt,
		CompletedAt: record.CompletedAt,
	}
}
