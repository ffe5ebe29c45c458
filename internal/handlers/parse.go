package handlers

import (
	"net/http"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/service"
)

// ParseHandler turns a free-text description into a dose recommendation.
type ParseHandler struct {
	assistant service.AssistantService
}

// NewParseHandler creates a new ParseHandler.
func NewParseHandler(assistant service.AssistantService) *ParseHandler {
	return &ParseHandler{assistant: assistant}
}

// ParseRequest represents the HTTP request payload for parsing.
type ParseRequest struct {
	Description string `json:"description"`
	PatientName string `json:"patient_name,omitempty"`
	PatientAge  int    `json:"patient_age,omitempty"`
}

// ServeHTTP handles POST /api/parse.
func (h *ParseHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ParseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.assistant.Parse(ctx, service.ParseRequest{
		Description: req.Description,
		PatientName: req.PatientName,
		PatientAge:  req.PatientAge,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process description")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// PredictHandler estimates a dose from explicit values.
type PredictHandler struct {
	assistant service.AssistantService
}

// NewPredictHandler creates a new PredictHandler.
func NewPredictHandler(assistant service.AssistantService) *PredictHandler {
	return &PredictHandler{assistant: assistant}
}

// ServeHTTP handles POST /api/predict. The body is a dose.Features object.
func (h *PredictHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req dose.Features
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.assistant.Predict(ctx, req)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to predict dose")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
