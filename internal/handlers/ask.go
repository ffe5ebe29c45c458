package handlers

import (
	"net/http"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/service"
)

// AskHandler handles HTTP requests for knowledge base questions.
type AskHandler struct {
	assistant service.AssistantService
}

// NewAskHandler creates a new AskHandler.
func NewAskHandler(assistant service.AssistantService) *AskHandler {
	return &AskHandler{assistant: assistant}
}

// AskRequest represents the HTTP request payload for questions.
type AskRequest struct {
	Question string `json:"question"`
	// Threshold is optional; zero uses the server default.
	Threshold float64 `json:"threshold,omitempty"`
}

// ServeHTTP answers a question from the built-in topics, the corpus and the
// auxiliary tables.
//
// POST /api/ask
func (h *AskHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.assistant.Ask(ctx, service.AskRequest{
		Question:  req.Question,
		Threshold: req.Threshold,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to answer question")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
