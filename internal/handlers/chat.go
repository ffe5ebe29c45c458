package handlers

import (
	"net/http"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/service"
)

// ChatHandler handles HTTP requests for chat.
type ChatHandler struct {
	assistant service.AssistantService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(assistant service.AssistantService) *ChatHandler {
	return &ChatHandler{assistant: assistant}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ServeHTTP handles HTTP requests for chat.
//
// POST /api/chat
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.assistant.Chat(ctx, service.ChatRequest{Message: req.Message})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to process chat request")
		return
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}
