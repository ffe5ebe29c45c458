package handlers

import (
	"context"
	"net/http"
	"strings"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/search"
)

// maxTopK bounds user-provided result counts.
const maxTopK = 50

// Searcher ranks corpus records. *search.Engine implements it.
type Searcher interface {
	Search(ctx context.Context, query string, threshold float64, topK int) []search.Result
	SearchByKeywords(keywords []string, topK int) []search.Result
}

// SearchHandler serves similarity and keyword search over the corpus.
type SearchHandler struct {
	searcher Searcher
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searcher Searcher) *SearchHandler {
	return &SearchHandler{searcher: searcher}
}

// SearchRequest represents the HTTP request payload for similarity search.
type SearchRequest struct {
	Query     string   `json:"query"`
	Threshold *float64 `json:"threshold,omitempty"`
	TopK      int      `json:"top_k,omitempty"`
}

// KeywordSearchRequest represents the HTTP request payload for keyword search.
type KeywordSearchRequest struct {
	Keywords []string `json:"keywords"`
	TopK     int      `json:"top_k,omitempty"`
}

// SearchResponse lists ranked records.
type SearchResponse struct {
	Query   string          `json:"query,omitempty"`
	Count   int             `json:"count"`
	Results []search.Result `json:"results"`
}

func clampTopK(k, def int) int {
	if k <= 0 {
		return def
	}
	return min(k, maxTopK)
}

// Search handles POST /api/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req SearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		logger.WarnContext(ctx, "empty query in search request")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}
	threshold := search.DefaultThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
		if threshold < 0 || threshold > 1 {
			writeError(w, http.StatusBadRequest, "Threshold must be between 0 and 1")
			return
		}
	}

	results := h.searcher.Search(ctx, req.Query, threshold, clampTopK(req.TopK, search.DefaultTopK))
	if results == nil {
		results = []search.Result{}
	}
	logger.InfoContext(ctx, "search completed", "results", len(results), "threshold", threshold)
	writeJSON(ctx, w, http.StatusOK, SearchResponse{Query: req.Query, Count: len(results), Results: results})
}

// Keywords handles POST /api/search/keywords.
func (h *SearchHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req KeywordSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	keywords := make([]string, 0, len(req.Keywords))
	for _, k := range req.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	if len(keywords) == 0 {
		logger.WarnContext(ctx, "no keywords in search request")
		writeError(w, http.StatusBadRequest, "At least one keyword is required")
		return
	}

	results := h.searcher.SearchByKeywords(keywords, clampTopK(req.TopK, search.DefaultKeywordTopK))
	if results == nil {
		results = []search.Result{}
	}
	writeJSON(ctx, w, http.StatusOK, SearchResponse{Count: len(results), Results: results})
}
