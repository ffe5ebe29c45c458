package handlers

import (
	"net/http"
	"strings"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/corpus"
)

// CorpusInspector exposes corpus diagnostics. *corpus.Corpus implements it.
type CorpusInspector interface {
	Statistics() corpus.Statistics
	Breakdown() map[string]corpus.SourceShare
	Snapshot(sample int) corpus.Snapshot
}

// CorpusHandler serves corpus statistics and exports.
type CorpusHandler struct {
	corpus CorpusInspector
}

// NewCorpusHandler creates a new CorpusHandler.
func NewCorpusHandler(c CorpusInspector) *CorpusHandler {
	return &CorpusHandler{corpus: c}
}

// Stats handles GET /api/corpus/stats.
func (h *CorpusHandler) Stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.corpus.Statistics())
}

// Breakdown handles GET /api/corpus/breakdown.
func (h *CorpusHandler) Breakdown(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.corpus.Breakdown())
}

// Export handles GET /api/corpus/export?format=json|yaml&sample=N.
func (h *CorpusHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	sample, err := intQuery(r, "sample", corpus.DefaultSampleSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snapshot := h.corpus.Snapshot(sample)

	format := strings.ToLower(r.URL.Query().Get("format"))
	switch format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="corpus_index.json"`)
		err = snapshot.WriteJSON(w)
	case "yaml", "yml":
		w.Header().Set("Content-Type", "application/yaml")
		w.Header().Set("Content-Disposition", `attachment; filename="corpus_index.yaml"`)
		err = snapshot.WriteYAML(w)
	default:
		writeError(w, http.StatusBadRequest, "Format must be json or yaml")
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to write corpus export", "format", format, "error", err)
		return
	}
	logger.InfoContext(ctx, "corpus exported", "format", format, "entries", snapshot.TotalEntries)
}
