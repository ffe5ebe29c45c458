package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"diabetes-ai/internal/contextutil"
)

// Pinger checks a backing store. *sql.DB implements it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Counter reports how many records are loaded. *corpus.Corpus implements it.
type Counter interface {
	Len() int
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	corpus             Counter
	db                 Pinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. db may be nil when
// persistence is disabled.
func NewHealthHandler(corpus Counter, db Pinger) *HealthHandler {
	return &HealthHandler{
		corpus:             corpus,
		db:                 db,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	// Overall health status: "healthy", "degraded", or "unhealthy"
	Status string `json:"status"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Number of records in the unified corpus
	CorpusRecords int `json:"corpus_records"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is degraded or unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP reports the corpus size and database reachability.
//
// An empty corpus is degraded, not unhealthy: built-in topics and the
// auxiliary tables still answer. An unreachable database is unhealthy.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
	defer cancel()

	checks := make(map[string]string)
	var issues []string
	status := "healthy"
	httpStatus := http.StatusOK

	records := h.corpus.Len()
	if records > 0 {
		checks["corpus"] = "ok"
	} else {
		checks["corpus"] = "empty"
		issues = append(issues, "corpus_empty")
		status = "degraded"
	}

	switch {
	case h.db == nil:
		checks["database"] = "disabled"
	case h.checkDatabase(checkCtx, logger):
		checks["database"] = "ok"
	default:
		checks["database"] = "error"
		issues = append(issues, "database_unavailable")
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(ctx, w, httpStatus, HealthResponse{
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		CorpusRecords: records,
		Checks:        checks,
		Issues:        issues,
	})
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *slog.Logger) bool {
	if err := h.db.PingContext(ctx); err != nil {
		logger.WarnContext(ctx, "database health check failed", "error", err)
		return false
	}
	return true
}
