package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"diabetes-ai/internal/handlers"
	"diabetes-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Assistant service.AssistantService
	Patients  service.PatientService
	Search    handlers.Searcher
	Corpus    interface {
		handlers.CorpusInspector
		handlers.Counter
	}
	Medical handlers.MedicalReference
	// DB is optional; health reports the database as disabled when nil.
	DB handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	corpusHandler := handlers.NewCorpusHandler(deps.Corpus)
	searchHandler := handlers.NewSearchHandler(deps.Search)
	medicalHandler := handlers.NewMedicalHandler(deps.Medical)
	patientHandler := handlers.NewPatientHandler(deps.Patients)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/ask", handlers.NewAskHandler(deps.Assistant))
		r.Method(http.MethodPost, "/parse", handlers.NewParseHandler(deps.Assistant))
		r.Method(http.MethodPost, "/predict", handlers.NewPredictHandler(deps.Assistant))
		r.Method(http.MethodPost, "/chat", handlers.NewChatHandler(deps.Assistant))
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Corpus, deps.DB))

		r.Post("/search", searchHandler.Search)
		r.Post("/search/keywords", searchHandler.Keywords)

		r.Route("/corpus", func(r chi.Router) {
			r.Get("/stats", corpusHandler.Stats)
			r.Get("/breakdown", corpusHandler.Breakdown)
			r.Get("/export", corpusHandler.Export)
		})

		r.Route("/medical", func(r chi.Router) {
			r.Post("/search", medicalHandler.Search)
			r.Get("/medication", medicalHandler.Medication)
			r.Get("/concept", medicalHandler.Concept)
			r.Post("/enhance", medicalHandler.Enhance)
			r.Get("/rules", medicalHandler.Rules)
		})

		r.Route("/patients", func(r chi.Router) {
			r.Post("/", patientHandler.Create)
			r.Get("/", patientHandler.List)
			r.Get("/{name}", patientHandler.Get)
			r.Get("/{name}/history", patientHandler.History)
			r.Get("/{name}/statistics", patientHandler.Statistics)
		})
		r.Post("/predictions", patientHandler.SavePrediction)
	})

	return r
}
