package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/service"
	"diabetes-ai/internal/storage"
)

// PatientHandler serves patient records and their prediction history.
type PatientHandler struct {
	patients service.PatientService
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(patients service.PatientService) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// AddPatientRequest represents the HTTP request payload for patient creation.
type AddPatientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Age   int    `json:"age,omitempty"`
}

// SavePredictionRequest represents the HTTP request payload for storing a
// prediction.
type SavePredictionRequest struct {
	PatientName string `json:"patient_name"`
	dose.Features
	PredictedDose float64 `json:"predicted_dose"`
	UserInput     string  `json:"user_input,omitempty"`
}

// PatientListResponse lists patients.
type PatientListResponse struct {
	Count    int               `json:"count"`
	Patients []storage.Patient `json:"patients"`
}

// HistoryResponse lists a patient's predictions, newest first.
type HistoryResponse struct {
	Patient     string               `json:"patient"`
	Count       int                  `json:"count"`
	Predictions []storage.Prediction `json:"predictions"`
}

// Create handles POST /api/patients.
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req AddPatientRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.patients.AddPatient(ctx, service.AddPatientRequest{
		Name:  req.Name,
		Email: req.Email,
		Age:   req.Age,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to add patient")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, p)
}

// List handles GET /api/patients.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	patients, err := h.patients.ListPatients(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list patients")
		return
	}
	if patients == nil {
		patients = []storage.Patient{}
	}
	writeJSON(ctx, w, http.StatusOK, PatientListResponse{Count: len(patients), Patients: patients})
}

// Get handles GET /api/patients/{name}.
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	p, err := h.patients.GetPatient(ctx, chi.URLParam(r, "name"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get patient")
		return
	}
	writeJSON(ctx, w, http.StatusOK, p)
}

// History handles GET /api/patients/{name}/history?limit=N.
func (h *PatientHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := intQuery(r, "limit", storage.DefaultHistoryLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	name := chi.URLParam(r, "name")

	history, err := h.patients.History(ctx, name, limit)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get history")
		return
	}
	if history == nil {
		history = []storage.Prediction{}
	}
	writeJSON(ctx, w, http.StatusOK, HistoryResponse{Patient: name, Count: len(history), Predictions: history})
}

// Statistics handles GET /api/patients/{name}/statistics.
func (h *PatientHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := h.patients.Statistics(ctx, chi.URLParam(r, "name"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get statistics")
		return
	}
	writeJSON(ctx, w, http.StatusOK, stats)
}

// SavePrediction handles POST /api/predictions.
func (h *PatientHandler) SavePrediction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SavePredictionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := h.patients.SavePrediction(ctx, service.SavePredictionRequest{
		PatientName:   req.PatientName,
		Features:      req.Features,
		PredictedDose: req.PredictedDose,
		UserInput:     req.UserInput,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to save prediction")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, p)
}
