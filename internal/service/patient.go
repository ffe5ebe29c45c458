package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_patient_service.go -package=mocks -mock_names=PatientService=MockPatientService diabetes-ai/internal/service PatientService

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/storage"
)

// AddPatientRequest registers a patient.
type AddPatientRequest struct {
	Name  string
	Email string
	Age   int
}

// SavePredictionRequest stores a prediction made elsewhere.
type SavePredictionRequest struct {
	PatientName   string
	Features      dose.Features
	PredictedDose float64
	UserInput     string
}

// PatientStatisticsResponse pairs a patient with its aggregates.
type PatientStatisticsResponse struct {
	Patient    storage.Patient           `json:"patient"`
	Statistics storage.PatientStatistics `json:"statistics"`
}

// PatientService manages patients and their prediction history.
type PatientService interface {
	// AddPatient registers a patient, or returns the existing one.
	AddPatient(ctx context.Context, req AddPatientRequest) (*storage.Patient, error)
	// ListPatients returns every patient, most recently updated first.
	ListPatients(ctx context.Context) ([]storage.Patient, error)
	// GetPatient returns ErrNotFound for unknown names.
	GetPatient(ctx context.Context, name string) (*storage.Patient, error)
	// History returns the latest predictions of a patient.
	History(ctx context.Context, name string, limit int) ([]storage.Prediction, error)
	// Statistics aggregates a patient's predictions.
	Statistics(ctx context.Context, name string) (PatientStatisticsResponse, error)
	// SavePrediction stores a prediction, creating the patient if needed.
	SavePrediction(ctx context.Context, req SavePredictionRequest) (*storage.Prediction, error)
}

type patientService struct {
	patients    storage.PatientStore
	predictions storage.PredictionStore
}

// NewPatientService creates a new PatientService.
func NewPatientService(patients storage.PatientStore, predictions storage.PredictionStore) PatientService {
	return &patientService{patients: patients, predictions: predictions}
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	return name, nil
}

// AddPatient registers a patient.
func (s *patientService) AddPatient(ctx context.Context, req AddPatientRequest) (*storage.Patient, error) {
	logger := contextutil.LoggerFromContext(ctx)

	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if req.Age < 0 || req.Age > 150 {
		return nil, &ValidationError{Field: "age", Message: "must be between 0 and 150"}
	}
	email := strings.TrimSpace(req.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, &ValidationError{Field: "email", Message: "is not a valid address"}
		}
	}

	p, err := s.patients.GetOrCreate(ctx, name, email, req.Age)
	if err != nil {
		logger.ErrorContext(ctx, "failed to add patient", "patient", name, "error", err)
		return nil, storageError(err, "failed to add patient")
	}

	logger.InfoContext(ctx, "patient registered", "patient_id", p.ID)
	return p, nil
}

// ListPatients returns every patient.
func (s *patientService) ListPatients(ctx context.Context) ([]storage.Patient, error) {
	patients, err := s.patients.ListAll(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list patients", "error", err)
		return nil, storageError(err, "failed to list patients")
	}
	return patients, nil
}

// GetPatient looks a patient up by name.
func (s *patientService) GetPatient(ctx context.Context, name string) (*storage.Patient, error) {
	name, err := validateName(name)
	if err != nil {
		return nil, err
	}

	p, err := s.patients.GetByName(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, WrapError(ErrNotFound, "patient "+name)
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get patient", "patient", name, "error", err)
		return nil, storageError(err, "failed to get patient")
	}
	return p, nil
}

// History returns the latest predictions of a patient.
func (s *patientService) History(ctx context.Context, name string, limit int) ([]storage.Prediction, error) {
	if limit < 0 {
		return nil, &ValidationError{Field: "limit", Message: "cannot be negative"}
	}
	p, err := s.GetPatient(ctx, name)
	if err != nil {
		return nil, err
	}

	history, err := s.predictions.History(ctx, p.ID, limit)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get history", "patient_id", p.ID, "error", err)
		return nil, storageError(err, "failed to get history")
	}
	return history, nil
}

// Statistics aggregates a patient's predictions.
func (s *patientService) Statistics(ctx context.Context, name string) (PatientStatisticsResponse, error) {
	p, err := s.GetPatient(ctx, name)
	if err != nil {
		return PatientStatisticsResponse{}, err
	}

	stats, err := s.predictions.Statistics(ctx, p.ID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to get statistics", "patient_id", p.ID, "error", err)
		return PatientStatisticsResponse{}, storageError(err, "failed to get statistics")
	}
	return PatientStatisticsResponse{Patient: *p, Statistics: stats}, nil
}

// SavePrediction stores a prediction for a patient.
func (s *patientService) SavePrediction(ctx context.Context, req SavePredictionRequest) (*storage.Prediction, error) {
	logger := contextutil.LoggerFromContext(ctx)

	name, err := validateName(req.PatientName)
	if err != nil {
		return nil, &ValidationError{Field: "patient_name", Message: "cannot be empty"}
	}
	if err := req.Features.Validate(); err != nil {
		return nil, &ValidationError{Field: "features", Message: err.Error()}
	}
	if req.PredictedDose < 0 {
		return nil, &ValidationError{Field: "predicted_dose", Message: "cannot be negative"}
	}

	p, err := s.patients.GetOrCreate(ctx, name, "", 0)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get patient", "patient", name, "error", err)
		return nil, storageError(err, "failed to get patient")
	}

	prediction := &storage.Prediction{
		PatientID:       p.ID,
		ExerciseMinutes: req.Features.ExerciseMinutes,
		Carbohydrates:   req.Features.Carbohydrates,
		Protein:         req.Features.Protein,
		Fats:            req.Features.Fats,
		Glucose:         req.Features.Glucose,
		PredictedDose:   req.PredictedDose,
		UserInput:       req.UserInput,
	}
	if err := s.predictions.Save(ctx, prediction); err != nil {
		logger.ErrorContext(ctx, "failed to save prediction", "patient_id", p.ID, "error", err)
		return nil, storageError(err, "failed to save prediction")
	}

	logger.InfoContext(ctx, "prediction saved", "patient_id", p.ID, "prediction_id", prediction.ID)
	return prediction, nil
}
