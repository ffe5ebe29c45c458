package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_prediction_store.go -package=mocks diabetes-ai/internal/storage PredictionStore

import (
	"context"
	"database/sql"
	"fmt"
	"math"
)

// DefaultHistoryLimit caps History when no limit is given.
const DefaultHistoryLimit = 50

// PredictionStore defines the interface for prediction history operations.
type PredictionStore interface {
	// Save stores p and fills in its ID and CreatedAt.
	Save(ctx context.Context, p *Prediction) error
	// History returns up to limit predictions for a patient, newest first.
	History(ctx context.Context, patientID int64, limit int) ([]Prediction, error)
	// Statistics aggregates every prediction of a patient.
	Statistics(ctx context.Context, patientID int64) (PatientStatistics, error)
}

// PredictionRepo implements PredictionStore on SQLite.
type PredictionRepo struct {
	db *sql.DB
}

// NewPredictionRepo creates a new PredictionRepo.
func NewPredictionRepo(db *sql.DB) *PredictionRepo {
	return &PredictionRepo{db: db}
}

const predictionColumns = "id, patient_id, exercise_minutes, carbohydrates, protein, fats, glucose, predicted_dose, user_input, created_at"

// Save inserts a prediction. The patient must exist.
func (r *PredictionRepo) Save(ctx context.Context, p *Prediction) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO predictions
		 (patient_id, exercise_minutes, carbohydrates, protein, fats, glucose, predicted_dose, user_input)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.PatientID, p.ExerciseMinutes, p.Carbohydrates, p.Protein, p.Fats, p.Glucose, p.PredictedDose, p.UserInput,
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read prediction id: %w", err)
	}

	var createdAt string
	if err := r.db.QueryRowContext(ctx, "SELECT created_at FROM predictions WHERE id = ?", id).Scan(&createdAt); err != nil {
		return fmt.Errorf("failed to read prediction: %w", err)
	}
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return err
	}
	p.ID = id
	return nil
}

// History returns the latest predictions of a patient. A non-positive limit
// means DefaultHistoryLimit.
func (r *PredictionRepo) History(ctx context.Context, patientID int64, limit int) ([]Prediction, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+predictionColumns+" FROM predictions WHERE patient_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		patientID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	history := []Prediction{}
	for rows.Next() {
		var (
			p         Prediction
			input     sql.NullString
			createdAt string
			values    [6]sql.NullFloat64
		)
		if err := rows.Scan(&p.ID, &p.PatientID,
			&values[0], &values[1], &values[2], &values[3], &values[4], &values[5],
			&input, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan prediction: %w", err)
		}
		p.ExerciseMinutes = values[0].Float64
		p.Carbohydrates = values[1].Float64
		p.Protein = values[2].Float64
		p.Fats = values[3].Float64
		p.Glucose = values[4].Float64
		p.PredictedDose = values[5].Float64
		p.UserInput = input.String
		if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
			return nil, err
		}
		history = append(history, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// Statistics counts a patient's predictions and averages their values.
// A patient without predictions gets zeros.
func (r *PredictionRepo) Statistics(ctx context.Context, patientID int64) (PatientStatistics, error) {
	var (
		stats                             PatientStatistics
		glucose, doseAvg, exercise, carbs sql.NullFloat64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			AVG(CASE WHEN glucose > 0 THEN glucose END),
			AVG(predicted_dose),
			AVG(exercise_minutes),
			AVG(CASE WHEN carbohydrates > 0 THEN carbohydrates END)
		FROM predictions WHERE patient_id = ?`,
		patientID,
	).Scan(&stats.TotalPredictions, &glucose, &doseAvg, &exercise, &carbs)
	if err != nil {
		return PatientStatistics{}, fmt.Errorf("failed to compute statistics: %w", err)
	}

	stats.AvgGlucose = round1(glucose.Float64)
	stats.AvgDose = round1(doseAvg.Float64)
	stats.AvgExercise = round1(exercise.Float64)
	stats.AvgCarbohydrates = round1(carbs.Float64)
	return stats, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
