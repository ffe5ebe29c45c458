package storage

import "time"

// Patient is a person whose predictions are tracked.
type Patient struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"` // empty when unknown
	Age       int       `json:"age,omitempty"`   // 0 when unknown
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Prediction is one dose estimate with the inputs it was made from.
type Prediction struct {
	ID              int64     `json:"id"`
	PatientID       int64     `json:"patient_id"`
	ExerciseMinutes float64   `json:"exercise_minutes"`
	Carbohydrates   float64   `json:"carbohydrates"`
	Protein         float64   `json:"protein"`
	Fats            float64   `json:"fats"`
	Glucose         float64   `json:"glucose"`
	PredictedDose   float64   `json:"predicted_dose"`
	UserInput       string    `json:"user_input"`
	CreatedAt       time.Time `json:"created_at"`
}

// PatientStatistics aggregates a patient's predictions. Averages are rounded
// to one decimal; glucose and carbohydrate averages skip zero readings.
type PatientStatistics struct {
	TotalPredictions int     `json:"total_predictions"`
	AvgGlucose       float64 `json:"avg_glucose"`
	AvgDose          float64 `json:"avg_dose"`
	AvgExercise      float64 `json:"avg_exercise"`
	AvgCarbohydrates float64 `json:"avg_carbohydrates"`
}
