// Package dose estimates an insulin dose from a day's exercise, meal and
// glucose reading.
package dose

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_predictor.go -package=mocks diabetes-ai/internal/dose Predictor

import (
	"errors"
	"fmt"
	"math"
)

// Dose bounds in insulin units.
const (
	MinDose = 2.0
	MaxDose = 25.0
)

// ErrInvalidFeatures is returned for negative or non-finite inputs.
var ErrInvalidFeatures = errors.New("invalid features")

// Features are the predictor inputs.
type Features struct {
	ExerciseMinutes float64 `json:"exercise_minutes"`
	Carbohydrates   float64 `json:"carbohydrates"`
	Protein         float64 `json:"protein"`
	Fats            float64 `json:"fats"`
	Glucose         float64 `json:"glucose"`
}

// Validate reports the first field that is negative or not a finite number.
func (f Features) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"exercise_minutes", f.ExerciseMinutes},
		{"carbohydrates", f.Carbohydrates},
		{"protein", f.Protein},
		{"fats", f.Fats},
		{"glucose", f.Glucose},
	}
	for _, fl := range fields {
		if math.IsNaN(fl.value) || math.IsInf(fl.value, 0) || fl.value < 0 {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidFeatures, fl.name)
		}
	}
	return nil
}

// Predictor estimates a dose in units.
type Predictor interface {
	Predict(f Features) (float64, error)
}

// RulePredictor applies the carbohydrate ratio, glucose correction and
// exercise reduction rules:
//
//	carbs/15 + 2*max(0, (glucose-100)/40) - 0.5*(exercise/30)
//
// clamped to [MinDose, MaxDose] and rounded to one decimal.
type RulePredictor struct{}

// Predict implements Predictor.
func (RulePredictor) Predict(f Features) (float64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	carbRatio := f.Carbohydrates / 15
	correction := math.Max(0, (f.Glucose-100)/40)
	exercise := f.ExerciseMinutes / 30

	d := carbRatio + 2*correction - 0.5*exercise
	return Clamp(math.Round(d*10) / 10), nil
}

// Clamp bounds d to [MinDose, MaxDose].
func Clamp(d float64) float64 {
	return math.Max(MinDose, math.Min(MaxDose, d))
}

// Range returns the ±1 unit band around d, kept inside the dose bounds.
func Range(d float64) (low, high float64) {
	return math.Max(MinDose, d-1), math.Min(MaxDose, d+1)
}

// FormatRange renders Range(d) as "low - high".
func FormatRange(d float64) string {
	low, high := Range(d)
	return fmt.Sprintf("%.1f - %.1f", low, high)
}
