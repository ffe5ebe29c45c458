package dose

import (
	"errors"
	"math"
	"testing"
)

func TestRulePredictor_Predict(t *testing.T) {
	tests := []struct {
		name     string
		features Features
		want     float64
	}{
		{
			name:     "carbs only",
			features: Features{Carbohydrates: 60, Glucose: 100},
			want:     4.0,
		},
		{
			name:     "glucose correction",
			features: Features{Carbohydrates: 45, Glucose: 140},
			want:     5.0,
		},
		{
			name:     "exercise reduces dose",
			features: Features{ExerciseMinutes: 60, Carbohydrates: 90, Glucose: 100},
			want:     5.0,
		},
		{
			name:     "scenario reading",
			features: Features{ExerciseMinutes: 30, Carbohydrates: 45, Protein: 4, Fats: 0.5, Glucose: 140},
			want:     4.5,
		},
		{
			name:     "floor",
			features: Features{ExerciseMinutes: 120, Glucose: 80},
			want:     MinDose,
		},
		{
			name:     "ceiling",
			features: Features{Carbohydrates: 400, Glucose: 400},
			want:     MaxDose,
		},
		{
			name:     "rounded to one decimal",
			features: Features{Carbohydrates: 50, Glucose: 100},
			want:     3.3,
		},
	}

	var p RulePredictor
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Predict(tt.features)
			if err != nil {
				t.Fatalf("Predict() error = %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Predict() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRulePredictor_InvalidFeatures(t *testing.T) {
	tests := []struct {
		name     string
		features Features
	}{
		{name: "negative carbs", features: Features{Carbohydrates: -1}},
		{name: "NaN glucose", features: Features{Glucose: math.NaN()}},
		{name: "infinite exercise", features: Features{ExerciseMinutes: math.Inf(1)}},
	}

	var p RulePredictor
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Predict(tt.features)
			if !errors.Is(err, ErrInvalidFeatures) {
				t.Errorf("Predict() error = %v, want ErrInvalidFeatures", err)
			}
		})
	}
}

func TestFormatRange(t *testing.T) {
	tests := []struct {
		dose float64
		want string
	}{
		{dose: 4.5, want: "3.5 - 5.5"},
		{dose: 2, want: "2.0 - 3.0"},
		{dose: 25, want: "24.0 - 25.0"},
	}

	for _, tt := range tests {
		if got := FormatRange(tt.dose); got != tt.want {
			t.Errorf("FormatRange(%v) = %q, want %q", tt.dose, got, tt.want)
		}
	}
}

func TestFactors(t *testing.T) {
	got := Factors(Features{ExerciseMinutes: 90, Carbohydrates: 45, Glucose: 130})
	want := []string{
		"✓ Ejercicio importante: 90.0 min (reduce necesidad de insulina)",
		"✓ Carbohidratos: 45.0g",
		"⚠ Glucosa un poco alta: 130.0 mg/dl",
	}
	assertLines(t, got, want)

	got = Factors(Features{ExerciseMinutes: 10, Carbohydrates: 100, Glucose: 200})
	want = []string{
		"⚠ Poco ejercicio: 10.0 min",
		"⚠ Alto consumo de carbohidratos: 100.0g",
		"⚠ Glucosa elevada: 200.0 mg/dl - aumenta necesidad de insulina",
	}
	assertLines(t, got, want)
}

func TestAnalysis(t *testing.T) {
	got := Analysis(Features{Glucose: 0})
	assertLines(t, got, []string{"Sin ejercicio registrado"})

	got = Analysis(Features{ExerciseMinutes: 22.5, Carbohydrates: 7.5, Glucose: 95})
	assertLines(t, got, []string{
		"Poco ejercicio: 22.5 min",
		"Carbohidratos: 7.5g",
		"Glucosa en rango: 95.0 mg/dl",
	})

	got = Analysis(Features{ExerciseMinutes: 45, Carbohydrates: 120, Glucose: 180})
	assertLines(t, got, []string{
		"Ejercicio moderado: 45.0 min",
		"Alto consumo de carbohidratos: 120.0g",
		"Glucosa elevada: 180.0 mg/dl - aumenta necesidad de insulina",
	})
}

func assertLines(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d lines %q", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// referencePatterns are the base readings the dose model was historically
// trained on, each jittered by up to ±variation per feature.
var referencePatterns = []struct {
	features Features
	want     float64
}{
	{Features{ExerciseMinutes: 30, Carbohydrates: 45, Protein: 12, Fats: 5, Glucose: 110}, 3.0},
	{Features{ExerciseMinutes: 45, Carbohydrates: 55, Protein: 15, Fats: 7, Glucose: 120}, 3.9},
	{Features{ExerciseMinutes: 60, Carbohydrates: 65, Protein: 18, Fats: 10, Glucose: 130}, 4.8},
	{Features{ExerciseMinutes: 75, Carbohydrates: 75, Protein: 20, Fats: 12, Glucose: 145}, 6.0},
	{Features{ExerciseMinutes: 90, Carbohydrates: 85, Protein: 22, Fats: 14, Glucose: 160}, 7.2},
	{Features{ExerciseMinutes: 15, Carbohydrates: 95, Protein: 25, Fats: 16, Glucose: 180}, 10.1},
	{Features{ExerciseMinutes: 120, Carbohydrates: 50, Protein: 10, Fats: 5, Glucose: 100}, MinDose},
	{Features{ExerciseMinutes: 0, Carbohydrates: 100, Protein: 30, Fats: 20, Glucose: 200}, 11.7},
}

var variation = Features{ExerciseMinutes: 10, Carbohydrates: 15, Protein: 5, Fats: 3, Glucose: 20}

func TestRulePredictor_ReferencePatterns(t *testing.T) {
	var p RulePredictor
	for _, tt := range referencePatterns {
		got, err := p.Predict(tt.features)
		if err != nil {
			t.Fatalf("Predict(%+v) error = %v", tt.features, err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Predict(%+v) = %v, want %v", tt.features, got, tt.want)
		}
	}
}

// Every corner of the jitter box stays inside the dose bounds and within
// the largest shift the variation allows: 1 unit of carbs, 1 of glucose
// correction, 1/6 of exercise, plus rounding.
func TestRulePredictor_ReferenceVariation(t *testing.T) {
	const maxShift = 1 + 1 + 1.0/6 + 0.1

	var p RulePredictor
	for _, tt := range referencePatterns {
		for corner := 0; corner < 1<<5; corner++ {
			f := tt.features
			shift := func(bit int, v *float64, by float64) {
				if corner&(1<<bit) != 0 {
					*v += by
				} else {
					*v = math.Max(0, *v-by)
				}
			}
			shift(0, &f.ExerciseMinutes, variation.ExerciseMinutes)
			shift(1, &f.Carbohydrates, variation.Carbohydrates)
			shift(2, &f.Protein, variation.Protein)
			shift(3, &f.Fats, variation.Fats)
			shift(4, &f.Glucose, variation.Glucose)

			got, err := p.Predict(f)
			if err != nil {
				t.Fatalf("Predict(%+v) error = %v", f, err)
			}
			if got < MinDose || got > MaxDose {
				t.Errorf("Predict(%+v) = %v, outside [%v, %v]", f, got, MinDose, MaxDose)
			}
			if math.Abs(got-tt.want) > maxShift+1e-9 {
				t.Errorf("Predict(%+v) = %v, more than %.2f from %v", f, got, maxShift, tt.want)
			}
		}
	}
}
