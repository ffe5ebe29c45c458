package storage

import (
	"context"
	"testing"
)

func newTestPatient(t *testing.T, repo *PatientRepo, name string) *Patient {
	t.Helper()
	p, err := repo.GetOrCreate(context.Background(), name, "", 0)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	return p
}

func TestPredictionRepo_Save(t *testing.T) {
	db := newTestDB(t)
	patient := newTestPatient(t, NewPatientRepo(db), "ana")
	repo := NewPredictionRepo(db)

	p := &Prediction{
		PatientID:       patient.ID,
		ExerciseMinutes: 30,
		Carbohydrates:   45,
		Protein:         4,
		Fats:            0.5,
		Glucose:         140,
		PredictedDose:   4.5,
		UserInput:       "comí arroz",
	}
	if err := repo.Save(context.Background(), p); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if p.ID == 0 {
		t.Error("Save() did not set ID")
	}
	if p.CreatedAt.IsZero() {
		t.Error("Save() did not set CreatedAt")
	}

	history, err := repo.History(context.Background(), patient.ID, 0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("History() len = %d, want 1", len(history))
	}
	got := history[0]
	if got.ID != p.ID || got.Glucose != 140 || got.PredictedDose != 4.5 || got.UserInput != "comí arroz" {
		t.Errorf("History()[0] = %+v", got)
	}
}

func TestPredictionRepo_Save_UnknownPatient(t *testing.T) {
	repo := NewPredictionRepo(newTestDB(t))

	err := repo.Save(context.Background(), &Prediction{PatientID: 999})
	if err == nil {
		t.Error("Save() expected foreign key error")
	}
}

func TestPredictionRepo_History(t *testing.T) {
	db := newTestDB(t)
	patients := NewPatientRepo(db)
	ana := newTestPatient(t, patients, "ana")
	luis := newTestPatient(t, patients, "luis")
	repo := NewPredictionRepo(db)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		if err := repo.Save(ctx, &Prediction{PatientID: ana.ID, PredictedDose: float64(i)}); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}
	if err := repo.Save(ctx, &Prediction{PatientID: luis.ID, PredictedDose: 9}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	tests := []struct {
		name      string
		patientID int64
		limit     int
		wantDoses []float64
	}{
		{name: "newest first", patientID: ana.ID, limit: 0, wantDoses: []float64{5, 4, 3, 2, 1}},
		{name: "limit", patientID: ana.ID, limit: 2, wantDoses: []float64{5, 4}},
		{name: "other patient", patientID: luis.ID, limit: 10, wantDoses: []float64{9}},
		{name: "no history", patientID: 12345, limit: 10, wantDoses: []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history, err := repo.History(ctx, tt.patientID, tt.limit)
			if err != nil {
				t.Fatalf("History() error = %v", err)
			}
			if history == nil {
				t.Fatal("History() returned nil slice")
			}
			if len(history) != len(tt.wantDoses) {
				t.Fatalf("History() len = %d, want %d", len(history), len(tt.wantDoses))
			}
			for i, want := range tt.wantDoses {
				if history[i].PredictedDose != want {
					t.Errorf("History()[%d].PredictedDose = %v, want %v", i, history[i].PredictedDose, want)
				}
			}
		})
	}
}

func TestPredictionRepo_Statistics(t *testing.T) {
	db := newTestDB(t)
	patient := newTestPatient(t, NewPatientRepo(db), "ana")
	repo := NewPredictionRepo(db)
	ctx := context.Background()

	empty, err := repo.Statistics(ctx, patient.ID)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	if empty != (PatientStatistics{}) {
		t.Errorf("Statistics() = %+v, want zeros", empty)
	}

	readings := []Prediction{
		{ExerciseMinutes: 30, Carbohydrates: 45, Glucose: 140, PredictedDose: 4.5},
		{ExerciseMinutes: 0, Carbohydrates: 0, Glucose: 0, PredictedDose: 2},
		{ExerciseMinutes: 60, Carbohydrates: 100, Glucose: 181, PredictedDose: 9.1},
	}
	for i := range readings {
		readings[i].PatientID = patient.ID
		if err := repo.Save(ctx, &readings[i]); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
	}

	got, err := repo.Statistics(ctx, patient.ID)
	if err != nil {
		t.Fatalf("Statistics() error = %v", err)
	}
	want := PatientStatistics{
		TotalPredictions: 3,
		AvgGlucose:       160.5,
		AvgDose:          5.2,
		AvgExercise:      30,
		AvgCarbohydrates: 72.5,
	}
	if got != want {
		t.Errorf("Statistics() = %+v, want %+v", got, want)
	}
}
