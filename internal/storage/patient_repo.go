package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_patient_store.go -package=mocks diabetes-ai/internal/storage PatientStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// PatientStore defines the interface for patient storage operations.
type PatientStore interface {
	// GetOrCreate returns the patient called name, creating it when missing.
	// Email and age are only used on creation.
	GetOrCreate(ctx context.Context, name, email string, age int) (*Patient, error)
	// GetByName returns ErrNotFound when no patient has that name.
	GetByName(ctx context.Context, name string) (*Patient, error)
	// ListAll returns every patient, most recently updated first.
	ListAll(ctx context.Context) ([]Patient, error)
}

// PatientRepo implements PatientStore on SQLite.
type PatientRepo struct {
	db *sql.DB
}

// NewPatientRepo creates a new PatientRepo.
func NewPatientRepo(db *sql.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

const patientColumns = "id, name, email, age, created_at, updated_at"

// GetOrCreate inserts the patient unless the name is already taken, then
// reads it back. Concurrent callers with the same name get the same row.
func (r *PatientRepo) GetOrCreate(ctx context.Context, name, email string, age int) (*Patient, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO patients (name, email, age) VALUES (?, ?, ?)
		 ON CONFLICT (name) DO NOTHING`,
		name, nullString(email), nullInt(age),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert patient: %w", err)
	}
	return r.GetByName(ctx, name)
}

// GetByName gets a patient by name.
// Returns nil and ErrNotFound if not found.
func (r *PatientRepo) GetByName(ctx context.Context, name string) (*Patient, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+patientColumns+" FROM patients WHERE name = ?", name)

	p, err := scanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query patient: %w", err)
	}
	return p, nil
}

// ListAll returns all patients ordered by updated_at, newest first.
func (r *PatientRepo) ListAll(ctx context.Context) ([]Patient, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+patientColumns+" FROM patients ORDER BY updated_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	defer rows.Close()

	patients := []Patient{}
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan patient: %w", err)
		}
		patients = append(patients, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return patients, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPatient(s scanner) (*Patient, error) {
	var (
		p                    Patient
		email                sql.NullString
		age                  sql.NullInt64
		createdAt, updatedAt string
	)
	if err := s.Scan(&p.ID, &p.Name, &email, &age, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	p.Email = email.String
	p.Age = int(age.Int64)

	var err error
	if p.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n > 0}
}
