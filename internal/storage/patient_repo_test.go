package storage

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestPatientRepo_GetOrCreate(t *testing.T) {
	repo := NewPatientRepo(newTestDB(t))
	ctx := context.Background()

	created, err := repo.GetOrCreate(ctx, "ana", "ana@example.com", 42)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if created.ID == 0 || created.Name != "ana" || created.Email != "ana@example.com" || created.Age != 42 {
		t.Errorf("GetOrCreate() = %+v", created)
	}
	if created.CreatedAt.IsZero() {
		t.Error("GetOrCreate() CreatedAt not set")
	}

	again, err := repo.GetOrCreate(ctx, "ana", "other@example.com", 50)
	if err != nil {
		t.Fatalf("GetOrCreate() second call error = %v", err)
	}
	if again.ID != created.ID {
		t.Errorf("GetOrCreate() ID = %d, want %d", again.ID, created.ID)
	}
	if again.Email != "ana@example.com" || again.Age != 42 {
		t.Errorf("GetOrCreate() should keep existing details, got %+v", again)
	}
}

func TestPatientRepo_GetOrCreate_OptionalFields(t *testing.T) {
	repo := NewPatientRepo(newTestDB(t))

	p, err := repo.GetOrCreate(context.Background(), "luis", "", 0)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if p.Email != "" || p.Age != 0 {
		t.Errorf("GetOrCreate() = %+v, want empty email and age", p)
	}
}

func TestPatientRepo_GetOrCreate_Concurrent(t *testing.T) {
	repo := NewPatientRepo(newTestDB(t))

	var wg sync.WaitGroup
	ids := make([]int64, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := repo.GetOrCreate(context.Background(), "marta", "", 0)
			errs[i] = err
			if p != nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		if errs[i] != nil {
			t.Fatalf("GetOrCreate() error = %v", errs[i])
		}
		if ids[i] != ids[0] {
			t.Errorf("GetOrCreate() ids differ: %v", ids)
		}
	}
}

func TestPatientRepo_GetByName(t *testing.T) {
	repo := NewPatientRepo(newTestDB(t))
	ctx := context.Background()

	if _, err := repo.GetOrCreate(ctx, "ana", "", 0); err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}

	tests := []struct {
		name    string
		lookup  string
		wantErr error
	}{
		{name: "existing", lookup: "ana"},
		{name: "missing", lookup: "pedro", wantErr: ErrNotFound},
		{name: "case sensitive", lookup: "Ana", wantErr: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := repo.GetByName(ctx, tt.lookup)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByName() error = %v, want %v", err, tt.wantErr)
				}
				if p != nil {
					t.Errorf("GetByName() = %+v, want nil", p)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByName() error = %v", err)
			}
			if p.Name != tt.lookup {
				t.Errorf("GetByName() name = %q, want %q", p.Name, tt.lookup)
			}
		})
	}
}

func TestPatientRepo_ListAll(t *testing.T) {
	repo := NewPatientRepo(newTestDB(t))
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("ListAll() = %v, want empty slice", empty)
	}

	for i := 0; i < 3; i++ {
		if _, err := repo.GetOrCreate(ctx, fmt.Sprintf("p%d", i), "", 0); err != nil {
			t.Fatalf("GetOrCreate() error = %v", err)
		}
	}

	patients, err := repo.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll() error = %v", err)
	}
	if len(patients) != 3 {
		t.Fatalf("ListAll() len = %d, want 3", len(patients))
	}
	// Same-second inserts fall back to id order, newest first.
	if patients[0].Name != "p2" || patients[2].Name != "p0" {
		t.Errorf("ListAll() order = %s, %s, %s", patients[0].Name, patients[1].Name, patients[2].Name)
	}
}
