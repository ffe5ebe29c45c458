package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/service"
	"diabetes-ai/internal/service/mocks"
	"diabetes-ai/internal/storage"

	"go.uber.org/mock/gomock"
)

// withName attaches a chi route parameter to req.
func withName(req *http.Request, name string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("name", name)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestPatientHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPatients := mocks.NewMockPatientService(ctrl)
	handler := NewPatientHandler(mockPatients)

	mockPatients.EXPECT().
		AddPatient(gomock.Any(), service.AddPatientRequest{Name: "ana", Email: "ana@example.com", Age: 41}).
		Return(&storage.Patient{ID: 1, Name: "ana", Email: "ana@example.com", Age: 41}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/patients", jsonBody(t, AddPatientRequest{Name: "ana", Email: "ana@example.com", Age: 41}))
	w := httptest.NewRecorder()
	handler.Create(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Create() status = %v, want 201", w.Code)
	}
	var p storage.Patient
	if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if p.ID != 1 || p.Name != "ana" {
		t.Errorf("Create() = %+v", p)
	}
}

func TestPatientHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		mockSetup  func(*mocks.MockPatientService)
		wantStatus int
	}{
		{
			name: "found",
			mockSetup: func(m *mocks.MockPatientService) {
				m.EXPECT().GetPatient(gomock.Any(), "ana").Return(&storage.Patient{ID: 1, Name: "ana"}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			mockSetup: func(m *mocks.MockPatientService) {
				m.EXPECT().GetPatient(gomock.Any(), "ana").Return(nil, service.WrapError(service.ErrNotFound, "patient ana"))
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "storage failure",
			mockSetup: func(m *mocks.MockPatientService) {
				m.EXPECT().GetPatient(gomock.Any(), "ana").Return(nil, errors.Join(service.ErrStorage, errors.New("locked")))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPatients := mocks.NewMockPatientService(ctrl)
			tt.mockSetup(mockPatients)
			handler := NewPatientHandler(mockPatients)

			req := withName(httptest.NewRequest(http.MethodGet, "/api/patients/ana", http.NoBody), "ana")
			w := httptest.NewRecorder()
			handler.Get(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Get() status = %v, want %v", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestPatientHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPatients := mocks.NewMockPatientService(ctrl)
	handler := NewPatientHandler(mockPatients)
	mockPatients.EXPECT().ListPatients(gomock.Any()).Return(nil, nil)

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/patients", http.NoBody))

	var resp PatientListResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Count != 0 || resp.Patients == nil {
		t.Errorf("List() = %+v, want empty non-nil list", resp)
	}
}

func TestPatientHandler_History(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name       string
		query      string
		mockSetup  func(*mocks.MockPatientService)
		wantStatus int
		wantCount  int
	}{
		{
			name:  "default limit",
			query: "",
			mockSetup: func(m *mocks.MockPatientService) {
				m.EXPECT().History(gomock.Any(), "ana", storage.DefaultHistoryLimit).
					Return([]storage.Prediction{{ID: 2}, {ID: 1}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  2,
		},
		{
			name:  "explicit limit",
			query: "?limit=1",
			mockSetup: func(m *mocks.MockPatientService) {
				m.EXPECT().History(gomock.Any(), "ana", 1).Return([]storage.Prediction{{ID: 2}}, nil)
			},
			wantStatus: http.StatusOK,
			wantCount:  1,
		},
		{
			name:       "invalid limit",
			query:      "?limit=abc",
			mockSetup:  func(m *mocks.MockPatientService) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPatients := mocks.NewMockPatientService(ctrl)
			tt.mockSetup(mockPatients)
			handler := NewPatientHandler(mockPatients)

			req := withName(httptest.NewRequest(http.MethodGet, "/api/patients/ana/history"+tt.query, http.NoBody), "ana")
			w := httptest.NewRecorder()
			handler.History(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("History() status = %v, want %v", w.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			var resp HistoryResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.Count != tt.wantCount || resp.Patient != "ana" {
				t.Errorf("History() = %+v", resp)
			}
		})
	}
}

func TestPatientHandler_Statistics(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPatients := mocks.NewMockPatientService(ctrl)
	handler := NewPatientHandler(mockPatients)
	mockPatients.EXPECT().Statistics(gomock.Any(), "ana").Return(service.PatientStatisticsResponse{
		Patient:    storage.Patient{ID: 1, Name: "ana"},
		Statistics: storage.PatientStatistics{TotalPredictions: 3, AvgDose: 5.2},
	}, nil)

	req := withName(httptest.NewRequest(http.MethodGet, "/api/patients/ana/statistics", http.NoBody), "ana")
	w := httptest.NewRecorder()
	handler.Statistics(w, req)

	var resp service.PatientStatisticsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Statistics.TotalPredictions != 3 || resp.Statistics.AvgDose != 5.2 {
		t.Errorf("Statistics() = %+v", resp)
	}
}

func TestPatientHandler_SavePrediction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockPatients := mocks.NewMockPatientService(ctrl)
	handler := NewPatientHandler(mockPatients)

	mockPatients.EXPECT().
		SavePrediction(gomock.Any(), service.SavePredictionRequest{
			PatientName:   "ana",
			Features:      dose.Features{ExerciseMinutes: 30, Carbohydrates: 45, Glucose: 140},
			PredictedDose: 4.5,
			UserInput:     "comí arroz",
		}).
		Return(&storage.Prediction{ID: 5, PatientID: 1, PredictedDose: 4.5}, nil)

	body := `{"patient_name":"ana","exercise_minutes":30,"carbohydrates":45,"glucose":140,"predicted_dose":4.5,"user_input":"comí arroz"}`
	req := httptest.NewRequest(http.MethodPost, "/api/predictions", jsonBody(t, body))
	w := httptest.NewRecorder()
	handler.SavePrediction(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("SavePrediction() status = %v, want 201", w.Code)
	}
}
