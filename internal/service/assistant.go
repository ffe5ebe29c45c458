package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_assistant_service.go -package=mocks -mock_names=AssistantService=MockAssistantService diabetes-ai/internal/service AssistantService
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_answerer.go -package=mocks diabetes-ai/internal/service Answerer

import (
	"context"
	"fmt"
	"strings"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/knowledge"
	"diabetes-ai/internal/medical"
	"diabetes-ai/internal/nlp"
	"diabetes-ai/internal/qa"
	"diabetes-ai/internal/storage"
)

// Answerer answers free-text questions.
type Answerer interface {
	// AnswerWithThreshold runs retrieval with the given similarity threshold.
	AnswerWithThreshold(ctx context.Context, query string, threshold float64) qa.MatchResult
	// RelatedTopics lists up to three topics related to query.
	RelatedTopics(query string) []string
}

// Extractor reads numeric values from a description.
type Extractor interface {
	Extract(text string) nlp.Extraction
}

// Advisor annotates a reading with clinical context.
type Advisor interface {
	Enhance(in medical.Reading) medical.Enhancement
}

// AskRequest is a question for the knowledge base.
type AskRequest struct {
	Question string
	// Threshold overrides the default similarity threshold when positive.
	Threshold float64
}

// AskResponse is the answer to a question.
type AskResponse struct {
	Question        string   `json:"question"`
	QuestionType    string   `json:"question_type"`
	Answer          string   `json:"answer"`
	Confidence      float64  `json:"confidence"`
	Source          string   `json:"source"`
	MatchedQuestion string   `json:"matched_question,omitempty"`
	RelatedTopics   []string `json:"related_topics"`
}

// ParseRequest is a free-text description, optionally tied to a patient.
type ParseRequest struct {
	Description string
	PatientName string
	PatientAge  int
}

// CorrectionInfo lists what the corrector changed.
type CorrectionInfo struct {
	Applied        []string `json:"applied"`
	OriginalInput  string   `json:"original_input"`
	CorrectedInput string   `json:"corrected_input"`
}

// ParseResponse is the dose recommendation for a description.
type ParseResponse struct {
	ParsedData      dose.Features  `json:"parsed_data"`
	Foods           []string       `json:"foods,omitempty"`
	Interpretations []string       `json:"interpretations"`
	PredictedDose   float64        `json:"predicted_dose"`
	Range           string         `json:"range"`
	Analysis        string         `json:"analysis"`
	MedicalContext  string         `json:"medical_context"`
	Sources         []string       `json:"sources"`
	Corrections     CorrectionInfo `json:"corrections"`
	Message         string         `json:"message"`
	Saved           bool           `json:"saved"`
}

// PredictResponse explains a dose computed from explicit values.
type PredictResponse struct {
	PredictedDose float64  `json:"predicted_dose"`
	Unit          string   `json:"unit"`
	Range         string   `json:"range"`
	Factors       []string `json:"factors"`
	Disclaimer    string   `json:"disclaimer"`
}

// ChatRequest represents a chat request in the domain layer.
type ChatRequest struct {
	Message string
}

// ChatResponse represents a chat response in the domain layer.
type ChatResponse struct {
	Reply string `json:"message"`
}

// Disclaimer is attached to every dose explanation.
const Disclaimer = "⚠️ IMPORTANTE: Esta es una estimación basada en reglas. Siempre consulta con tu médico antes de tomar cualquier decisión sobre tu medicación."

var parseSources = []string{"Reglas de dosificación", "RAG", "UMLS", "Vademecum"}

// AssistantService answers questions, reads descriptions and estimates doses.
type AssistantService interface {
	// Ask answers a question from the knowledge base and the corpus.
	Ask(ctx context.Context, req AskRequest) (AskResponse, error)
	// Parse extracts values from a description, estimates a dose and
	// annotates it. The prediction is stored when a patient name is given.
	Parse(ctx context.Context, req ParseRequest) (ParseResponse, error)
	// Predict estimates a dose from explicit values.
	Predict(ctx context.Context, f dose.Features) (PredictResponse, error)
	// Chat replies to a message with a canned answer.
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// AssistantDeps are the collaborators of the assistant service. The stores
// may be nil, in which case Parse never persists.
type AssistantDeps struct {
	Answerer    Answerer
	Extractor   Extractor
	Predictor   dose.Predictor
	Advisor     Advisor
	Tables      *knowledge.Tables
	Patients    storage.PatientStore
	Predictions storage.PredictionStore
	// Threshold is the default similarity threshold.
	Threshold float64
}

type assistantService struct {
	deps AssistantDeps
}

// NewAssistantService creates a new AssistantService.
func NewAssistantService(deps AssistantDeps) AssistantService {
	if deps.Threshold <= 0 {
		deps.Threshold = qa.DefaultThreshold
	}
	return &assistantService{deps: deps}
}

// Ask answers a question.
func (s *assistantService) Ask(ctx context.Context, req AskRequest) (AskResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	question := strings.TrimSpace(req.Question)
	if question == "" {
		logger.WarnContext(ctx, "empty question in ask request")
		return AskResponse{}, &ValidationError{Field: "question", Message: "cannot be empty"}
	}
	threshold := s.deps.Threshold
	if req.Threshold > 0 {
		if req.Threshold > 1 {
			return AskResponse{}, &ValidationError{Field: "threshold", Message: "must be between 0 and 1"}
		}
		threshold = req.Threshold
	}

	result := s.deps.Answerer.AnswerWithThreshold(ctx, req.Question, threshold)
	related := s.deps.Answerer.RelatedTopics(req.Question)
	if related == nil {
		related = []string{}
	}

	logger.InfoContext(ctx, "question answered", "source", result.Source, "confidence", result.Confidence)
	return AskResponse{
		Question:        req.Question,
		QuestionType:    qa.QuestionType(req.Question),
		Answer:          result.Answer,
		Confidence:      result.Confidence,
		Source:          result.Source,
		MatchedQuestion: result.MatchedQuestion,
		RelatedTopics:   related,
	}, nil
}

// Parse reads a description and recommends a dose.
func (s *assistantService) Parse(ctx context.Context, req ParseRequest) (ParseResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Description) == "" {
		logger.WarnContext(ctx, "empty description in parse request")
		return ParseResponse{}, &ValidationError{Field: "description", Message: "cannot be empty"}
	}
	if req.PatientAge < 0 {
		return ParseResponse{}, &ValidationError{Field: "patient_age", Message: "cannot be negative"}
	}

	ex := s.deps.Extractor.Extract(req.Description)
	features := dose.Features{
		ExerciseMinutes: ex.ExerciseMinutes,
		Carbohydrates:   ex.Carbohydrates,
		Protein:         ex.Protein,
		Fats:            ex.Fats,
		Glucose:         ex.Glucose,
	}

	predicted, err := s.deps.Predictor.Predict(features)
	if err != nil {
		logger.ErrorContext(ctx, "failed to predict dose", "error", err)
		return ParseResponse{}, WrapError(err, "failed to predict dose")
	}

	enhancement := s.deps.Advisor.Enhance(medical.Reading{
		Glucose:         features.Glucose,
		ExerciseMinutes: features.ExerciseMinutes,
		Carbohydrates:   features.Carbohydrates,
	})
	analysis := append(dose.Analysis(features), enhancement.Recommendations...)

	applied := make([]string, 0, len(ex.Corrections))
	for _, category := range []string{nlp.CategorySpelling, nlp.CategorySlang, nlp.CategoryNumber} {
		for _, c := range ex.Corrections {
			if c.Category == category {
				applied = append(applied, c.String())
			}
		}
	}

	resp := ParseResponse{
		ParsedData:      features,
		Foods:           ex.Foods,
		Interpretations: ex.Interpretations,
		PredictedDose:   predicted,
		Range:           dose.FormatRange(predicted),
		Analysis:        strings.Join(analysis, "\n"),
		MedicalContext:  enhancement.MedicalContext,
		Sources:         parseSources,
		Corrections: CorrectionInfo{
			Applied:        applied,
			OriginalInput:  ex.OriginalInput,
			CorrectedInput: ex.CorrectedInput,
		},
		Message: fmt.Sprintf("[OK] Procesado correctamente. Dosis recomendada: %s unidades", dose.FormatDose(predicted)),
	}

	if name := strings.TrimSpace(req.PatientName); name != "" {
		resp.Saved = s.save(ctx, name, req.PatientAge, features, predicted, req.Description)
	}

	logger.InfoContext(ctx, "description parsed",
		"predicted_dose", predicted,
		"corrections", len(ex.Corrections),
		"saved", resp.Saved,
	)
	return resp, nil
}

// save stores a parse result. Failures are logged and reported as false.
func (s *assistantService) save(ctx context.Context, name string, age int, f dose.Features, predicted float64, input string) bool {
	logger := contextutil.LoggerFromContext(ctx)
	if s.deps.Patients == nil || s.deps.Predictions == nil {
		logger.WarnContext(ctx, "prediction not saved: no storage configured")
		return false
	}

	patient, err := s.deps.Patients.GetOrCreate(ctx, name, "", age)
	if err != nil {
		logger.ErrorContext(ctx, "failed to get patient", "patient", name, "error", err)
		return false
	}
	err = s.deps.Predictions.Save(ctx, &storage.Prediction{
		PatientID:       patient.ID,
		ExerciseMinutes: f.ExerciseMinutes,
		Carbohydrates:   f.Carbohydrates,
		Protein:         f.Protein,
		Fats:            f.Fats,
		Glucose:         f.Glucose,
		PredictedDose:   predicted,
		UserInput:       input,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to save prediction", "patient", name, "error", err)
		return false
	}
	return true
}

// Predict estimates a dose from explicit values.
func (s *assistantService) Predict(ctx context.Context, f dose.Features) (PredictResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := f.Validate(); err != nil {
		logger.WarnContext(ctx, "invalid features in predict request", "error", err)
		return PredictResponse{}, &ValidationError{Field: "features", Message: err.Error()}
	}

	predicted, err := s.deps.Predictor.Predict(f)
	if err != nil {
		logger.ErrorContext(ctx, "failed to predict dose", "error", err)
		return PredictResponse{}, WrapError(err, "failed to predict dose")
	}

	logger.InfoContext(ctx, "dose predicted", "predicted_dose", predicted)
	return PredictResponse{
		PredictedDose: predicted,
		Unit:          "unidades",
		Range:         dose.FormatRange(predicted),
		Factors:       dose.Factors(f),
		Disclaimer:    Disclaimer,
	}, nil
}

// Chat replies with the first canned answer whose keyword appears in the
// message.
func (s *assistantService) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(req.Message) == "" {
		logger.WarnContext(ctx, "empty message in chat request")
		return ChatResponse{}, &ValidationError{Field: "message", Message: "cannot be empty"}
	}

	message := strings.ToLower(req.Message)
	for _, r := range s.deps.Tables.ChatReplies {
		if strings.Contains(message, r.Keyword) {
			logger.InfoContext(ctx, "chat reply", "keyword", r.Keyword)
			return ChatResponse{Reply: r.Reply}, nil
		}
	}

	logger.InfoContext(ctx, "chat fallback reply")
	return ChatResponse{Reply: s.deps.Tables.ChatDefault}, nil
}
