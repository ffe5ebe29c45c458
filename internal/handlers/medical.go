package handlers

import (
	"net/http"
	"strings"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/medical"
)

// MedicalReference is the clinical lookup surface. *medical.Reference
// implements it.
type MedicalReference interface {
	Search(query string) medical.SearchResult
	Medication(query string) (medical.Medication, bool)
	Concept(query string) (medical.Concept, bool)
	RelatedConcepts(term string) []string
	Rules(query string) []medical.Rule
	AllRules() []medical.Rule
	Enhance(in medical.Reading) medical.Enhancement
}

// MedicalHandler serves the medical reference.
type MedicalHandler struct {
	ref MedicalReference
}

// NewMedicalHandler creates a new MedicalHandler.
func NewMedicalHandler(ref MedicalReference) *MedicalHandler {
	return &MedicalHandler{ref: ref}
}

// MedicalSearchRequest represents the HTTP request payload for medical search.
type MedicalSearchRequest struct {
	Query string `json:"query"`
}

// ConceptResponse is a concept with the concepts related to it.
type ConceptResponse struct {
	Concept medical.Concept `json:"concept"`
	Related []string        `json:"related"`
}

// RulesResponse lists clinical rules.
type RulesResponse struct {
	Count int            `json:"count"`
	Rules []medical.Rule `json:"rules"`
}

// Search handles POST /api/medical/search.
func (h *MedicalHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req MedicalSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "empty query in medical search")
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	writeJSON(ctx, w, http.StatusOK, h.ref.Search(req.Query))
}

// Medication handles GET /api/medical/medication?name=.
func (h *MedicalHandler) Medication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "Parameter name is required")
		return
	}
	m, ok := h.ref.Medication(name)
	if !ok {
		writeError(w, http.StatusNotFound, "Medication not found")
		return
	}
	writeJSON(ctx, w, http.StatusOK, m)
}

// Concept handles GET /api/medical/concept?term=.
func (h *MedicalHandler) Concept(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	term := strings.TrimSpace(r.URL.Query().Get("term"))
	if term == "" {
		writeError(w, http.StatusBadRequest, "Parameter term is required")
		return
	}
	c, ok := h.ref.Concept(term)
	if !ok {
		writeError(w, http.StatusNotFound, "Concept not found")
		return
	}
	related := h.ref.RelatedConcepts(c.Key)
	if related == nil {
		related = []string{}
	}
	writeJSON(ctx, w, http.StatusOK, ConceptResponse{Concept: c, Related: related})
}

// Enhance handles POST /api/medical/enhance. The body is a medical.Reading.
func (h *MedicalHandler) Enhance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req medical.Reading
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Glucose < 0 || req.ExerciseMinutes < 0 || req.Carbohydrates < 0 {
		writeError(w, http.StatusBadRequest, "Values cannot be negative")
		return
	}

	writeJSON(ctx, w, http.StatusOK, h.ref.Enhance(req))
}

// Rules handles GET /api/medical/rules. With ?q= only the rules whose key
// matches are returned.
func (h *MedicalHandler) Rules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var rules []medical.Rule
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		rules = h.ref.Rules(q)
	} else {
		rules = h.ref.AllRules()
	}
	if rules == nil {
		rules = []medical.Rule{}
	}
	writeJSON(ctx, w, http.StatusOK, RulesResponse{Count: len(rules), Rules: rules})
}
