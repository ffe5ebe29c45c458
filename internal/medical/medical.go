// Package medical answers reference lookups (medications, clinical concepts,
// rules of thumb) and annotates a patient reading with context and
// recommendations.
package medical

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"diabetes-ai/internal/knowledge"
)

type (
	Medication = knowledge.Medication
	Concept    = knowledge.Concept
	Rule       = knowledge.Rule
)

// Source labels reported by Search.
const (
	SourceUMLS      = "UMLS"
	SourceVademecum = "Vademecum"
)

// Reference is a read-only view over the medical tables.
type Reference struct {
	medications []Medication
	concepts    []Concept
	rules       []Rule
	carbs       map[string]float64
	now         func() time.Time
}

// Option configures a Reference.
type Option func(*Reference)

// WithClock overrides the clock used for Search timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Reference) { r.now = now }
}

// New builds a Reference from t.
func New(t *knowledge.Tables, opts ...Option) *Reference {
	r := &Reference{
		medications: t.Medications,
		concepts:    t.Concepts,
		rules:       t.Rules,
		carbs:       make(map[string]float64, len(t.DietaryCarbs)),
		now:         time.Now,
	}
	for _, c := range t.DietaryCarbs {
		r.carbs[strings.ToLower(c.Key)] = c.Value
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Medication returns the first medication whose generic name or one of its
// brands appears in query.
func (r *Reference) Medication(query string) (Medication, bool) {
	q := strings.ToLower(query)
	for _, m := range r.medications {
		if strings.Contains(q, strings.ToLower(m.Name)) {
			return m, true
		}
		for _, b := range m.Brands {
			if strings.Contains(q, strings.ToLower(b)) {
				return m, true
			}
		}
	}
	return Medication{}, false
}

// CarbInfo returns grams of carbohydrate per serving of food, or 0.
func (r *Reference) CarbInfo(food string) float64 {
	return r.carbs[strings.ToLower(strings.TrimSpace(food))]
}

// Concept returns the first concept whose key appears in query or contains
// it. An empty query matches nothing.
func (r *Reference) Concept(query string) (Concept, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Concept{}, false
	}
	for _, c := range r.concepts {
		if strings.Contains(q, c.Key) || strings.Contains(c.Key, q) {
			return c, true
		}
	}
	return Concept{}, false
}

// RelatedConcepts returns every concept key when term is itself a known key.
func (r *Reference) RelatedConcepts(term string) []string {
	term = strings.ToLower(strings.TrimSpace(term))
	if !slices.ContainsFunc(r.concepts, func(c Concept) bool { return c.Key == term }) {
		return nil
	}
	keys := make([]string, 0, len(r.concepts))
	for _, c := range r.concepts {
		keys = append(keys, c.Key)
	}
	return keys
}

// Rules returns the rules with a key part present in query, most confident
// first. Rules of equal confidence keep table order.
func (r *Reference) Rules(query string) []Rule {
	q := strings.ToLower(query)
	var out []Rule
	for _, rule := range r.rules {
		for _, part := range strings.Split(rule.Key, "_") {
			if part != "" && strings.Contains(q, part) {
				out = append(out, rule)
				break
			}
		}
	}
	slices.SortStableFunc(out, func(a, b Rule) int {
		return cmp.Compare(b.Confidence, a.Confidence)
	})
	return out
}

// AllRules returns the full rule table.
func (r *Reference) AllRules() []Rule {
	return slices.Clone(r.rules)
}

// SearchResult combines every reference source for one query.
type SearchResult struct {
	Query      string      `json:"query"`
	Timestamp  time.Time   `json:"timestamp"`
	Rules      []Rule      `json:"rules"`
	Concept    *Concept    `json:"concept,omitempty"`
	Medication *Medication `json:"medication,omitempty"`
	Sources    []string    `json:"sources"`
}

// Search looks query up in the rules, the concepts and the vademecum.
func (r *Reference) Search(query string) SearchResult {
	res := SearchResult{
		Query:     query,
		Timestamp: r.now(),
		Rules:     r.Rules(query),
		Sources:   []string{},
	}
	if res.Rules == nil {
		res.Rules = []Rule{}
	}
	if c, ok := r.Concept(query); ok {
		res.Concept = &c
		res.Sources = append(res.Sources, SourceUMLS)
	}
	if m, ok := r.Medication(query); ok {
		res.Medication = &m
		res.Sources = append(res.Sources, SourceVademecum)
	}
	return res
}
