package nlp

import (
	"fmt"
	"strconv"
	"strings"

	"diabetes-ai/internal/knowledge"
)

// Extraction is everything read from one user description.
type Extraction struct {
	ExerciseMinutes float64      `json:"exercise_minutes"`
	Carbohydrates   float64      `json:"carbohydrates"`
	Protein         float64      `json:"protein"`
	Fats            float64      `json:"fats"`
	Glucose         float64      `json:"glucose"`
	Foods           []string     `json:"foods,omitempty"`
	Interpretations []string     `json:"interpretations"`
	Corrections     []Correction `json:"corrections"`
	CorrectedInput  string       `json:"corrected_input"`
	OriginalInput   string       `json:"original_input"`
}

// Processor runs correction and the three extractors.
type Processor struct {
	corrector *Corrector
	exercise  *ExerciseParser
	food      *FoodParser
	glucose   *GlucoseParser
}

// NewProcessor wires a Processor from the knowledge tables.
func NewProcessor(t *knowledge.Tables) *Processor {
	return &Processor{
		corrector: NewCorrector(t),
		exercise:  NewExerciseParser(t.Exercises, t.Intensities),
		food:      NewFoodParser(t.Foods, t.Quantities),
		glucose:   NewGlucoseParser(t.GlucoseLevels),
	}
}

// Correct exposes the correction step alone.
func (p *Processor) Correct(text string) (string, []Correction) {
	return p.corrector.Correct(text)
}

// Extract corrects text and extracts exercise, meal and glucose values from
// the corrected form. It never fails: missing values take their defaults.
func (p *Processor) Extract(text string) Extraction {
	corrected, corrections := p.corrector.Correct(text)
	e := Extraction{
		OriginalInput:  text,
		CorrectedInput: corrected,
		Corrections:    corrections,
	}
	if e.Corrections == nil {
		e.Corrections = []Correction{}
	}

	if summary := correctionSummary(corrections); summary != "" {
		e.Interpretations = append(e.Interpretations, summary)
	}

	e.ExerciseMinutes = p.exercise.Minutes(corrected)
	if e.ExerciseMinutes > 0 {
		e.Interpretations = append(e.Interpretations, fmt.Sprintf("[EJERCICIO] %d minutos", int(e.ExerciseMinutes)))
	} else {
		e.Interpretations = append(e.Interpretations, "[SIN EJERCICIO]")
	}

	n := p.food.Parse(corrected)
	e.Carbohydrates, e.Protein, e.Fats, e.Foods = n.Carbohydrates, n.Protein, n.Fats, n.Foods
	if e.Carbohydrates > 0 {
		e.Interpretations = append(e.Interpretations, fmt.Sprintf(
			"[ALIMENTOS] Carbohidratos: %sg | Proteina: %sg | Grasas: %sg",
			grams(e.Carbohydrates), grams(e.Protein), grams(e.Fats)))
	} else {
		e.Interpretations = append(e.Interpretations, "[INFO] No pude identificar alimentos especificos")
	}

	e.Glucose = p.glucose.Glucose(corrected)
	e.Interpretations = append(e.Interpretations, fmt.Sprintf("[GLUCOSA] %d mg/dl", int(e.Glucose)))

	return e
}

// correctionSummary renders corrections grouped by category, or "" when
// there are none.
func correctionSummary(corrections []Correction) string {
	if len(corrections) == 0 {
		return ""
	}
	groups := []struct {
		category string
		label    string
	}{
		{CategorySpelling, "Ortografía"},
		{CategorySlang, "Jerga"},
		{CategoryNumber, "Números"},
	}

	var parts []string
	for _, g := range groups {
		var items []string
		for _, c := range corrections {
			if c.Category == g.category {
				items = append(items, c.String())
			}
		}
		if len(items) > 0 {
			parts = append(parts, g.label+": "+strings.Join(items, ", "))
		}
	}
	return "🔧 [CORRECCIONES] " + strings.Join(parts, " | ")
}

// grams formats a gram amount with at least one decimal, e.g. 45.0 or 4.5.
func grams(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
