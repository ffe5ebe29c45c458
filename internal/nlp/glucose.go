package nlp

import (
	"regexp"
	"strconv"
	"strings"

	"diabetes-ai/internal/knowledge"
)

// Plausible glucose readings in mg/dl.
const (
	MinGlucose     = 60
	MaxGlucose     = 400
	DefaultGlucose = 120.0
)

var glucosePatterns = []*regexp.Regexp{
	regexp.MustCompile(`glucosa\s+de\s+(\d+)`),
	regexp.MustCompile(`glucosa\s+es\s+(\d+)`),
	regexp.MustCompile(`glucosa\s+(\d+)`),
	regexp.MustCompile(`glucosa está en\s+(\d+)`),
	regexp.MustCompile(`mi glucosa\s+(\d+)`),
}

var glucoseWords = []string{"glucosa", "azúcar", "azucar"}

// GlucoseParser reads a glucose value from a description.
type GlucoseParser struct {
	levels []knowledge.Weight
}

// NewGlucoseParser uses levels for qualitative descriptions like "alto".
func NewGlucoseParser(levels []knowledge.Weight) *GlucoseParser {
	return &GlucoseParser{levels: levels}
}

// Glucose returns the reading in mg/dl, or DefaultGlucose when text does not
// describe one. Numbers outside [MinGlucose, MaxGlucose] are ignored.
func (p *GlucoseParser) Glucose(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))

	for _, re := range glucosePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := plausible(m[1]); ok {
			return v
		}
	}

	if containsAny(text, glucoseWords) {
		for _, num := range anyNumber.FindAllString(text, -1) {
			if v, ok := plausible(num); ok {
				return v
			}
		}
	}

	for _, l := range p.levels {
		if strings.Contains(text, l.Key) {
			return l.Value
		}
	}
	return DefaultGlucose
}

func plausible(s string) (float64, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < MinGlucose || n > MaxGlucose {
		return 0, false
	}
	return float64(n), true
}
