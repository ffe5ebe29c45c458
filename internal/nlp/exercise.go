package nlp

import (
	"bytes"
	"cmp"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"diabetes-ai/internal/knowledge"
)

var (
	anyNumber   = regexp.MustCompile(`\d+`)
	minuteWords = []string{"minuto", "min", "hora", "oras"}
)

type activity struct {
	keyword  string
	baseline float64
	patterns []*regexp.Regexp
}

// ExerciseParser estimates exercise minutes from a description.
type ExerciseParser struct {
	activities  []activity
	intensities []knowledge.Weight
}

// NewExerciseParser compiles the duration patterns for every activity,
// longest keyword first so "pesas" is claimed before "pesa". Keywords of
// equal length keep table order.
func NewExerciseParser(activities, intensities []knowledge.Weight) *ExerciseParser {
	sorted := slices.Clone(activities)
	slices.SortStableFunc(sorted, func(a, b knowledge.Weight) int {
		return cmp.Compare(utf8.RuneCountInString(b.Key), utf8.RuneCountInString(a.Key))
	})

	p := &ExerciseParser{intensities: intensities}
	for _, a := range sorted {
		k := regexp.QuoteMeta(a.Key)
		p.activities = append(p.activities, activity{
			keyword:  a.Key,
			baseline: a.Value,
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(\d+)\s+(?:minuto|min)[os]*\s+de\s+` + k),
				regexp.MustCompile(`(\d+)\s+(?:minuto|min)[os]*\s+` + k),
				regexp.MustCompile(k + `\s+(\d+)\s+(?:minuto|min)[os]*`),
			},
		})
	}
	return p
}

// Minutes returns the exercise duration described by text.
//
// Explicit durations next to an activity ("40 minutos de caminar") are
// summed first. Without any, the baseline of every named activity is summed.
// Text claimed by one activity, its duration included, is not read again
// by another. As a last resort the first number is read as minutes, or
// hours when the text mentions "hora". The result is scaled by the first
// intensity qualifier found and rounded to whole minutes.
func (p *ExerciseParser) Minutes(text string) float64 {
	text = strings.ToLower(strings.TrimSpace(text))
	intensity := p.intensity(text)

	var minutes float64
	masked := []byte(text)
	for _, a := range p.activities {
		for _, re := range a.patterns {
			for _, m := range re.FindAllSubmatchIndex(masked, -1) {
				if n, err := strconv.Atoi(string(masked[m[2]:m[3]])); err == nil {
					minutes += float64(n) * intensity
				}
				mask(masked, m[0], m[1])
			}
		}
	}

	if minutes == 0 {
		masked = []byte(text)
		for _, a := range p.activities {
			kw := []byte(a.keyword)
			if bytes.Contains(masked, kw) {
				minutes += a.baseline * intensity
				masked = bytes.ReplaceAll(masked, kw, bytes.Repeat([]byte{' '}, len(kw)))
			}
		}
	}

	if minutes == 0 && containsAny(text, minuteWords) {
		if first := anyNumber.FindString(text); first != "" {
			if n, err := strconv.Atoi(first); err == nil {
				minutes = float64(n)
				if strings.Contains(text, "hora") {
					minutes *= 60
				}
			}
		}
	}

	return math.RoundToEven(minutes)
}

func (p *ExerciseParser) intensity(text string) float64 {
	for _, i := range p.intensities {
		if strings.Contains(text, i.Key) {
			return i.Value
		}
	}
	return 1.0
}

func mask(b []byte, from, to int) {
	for i := from; i < to; i++ {
		b[i] = ' '
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
