package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"diabetes-ai/internal/knowledge"
)

func newTestCorrector() *Corrector {
	return NewCorrector(knowledge.MustDefault())
}

func TestCorrect(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        string
		corrections []Correction
	}{
		{
			name:        "exact spelling",
			input:       "egercicios",
			want:        "ejercicios",
			corrections: []Correction{{Original: "egercicios", Corrected: "ejercicios", Category: CategorySpelling}},
		},
		{
			name:        "number words",
			input:       "Dos tazas",
			want:        "2 tazas",
			corrections: []Correction{{Original: "dos", Corrected: "2", Category: CategoryNumber}},
		},
		{
			name:  "exact slang",
			input: "hice un ratito de ejercicio",
			want:  "hice un poco tiempo de ejercicios",
			corrections: []Correction{
				{Original: "ratito", Corrected: "poco tiempo", Category: CategorySlang},
				{Original: "ejercicio", Corrected: "ejercicios", Category: CategorySpelling},
			},
		},
		{
			name:        "fuzzy spelling",
			input:       "glucosaa",
			want:        "glucosa",
			corrections: []Correction{{Original: "glucosaa", Corrected: "glucosa", Category: CategorySpelling}},
		},
		{
			name:        "fuzzy slang",
			input:       "laburito",
			want:        "trabajo",
			corrections: []Correction{{Original: "laburito", Corrected: "trabajo", Category: CategorySlang}},
		},
		{
			name:  "identity mapping is not reported",
			input: "glucosa",
			want:  "glucosa",
		},
		{
			name:  "punctuation stripped and empty tokens dropped",
			input: "¡Hola, , mundo!",
			want:  "hola mundo",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	c := newTestCorrector()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, corrections := c.Correct(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.corrections, corrections)
		})
	}
}

func TestCorrect_Idempotent(t *testing.T) {
	c := newTestCorrector()

	for _, input := range []string{
		"comí arroz",
		"egercicios de 2 hiras",
		"mi glucoza es alta",
	} {
		t.Run(input, func(t *testing.T) {
			once, _ := c.Correct(input)
			twice, corrections := c.Correct(once)
			assert.Equal(t, once, twice)
			assert.Empty(t, corrections)
		})
	}
}

func TestCorrect_CustomTables(t *testing.T) {
	c := NewCorrector(&knowledge.Tables{
		Spelling: []knowledge.Mapping{{From: "insulna", To: "insulina"}},
	})

	got, corrections := c.Correct("poca insulna")
	assert.Equal(t, "poca insulina", got)
	assert.Len(t, corrections, 1)
}

func TestNearest_FirstKeyWinsTies(t *testing.T) {
	d := newDictionary([]knowledge.Mapping{
		{From: "abcx", To: "first"},
		{From: "abcy", To: "second"},
	})

	got, ok := d.nearest("abcz", 0.5)
	assert.True(t, ok)
	assert.Equal(t, "first", got)

	_, ok = d.nearest("zzzz", 0.5)
	assert.False(t, ok)
}

func TestCorrection_String(t *testing.T) {
	assert.Equal(t, "comí → comida", Correction{Original: "comí", Corrected: "comida"}.String())
}
