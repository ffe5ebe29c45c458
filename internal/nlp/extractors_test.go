package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"diabetes-ai/internal/knowledge"
)

func TestExerciseMinutes(t *testing.T) {
	tables := knowledge.MustDefault()
	p := NewExerciseParser(tables.Exercises, tables.Intensities)

	tests := []struct {
		input string
		want  float64
	}{
		{input: "caminé 30 minutos", want: 30},
		{input: "40 minutos de caminar y 10 minutos de saltar", want: 50},
		{input: "hoy corrí en el parque", want: 45},
		{input: "yoga intenso", want: 90},
		{input: "pesa poco", want: 22},
		{input: "30 minutos de pesas", want: 30},
		{input: "saltar cuerda", want: 60},
		{input: "trabajo pesado", want: 45},
		{input: "20 minutos de caminar y trote", want: 20},
		{input: "2 horas", want: 120},
		{input: "unos 25 min", want: 25},
		{input: "no hice nada", want: 0},
		{input: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Minutes(tt.input))
		})
	}
}

func TestFoodParse(t *testing.T) {
	tables := knowledge.MustDefault()
	p := NewFoodParser(tables.Foods, tables.Quantities)

	tests := []struct {
		name  string
		input string
		carbs float64
		foods []string
	}{
		{name: "single serving", input: "comida arroz", carbs: 45, foods: []string{"arroz"}},
		{name: "longest match wins", input: "papas fritas", carbs: 35, foods: []string{"papas fritas"}},
		{name: "compound dish", input: "arroz con leche", carbs: 35, foods: []string{"arroz con leche"}},
		{name: "qualifier", input: "mucho arroz", carbs: 90, foods: []string{"arroz"}},
		{name: "multi word qualifier", input: "un poco de pan", carbs: 7.5, foods: []string{"pan"}},
		{name: "plural", input: "unas galletas", carbs: 15, foods: []string{"galleta"}},
		{name: "counted once", input: "pan y más pan", carbs: 15, foods: []string{"pan"}},
		{name: "qualifier stays with its food", input: "mucho papas fritas y una papa", carbs: 90, foods: []string{"papas fritas", "papa"}},
		{name: "qualifier of a later occurrence", input: "papa y mucho papa", carbs: 40, foods: []string{"papa"}},
		{name: "qualifier inside a word", input: "ninguno pan", carbs: 15, foods: []string{"pan"}},
		{name: "not inside a word", input: "empanada", carbs: 0},
		{name: "sum", input: "pan, manzana y jugo", carbs: 70, foods: []string{"manzana", "jugo", "pan"}},
		{name: "nothing", input: "", carbs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Parse(tt.input)
			assert.InDelta(t, tt.carbs, got.Carbohydrates, 1e-9)
			assert.Equal(t, tt.foods, got.Foods)
		})
	}
}

func TestFoodParse_Macros(t *testing.T) {
	tables := knowledge.MustDefault()
	got := NewFoodParser(tables.Foods, tables.Quantities).Parse("pollo con arroz")

	assert.InDelta(t, 45, got.Carbohydrates, 1e-9)
	assert.InDelta(t, 30, got.Protein, 1e-9)
	assert.InDelta(t, 4, got.Fats, 1e-9)
}

func TestGlucose(t *testing.T) {
	p := NewGlucoseParser(knowledge.MustDefault().GlucoseLevels)

	tests := []struct {
		input string
		want  float64
	}{
		{input: "glucosa de 170", want: 170},
		{input: "mi glucosa es 140", want: 140},
		{input: "glucosa 95 en ayunas", want: 95},
		{input: "mi azúcar está en 250", want: 250},
		{input: "glucosa 500", want: DefaultGlucose},
		{input: "la tengo baja, unos 50 y luego 70 de glucosa", want: 70},
		{input: "nivel bajo", want: 80},
		{input: "muy elevado", want: 170},
		{input: "", want: DefaultGlucose},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Glucose(tt.input))
		})
	}
}
