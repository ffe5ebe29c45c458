package medical

import "strings"

// Reading is the patient data Enhance looks at.
type Reading struct {
	Glucose         float64  `json:"glucose"`
	ExerciseMinutes float64  `json:"exercise_minutes"`
	Carbohydrates   float64  `json:"carbohydrates"`
	Symptoms        []string `json:"symptoms,omitempty"`
}

// Enhancement is the clinical annotation of a reading.
type Enhancement struct {
	MedicalContext  string   `json:"medical_context"`
	Recommendations []string `json:"recommendations"`
	RelatedConcepts []string `json:"related_concepts"`
}

// Enhance annotates a reading with context lines, recommendations and the
// concepts related to each reported symptom.
func (r *Reference) Enhance(in Reading) Enhancement {
	e := Enhancement{
		MedicalContext:  Context(in.Glucose, in.ExerciseMinutes, in.Carbohydrates),
		Recommendations: Recommendations(in.Glucose, in.ExerciseMinutes, in.Carbohydrates),
		RelatedConcepts: []string{},
	}
	for _, s := range in.Symptoms {
		e.RelatedConcepts = append(e.RelatedConcepts, r.RelatedConcepts(s)...)
	}
	return e
}

// Context describes glucose, exercise and carbohydrate intake, one line each.
// Exercise and carbohydrate lines are omitted when unremarkable.
func Context(glucose, exercise, carbs float64) string {
	var lines []string

	switch {
	case glucose > 150:
		lines = append(lines, "Glucosa elevada: Se recomienda aumentar actividad física y revisar medicación")
	case glucose < 80:
		lines = append(lines, "Glucosa baja: Riesgo de hipoglucemia. Tomar carbohidratos rápidos")
	default:
		lines = append(lines, "Glucosa en rango óptimo")
	}

	switch {
	case exercise > 60:
		lines = append(lines, "Ejercicio intenso: Puede causar hipoglucemia tardía. Monitorear")
	case exercise < 10:
		lines = append(lines, "Poco ejercicio: Considerar aumentar actividad física")
	}

	switch {
	case carbs > 100:
		lines = append(lines, "Alto consumo de carbohidratos: Requiere mayor dosis de insulina")
	case carbs == 0:
		lines = append(lines, "Sin carbohidratos detectados")
	}

	return strings.Join(lines, "\n")
}

// Recommendations lists medication advice for a reading. It may be empty.
func Recommendations(glucose, exercise, carbs float64) []string {
	out := []string{}
	if glucose > 200 {
		out = append(out, "Considerar insulina rápida adicional", "Revisar con endocrinólogo")
	}
	if glucose < 80 && exercise > 30 {
		out = append(out, "Riesgo de hipoglucemia post-ejercicio", "Consumir carbohidratos después del ejercicio")
	}
	if carbs > 80 {
		out = append(out, "Tomar metformina si no la usa (reducción de absorción)")
	}
	return out
}
