package dose

import (
	"fmt"
	"strconv"
	"strings"
)

// Factors explains a prediction, one line per input.
func Factors(f Features) []string {
	var out []string

	switch {
	case f.ExerciseMinutes > 60:
		out = append(out, fmt.Sprintf("✓ Ejercicio importante: %s min (reduce necesidad de insulina)", number(f.ExerciseMinutes)))
	case f.ExerciseMinutes > 30:
		out = append(out, fmt.Sprintf("✓ Ejercicio moderado: %s min", number(f.ExerciseMinutes)))
	default:
		out = append(out, fmt.Sprintf("⚠ Poco ejercicio: %s min", number(f.ExerciseMinutes)))
	}

	if f.Carbohydrates > 80 {
		out = append(out, fmt.Sprintf("⚠ Alto consumo de carbohidratos: %sg", number(f.Carbohydrates)))
	} else {
		out = append(out, fmt.Sprintf("✓ Carbohidratos: %sg", number(f.Carbohydrates)))
	}

	switch {
	case f.Glucose > 150:
		out = append(out, fmt.Sprintf("⚠ Glucosa elevada: %s mg/dl - aumenta necesidad de insulina", number(f.Glucose)))
	case f.Glucose > 120:
		out = append(out, fmt.Sprintf("⚠ Glucosa un poco alta: %s mg/dl", number(f.Glucose)))
	default:
		out = append(out, fmt.Sprintf("✓ Glucosa en rango: %s mg/dl", number(f.Glucose)))
	}

	return out
}

// Analysis summarizes values read from free text. Unlike Factors it omits
// carbohydrates and glucose when none were found.
func Analysis(f Features) []string {
	var out []string

	switch {
	case f.ExerciseMinutes > 60:
		out = append(out, fmt.Sprintf("Ejercicio importante: %s min - reduce necesidad de insulina", number(f.ExerciseMinutes)))
	case f.ExerciseMinutes > 30:
		out = append(out, fmt.Sprintf("Ejercicio moderado: %s min", number(f.ExerciseMinutes)))
	case f.ExerciseMinutes > 0:
		out = append(out, fmt.Sprintf("Poco ejercicio: %s min", number(f.ExerciseMinutes)))
	default:
		out = append(out, "Sin ejercicio registrado")
	}

	switch {
	case f.Carbohydrates > 80:
		out = append(out, fmt.Sprintf("Alto consumo de carbohidratos: %sg", number(f.Carbohydrates)))
	case f.Carbohydrates > 0:
		out = append(out, fmt.Sprintf("Carbohidratos: %sg", number(f.Carbohydrates)))
	}

	switch {
	case f.Glucose > 150:
		out = append(out, fmt.Sprintf("Glucosa elevada: %s mg/dl - aumenta necesidad de insulina", number(f.Glucose)))
	case f.Glucose > 120:
		out = append(out, fmt.Sprintf("Glucosa un poco alta: %s mg/dl", number(f.Glucose)))
	case f.Glucose > 0:
		out = append(out, fmt.Sprintf("Glucosa en rango: %s mg/dl", number(f.Glucose)))
	}

	return out
}

// FormatDose prints a dose the way messages show it: 4.5, 5.0.
func FormatDose(d float64) string {
	return number(d)
}

// number prints v with at least one decimal: 30.0, 22.5.
func number(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
