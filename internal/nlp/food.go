package nlp

import (
	"cmp"
	"math"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"diabetes-ai/internal/knowledge"
)

// Nutrition is the macronutrient total of a meal, in grams.
type Nutrition struct {
	Carbohydrates float64  `json:"carbohydrates"`
	Protein       float64  `json:"protein"`
	Fats          float64  `json:"fats"`
	Foods         []string `json:"foods,omitempty"`
}

type foodMatcher struct {
	food       knowledge.Food
	match      *regexp.Regexp
	qualifiers []qualifier
}

type qualifier struct {
	re  *regexp.Regexp
	mul float64
}

// FoodParser sums the macronutrients of the foods named in a description.
type FoodParser struct {
	foods []foodMatcher
}

// NewFoodParser prepares matchers longest name first, so "papas fritas" is
// claimed before "papas" can match inside it. Foods of equal length keep
// table order.
func NewFoodParser(foods []knowledge.Food, quantities []knowledge.Weight) *FoodParser {
	sorted := slices.Clone(foods)
	slices.SortStableFunc(sorted, func(a, b knowledge.Food) int {
		return cmp.Compare(utf8.RuneCountInString(b.Name), utf8.RuneCountInString(a.Name))
	})

	p := &FoodParser{}
	for _, f := range sorted {
		name := regexp.QuoteMeta(strings.ToLower(f.Name))
		m := foodMatcher{
			food:  f,
			match: regexp.MustCompile(`(?:^|[^\p{L}\p{N}_])(` + name + `)`),
		}
		for _, q := range quantities {
			m.qualifiers = append(m.qualifiers, qualifier{
				re:  regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(q.Key) + `\s+$`),
				mul: q.Value,
			})
		}
		p.foods = append(p.foods, m)
	}
	return p
}

// Parse returns the nutrition of every food named in text. Each food counts
// once, scaled by the qualifier placed right before the first of its
// occurrences that has one. Text claimed by a longer food is not searched
// again, so its qualifier never applies to a shorter name.
func (p *FoodParser) Parse(text string) Nutrition {
	text = strings.ToLower(strings.TrimSpace(text))
	masked := []byte(text)

	var n Nutrition
	for _, f := range p.foods {
		spans := f.match.FindAllSubmatchIndex(masked, -1)
		if len(spans) == 0 {
			continue
		}
		mul, qualified := 1.0, false
		for _, s := range spans {
			if !qualified {
				mul, qualified = f.multiplier(text[:s[2]])
			}
			mask(masked, s[2], s[3])
		}
		n.Carbohydrates += f.food.Carbs * mul
		n.Protein += f.food.Protein * mul
		n.Fats += f.food.Fats * mul
		n.Foods = append(n.Foods, f.food.Name)
	}

	n.Carbohydrates = round1(n.Carbohydrates)
	n.Protein = round1(n.Protein)
	n.Fats = round1(n.Fats)
	return n
}

// multiplier returns the value of the first qualifier that ends prefix.
func (m foodMatcher) multiplier(prefix string) (float64, bool) {
	for _, q := range m.qualifiers {
		if q.re.MatchString(prefix) {
			return q.mul, true
		}
	}
	return 1, false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
