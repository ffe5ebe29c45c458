// Package nlp turns free-text Spanish descriptions of meals, exercise and
// glucose readings into numbers. Input is normalized by the Corrector first,
// then each extractor runs on the corrected text.
package nlp

import (
	"regexp"
	"strings"

	"diabetes-ai/internal/fuzzy"
	"diabetes-ai/internal/knowledge"
)

// Correction categories.
const (
	CategorySpelling = "spelling"
	CategorySlang    = "slang"
	CategoryNumber   = "number"
)

// Fuzzy thresholds for the nearest-neighbour passes.
const (
	SpellingThreshold = 0.78
	SlangThreshold    = 0.75
)

// Correction records one rewritten token.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Category  string `json:"category"`
}

func (c Correction) String() string {
	return c.Original + " → " + c.Corrected
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]`)

// dictionary is an ordered mapping with O(1) exact lookup.
type dictionary struct {
	entries []knowledge.Mapping
	index   map[string]string
}

func newDictionary(entries []knowledge.Mapping) dictionary {
	d := dictionary{entries: entries, index: make(map[string]string, len(entries))}
	for _, e := range entries {
		if _, dup := d.index[e.From]; !dup {
			d.index[e.From] = e.To
		}
	}
	return d
}

func (d dictionary) lookup(word string) (string, bool) {
	to, ok := d.index[word]
	return to, ok
}

// nearest returns the replacement of the most similar key. A key is kept
// only when it beats both the running best and threshold, so the first key
// in table order wins ties.
func (d dictionary) nearest(word string, threshold float64) (string, bool) {
	var (
		best  float64
		found string
		ok    bool
	)
	for _, e := range d.entries {
		ratio := fuzzy.Ratio(word, e.From)
		if ratio > best && ratio > threshold {
			best, found, ok = ratio, e.To, true
		}
	}
	return found, ok
}

// Corrector rewrites misspellings, slang and spelled-out numbers into the
// vocabulary the extractors understand.
type Corrector struct {
	spelling dictionary
	slang    dictionary
	numbers  dictionary
}

// NewCorrector builds a Corrector from the spelling, slang and number tables.
func NewCorrector(t *knowledge.Tables) *Corrector {
	return &Corrector{
		spelling: newDictionary(t.Spelling),
		slang:    newDictionary(t.Slang),
		numbers:  newDictionary(t.Numbers),
	}
}

// Correct lowercases text, strips punctuation from each whitespace-separated
// token and rewrites it. Tokens that strip to nothing are dropped. Only
// tokens that actually changed are reported.
func (c *Corrector) Correct(text string) (string, []Correction) {
	words := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(words))
	var corrections []Correction

	for _, w := range words {
		word := nonWord.ReplaceAllString(w, "")
		if word == "" {
			continue
		}
		corrected, category := c.correctWord(word)
		if category != "" && corrected != word {
			corrections = append(corrections, Correction{Original: word, Corrected: corrected, Category: category})
		}
		out = append(out, corrected)
	}
	return strings.Join(out, " "), corrections
}

func (c *Corrector) correctWord(word string) (string, string) {
	if to, ok := c.numbers.lookup(word); ok {
		return to, CategoryNumber
	}
	if to, ok := c.spelling.lookup(word); ok {
		return to, CategorySpelling
	}
	if to, ok := c.slang.lookup(word); ok {
		return to, CategorySlang
	}
	if to, ok := c.spelling.nearest(word, SpellingThreshold); ok {
		return to, CategorySpelling
	}
	if to, ok := c.slang.nearest(word, SlangThreshold); ok {
		return to, CategorySlang
	}
	return word, ""
}
