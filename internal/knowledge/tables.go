// Package knowledge holds the static vocabulary and reference tables that
// drive retrieval, correction and extraction. Tables are loaded once and
// never mutated afterwards.
package knowledge

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/tables.yaml data/topics/*.md
var embedded embed.FS

const (
	tablesFile = "tables.yaml"
	topicsDir  = "topics"
)

// Mapping rewrites a token to its canonical form.
type Mapping struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// Weight associates a keyword with a numeric value (baseline minutes,
// multiplier or glucose reading depending on the table).
type Weight struct {
	Key   string  `yaml:"key"`
	Value float64 `yaml:"value"`
}

// Food is the macronutrient content of one standard serving, in grams.
type Food struct {
	Name    string  `yaml:"name"`
	Unit    string  `yaml:"unit"`
	Carbs   float64 `yaml:"carbs"`
	Protein float64 `yaml:"protein"`
	Fats    float64 `yaml:"fats"`
}

// Medication is one vademecum entry.
type Medication struct {
	Name              string   `yaml:"name" json:"name"`
	Type              string   `yaml:"type" json:"type"`
	Brands            []string `yaml:"brands" json:"brands,omitempty"`
	Onset             string   `yaml:"onset" json:"onset,omitempty"`
	Peak              string   `yaml:"peak" json:"peak,omitempty"`
	Duration          string   `yaml:"duration" json:"duration,omitempty"`
	Indications       []string `yaml:"indications" json:"indications,omitempty"`
	SideEffects       []string `yaml:"side_effects" json:"side_effects,omitempty"`
	Contraindications []string `yaml:"contraindications" json:"contraindications,omitempty"`
	Mechanism         string   `yaml:"mechanism" json:"mechanism,omitempty"`
	MaxDose           string   `yaml:"max_dose" json:"max_dose,omitempty"`
}

// Concept is a clinical concept with its UMLS identifier.
type Concept struct {
	Key         string   `yaml:"key" json:"key"`
	CUI         string   `yaml:"cui" json:"cui"`
	Definition  string   `yaml:"definition" json:"definition"`
	Symptoms    []string `yaml:"symptoms" json:"symptoms,omitempty"`
	Causes      []string `yaml:"causes" json:"causes,omitempty"`
	Treatment   []string `yaml:"treatment" json:"treatment,omitempty"`
	RiskFactors []string `yaml:"risk_factors" json:"risk_factors,omitempty"`
	Emergency   bool     `yaml:"emergency" json:"emergency,omitempty"`
}

// Rule is a clinical rule of thumb with the confidence of its source.
type Rule struct {
	Key        string  `yaml:"key" json:"key"`
	Rule       string  `yaml:"rule" json:"rule"`
	Source     string  `yaml:"source" json:"source"`
	Confidence float64 `yaml:"confidence" json:"confidence"`
}

// ChatReply is a canned reply triggered by a keyword.
type ChatReply struct {
	Keyword string `yaml:"keyword"`
	Reply   string `yaml:"reply"`
}

// Tables is the full set of static knowledge. Every slice is ordered and
// scanned front to back.
type Tables struct {
	Topics         []Topic      `yaml:"-"`
	DefaultAnswer  string       `yaml:"default_answer"`
	DomainKeywords []string     `yaml:"domain_keywords"`
	Spelling       []Mapping    `yaml:"spelling"`
	Slang          []Mapping    `yaml:"slang"`
	Numbers        []Mapping    `yaml:"numbers"`
	Exercises      []Weight     `yaml:"exercises"`
	Intensities    []Weight     `yaml:"intensities"`
	Foods          []Food       `yaml:"foods"`
	Quantities     []Weight     `yaml:"quantities"`
	GlucoseLevels  []Weight     `yaml:"glucose_levels"`
	Medications    []Medication `yaml:"medications"`
	DietaryCarbs   []Weight     `yaml:"dietary_carbs"`
	Concepts       []Concept    `yaml:"concepts"`
	Rules          []Rule       `yaml:"rules"`
	ChatDefault    string       `yaml:"chat_default"`
	ChatReplies    []ChatReply  `yaml:"chat_replies"`
}

// Default returns the tables embedded in the binary.
func Default() (*Tables, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub)
}

// MustDefault is like Default but panics on error. The embedded tables are
// covered by tests, so this only fails on a broken build.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded tables: %v", err))
	}
	return t
}

// Load reads tables.yaml and topics/*.md from dir.
func Load(dir string) (*Tables, error) {
	return LoadFS(os.DirFS(dir))
}

// LoadFS reads tables.yaml and every markdown topic file under topics/.
func LoadFS(fsys fs.FS) (*Tables, error) {
	raw, err := fs.ReadFile(fsys, tablesFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", tablesFile, err)
	}

	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", tablesFile, err)
	}

	topics, err := LoadTopics(fsys, topicsDir)
	if err != nil {
		return nil, err
	}
	t.Topics = topics

	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks the invariants the consumers rely on.
func (t *Tables) Validate() error {
	var errs []error
	if strings.TrimSpace(t.DefaultAnswer) == "" {
		errs = append(errs, errors.New("default_answer is required"))
	}
	seen := make(map[string]bool, len(t.Topics))
	for _, topic := range t.Topics {
		if seen[topic.Key] {
			errs = append(errs, fmt.Errorf("duplicate topic %q", topic.Key))
		}
		seen[topic.Key] = true
	}
	for _, f := range t.Foods {
		if f.Carbs < 0 || f.Protein < 0 || f.Fats < 0 {
			errs = append(errs, fmt.Errorf("food %q has negative macronutrients", f.Name))
		}
	}
	for _, m := range slices.Concat(t.Spelling, t.Slang, t.Numbers) {
		if m.From == "" || m.To == "" {
			errs = append(errs, fmt.Errorf("mapping %q -> %q has an empty side", m.From, m.To))
		}
	}
	return errors.Join(errs...)
}

// Topic returns the topic with the given key.
func (t *Tables) Topic(key string) (Topic, bool) {
	for _, topic := range t.Topics {
		if topic.Key == key {
			return topic, true
		}
	}
	return Topic{}, false
}
