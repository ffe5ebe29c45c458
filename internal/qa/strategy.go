package qa

import (
	"context"
	"strings"

	"diabetes-ai/internal/corpus"
	"diabetes-ai/internal/fuzzy"
	"diabetes-ai/internal/knowledge"
	"diabetes-ai/internal/search"
)

// Source tags reported in MatchResult.Source.
const (
	SourceBuiltin      = "builtin_local"
	SourceCorpusPrefix = "corpus_"
	SourceGeneralCSV   = "general_csv"
	SourceGeneralTags  = "general_tags"
	SourceMedicalCSV   = "medical_csv"
	SourceDefault      = "default"
)

// Fixed confidences.
const (
	BuiltinConfidence = 0.95
	TagConfidence     = 0.75
	DefaultConfidence = 0.3
)

// Query is the question as seen by strategies.
type Query struct {
	Text      string
	Lower     string
	Folded    string
	Threshold float64
}

func newQuery(text string, threshold float64) Query {
	return Query{
		Text:      text,
		Lower:     strings.ToLower(text),
		Folded:    fuzzy.Fold(text),
		Threshold: threshold,
	}
}

// Strategy is one link of the retrieval chain. Run is only called while
// the best confidence so far is below Floor. A returned result replaces the
// best only when its confidence is strictly higher. When a ShortCircuit
// strategy returns a result the chain stops.
type Strategy struct {
	Name         string
	Floor        float64
	ShortCircuit bool
	Run          func(ctx context.Context, q Query, best MatchResult) (MatchResult, bool)
}

// Searcher ranks the unified corpus.
type Searcher interface {
	Search(ctx context.Context, query string, threshold float64, topK int) []search.Result
}

// TableSource gives access to raw source tables by name.
type TableSource interface {
	Table(name string) (corpus.Table, bool)
}

// BuiltinStrategy matches the parts of each topic key against the query,
// ignoring case and accents. Topics are tried in order.
func BuiltinStrategy(topics []knowledge.Topic) Strategy {
	return Strategy{
		Name:         SourceBuiltin,
		Floor:        1.0,
		ShortCircuit: true,
		Run: func(_ context.Context, q Query, _ MatchResult) (MatchResult, bool) {
			topic, ok := MatchTopic(topics, q.Folded)
			if !ok {
				return MatchResult{}, false
			}
			return MatchResult{
				Answer:          topic.Format(),
				Confidence:      BuiltinConfidence,
				Source:          SourceBuiltin,
				MatchedQuestion: topic.Key,
			}, true
		},
	}
}

// MatchTopic returns the first topic with a key part contained in the
// folded query.
func MatchTopic(topics []knowledge.Topic, folded string) (knowledge.Topic, bool) {
	for _, topic := range topics {
		if topicMatches(topic, folded) {
			return topic, true
		}
	}
	return knowledge.Topic{}, false
}

func topicMatches(topic knowledge.Topic, folded string) bool {
	for _, kw := range topic.Keywords() {
		if kw != "" && strings.Contains(folded, fuzzy.Fold(kw)) {
			return true
		}
	}
	return false
}

// CorpusStrategy takes the best of the top 3 corpus matches.
func CorpusStrategy(s Searcher, floor float64) Strategy {
	return Strategy{
		Name:  "corpus",
		Floor: floor,
		Run: func(ctx context.Context, q Query, _ MatchResult) (MatchResult, bool) {
			results := s.Search(ctx, q.Text, q.Threshold, 3)
			if len(results) == 0 {
				return MatchResult{}, false
			}
			top := results[0]
			return MatchResult{
				Answer:          top.Answer,
				Confidence:      top.Similarity,
				Source:          SourceCorpusPrefix + top.Source,
				MatchedQuestion: top.Question,
			}, true
		},
	}
}

// TableSpec describes a per-table similarity pass.
type TableSpec struct {
	Table          string
	QuestionColumn string
	AnswerColumn   string
	Source         string
	Floor          float64
	// Threshold overrides the query threshold when positive.
	Threshold float64
}

// TableStrategy scans one raw table row by row. A row wins when its ratio
// beats both the threshold and the best confidence so far.
func TableStrategy(src TableSource, spec TableSpec) Strategy {
	return Strategy{
		Name:  spec.Source,
		Floor: spec.Floor,
		Run: func(_ context.Context, q Query, best MatchResult) (MatchResult, bool) {
			t, ok := src.Table(spec.Table)
			if !ok {
				return MatchResult{}, false
			}
			qi, ai := t.Column(spec.QuestionColumn), t.Column(spec.AnswerColumn)
			if qi < 0 || ai < 0 {
				return MatchResult{}, false
			}
			threshold := q.Threshold
			if spec.Threshold > 0 {
				threshold = spec.Threshold
			}

			var found MatchResult
			score := best.Confidence
			for _, row := range t.Rows {
				question, answer := corpus.Cell(row, qi), corpus.Cell(row, ai)
				if question == "" || answer == "" {
					continue
				}
				sim := fuzzy.Ratio(q.Lower, strings.ToLower(question))
				if sim > score && sim > threshold {
					score = sim
					found = MatchResult{
						Answer:          answer,
						Confidence:      sim,
						Source:          spec.Source,
						MatchedQuestion: question,
					}
				}
			}
			return found, found.Answer != ""
		},
	}
}

// TagSpec describes the keyword/tag pass.
type TagSpec struct {
	Table          string
	TagColumn      string
	QuestionColumn string
	AnswerColumn   string
	Keywords       []string
	Floor          float64
}

// TagStrategy looks, for each domain keyword present in the query, for the
// first row whose tags contain it. Rows with malformed tag lists are
// ignored.
func TagStrategy(src TableSource, spec TagSpec) Strategy {
	return Strategy{
		Name:  SourceGeneralTags,
		Floor: spec.Floor,
		Run: func(_ context.Context, q Query, _ MatchResult) (MatchResult, bool) {
			t, ok := src.Table(spec.Table)
			if !ok {
				return MatchResult{}, false
			}
			ti, ai := t.Column(spec.TagColumn), t.Column(spec.AnswerColumn)
			if ti < 0 || ai < 0 {
				return MatchResult{}, false
			}
			qi := t.Column(spec.QuestionColumn)

			for _, kw := range spec.Keywords {
				if !strings.Contains(q.Lower, kw) {
					continue
				}
				for _, row := range t.Rows {
					answer := corpus.Cell(row, ai)
					if answer == "" {
						continue
					}
					tags, err := corpus.Tags(corpus.Cell(row, ti))
					if err != nil {
						continue
					}
					for _, tag := range tags {
						if strings.Contains(strings.ToLower(tag), kw) {
							return MatchResult{
								Answer:          answer,
								Confidence:      TagConfidence,
								Source:          SourceGeneralTags,
								MatchedQuestion: corpus.Cell(row, qi),
							}, true
						}
					}
				}
			}
			return MatchResult{}, false
		},
	}
}

// DefaultStrategy answers with the deflection text when nothing else did.
func DefaultStrategy(answer string) Strategy {
	return Strategy{
		Name:  SourceDefault,
		Floor: 1.0,
		Run: func(_ context.Context, _ Query, best MatchResult) (MatchResult, bool) {
			if best.Answer != "" {
				return MatchResult{}, false
			}
			return MatchResult{Answer: answer, Confidence: DefaultConfidence, Source: SourceDefault}, true
		},
	}
}

// DefaultChain is the standard strategy order: builtin topics, unified
// corpus, general table, general tags, medical table, deflection.
func DefaultChain(tables *knowledge.Tables, s Searcher, src TableSource) []Strategy {
	return []Strategy{
		BuiltinStrategy(tables.Topics),
		CorpusStrategy(s, 0.8),
		TableStrategy(src, TableSpec{
			Table:          "general",
			QuestionColumn: "short_question",
			AnswerColumn:   "short_answer",
			Source:         SourceGeneralCSV,
			Floor:          0.8,
		}),
		TagStrategy(src, TagSpec{
			Table:          "general",
			TagColumn:      "tags",
			QuestionColumn: "short_question",
			AnswerColumn:   "short_answer",
			Keywords:       tables.DomainKeywords,
			Floor:          0.6,
		}),
		TableStrategy(src, TableSpec{
			Table:          "medical",
			QuestionColumn: "input",
			AnswerColumn:   "output",
			Source:         SourceMedicalCSV,
			Floor:          0.7,
		}),
		DefaultStrategy(tables.DefaultAnswer),
	}
}
