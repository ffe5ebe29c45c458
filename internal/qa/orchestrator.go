// Package qa answers free-text questions by running an ordered chain of
// retrieval strategies over the builtin topics and the question corpus.
package qa

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"diabetes-ai/internal/contextutil"
	"diabetes-ai/internal/fuzzy"
	"diabetes-ai/internal/knowledge"
)

// DefaultThreshold is the similarity threshold used by Answer.
const DefaultThreshold = 0.35

// MatchResult is the answer chosen for a query.
type MatchResult struct {
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	Source          string  `json:"source"`
	MatchedQuestion string  `json:"matched_question,omitempty"`
}

// Orchestrator runs the strategy chain. It holds no mutable state besides
// the optional answer cache and is safe for concurrent use.
type Orchestrator struct {
	tables     *knowledge.Tables
	strategies []Strategy
	threshold  float64
	cache      *expirable.LRU[string, MatchResult]
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithThreshold sets the threshold used by Answer.
func WithThreshold(threshold float64) Option {
	return func(o *Orchestrator) { o.threshold = threshold }
}

// WithStrategies replaces the default chain.
func WithStrategies(strategies ...Strategy) Option {
	return func(o *Orchestrator) { o.strategies = strategies }
}

// WithCache caches answers in an LRU of size entries expiring after ttl.
// A size <= 0 disables caching.
func WithCache(size int, ttl time.Duration) Option {
	return func(o *Orchestrator) {
		if size <= 0 {
			o.cache = nil
			return
		}
		o.cache = expirable.NewLRU[string, MatchResult](size, nil, ttl)
	}
}

// New creates an Orchestrator with the default chain over s and src.
func New(tables *knowledge.Tables, s Searcher, src TableSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		tables:    tables,
		threshold: DefaultThreshold,
	}
	o.strategies = DefaultChain(tables, s, src)
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Answer answers query with the configured threshold.
func (o *Orchestrator) Answer(ctx context.Context, query string) MatchResult {
	return o.AnswerWithThreshold(ctx, query, o.threshold)
}

// AnswerWithThreshold runs the chain with a caller-supplied threshold. The
// result always carries an answer and a source; confidence is rounded to two
// decimals.
func (o *Orchestrator) AnswerWithThreshold(ctx context.Context, query string, threshold float64) MatchResult {
	logger := contextutil.LoggerFromContext(ctx)

	key := cacheKey(query, threshold)
	if o.cache != nil {
		if cached, ok := o.cache.Get(key); ok {
			logger.DebugContext(ctx, "answer cache hit", "source", cached.Source)
			return cached
		}
	}

	q := newQuery(query, threshold)
	var best MatchResult
	for _, s := range o.strategies {
		if best.Confidence >= s.Floor {
			continue
		}

		result, ok := s.Run(ctx, q, best)
		if !ok {
			continue
		}
		logger.DebugContext(ctx, "strategy matched", "strategy", s.Name, "confidence", result.Confidence)
		if result.Confidence > best.Confidence {
			best = result
		}
		if s.ShortCircuit {
			break
		}
	}

	best.Confidence = round2(best.Confidence)
	logger.InfoContext(ctx, "question answered", "source", best.Source, "confidence", best.Confidence)

	if o.cache != nil {
		o.cache.Add(key, best)
	}
	return best
}

// RelatedTopics returns up to three topic keys related to query: for each
// topic the query mentions, every other topic not listed yet.
func (o *Orchestrator) RelatedTopics(query string) []string {
	return RelatedTopics(o.tables.Topics, query)
}

// RelatedTopics is the table-driven form of Orchestrator.RelatedTopics.
func RelatedTopics(topics []knowledge.Topic, query string) []string {
	const limit = 3
	folded := fuzzy.Fold(query)
	related := []string{}
	seen := map[string]bool{}
	for _, topic := range topics {
		if !topicMatches(topic, folded) {
			continue
		}
		for _, other := range topics {
			if other.Key == topic.Key || seen[other.Key] {
				continue
			}
			seen[other.Key] = true
			related = append(related, other.Key)
			if len(related) == limit {
				return related
			}
		}
	}
	return related
}

// Question types.
const (
	TypeSymptoms = "síntomas"
	TypeFood     = "alimentación"
	TypeExercise = "ejercicio"
	TypeGeneral  = "general"
)

var questionTypes = []struct {
	kind  string
	words []string
}{
	{kind: TypeSymptoms, words: []string{"sintoma", "senal", "signo"}},
	{kind: TypeFood, words: []string{"comida", "alimento", "comer", "puedo"}},
	{kind: TypeExercise, words: []string{"ejercicio", "deporte", "actividad", "fisica"}},
}

// QuestionType classifies query by its vocabulary.
func QuestionType(query string) string {
	folded := fuzzy.Fold(query)
	for _, qt := range questionTypes {
		for _, w := range qt.words {
			if strings.Contains(folded, w) {
				return qt.kind
			}
		}
	}
	return TypeGeneral
}

func cacheKey(query string, threshold float64) string {
	return fmt.Sprintf("%.4f|%s", threshold, strings.ToLower(query))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
