// Package search ranks corpus records against a query by character-sequence
// similarity or keyword overlap.
package search

import (
	"context"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"diabetes-ai/internal/corpus"
	"diabetes-ai/internal/fuzzy"
)

// Defaults applied by the Engine convenience methods.
const (
	DefaultThreshold   = 0.3
	DefaultTopK        = 5
	DefaultKeywordTopK = 10
)

// Result is one ranked record. Index is the record's position in the corpus.
type Result struct {
	corpus.Record
	Similarity     float64 `json:"similarity"`
	KeywordMatches int     `json:"keyword_matches,omitempty"`
	Index          int     `json:"index"`
}

// Search scores every record against query and returns the topK whose
// similarity is strictly greater than threshold, best first. Equal scores
// keep corpus order.
func Search(query string, records []corpus.Record, threshold float64, topK int) []Result {
	return parallelSearch(context.Background(), query, records, threshold, topK, 1)
}

// ParallelSearch is Search with scoring spread over up to workers goroutines.
// The result is identical to Search for any worker count. A cancelled ctx
// yields no results.
func ParallelSearch(ctx context.Context, query string, records []corpus.Record, threshold float64, topK, workers int) []Result {
	return parallelSearch(ctx, query, records, threshold, topK, workers)
}

func parallelSearch(ctx context.Context, query string, records []corpus.Record, threshold float64, topK, workers int) []Result {
	if topK <= 0 || len(records) == 0 {
		return nil
	}
	q := strings.ToLower(query)
	scores := make([]float64, len(records))

	if workers <= 1 {
		for i, r := range records {
			scores[i] = fuzzy.Ratio(q, strings.ToLower(r.Question))
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(workers)
		for _, span := range partition(len(records), workers) {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i := span[0]; i < span[1]; i++ {
					scores[i] = fuzzy.Ratio(q, strings.ToLower(records[i].Question))
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil
		}
	}

	var results []Result
	for i, s := range scores {
		if s > threshold {
			results = append(results, Result{Record: records[i], Similarity: s, Index: i})
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		switch {
		case a.Similarity > b.Similarity:
			return -1
		case a.Similarity < b.Similarity:
			return 1
		}
		return a.Index - b.Index
	})
	return truncate(results, topK)
}

// SearchByKeywords ranks records by how many of keywords occur, case
// insensitively, in their question or answer. Records without any keyword
// are dropped; equal counts keep corpus order.
func SearchByKeywords(keywords []string, records []corpus.Record, topK int) []Result {
	if topK <= 0 || len(records) == 0 {
		return nil
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}

	var results []Result
	for i, r := range records {
		question := strings.ToLower(r.Question)
		answer := strings.ToLower(r.Answer)
		matches := 0
		for _, kw := range lowered {
			if strings.Contains(question, kw) || strings.Contains(answer, kw) {
				matches++
			}
		}
		if matches > 0 {
			results = append(results, Result{Record: r, KeywordMatches: matches, Index: i})
		}
	}
	slices.SortStableFunc(results, func(a, b Result) int {
		if a.KeywordMatches != b.KeywordMatches {
			return b.KeywordMatches - a.KeywordMatches
		}
		return a.Index - b.Index
	})
	return truncate(results, topK)
}

// partition splits n items into at most parts contiguous [start, end) spans.
func partition(n, parts int) [][2]int {
	if parts > n {
		parts = n
	}
	spans := make([][2]int, 0, parts)
	size, rem := n/parts, n%parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < rem {
			end++
		}
		spans = append(spans, [2]int{start, end})
		start = end
	}
	return spans
}

func truncate(results []Result, topK int) []Result {
	if len(results) > topK {
		return results[:topK]
	}
	return results
}

// Engine binds the search functions to a corpus.
type Engine struct {
	corpus  *corpus.Corpus
	workers int
}

// NewEngine creates an Engine over c. workers <= 1 scores sequentially.
func NewEngine(c *corpus.Corpus, workers int) *Engine {
	return &Engine{corpus: c, workers: workers}
}

// Search ranks the corpus against query.
func (e *Engine) Search(ctx context.Context, query string, threshold float64, topK int) []Result {
	return parallelSearch(ctx, query, e.corpus.Records(), threshold, topK, e.workers)
}

// SearchByKeywords ranks the corpus by keyword overlap.
func (e *Engine) SearchByKeywords(keywords []string, topK int) []Result {
	return SearchByKeywords(keywords, e.corpus.Records(), topK)
}

// Corpus returns the corpus the engine searches.
func (e *Engine) Corpus() *corpus.Corpus {
	return e.corpus
}
