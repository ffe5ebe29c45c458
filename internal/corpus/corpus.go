// Package corpus builds the unified question/answer corpus from heterogeneous
// tabular sources and exposes it read-only.
package corpus

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"

	"diabetes-ai/internal/contextutil"
)

// Record is a canonical question/answer pair and the source it came from.
type Record struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Source   string `json:"source" yaml:"source"`
}

// Load status of a source.
const (
	StatusLoaded      = "loaded"
	StatusEmpty       = "empty"
	StatusUnavailable = "unavailable"
)

// SourceMetadata describes how a source was loaded. It is diagnostic only.
type SourceMetadata struct {
	Name       string     `json:"name" yaml:"name"`
	File       string     `json:"file" yaml:"file"`
	Status     string     `json:"status" yaml:"status"`
	Records    int        `json:"records" yaml:"records"`
	Columns    []string   `json:"columns" yaml:"columns"`
	Resolution Resolution `json:"resolution" yaml:"resolution"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// Source names a table file and the tag its records carry.
type Source struct {
	File string
	Name string
}

// DefaultSources are the table files looked up in the data directory, in
// corpus order.
var DefaultSources = []Source{
	{File: "data_general.csv", Name: "general"},
	{File: "data_medical.csv", Name: "medical"},
	{File: "ChatDoctor_HealthCareMagic_train.csv", Name: "healthcare"},
	{File: "DiabetesQA_train.csv", Name: "diabetes_qa"},
	{File: "diabetes_qa_train.csv", Name: "diabetes_qa_v2"},
	{File: "medicine_qa_diabetes_train.csv", Name: "medicine_qa"},
	{File: "train.csv", Name: "generic_train"},
}

// Corpus is the concatenation of every normalized source. It is immutable
// after Build and safe for concurrent readers.
type Corpus struct {
	records  []Record
	metadata []SourceMetadata
	tables   map[string]Table
}

// Records returns the corpus in insertion order. Callers must not modify it.
func (c *Corpus) Records() []Record {
	if c == nil {
		return nil
	}
	return c.records
}

// Len returns the number of records.
func (c *Corpus) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Metadata returns one entry per source, loaded or not, in load order.
func (c *Corpus) Metadata() []SourceMetadata {
	if c == nil {
		return nil
	}
	return c.metadata
}

// Table returns the raw table of a loaded source.
func (c *Corpus) Table(name string) (Table, bool) {
	if c == nil {
		return Table{}, false
	}
	t, ok := c.tables[name]
	return t, ok
}

// Builder accumulates sources into a Corpus.
type Builder struct {
	aliases  AliasTable
	records  []Record
	metadata []SourceMetadata
	tables   map[string]Table
}

// NewBuilder creates a Builder that resolves columns with aliases.
func NewBuilder(aliases AliasTable) *Builder {
	return &Builder{aliases: aliases, tables: make(map[string]Table)}
}

// Add normalizes t and appends its records. A source that yields no records
// is recorded as empty and contributes nothing.
func (b *Builder) Add(name, file string, t Table) SourceMetadata {
	records, res := b.aliases.Normalize(t, name)
	meta := SourceMetadata{
		Name:       name,
		File:       file,
		Status:     StatusLoaded,
		Records:    len(records),
		Columns:    t.Columns,
		Resolution: res,
	}
	if len(records) == 0 {
		meta.Status = StatusEmpty
	} else {
		b.records = append(b.records, records...)
		b.tables[name] = t
	}
	b.metadata = append(b.metadata, meta)
	return meta
}

// AddUnavailable records a source that could not be read.
func (b *Builder) AddUnavailable(name, file string, err error) SourceMetadata {
	meta := SourceMetadata{Name: name, File: file, Status: StatusUnavailable}
	if err != nil {
		meta.Error = err.Error()
	}
	b.metadata = append(b.metadata, meta)
	return meta
}

// Build returns the finished corpus. The builder must not be used afterwards.
func (b *Builder) Build() *Corpus {
	return &Corpus{records: b.records, metadata: b.metadata, tables: b.tables}
}

// LoadDir loads every source from dir. Missing or unreadable files are
// logged and skipped; LoadDir never fails.
func LoadDir(ctx context.Context, dir string, sources []Source) *Corpus {
	logger := contextutil.LoggerFromContext(ctx)
	b := NewBuilder(DefaultAliases)

	for _, src := range sources {
		path := filepath.Join(dir, src.File)
		t, err := LoadCSV(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				logger.WarnContext(ctx, "corpus source not found", "source", src.Name, "path", path)
			} else {
				logger.WarnContext(ctx, "failed to load corpus source", "source", src.Name, "path", path, "error", err)
			}
			b.AddUnavailable(src.Name, src.File, err)
			continue
		}

		meta := b.Add(src.Name, src.File, t)
		logger.InfoContext(ctx, "corpus source loaded",
			"source", meta.Name,
			"records", meta.Records,
			"question_column", meta.Resolution.QuestionColumn,
			"answer_column", meta.Resolution.AnswerColumn,
		)
	}

	c := b.Build()
	logger.InfoContext(ctx, "corpus built", "records", c.Len(), "sources", len(c.tables))
	return c
}
