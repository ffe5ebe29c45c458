package corpus

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"math"

	"gopkg.in/yaml.v3"
)

// DefaultSampleSize is the number of questions included in a snapshot.
const DefaultSampleSize = 100

// Statistics summarizes the corpus build.
type Statistics struct {
	// TotalRecords is the number of records in the unified corpus.
	TotalRecords int `json:"total_records" yaml:"total_records"`
	// LoadedFiles lists the files that contributed records, in load order.
	LoadedFiles []string `json:"loaded_files" yaml:"loaded_files"`
	// UniqueSources is the number of sources that contributed records.
	UniqueSources int `json:"unique_sources" yaml:"unique_sources"`
	// Sources has one entry per configured source, including failed ones.
	Sources []SourceMetadata `json:"sources" yaml:"sources"`
}

// SourceShare is the weight of one source in the corpus.
type SourceShare struct {
	Count      int     `json:"count" yaml:"count"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
}

// Snapshot is a serializable view of the index for external inspection.
type Snapshot struct {
	Metadata     Statistics `json:"metadata" yaml:"metadata"`
	TotalEntries int        `json:"total_entries" yaml:"total_entries"`
	IndexVersion string     `json:"index_version" yaml:"index_version"`
	Sample       []string   `json:"sample_questions" yaml:"sample_questions"`
}

// Statistics returns the build summary.
func (c *Corpus) Statistics() Statistics {
	stats := Statistics{TotalRecords: c.Len(), LoadedFiles: []string{}, Sources: c.Metadata()}
	for _, m := range c.Metadata() {
		if m.Status == StatusLoaded {
			stats.LoadedFiles = append(stats.LoadedFiles, m.File)
			stats.UniqueSources++
		}
	}
	return stats
}

// Breakdown returns the record count and percentage (two decimals) per
// source tag.
func (c *Corpus) Breakdown() map[string]SourceShare {
	counts := make(map[string]int)
	for _, r := range c.Records() {
		counts[r.Source]++
	}

	total := c.Len()
	breakdown := make(map[string]SourceShare, len(counts))
	for source, n := range counts {
		breakdown[source] = SourceShare{
			Count:      n,
			Percentage: round(float64(n)/float64(total)*100, 2),
		}
	}
	return breakdown
}

// Snapshot returns the metadata plus the first sample questions. A sample
// size <= 0 uses DefaultSampleSize.
func (c *Corpus) Snapshot(sample int) Snapshot {
	if sample <= 0 {
		sample = DefaultSampleSize
	}
	records := c.Records()
	if sample > len(records) {
		sample = len(records)
	}

	questions := make([]string, sample)
	for i := range questions {
		questions[i] = records[i].Question
	}

	return Snapshot{
		Metadata:     c.Statistics(),
		TotalEntries: c.Len(),
		IndexVersion: c.Version(),
		Sample:       questions,
	}
}

// Version hashes the corpus content so two builds can be compared.
func (c *Corpus) Version() string {
	h := sha256.New()
	for _, r := range c.Records() {
		_, _ = io.WriteString(h, r.Source)
		_, _ = h.Write([]byte{0})
		_, _ = io.WriteString(h, r.Question)
		_, _ = h.Write([]byte{0})
		_, _ = io.WriteString(h, r.Answer)
		_, _ = h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// WriteJSON writes s as indented JSON.
func (s Snapshot) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteYAML writes s as YAML.
func (s Snapshot) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return err
	}
	return enc.Close()
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
