// Command diabetesctl queries the diabetes knowledge base and inspects the
// corpus from the command line.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"diabetes-ai/internal/config"
	"diabetes-ai/internal/corpus"
	"diabetes-ai/internal/knowledge"
	"diabetes-ai/internal/search"
)

// app holds what the subcommands share. It is filled by the root command's
// PersistentPreRunE.
type app struct {
	dataDir      string
	knowledgeDir string
	workers      int
	threshold    float64
	outputJSON   bool
	verbose      bool

	tables *knowledge.Tables
	corpus *corpus.Corpus
	engine *search.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "diabetesctl",
		Short: "Query the diabetes knowledge base and inspect its corpus",
		Long: `diabetesctl answers diabetes questions, reads Spanish meal and exercise
descriptions and inspects the question/answer corpus built from the CSV
sources in the data directory.

Defaults come from the same environment variables as the API server
(DATA_DIR, KNOWLEDGE_DIR, SEARCH_THRESHOLD, SEARCH_WORKERS).`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "directory with the corpus CSV files (default: DATA_DIR)")
	cmd.PersistentFlags().StringVar(&a.knowledgeDir, "knowledge", "", "directory overriding the embedded knowledge tables (default: KNOWLEDGE_DIR)")
	cmd.PersistentFlags().BoolVar(&a.outputJSON, "json", false, "output in JSON format")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log corpus loading to stderr")

	cmd.AddCommand(newAskCmd(a))
	cmd.AddCommand(newExtractCmd(a))
	cmd.AddCommand(newSearchCmd(a))
	cmd.AddCommand(newStatsCmd(a))
	cmd.AddCommand(newExportCmd(a))
	return cmd
}

// load reads the configuration, then the tables and the corpus. Flags win
// over the environment.
func (a *app) load(cmd *cobra.Command) error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.dataDir == "" {
		a.dataDir = cfg.DataDir
	}
	if a.knowledgeDir == "" {
		a.knowledgeDir = cfg.KnowledgeDir
	}
	a.workers = cfg.SearchWorkers
	a.threshold = cfg.SearchThreshold

	if a.knowledgeDir != "" {
		a.tables, err = knowledge.Load(a.knowledgeDir)
	} else {
		a.tables, err = knowledge.Default()
	}
	if err != nil {
		return fmt.Errorf("load knowledge tables: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.corpus = corpus.LoadDir(ctx, a.dataDir, corpus.DefaultSources)
	a.engine = search.NewEngine(a.corpus, a.workers)
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
