package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"diabetes-ai/internal/corpus"
	"diabetes-ai/internal/dose"
	"diabetes-ai/internal/medical"
	"diabetes-ai/internal/nlp"
	"diabetes-ai/internal/qa"
	"diabetes-ai/internal/search"
	"diabetes-ai/internal/service"
)

func newAskCmd(a *app) *cobra.Command {
	var threshold float64

	cmd := &cobra.Command{
		Use:   "ask QUESTION",
		Short: "Answer a question from the topics, the corpus and the tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewAssistantService(service.AssistantDeps{
				Answerer:  qa.New(a.tables, a.engine, a.corpus),
				Threshold: a.threshold,
			})
			resp, err := svc.Ask(cmd.Context(), service.AskRequest{
				Question:  strings.Join(args, " "),
				Threshold: threshold,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.outputJSON {
				return printJSON(out, resp)
			}
			fmt.Fprintln(out, resp.Answer)
			fmt.Fprintf(out, "\n[%s · confianza %.2f · %s]\n", resp.Source, resp.Confidence, resp.QuestionType)
			if resp.MatchedQuestion != "" {
				fmt.Fprintf(out, "Pregunta similar: %s\n", resp.MatchedQuestion)
			}
			if len(resp.RelatedTopics) > 0 {
				fmt.Fprintf(out, "Temas relacionados: %s\n", strings.Join(resp.RelatedTopics, ", "))
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0, "similarity threshold for corpus matches (default: SEARCH_THRESHOLD)")
	return cmd
}

func newExtractCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract DESCRIPTION",
		Short: "Read exercise, food and glucose from a description and estimate a dose",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewAssistantService(service.AssistantDeps{
				Extractor: nlp.NewProcessor(a.tables),
				Predictor: dose.RulePredictor{},
				Advisor:   medical.New(a.tables),
				Tables:    a.tables,
			})
			resp, err := svc.Parse(cmd.Context(), service.ParseRequest{Description: strings.Join(args, " ")})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if a.outputJSON {
				return printJSON(out, resp)
			}
			for _, line := range resp.Interpretations {
				fmt.Fprintln(out, line)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, resp.Message)
			fmt.Fprintf(out, "Rango: %s unidades\n", resp.Range)
			if resp.Analysis != "" {
				fmt.Fprintf(out, "\n%s\n", resp.Analysis)
			}
			if resp.MedicalContext != "" {
				fmt.Fprintf(out, "\n%s\n", resp.MedicalContext)
			}
			fmt.Fprintf(out, "\n%s\n", service.Disclaimer)
			return nil
		},
	}
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var (
		threshold float64
		topK      int
		keywords  bool
	)

	cmd := &cobra.Command{
		Use:   "search QUERY...",
		Short: "Rank corpus records by similarity, or by keyword overlap with --keywords",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var results []search.Result
			if keywords {
				if topK <= 0 {
					topK = search.DefaultKeywordTopK
				}
				results = a.engine.SearchByKeywords(args, topK)
			} else {
				if topK <= 0 {
					topK = search.DefaultTopK
				}
				results = a.engine.Search(cmd.Context(), strings.Join(args, " "), threshold, topK)
			}

			out := cmd.OutOrStdout()
			if a.outputJSON {
				if results == nil {
					results = []search.Result{}
				}
				return printJSON(out, results)
			}
			if len(results) == 0 {
				fmt.Fprintln(out, "Sin resultados")
				return nil
			}
			for i, r := range results {
				if keywords {
					fmt.Fprintf(out, "%d. [%s] (%d coincidencias) %s\n", i+1, r.Source, r.KeywordMatches, r.Question)
				} else {
					fmt.Fprintf(out, "%d. [%s] (%.3f) %s\n", i+1, r.Source, r.Similarity, r.Question)
				}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", search.DefaultThreshold, "minimum similarity, exclusive")
	cmd.Flags().IntVarP(&topK, "top-k", "k", 0, "maximum number of results")
	cmd.Flags().BoolVar(&keywords, "keywords", false, "treat each argument as a keyword")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show per-source load status and the corpus breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stats := a.corpus.Statistics()
			breakdown := a.corpus.Breakdown()

			out := cmd.OutOrStdout()
			if a.outputJSON {
				return printJSON(out, struct {
					corpus.Statistics
					Breakdown map[string]corpus.SourceShare `json:"breakdown"`
				}{stats, breakdown})
			}

			fmt.Fprintf(out, "Registros: %d\nFuentes: %d\n\n", stats.TotalRecords, stats.UniqueSources)
			for _, m := range stats.Sources {
				line := fmt.Sprintf("%-16s %-12s %6d  %s", m.Name, m.Status, m.Records, m.File)
				if m.Status == corpus.StatusLoaded {
					line += fmt.Sprintf("  (%s / %s)", m.Resolution.QuestionColumn, m.Resolution.AnswerColumn)
				}
				fmt.Fprintln(out, line)
			}

			if len(breakdown) > 0 {
				fmt.Fprintln(out)
				names := make([]string, 0, len(breakdown))
				for name := range breakdown {
					names = append(names, name)
				}
				slices.Sort(names)
				for _, name := range names {
					share := breakdown[name]
					fmt.Fprintf(out, "%-16s %6d  %6.2f%%\n", name, share.Count, share.Percentage)
				}
			}
			return nil
		},
	}
}

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		sample int
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the corpus metadata and a sample of questions as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var write func(corpus.Snapshot, io.Writer) error
			switch strings.ToLower(format) {
			case "json":
				write = corpus.Snapshot.WriteJSON
			case "yaml", "yml":
				write = corpus.Snapshot.WriteYAML
			default:
				return fmt.Errorf("unknown format %q: use json or yaml", format)
			}
			snapshot := a.corpus.Snapshot(sample)

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("create %s: %w", output, err)
				}
				defer func() {
					_ = f.Close()
				}()
				w = f
			}

			return write(snapshot, w)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().IntVar(&sample, "sample", corpus.DefaultSampleSize, "number of sample questions")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}
