package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/observability"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/types"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>...",
	Short: "Recommend assessments for several job description files",
	Long: `Run one recommendation per job description file, several at a time.

Each file is an independent request; a failure in one does not stop the others.
Results are printed in argument order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

var (
	batchParallel int
	batchJSON     bool
)

func init() {
	batchCmd.Flags().IntVarP(&batchParallel, "parallel", "p", defaultParallel, "Maximum concurrent Gemini requests")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "Print results as a JSON array")
	rootCmd.AddCommand(batchCmd)
}

// BatchResult is the outcome of one job description file.
type BatchResult struct {
	Source                 string                 `json:"source"`
	RecommendedAssessments []types.Recommendation `json:"recommended_assessments"`
	Error                  string                 `json:"error,omitempty"`

	extraction recommend.Extraction
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Parallel = batchParallel
	}
	if cfg, err = finalizeConfig(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := recommendAll(ctx, cfg, args)
	if err != nil {
		return err
	}

	if err := printBatch(cmd.OutOrStdout(), results, batchJSON); err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d job descriptions failed", failed, len(results))
	}
	return nil
}

// recommendAll runs one recommendation per file with at most cfg.Parallel in
// flight. Per-file failures are recorded in the result, not returned.
func recommendAll(ctx context.Context, cfg config.Config, files []string) ([]BatchResult, error) {
	recommender := newRecommender(cfg)
	results := make([]BatchResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Parallel, 1))

	for i, file := range files {
		g.Go(func() error {
			res := BatchResult{Source: file, RecommendedAssessments: []types.Recommendation{}}
			defer func() { results[i] = res }()

			query, err := ingestion.ReadQueryFile(file)
			if err != nil {
				res.Error = err.Error()
				return nil
			}

			out, err := recommender.Recommend(ctx, query)
			if err != nil {
				res.Error = err.Error()
				return nil
			}
			if cfg.Verbose {
				log.Printf("[VERBOSE] %s: %d recommendations", file, len(out.Recommendations))
			}

			res.extraction = out.Extraction
			res.RecommendedAssessments = nonNil(out.Recommendations)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

//nolint:errcheck // writing to stdout; errors are not recoverable
func printBatch(out io.Writer, results []BatchResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printer := observability.NewPrinter(out)
	for i, res := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", res.Source)
		switch {
		case res.Error != "":
			fmt.Fprintf(out, "Error: %s\n", res.Error)
		case len(res.RecommendedAssessments) == 0:
			printer.PrintExtractionWarning(res.extraction)
		default:
			printer.PrintRecommendations(res.RecommendedAssessments)
		}
	}
	return nil
}
