package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/observability"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/types"
	"github.com/spf13/cobra"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend [job description]",
	Short: "Recommend assessments for a job description",
	Long: `Ask Gemini for up to ten assessments that fit a job description and print them as a table.

The job description comes from the arguments, --file, --url or --sample; exactly one source is allowed.
Results are filtered by --test-type (any of) and --max-duration before display.`,
	RunE: runRecommend,
}

var (
	recFile        string
	recURL         string
	recSample      int
	recTestTypes   []string
	recMaxDuration int
	recRaw         bool
	recJSON        bool
)

func init() {
	recommendCmd.Flags().StringVarP(&recFile, "file", "f", "", "Path to text file containing the job description")
	recommendCmd.Flags().StringVarP(&recURL, "url", "u", "", "URL of a job posting to scrape")
	recommendCmd.Flags().IntVar(&recSample, "sample", 0, fmt.Sprintf("Use sample query N (1-%d)", len(recommend.SampleQueries)))
	recommendCmd.Flags().StringSliceVarP(&recTestTypes, "test-type", "t", nil, "Only show assessments with one of these test types (repeatable)")
	recommendCmd.Flags().IntVar(&recMaxDuration, "max-duration", recommend.DefaultMaxDuration,
		fmt.Sprintf("Only show assessments up to this many minutes (0-%d)", recommend.MaxDurationLimit))
	recommendCmd.Flags().BoolVar(&recRaw, "raw", false, "Print the raw Gemini response before the table")
	recommendCmd.Flags().BoolVar(&recJSON, "json", false, "Print the unfiltered recommendations as JSON")

	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.QueryFile = recFile
	}
	if flags.Changed("url") {
		cfg.JobURL = recURL
	}
	if flags.Changed("test-type") {
		cfg.TestTypes = recTestTypes
	}
	if flags.Changed("max-duration") {
		cfg.MaxDuration = &recMaxDuration
	}
	if cfg, err = finalizeConfig(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	query, err := resolveQuery(ctx, cfg, args, recSample)
	if err != nil {
		return err
	}

	result, err := newRecommender(cfg).Recommend(ctx, query)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if recJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(types.RecommendResponse{RecommendedAssessments: nonNil(result.Recommendations)})
	}

	printer := observability.NewPrinter(out)
	if recRaw {
		printer.PrintRawResponse(result.RawResponse)
	}
	if len(result.Recommendations) == 0 {
		printer.PrintExtractionWarning(result.Extraction)
		return nil
	}

	opts := filterOptions(cfg)
	shown := recommend.Filter(result.Recommendations, opts)
	printer.PrintFilterSummary(opts, recommend.TestTypes(result.Recommendations), len(shown), len(result.Recommendations))
	printer.PrintRecommendations(shown)
	return nil
}

// resolveQuery returns the job description from exactly one of the
// arguments, the query file, the job URL or a sample number.
func resolveQuery(ctx context.Context, cfg config.Config, args []string, sample int) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))

	sources := 0
	for _, set := range []bool{text != "", cfg.QueryFile != "", cfg.JobURL != "", sample != 0} {
		if set {
			sources++
		}
	}
	switch {
	case sources == 0:
		return "", errors.New("provide a job description as an argument, or use --file, --url or --sample")
	case sources > 1:
		return "", errors.New("job description arguments, --file, --url and --sample are mutually exclusive; provide only one")
	}

	switch {
	case text != "":
		return text, nil
	case cfg.QueryFile != "":
		query, err := ingestion.ReadQueryFile(cfg.QueryFile)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return query, nil
	case cfg.JobURL != "":
		if err := fetch.ValidateURL(cfg.JobURL); err != nil {
			return "", err
		}
		page, err := ingestion.FetchPage(ctx, cfg.JobURL, pageOptions(cfg))
		if err != nil {
			return "", fmt.Errorf("failed to fetch job description: %w", err)
		}
		return page.Text, nil
	default:
		if sample < 1 || sample > len(recommend.SampleQueries) {
			return "", fmt.Errorf("--sample must be between 1 and %d", len(recommend.SampleQueries))
		}
		return recommend.SampleQueries[sample-1], nil
	}
}

func nonNil(recs []types.Recommendation) []types.Recommendation {
	if recs == nil {
		return []types.Recommendation{}
	}
	return recs
}
