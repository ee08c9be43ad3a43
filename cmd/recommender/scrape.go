package main

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/observability"
	"github.com/spf13/cobra"
)

// DefaultCatalogURL is scraped when no URL is given.
const DefaultCatalogURL = "https://www.shl.com/solutions/products/product-catalog/"

var scrapeCmd = &cobra.Command{
	Use:   "scrape [url]",
	Short: "Scrape a page and print its text and links",
	Long:  "Fetch a page (the public product catalog by default), then print the start of its extracted text and every link on it.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScrape,
}

var (
	scrapeMaxChars int
)

func init() {
	scrapeCmd.Flags().IntVar(&scrapeMaxChars, "max-chars", observability.DefaultPagePreview, "Maximum characters of page text to print")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg, err = finalizeConfig(cfg); err != nil {
		return err
	}

	target := DefaultCatalogURL
	if len(args) == 1 {
		target = args[0]
	}
	if err := fetch.ValidateURL(target); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	page, err := ingestion.FetchPage(ctx, target, pageOptions(cfg))
	if err != nil {
		return fmt.Errorf("failed to scrape %s: %w", target, err)
	}

	observability.NewPrinter(cmd.OutOrStdout()).PrintPage(page, scrapeMaxChars)
	return nil
}
