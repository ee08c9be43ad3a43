// Package main provides the entry point for the assessment recommender CLI and HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recommender",
	Short: "Assessment Recommender",
	Long: `Assessment Recommender asks Gemini for up to ten assessments that fit a job description,
typed in, read from a file, or scraped from a job posting URL.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
