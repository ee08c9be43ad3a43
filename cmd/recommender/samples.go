package main

import (
	"fmt"

	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/spf13/cobra"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "List the built-in sample job descriptions",
	Long:  "List the built-in sample job descriptions. Use one with `recommend --sample N`.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		for i, query := range recommend.SampleQueries {
			if _, err := fmt.Fprintf(out, "%d. %s\n", i+1, query); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)
}
