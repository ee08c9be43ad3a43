package recommend

import (
	"slices"

	"github.com/jonathan/assessment-recommender/internal/types"
)

// Duration filter bounds, in minutes.
const (
	DefaultMaxDuration = 60
	MaxDurationLimit   = 120
)

// FilterOptions narrows a recommendation list for display.
type FilterOptions struct {
	// TestTypes keeps records carrying at least one of these labels. Empty keeps all.
	TestTypes []string
	// MaxDuration drops records longer than this many minutes.
	MaxDuration int
}

// DefaultFilterOptions returns options that keep every test type up to DefaultMaxDuration.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{MaxDuration: DefaultMaxDuration}
}

// Filter returns the records matching opts, in their original order.
// A Duration of 0 means the length is unknown, so such records always pass
// the MaxDuration check.
func Filter(records []types.Recommendation, opts FilterOptions) []types.Recommendation {
	filtered := make([]types.Recommendation, 0, len(records))
	for _, rec := range records {
		if rec.Duration > opts.MaxDuration {
			continue
		}
		if len(opts.TestTypes) > 0 && !hasAnyTestType(rec, opts.TestTypes) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

func hasAnyTestType(rec types.Recommendation, wanted []string) bool {
	for _, t := range rec.TestType {
		if slices.Contains(wanted, t) {
			return true
		}
	}
	return false
}

// TestTypes returns the distinct test type labels across records, sorted.
func TestTypes(records []types.Recommendation) []string {
	var labels []string
	for _, rec := range records {
		for _, t := range rec.TestType {
			if !slices.Contains(labels, t) {
				labels = append(labels, t)
			}
		}
	}
	slices.Sort(labels)
	return labels
}
