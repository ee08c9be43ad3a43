package recommend

import (
	"strings"

	"github.com/jonathan/assessment-recommender/internal/prompts"
)

// BuildPrompt formats a job description into the recommendation instruction
// template, which asks for a strict JSON array with six named fields per
// recommendation.
func BuildPrompt(query string) string {
	template := prompts.MustGet(prompts.RecommendFile, prompts.RecommendAssessmentsKey)
	return prompts.Format(template, map[string]string{
		"Query": strings.TrimSpace(query),
	})
}
