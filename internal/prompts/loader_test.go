package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_RecommendPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get(RecommendFile, RecommendAssessmentsKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, "recommend up to 10 relevant SHL assessments")
	assert.Contains(t, prompt, "{{.Query}}")

	for _, field := range []string{"Assessment Name", "URL", "Remote Testing Support", "Adaptive/IRT Support", "Duration", "Test Type"} {
		assert.Contains(t, prompt, "- "+field, "template should request %q", field)
	}
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get(RecommendFile, "nonexistent-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestGet_UsesCache(t *testing.T) {
	ClearCache()

	first := MustGet(RecommendFile, RecommendAssessmentsKey)
	second := MustGet(RecommendFile, RecommendAssessmentsKey)
	assert.Equal(t, first, second)
}

func TestFormat(t *testing.T) {
	got := Format("Job:\n{{.Query}}\nAgain: {{.Query}} {{.Missing}}", map[string]string{
		"Query": "Java developer",
	})
	assert.Equal(t, "Job:\nJava developer\nAgain: Java developer {{.Missing}}", got)
}

func TestFormat_ValueContainingPlaceholder(t *testing.T) {
	got := Format("{{.Query}}", map[string]string{"Query": "literal {{.Query}}"})
	assert.Equal(t, "literal {{.Query}}", got)
}
