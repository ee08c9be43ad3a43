package recommend

import (
	"fmt"
	"strings"
	"testing"

	"github.com/jonathan/assessment-recommender/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assessmentJSON renders one complete model object with the given name.
func assessmentJSON(name string) string {
	return fmt.Sprintf(`{"Assessment Name": %q, "URL": "https://www.shl.com/products/%s", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "30 mins", "Test Type": ["Cognitive"]}`,
		name, strings.ToLower(name))
}

func assessmentArray(n int) string {
	objs := make([]string, n)
	for i := range objs {
		objs[i] = assessmentJSON(fmt.Sprintf("Test%d", i+1))
	}
	return "[" + strings.Join(objs, ",\n") + "]"
}

func names(records []types.Recommendation) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestExtractRecords_ArrayInProse(t *testing.T) {
	text := "Sure! Based on the job description [Java, teamwork], here are my picks:\n```json\n" +
		assessmentArray(3) +
		"\n```\nLet me know if you need anything else."

	records := ExtractRecords(text)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Test1", "Test2", "Test3"}, names(records))

	assert.Equal(t, types.Recommendation{
		Name:                 "Test1",
		URL:                  "https://www.shl.com/products/test1",
		RemoteTestingSupport: "Yes",
		AdaptiveIRTSupport:   "No",
		Duration:             30,
		TestType:             []string{"Cognitive"},
	}, records[0])
}

func TestExtractRecords_TruncatesToTen(t *testing.T) {
	records := ExtractRecords(assessmentArray(12))
	require.Len(t, records, MaxRecommendations)
	assert.Equal(t, "Test1", records[0].Name)
	assert.Equal(t, "Test10", records[9].Name)
}

func TestExtractRecords_ExactlyTen(t *testing.T) {
	assert.Len(t, ExtractRecords(assessmentArray(10)), 10)
}

func TestExtractRecords_MissingKeyIsolation(t *testing.T) {
	for _, key := range types.RequiredKeys {
		t.Run(key, func(t *testing.T) {
			partial := strings.Replace(assessmentJSON("Broken"), fmt.Sprintf("%q:", key), `"Other":`, 1)
			text := "[" + assessmentJSON("First") + ", " + partial + ", " + assessmentJSON("Last") + "]"

			records := ExtractRecords(text)
			assert.Equal(t, []string{"First", "Last"}, names(records))
		})
	}
}

func TestExtractRecords_TenValidAfterDrops(t *testing.T) {
	objs := []string{`{"Assessment Name": "no other keys"}`}
	for i := 1; i <= 11; i++ {
		objs = append(objs, assessmentJSON(fmt.Sprintf("Test%d", i)))
	}
	records := ExtractRecords("[" + strings.Join(objs, ",") + "]")
	require.Len(t, records, 10)
	assert.Equal(t, "Test1", records[0].Name)
	assert.Equal(t, "Test10", records[9].Name)
}

func TestExtractRecords_Duration(t *testing.T) {
	tests := []struct {
		name     string
		duration string
		want     int
	}{
		{"minutes suffix", `"45 mins"`, 45},
		{"bare number string", `"90"`, 90},
		{"ISO duration takes first run", `"PT1H30M"`, 1},
		{"no digits", `"N/A"`, 0},
		{"empty string", `""`, 0},
		{"JSON integer", `45`, 45},
		{"JSON float", `45.5`, 45},
		{"null", `null`, 0},
		{"range", `"20-30 minutes"`, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := fmt.Sprintf(`[{"Assessment Name": "A", "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": %s, "Test Type": "Cognitive"}]`, tt.duration)
			records := ExtractRecords(text)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].Duration)
		})
	}
}

func TestExtractRecords_TestType(t *testing.T) {
	tests := []struct {
		name     string
		testType string
		want     []string
	}{
		{"single string is wrapped", `"Cognitive"`, []string{"Cognitive"}},
		{"list is kept", `["Cognitive", "Personality"]`, []string{"Cognitive", "Personality"}},
		{"empty list", `[]`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := fmt.Sprintf(`[{"Assessment Name": "A", "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": %s}]`, tt.testType)
			records := ExtractRecords(text)
			require.Len(t, records, 1)
			assert.Equal(t, tt.want, records[0].TestType)
		})
	}
}

func TestExtractRecords_UnusableFieldShapesAreDropped(t *testing.T) {
	bad := []string{
		`{"Assessment Name": 5, "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": "C"}`,
		`{"Assessment Name": "", "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": "C"}`,
		`{"Assessment Name": "A", "URL": null, "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": "C"}`,
		`{"Assessment Name": "A", "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": ["C", 3]}`,
		`{"Assessment Name": "A", "URL": "u", "Remote Testing Support": "Yes", "Adaptive/IRT Support": "No", "Duration": "10", "Test Type": {"kind": "C"}}`,
	}

	for i, obj := range bad {
		t.Run(fmt.Sprintf("case %d", i), func(t *testing.T) {
			text := "[" + assessmentJSON("Good") + ", " + obj + "]"
			assert.Equal(t, []string{"Good"}, names(ExtractRecords(text)))
		})
	}
}

func TestExtractRecords_NonObjectElementsAreDropped(t *testing.T) {
	text := "[" + assessmentJSON("One") + `, 42, "text", ` + assessmentJSON("Two") + "]"
	assert.Equal(t, []string{"One", "Two"}, names(ExtractRecords(text)))
}

func TestExtractRecords_NoArray(t *testing.T) {
	inputs := []string{
		"",
		"I'm sorry, I can't help with that.",
		`{"Assessment Name": "Solo object, not an array"}`,
		`["just", "strings"]`,
		"[ ]",
	}
	for _, in := range inputs {
		records := ExtractRecords(in)
		assert.NotNil(t, records)
		assert.Empty(t, records, "input %q", in)
	}
}

func TestExtractRecords_InvalidJSON(t *testing.T) {
	inputs := []string{
		`[{"Assessment Name": "A", "URL": "u",}]`,
		`[{"a": {"b": 1}]`,
		`[{“Assessment Name”: “Smart quotes”}]`,
		`[{"Assessment Name": "Truncated", "URL": "https://exa}]`,
	}
	for _, in := range inputs {
		assert.Empty(t, ExtractRecords(in), "input %q", in)
	}
}

func TestExtractRecords_UsesFirstArrayOnly(t *testing.T) {
	text := "First:\n[" + assessmentJSON("A") + "]\nSecond:\n[" + assessmentJSON("B") + "]"
	assert.Equal(t, []string{"A"}, names(ExtractRecords(text)))
}

func TestInspect_Reporting(t *testing.T) {
	t.Run("no array", func(t *testing.T) {
		ext := Inspect("nothing here")
		assert.False(t, ext.Found)
		assert.False(t, ext.Parsed)
		assert.Empty(t, ext.Records)
	})

	t.Run("malformed", func(t *testing.T) {
		ext := Inspect(`[{"a": 1,}]`)
		assert.True(t, ext.Found)
		assert.False(t, ext.Parsed)
		assert.Empty(t, ext.Records)
	})

	t.Run("parsed but nothing valid", func(t *testing.T) {
		ext := Inspect(`[{"Assessment Name": "A"}, {"URL": "u"}]`)
		assert.True(t, ext.Found)
		assert.True(t, ext.Parsed)
		assert.Equal(t, 2, ext.Candidates)
		assert.Empty(t, ext.Records)
	})

	t.Run("candidates counts before truncation", func(t *testing.T) {
		ext := Inspect(assessmentArray(12))
		assert.Equal(t, 12, ext.Candidates)
		assert.Len(t, ext.Records, 10)
	})
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 45, ParseDuration("45 mins"))
	assert.Equal(t, 0, ParseDuration("N/A"))
	assert.Equal(t, 0, ParseDuration(nil))
	assert.Equal(t, 0, ParseDuration(true))
	assert.Equal(t, 30, ParseDuration([]any{"30 mins"}))
	assert.Equal(t, 0, ParseDuration("99999999999999999999999 mins"))
}
