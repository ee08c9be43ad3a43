// Package recommend turns a job description into at most ten validated
// assessment recommendations by prompting the completion service and
// extracting records from its free-form reply.
package recommend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/assessment-recommender/internal/schemas"
	"github.com/jonathan/assessment-recommender/internal/types"
)

// MaxRecommendations caps the number of records returned for one query.
const MaxRecommendations = 10

var (
	// first minimal "[ ... ]" containing at least one "{ ... }"
	jsonArrayPattern = regexp.MustCompile(`(?s)\[\s*\{.*?\}\s*\]`)
	digitsPattern    = regexp.MustCompile(`[0-9]+`)
)

// Extraction describes what was recovered from a raw model response.
type Extraction struct {
	// Found is true when a JSON-array-like substring was located.
	Found bool
	// Parsed is true when that substring decoded as a JSON array.
	Parsed bool
	// Candidates is the number of elements in the decoded array.
	Candidates int
	// Records holds the valid, normalized records in model order, capped at MaxRecommendations.
	Records []types.Recommendation
}

// ExtractRecords returns the validated recommendations contained in text.
// It never fails: no array, malformed JSON, or an internal fault all yield an
// empty slice, and elements that cannot become a record are skipped.
func ExtractRecords(text string) []types.Recommendation {
	return Inspect(text).Records
}

// Inspect performs the same extraction as ExtractRecords and also reports
// how far it got, so presentation code can tell "nothing parsed" apart from
// "parsed but nothing valid".
func Inspect(text string) (ext Extraction) {
	ext.Records = []types.Recommendation{}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("[recommend] Error extracting JSON: %v", r)
			ext = Extraction{Records: []types.Recommendation{}}
		}
	}()

	match := jsonArrayPattern.FindString(text)
	if match == "" {
		return ext
	}
	ext.Found = true

	items, err := decodeArray(match)
	if err != nil {
		log.Printf("[recommend] Error extracting JSON: %v", err)
		return ext
	}
	ext.Parsed = true
	ext.Candidates = len(items)

	for i, item := range items {
		rec, err := newRecommendation(item)
		if err != nil {
			log.Printf("[recommend] Skipping element %d: %v", i, err)
			continue
		}
		ext.Records = append(ext.Records, rec)
	}

	if len(ext.Records) > MaxRecommendations {
		ext.Records = ext.Records[:MaxRecommendations]
	}
	return ext
}

// decodeArray strictly decodes s as a single JSON array, keeping numbers as
// their literal text.
func decodeArray(s string) ([]any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("failed to parse JSON array: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after JSON array")
	}
	return items, nil
}

// newRecommendation builds a record from one decoded model object. It fails
// when a required key is missing or a field has an unusable shape.
func newRecommendation(item any) (types.Recommendation, error) {
	if err := schemas.ValidateRecommendationItem(item); err != nil {
		return types.Recommendation{}, err
	}
	obj, ok := item.(map[string]any)
	if !ok {
		return types.Recommendation{}, fmt.Errorf("element is %T, not an object", item)
	}

	var rec types.Recommendation
	var err error
	if rec.Name, err = stringField(obj, types.KeyAssessmentName); err != nil {
		return types.Recommendation{}, err
	}
	if rec.URL, err = stringField(obj, types.KeyURL); err != nil {
		return types.Recommendation{}, err
	}
	if rec.RemoteTestingSupport, err = stringField(obj, types.KeyRemoteTestingSupport); err != nil {
		return types.Recommendation{}, err
	}
	if rec.AdaptiveIRTSupport, err = stringField(obj, types.KeyAdaptiveIRTSupport); err != nil {
		return types.Recommendation{}, err
	}
	if rec.TestType, err = normalizeTestType(obj[types.KeyTestType]); err != nil {
		return types.Recommendation{}, err
	}
	rec.Duration = ParseDuration(obj[types.KeyDuration])

	if err := rec.Validate(); err != nil {
		return types.Recommendation{}, err
	}
	return rec, nil
}

func stringField(obj map[string]any, key string) (string, error) {
	s, ok := obj[key].(string)
	if !ok {
		return "", fmt.Errorf("%q must be a string, got %T", key, obj[key])
	}
	return s, nil
}

// ParseDuration returns the first run of ASCII digits in the textual form of
// v, or 0 when there is none. "45 mins" and "PT45M" give 45, "PT1H30M" gives
// 1, and "N/A" or null give 0.
func ParseDuration(v any) int {
	digits := digitsPattern.FindString(stringify(v))
	if digits == "" {
		return 0
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		// digit runs longer than an int are treated like missing data
		return 0
	}
	return n
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// normalizeTestType accepts a single label or a list of labels.
func normalizeTestType(v any) ([]string, error) {
	switch val := v.(type) {
	case string:
		return []string{val}, nil
	case []any:
		labels := make([]string, 0, len(val))
		for i, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%q[%d] must be a string, got %T", types.KeyTestType, i, item)
			}
			labels = append(labels, s)
		}
		return labels, nil
	default:
		return nil, fmt.Errorf("%q must be a string or list of strings, got %T", types.KeyTestType, v)
	}
}
