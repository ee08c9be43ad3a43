package recommend

import (
	"errors"
	"fmt"

	"github.com/jonathan/assessment-recommender/internal/types"
)

// ErrEmptyQuery is returned when the job description is empty or whitespace-only.
var ErrEmptyQuery = errors.New("query cannot be empty")

// InputError represents a request rejected before any completion call is made.
type InputError struct {
	Field string
	Cause error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Cause)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// APICallError represents any failure of the completion service: client
// construction, authentication, transport, or an unusable response envelope.
// Callers are not told which.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// NoRecommendationsError is returned by callers that require at least one
// recommendation when the reply yielded none. It does not say whether the
// reply lacked JSON or only lacked complete records.
type NoRecommendationsError struct {
	Query string
}

func (e *NoRecommendationsError) Error() string {
	return "no valid recommendations were generated"
}

// Require returns the recommendations in res, or a *NoRecommendationsError
// when there are none.
func Require(res *Result) ([]types.Recommendation, error) {
	if res == nil || len(res.Recommendations) == 0 {
		query := ""
		if res != nil {
			query = res.Query
		}
		return nil, &NoRecommendationsError{Query: query}
	}
	return res.Recommendations, nil
}
