// Package server provides the HTTP API for the assessment recommender.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/recommend"
)

// Response details returned to clients.
const (
	detailEmptyQuery        = "Query cannot be empty"
	detailNoRecommendations = "No valid recommendations were generated."
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		inputErr      *recommend.InputError
		noRecsErr     *recommend.NoRecommendationsError
		apiErr        *recommend.APICallError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &inputErr):
		return http.StatusBadRequest
	case errors.As(err, &noRecsErr), errors.As(err, &apiErr):
		return http.StatusInternalServerError
	case errors.Is(err, ingestion.ErrHTTPRequestFailed), errors.Is(err, ingestion.ErrContentExtractionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Detail returns the client-facing message for an error.
func Detail(err error) string {
	var (
		validationErr *ErrValidation
		inputErr      *recommend.InputError
		noRecsErr     *recommend.NoRecommendationsError
		apiErr        *recommend.APICallError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &validationErr):
		return validationErr.Message
	case errors.As(err, &inputErr):
		return detailEmptyQuery
	case errors.As(err, &noRecsErr):
		return detailNoRecommendations
	case errors.As(err, &apiErr):
		if apiErr.Cause != nil {
			return fmt.Sprintf("Gemini API error: %v", apiErr.Cause)
		}
		return "Gemini API error: " + apiErr.Message
	default:
		return err.Error()
	}
}
