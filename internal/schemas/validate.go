// Package schemas provides JSON Schema validation for model output and API payloads.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed recommendation_item.schema.json
var recommendationItemSchema string

//go:embed recommend_response.schema.json
var recommendResponseSchema string

// RecommendationItemSchema returns the schema for one raw model-produced assessment object.
func RecommendationItemSchema() string {
	return recommendationItemSchema
}

// RecommendResponseSchema returns the schema for the POST /recommend response body.
func RecommendResponseSchema() string {
	return recommendResponseSchema
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// compiled item schema, built once on first use
var itemSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(recommendationItemSchema))
})

// ValidateRecommendationItem checks that a decoded model object (typically a
// map[string]any) is a JSON object holding every required assessment key.
func ValidateRecommendationItem(item any) error {
	schema, err := itemSchema()
	if err != nil {
		return &SchemaLoadError{
			Path:    "recommendation_item.schema.json",
			Message: "failed to compile schema",
			Cause:   err,
		}
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(item))
	if err != nil {
		return &SchemaLoadError{
			Path:    "recommendation_item.schema.json",
			Message: "failed to load document",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result)
}

// toValidationError converts a gojsonschema result into a *ValidationError, or nil when valid.
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
