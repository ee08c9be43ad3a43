// Package types provides type definitions for structured data used throughout the assessment recommender.
package types

import (
	"github.com/go-playground/validator/v10"
)

// Source keys the model is asked to emit for each recommended assessment.
const (
	KeyAssessmentName       = "Assessment Name"
	KeyURL                  = "URL"
	KeyRemoteTestingSupport = "Remote Testing Support"
	KeyAdaptiveIRTSupport   = "Adaptive/IRT Support"
	KeyDuration             = "Duration"
	KeyTestType             = "Test Type"
)

// RequiredKeys lists every key a model-produced object must carry before a
// Recommendation is built from it.
var RequiredKeys = []string{
	KeyAssessmentName,
	KeyURL,
	KeyRemoteTestingSupport,
	KeyAdaptiveIRTSupport,
	KeyDuration,
	KeyTestType,
}

// Recommendation is one validated assessment recommendation.
type Recommendation struct {
	Name                 string   `json:"Assessment_Name" validate:"required"`
	URL                  string   `json:"URL"`
	RemoteTestingSupport string   `json:"Remote_Testing_Support"`
	AdaptiveIRTSupport   string   `json:"Adaptive_IRT_Support"`
	Duration             int      `json:"Duration" validate:"gte=0"`
	TestType             []string `json:"Test_Type"`
}

// Validate validates the Recommendation using the validator.
func (r *Recommendation) Validate() error {
	return validate.Struct(r)
}

// RecommendRequest represents the request body for POST /recommend.
type RecommendRequest struct {
	Query string `json:"query"`
}

// RecommendResponse represents the response body for POST /recommend.
type RecommendResponse struct {
	RecommendedAssessments []Recommendation `json:"recommended_assessments"`
}

// ScrapeRequest represents the request body for POST /scrape.
type ScrapeRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// Validate validates the ScrapeRequest using the validator.
func (r *ScrapeRequest) Validate() error {
	return validate.Struct(r)
}

// Page is the text and outbound links scraped from a job description URL.
type Page struct {
	URL      string   `json:"url"`
	Text     string   `json:"text"`
	Links    []string `json:"links"`
	Platform string   `json:"platform,omitempty"`
}

// validator.Validate caches struct metadata and is safe for concurrent use.
var validate = validator.New()
