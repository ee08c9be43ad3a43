package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/types"
)

// maxBodyBytes caps request bodies; job descriptions are a few KB at most.
const maxBodyBytes = 1 << 20

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// handleRecommend asks the model for assessments matching a job description
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	result, err := s.recommender.Recommend(r.Context(), req.Query)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	recs, err := recommend.Require(result)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.RecommendResponse{RecommendedAssessments: recs})
}

// handleScrape fetches a job description page and returns its text and links
func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req types.ScrapeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := req.Validate(); err != nil {
		s.failure(w, r, &ErrValidation{Field: "url", Message: "url must be a valid http:// or https:// URL"})
		return
	}
	if err := fetch.ValidateURL(req.URL); err != nil {
		s.failure(w, r, &ErrValidation{Field: "url", Message: err.Error()})
		return
	}

	page, err := s.pages.Fetch(r.Context(), req.URL, s.pageOptions)
	if err != nil {
		s.failure(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, page)
}
