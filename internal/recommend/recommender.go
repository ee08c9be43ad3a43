package recommend

import (
	"context"
	"log"
	"strings"

	"github.com/jonathan/assessment-recommender/internal/llm"
	"github.com/jonathan/assessment-recommender/internal/types"
)

// Result is the outcome of one recommendation request.
type Result struct {
	Query           string
	RawResponse     string
	Extraction      Extraction
	Recommendations []types.Recommendation
}

// Recommender asks the completion service for assessment recommendations.
// It holds no per-request state and is safe for concurrent use.
type Recommender struct {
	apiKey    string
	config    *llm.Config
	tier      llm.ModelTier
	newClient llm.Factory
	verbose   bool
}

// Option configures a Recommender.
type Option func(*Recommender)

// WithClientFactory overrides how completion clients are constructed.
func WithClientFactory(factory llm.Factory) Option {
	return func(r *Recommender) {
		r.newClient = factory
	}
}

// WithTier selects the model tier used for recommendations.
func WithTier(tier llm.ModelTier) Option {
	return func(r *Recommender) {
		r.tier = tier
	}
}

// WithVerbose enables detailed request logging.
func WithVerbose(verbose bool) Option {
	return func(r *Recommender) {
		r.verbose = verbose
	}
}

// New creates a Recommender. An empty apiKey is accepted here; requests will
// fail with an APICallError when the client is constructed.
func New(apiKey string, config *llm.Config, opts ...Option) *Recommender {
	if config == nil {
		config = llm.DefaultConfig()
	}
	r := &Recommender{
		apiKey:    apiKey,
		config:    config,
		tier:      llm.TierAdvanced,
		newClient: llm.NewClient,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Recommend sends query to the completion service once and extracts the
// recommendations from its reply. An empty query is rejected with an
// *InputError before any call is made; any completion failure is returned as
// an *APICallError. A reply with nothing usable is not an error: the result
// simply holds zero recommendations.
func (r *Recommender) Recommend(ctx context.Context, query string) (*Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &InputError{Field: "query", Cause: ErrEmptyQuery}
	}

	client, err := r.newClient(ctx, r.config, r.apiKey)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to create LLM client",
			Cause:   err,
		}
	}
	defer func() { _ = client.Close() }()

	if r.verbose {
		log.Printf("[VERBOSE] Requesting recommendations from %s (%d chars of job description)", client.GetModel(r.tier), len(query))
	}

	raw, err := client.GenerateContent(ctx, BuildPrompt(query), r.tier)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to generate content from LLM",
			Cause:   err,
		}
	}

	ext := Inspect(raw)
	if r.verbose {
		log.Printf("[VERBOSE] Response: %d chars, array found=%t parsed=%t, %d candidates, %d valid",
			len(raw), ext.Found, ext.Parsed, ext.Candidates, len(ext.Records))
	}

	return &Result{
		Query:           query,
		RawResponse:     strings.TrimSpace(raw),
		Extraction:      ext,
		Recommendations: ext.Records,
	}, nil
}
