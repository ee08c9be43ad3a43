package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/llm"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/server/middleware"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	recommender *recommend.Recommender
	pageOptions ingestion.PageOptions
	pages       *ingestion.PageCache
	verbose     bool
}

// Config holds server configuration
type Config struct {
	Port    int
	APIKey  string
	LLM     *llm.Config
	Tier    llm.ModelTier
	Verbose bool
	// UseBrowser enables headless rendering for pages scraped via /scrape.
	UseBrowser bool
	// ClientFactory overrides completion client construction; nil uses llm.NewClient.
	ClientFactory llm.Factory
	// Fetch configures outbound page requests; nil uses fetch.DefaultOptions.
	Fetch *fetch.Options
	// PageCacheSize and PageCacheTTL bound the /scrape page cache; zero uses the defaults.
	PageCacheSize int
	PageCacheTTL  time.Duration
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}

	opts := []recommend.Option{recommend.WithVerbose(cfg.Verbose)}
	if cfg.Tier != "" {
		opts = append(opts, recommend.WithTier(cfg.Tier))
	}
	if cfg.ClientFactory != nil {
		opts = append(opts, recommend.WithClientFactory(cfg.ClientFactory))
	}

	s := &Server{
		recommender: recommend.New(cfg.APIKey, cfg.LLM, opts...),
		pageOptions: ingestion.PageOptions{
			Fetch:   cfg.Fetch,
			Verbose: cfg.Verbose,
		},
		pages:   ingestion.NewPageCache(cfg.PageCacheSize, cfg.PageCacheTTL),
		verbose: cfg.Verbose,
	}
	if cfg.UseBrowser {
		s.pageOptions.Render = fetch.BrowserRenderer(fetch.DefaultBrowserTimeout, cfg.Verbose)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // a single completion call can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /recommend", s.handleRecommend)
	mux.HandleFunc("POST /scrape", s.handleScrape)

	return middleware.RequestID(s.withLogging(s.withCORS(mux)))
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id, _ := middleware.GetRequestID(r.Context())
		log.Printf("[%s] %s %s (request %s)", r.Method, r.URL.Path, r.RemoteAddr, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("[%s] %s %d completed in %v (request %s)", r.Method, r.URL.Path, rec.status, time.Since(start), id)
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"detail": message})
}

// failure logs err and writes the status and detail it maps to.
func (s *Server) failure(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	id, _ := middleware.GetRequestID(r.Context())
	log.Printf("[%s] %s failed with %d (request %s): %v", r.Method, r.URL.Path, status, id, err)
	s.errorResponse(w, status, Detail(err))
}
