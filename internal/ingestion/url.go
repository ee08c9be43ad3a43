package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/types"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be retrieved
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the page HTML cannot be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
)

// PageOptions configures FetchPage.
type PageOptions struct {
	// Fetch configures the HTTP request; nil uses fetch.DefaultOptions.
	Fetch *fetch.Options
	// Render, when set, re-renders pages whose static text is too short.
	Render fetch.Renderer
	// Verbose logs each extraction step.
	Verbose bool
}

// FetchPage downloads a job description page and returns its cleaned main
// text and every link on it.
func FetchPage(ctx context.Context, urlStr string, opts PageOptions) (*types.Page, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s (platform: %s)", urlStr, platform)
	}

	result, err := fetch.URL(ctx, urlStr, opts.Fetch)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Fetched HTML: %d bytes", len(result.HTML))
	}

	html := result.HTML
	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if opts.Render != nil && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(text), fetch.MinContentLength)
		}
		rendered, renderErr := opts.Render(ctx, urlStr)
		if renderErr != nil {
			log.Printf("Browser rendering failed for %s, using HTTP content: %v", urlStr, renderErr)
		} else if renderedText, extractErr := fetch.ExtractMainText(rendered, contentSelectors, noiseSelectors...); extractErr == nil {
			html, text = rendered, renderedText
		}
	}

	links, err := fetch.ExtractLinks(html, urlStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	page := &types.Page{
		URL:      urlStr,
		Text:     CleanText(text),
		Links:    links,
		Platform: string(platform),
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Extracted %d chars of text and %d links", len(page.Text), len(page.Links))
	}
	return page, nil
}
