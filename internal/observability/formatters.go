// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/jonathan/assessment-recommender/internal/types"
)

// DefaultPagePreview is how much scraped text PrintPage shows by default
const DefaultPagePreview = 3000

// Warnings shown when a reply yields no recommendations.
const (
	WarnMissingFields = "Recommendations received, but they are missing required fields. Please refine your input."
	WarnNoJSON        = "Sorry we could not parse valid JSON from Gemini. Try refining your job description."
	WarnNoMatches     = "No assessments match the selected filters."
)

// Printer handles formatted output for the CLI
type Printer struct {
	out  io.Writer
	warn *color.Color
	head *color.Color
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{
		out:  out,
		warn: color.New(color.FgYellow),
		head: color.New(color.FgCyan, color.Bold),
	}
}

// PrintRecommendations writes recommendations as an aligned table.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	if len(recs) == 0 {
		return
	}

	p.head.Fprintf(p.out, "Recommended Assessments (%d)\n", len(recs))
	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tASSESSMENT\tREMOTE\tADAPTIVE/IRT\tDURATION\tTEST TYPE\tURL")
	for i, rec := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i+1,
			cell(rec.Name),
			orDash(cell(rec.RemoteTestingSupport)),
			orDash(cell(rec.AdaptiveIRTSupport)),
			formatDuration(rec.Duration),
			orDash(cell(strings.Join(rec.TestType, ", "))),
			orDash(cell(rec.URL)),
		)
	}
	tw.Flush()
}

// PrintRawResponse shows the model's reply exactly as received.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRawResponse(raw string) {
	if strings.TrimSpace(raw) == "" {
		raw = "(empty response)"
	}
	p.head.Fprintln(p.out, "Raw Gemini Response")
	fmt.Fprintln(p.out, strings.TrimRight(raw, "\n"))
	fmt.Fprintln(p.out)
}

// PrintExtractionWarning explains why a reply produced no recommendations.
// It prints nothing when ext holds at least one record.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintExtractionWarning(ext recommend.Extraction) {
	switch {
	case len(ext.Records) > 0:
		return
	case ext.Parsed && ext.Candidates > 0:
		p.warn.Fprintln(p.out, WarnMissingFields)
	default:
		p.warn.Fprintln(p.out, WarnNoJSON)
	}
}

// PrintFilterSummary reports the active filters and the test types present in
// the unfiltered results.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFilterSummary(opts recommend.FilterOptions, available []string, shown, total int) {
	wanted := "any"
	if len(opts.TestTypes) > 0 {
		wanted = strings.Join(opts.TestTypes, ", ")
	}
	fmt.Fprintf(p.out, "Filters: test type %s, max duration %d min (showing %d of %d)\n",
		wanted, opts.MaxDuration, shown, total)
	if len(available) > 0 {
		fmt.Fprintf(p.out, "Available test types: %s\n", strings.Join(available, ", "))
	}
	if shown == 0 && total > 0 {
		p.warn.Fprintln(p.out, WarnNoMatches)
	}
}

// PrintPage shows up to maxChars of scraped text followed by the page links.
// A maxChars of zero or less uses DefaultPagePreview.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintPage(page *types.Page, maxChars int) {
	if page == nil {
		return
	}
	if maxChars <= 0 {
		maxChars = DefaultPagePreview
	}

	text := page.Text
	if runes := []rune(text); len(runes) > maxChars {
		text = string(runes[:maxChars])
	}

	p.head.Fprintf(p.out, "Scraped Text from %s\n", page.URL)
	fmt.Fprintln(p.out, text)
	fmt.Fprintln(p.out)
	p.head.Fprintf(p.out, "Links Found (%d)\n", len(page.Links))
	for _, link := range page.Links {
		fmt.Fprintf(p.out, "  • %s\n", link)
	}
}

func formatDuration(minutes int) string {
	if minutes == 0 {
		return "-"
	}
	return fmt.Sprintf("%d min", minutes)
}

// cellBreaks are characters that would split a tabwriter cell or row.
var cellBreaks = strings.NewReplacer("\t", " ", "\r\n", " ", "\n", " ", "\r", " ", "\v", " ", "\f", " ")

// cell flattens a model-supplied value onto one table cell.
func cell(s string) string {
	return cellBreaks.Replace(s)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
