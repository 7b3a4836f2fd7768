package scrape

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Candidate is a raw cutoff row extracted by a source parser, before
// validation, branch normalization, and dedupe.
type Candidate struct {
	College          string
	Branch           string
	Category         string
	CutoffPercentile float64
	Source           string
}

// Fetcher retrieves a URL and returns its parsed HTML document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Parser extracts cutoff candidates from a fetched page. Implementations
// are per-site; a page that yields nothing returns an empty slice, not
// an error.
type Parser interface {
	Name() string
	Parse(doc *goquery.Document, sourceURL string) []Candidate
}
