package scrape

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/cetmentor/cetmentor/internal/dataset"
)

// ErrDataUnavailable is returned when scraping, fallback generation, and
// validation together produce zero usable records.
var ErrDataUnavailable = errors.New("no cutoff data available")

// SourceStats summarizes one source's contribution to a pipeline run.
type SourceStats struct {
	SourceID string
	Name     string
	Found    int
	Err      error
	Duration time.Duration
}

// RunResult is the outcome of a full pipeline run.
type RunResult struct {
	RunID      string
	Records    []dataset.CutoffRecord
	Fallback   bool
	Stats      []SourceStats
	OutputFile string
}

// Pipeline scrapes every active source, merges and validates the rows,
// and persists the final dataset.
type Pipeline struct {
	Fetcher  Fetcher
	Registry *Registry
	OutFile  string
	Pause    time.Duration // pause between sources, default 2s
}

func NewPipeline(fetcher Fetcher, registry *Registry, outFile string) *Pipeline {
	if fetcher == nil {
		fetcher = NewCollyFetcher()
	}
	return &Pipeline{
		Fetcher:  fetcher,
		Registry: registry,
		OutFile:  outFile,
		Pause:    2 * time.Second,
	}
}

// Run executes the full scrape. A source that fails is logged and
// skipped; only a run where every source yields nothing falls back to
// mock data.
func (p *Pipeline) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.New().String()[:8]
	log.Printf("[run %s] starting cutoff scrape, %d active sources", runID, len(p.Registry.Active()))

	result := &RunResult{RunID: runID, OutputFile: p.OutFile}

	var candidates []Candidate
	for i, src := range p.Registry.Active() {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.Pause):
			}
		}

		stats := p.runSource(ctx, src, &candidates)
		result.Stats = append(result.Stats, stats)
	}

	if len(candidates) == 0 {
		log.Printf("[run %s] all sources empty, falling back to mock data", runID)
		candidates = GenerateMockData()
		result.Fallback = true
	}

	records, err := Finalize(candidates)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	result.Records = records

	if p.OutFile != "" {
		if err := dataset.WriteFile(p.OutFile, records); err != nil {
			return nil, fmt.Errorf("run %s: %w", runID, err)
		}
	}

	log.Printf("[run %s] saved %d unique records (fallback=%v)", runID, len(records), result.Fallback)
	return result, nil
}

func (p *Pipeline) runSource(ctx context.Context, src SourceConfig, acc *[]Candidate) SourceStats {
	stats := SourceStats{SourceID: src.ID, Name: src.Name}
	start := time.Now()
	defer func() { stats.Duration = time.Since(start) }()

	log.Printf("[source %s] fetching %s", src.ID, src.URL)

	parser, err := ParserFor(src)
	if err != nil {
		stats.Err = err
		log.Printf("[source %s] %v", src.ID, err)
		return stats
	}

	fetcher := p.Fetcher
	if _, ok := fetcher.(*CollyFetcher); ok && src.Fetch != (FetchConfig{}) {
		fetcher = CollyFetcherWithConfig(src.Fetch)
	}

	doc, err := fetcher.Fetch(ctx, src.URL)
	if err != nil {
		stats.Err = fmt.Errorf("fetch: %w", err)
		log.Printf("[source %s] fetch failed: %v", src.ID, err)
		return stats
	}

	rows := parser.Parse(doc, src.URL)
	stats.Found = len(rows)
	if len(rows) == 0 {
		log.Printf("[source %s] no records extracted, site structure may have changed", src.ID)
		return stats
	}

	log.Printf("[source %s] extracted %d records", src.ID, len(rows))
	*acc = append(*acc, rows...)
	return stats
}

// Finalize validates, normalizes, dedupes, and sorts candidates into the
// canonical dataset. Dedupe keeps the highest cutoff per
// (college, branch, category); final order is cutoff descending, then
// college and branch ascending.
func Finalize(candidates []Candidate) ([]dataset.CutoffRecord, error) {
	var records []dataset.CutoffRecord
	for _, c := range candidates {
		college := CleanText(c.College)
		if college == "" || CleanText(c.Branch) == "" {
			continue
		}
		// Percentiles live in (0, 100]. Scraped cells sometimes carry
		// stray numbers like year tokens; drop anything out of range.
		if c.CutoffPercentile <= 0 || c.CutoffPercentile > 100 {
			continue
		}
		category := CleanText(c.Category)
		if category == "" {
			category = "General"
		}
		records = append(records, dataset.CutoffRecord{
			College:          college,
			Branch:           CanonicalBranch(c.Branch),
			Category:         category,
			CutoffPercentile: c.CutoffPercentile,
			Source:           c.Source,
		})
	}

	// Sort by cutoff descending so the first record seen per key is the
	// highest; the map pass then drops the rest.
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CutoffPercentile > records[j].CutoffPercentile
	})

	type key struct{ college, branch, category string }
	seen := make(map[key]bool, len(records))
	deduped := records[:0]
	for _, r := range records {
		k := key{r.College, r.Branch, r.Category}
		if seen[k] {
			continue
		}
		seen[k] = true
		deduped = append(deduped, r)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		a, b := deduped[i], deduped[j]
		if a.CutoffPercentile != b.CutoffPercentile {
			return a.CutoffPercentile > b.CutoffPercentile
		}
		if a.College != b.College {
			return a.College < b.College
		}
		return a.Branch < b.Branch
	})

	if len(deduped) == 0 {
		return nil, ErrDataUnavailable
	}

	return deduped, nil
}
