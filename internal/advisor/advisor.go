// Package advisor turns the cutoff dataset into admission guidance:
// rank/percentile conversion, safe and ambitious college suggestions,
// and per-college admission chance predictions.
package advisor

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cetmentor/cetmentor/internal/dataset"
)

const (
	// DefaultPoolSize approximates the MHT-CET PCM candidate pool. It
	// varies year to year; override via configuration when a better
	// estimate is known.
	DefaultPoolSize = 350000

	DefaultSuggestLimit = 7
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoData       = errors.New("no cutoff data loaded")
	ErrNotFound     = errors.New("no matching college")
)

// Advisor answers suggestion and prediction queries against a cutoff table.
type Advisor struct {
	table        *dataset.Table
	poolSize     int
	suggestLimit int
}

func New(table *dataset.Table, poolSize, suggestLimit int) *Advisor {
	if poolSize <= 0 {
		poolSize = DefaultPoolSize
	}
	if suggestLimit <= 0 {
		suggestLimit = DefaultSuggestLimit
	}
	return &Advisor{table: table, poolSize: poolSize, suggestLimit: suggestLimit}
}

// RankToPercentile converts an exam rank to an approximate percentile
// within a candidate pool. Rank 0 or below maps to the 100th percentile.
func RankToPercentile(rank, poolSize int) float64 {
	if rank <= 0 {
		return 100.0
	}
	p := (1 - float64(rank)/float64(poolSize)) * 100
	return round4(math.Max(0, math.Min(100, p)))
}

// Suggestions holds safe and ambitious college options for a rank.
// Safe options admit at or below the user's percentile, highest cutoff
// first; ambitious options sit just above it, lowest cutoff first.
type Suggestions struct {
	Safe           []dataset.CutoffRecord `json:"safe"`
	Ambitious      []dataset.CutoffRecord `json:"ambitious"`
	UserPercentile float64                `json:"user_percentile"`
}

// Suggest returns college suggestions for a rank in the General category.
func (a *Advisor) Suggest(rank int) (*Suggestions, error) {
	if rank <= 0 {
		return nil, fmt.Errorf("%w: rank must be positive", ErrInvalidInput)
	}
	if a.table.Len() == 0 {
		return nil, ErrNoData
	}

	userPercentile := RankToPercentile(rank, a.poolSize)
	out := &Suggestions{
		Safe:           []dataset.CutoffRecord{},
		Ambitious:      []dataset.CutoffRecord{},
		UserPercentile: userPercentile,
	}

	for _, r := range a.table.Records() {
		if !strings.EqualFold(r.Category, "General") {
			continue
		}
		if r.CutoffPercentile <= userPercentile {
			out.Safe = append(out.Safe, r)
		} else {
			out.Ambitious = append(out.Ambitious, r)
		}
	}

	sort.SliceStable(out.Safe, func(i, j int) bool {
		return out.Safe[i].CutoffPercentile > out.Safe[j].CutoffPercentile
	})
	sort.SliceStable(out.Ambitious, func(i, j int) bool {
		return out.Ambitious[i].CutoffPercentile < out.Ambitious[j].CutoffPercentile
	})

	if len(out.Safe) > a.suggestLimit {
		out.Safe = out.Safe[:a.suggestLimit]
	}
	if len(out.Ambitious) > a.suggestLimit {
		out.Ambitious = out.Ambitious[:a.suggestLimit]
	}

	return out, nil
}

// Prediction is the admission outlook for one college query.
type Prediction struct {
	College          string  `json:"college"`
	Branch           string  `json:"branch"`
	CutoffPercentile float64 `json:"cutoff_percentile"`
	AdmissionChance  string  `json:"admission_chance"`
}

// Predict matches collegeQuery against the dataset (case-insensitive
// substring) and grades the user's chance against the highest cutoff
// among the matches.
func (a *Advisor) Predict(userPercentile float64, collegeQuery string) (*Prediction, error) {
	collegeQuery = strings.TrimSpace(collegeQuery)
	if collegeQuery == "" || userPercentile <= 0 {
		return nil, fmt.Errorf("%w: percentile and college name required", ErrInvalidInput)
	}
	if a.table.Len() == 0 {
		return nil, ErrNoData
	}

	query := strings.ToLower(collegeQuery)
	var best *dataset.CutoffRecord
	for _, r := range a.table.Records() {
		if !strings.Contains(strings.ToLower(r.College), query) {
			continue
		}
		if best == nil || r.CutoffPercentile > best.CutoffPercentile {
			rec := r
			best = &rec
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, collegeQuery)
	}

	return &Prediction{
		College:          best.College,
		Branch:           best.Branch,
		CutoffPercentile: best.CutoffPercentile,
		AdmissionChance:  AdmissionChance(userPercentile - best.CutoffPercentile),
	}, nil
}

// AdmissionChance grades the gap between a user's percentile and a cutoff.
func AdmissionChance(difference float64) string {
	switch {
	case difference >= 2:
		return "Very High"
	case difference >= 0.5:
		return "High"
	case difference >= -0.75:
		return "Medium (Borderline)"
	case difference >= -2.5:
		return "Low"
	default:
		return "Unlikely"
	}
}

// SearchContext finds records relevant to a free-text question. Words
// longer than three characters are matched as substrings against college
// and branch names; the top matches by cutoff are returned.
func (a *Advisor) SearchContext(query string, limit int) []dataset.CutoffRecord {
	if limit <= 0 {
		limit = 5
	}

	var keywords []string
	for _, w := range strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return r == ' ' || r == ',' || r == '(' || r == ')' || r == '\t' || r == '\n'
	}) {
		if len(w) > 3 {
			keywords = append(keywords, w)
		}
	}
	if len(keywords) == 0 {
		return nil
	}

	var matches []dataset.CutoffRecord
	for _, r := range a.table.Records() {
		college := strings.ToLower(r.College)
		branch := strings.ToLower(r.Branch)
		for _, k := range keywords {
			if strings.Contains(college, k) || strings.Contains(branch, k) {
				matches = append(matches, r)
				break
			}
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].CutoffPercentile > matches[j].CutoffPercentile
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
