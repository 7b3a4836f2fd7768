package scrape

import (
	"math"
	"math/rand"
	"strings"
	"time"
)

// MockSource marks records produced by the fallback generator so the
// serving layer can tell synthetic data from scraped data.
const MockSource = "mock_data"

var mockColleges = []string{
	"Veermata Jijabai Technological Institute (VJTI), Mumbai",
	"College of Engineering, Pune (CoEP)",
	"Sardar Patel Institute of Technology, Mumbai",
	"Walchand College of Engineering, Sangli",
	"MIT Academy of Engineering, Pune",
	"Vishwakarma Institute of Technology, Pune",
	"Thadomal Shahani Engineering College, Mumbai",
	"Government College of Engineering, Aurangabad",
}

var mockBranches = []string{
	BranchComputer,
	BranchIT,
	BranchEnTC,
	BranchMechanical,
	BranchCivil,
}

// GenerateMockData produces a plausible cutoff dataset covering every
// mock college and branch. Used when all live sources fail, so the
// serving API never starts empty after a scrape run.
func GenerateMockData() []Candidate {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	out := make([]Candidate, 0, len(mockColleges)*len(mockBranches))
	for _, college := range mockColleges {
		for _, branch := range mockBranches {
			p := basePercentile(college, branch) - rng.Float64()*1.5
			p = math.Max(85.0, math.Min(99.9, p))
			out = append(out, Candidate{
				College:          college,
				Branch:           branch,
				Category:         "General",
				CutoffPercentile: round4(p),
				Source:           MockSource,
			})
		}
	}
	return out
}

// basePercentile ranks colleges into rough tiers and adds a per-branch
// demand bonus, mirroring real cutoff spreads.
func basePercentile(college, branch string) float64 {
	base := 85.0
	switch {
	case containsAny(college, "VJTI", "CoEP", "Sardar Patel"):
		base = 96.0
	case containsAny(college, "Walchand", "MIT", "Vishwakarma"):
		base = 92.0
	}

	switch {
	case strings.Contains(branch, "Computer"):
		base += 3.5
	case strings.Contains(branch, "Information Technology"):
		base += 3.0
	case strings.Contains(branch, "Electronics"):
		base += 1.5
	}

	return base
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
