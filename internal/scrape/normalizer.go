package scrape

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Canonical branch names. Every scraped row is mapped onto one of these
// (or a title-cased fallback) before it enters the dataset.
const (
	BranchComputer   = "Computer Engineering"
	BranchIT         = "Information Technology"
	BranchEnTC       = "Electronics and Telecommunication Engineering"
	BranchMechanical = "Mechanical Engineering"
	BranchCivil      = "Civil Engineering"
	BranchElectrical = "Electrical Engineering"
)

var titleCaser = cases.Title(language.English)

// CleanText collapses all runs of whitespace to single spaces and trims
// the ends. Scraped table cells often carry newlines and padding.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalBranch maps a raw branch label onto its canonical name.
// Rules match by substring on the lowered input and are ordered: the
// computer rule wins over the bare "it" rule, and the combined
// electronics+telecommunication rule is checked before the single-word
// ones. Unrecognized labels are title-cased as-is.
func CanonicalBranch(raw string) string {
	b := strings.ToLower(CleanText(raw))
	switch {
	case strings.Contains(b, "computer"):
		return BranchComputer
	case strings.Contains(b, "information technology") || strings.Contains(b, "it"):
		return BranchIT
	case strings.Contains(b, "electronics") && strings.Contains(b, "telecommunication"):
		return BranchEnTC
	case strings.Contains(b, "mechanical"):
		return BranchMechanical
	case strings.Contains(b, "civil"):
		return BranchCivil
	case strings.Contains(b, "electrical"):
		return BranchElectrical
	default:
		return titleCaser.String(b)
	}
}
