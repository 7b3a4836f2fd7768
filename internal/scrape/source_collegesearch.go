package scrape

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var percentileRe = regexp.MustCompile(`\d+\.\d+`)

// CollegeSearchParser extracts cutoffs from CollegeSearch article pages.
// The target article covers Computer Engineering only, so every row is
// tagged with that branch.
type CollegeSearchParser struct{}

func (p *CollegeSearchParser) Name() string { return "collegesearch" }

func (p *CollegeSearchParser) Parse(doc *goquery.Document, sourceURL string) []Candidate {
	var out []Candidate

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		headers := map[string]bool{}
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			headers[strings.ToLower(CleanText(th.Text()))] = true
		})
		if !headers["college name"] || !headers["mht cet cutoff percentile"] {
			return
		}

		table.Find("tbody tr").Each(func(_ int, row *goquery.Selection) {
			cols := row.Find("td")
			if cols.Length() < 2 {
				return
			}

			college := CleanText(cols.Eq(0).Text())
			match := percentileRe.FindString(cols.Eq(1).Text())
			if college == "" || match == "" {
				return
			}
			percentile, err := strconv.ParseFloat(match, 64)
			if err != nil {
				return
			}

			out = append(out, Candidate{
				College:          college,
				Branch:           BranchComputer,
				Category:         "General",
				CutoffPercentile: percentile,
				Source:           sourceURL,
			})
		})
	})

	return out
}
