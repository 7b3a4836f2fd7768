package scrape

import (
	"regexp"
	"strconv"

	"github.com/PuerkitoBio/goquery"
)

var (
	branchRe      = regexp.MustCompile(`B\.Tech\s*(.*)`)
	collegeTrimRe = regexp.MustCompile(`,?\s*B\.Tech.*`)
	numberRe      = regexp.MustCompile(`\d+(\.\d+)?`)
)

// CollegeDuniaParser extracts cutoffs from the CollegeDunia MHT-CET page.
// Rows there mix college and branch in one cell, e.g.
// "VJTI Mumbai, B.Tech Computer Engineering".
type CollegeDuniaParser struct{}

func (p *CollegeDuniaParser) Name() string { return "collegedunia" }

func (p *CollegeDuniaParser) Parse(doc *goquery.Document, sourceURL string) []Candidate {
	container := doc.Find("div#cutoff")
	if container.Length() == 0 {
		return nil
	}

	var out []Candidate

	container.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		link := cols.Eq(0).Find("a")
		if link.Length() == 0 {
			return
		}

		label := CleanText(link.Text())
		branch := "Unknown"
		if m := branchRe.FindStringSubmatch(label); m != nil {
			branch = m[1]
		}
		college := CleanText(collegeTrimRe.ReplaceAllString(label, ""))

		match := numberRe.FindString(cols.Eq(1).Text())
		if college == "" || match == "" {
			return
		}
		percentile, err := strconv.ParseFloat(match, 64)
		if err != nil {
			return
		}

		out = append(out, Candidate{
			College:          college,
			Branch:           CanonicalBranch(branch),
			Category:         "General",
			CutoffPercentile: percentile,
			Source:           sourceURL,
		})
	})

	return out
}
