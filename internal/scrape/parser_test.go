package scrape

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test HTML: %v", err)
	}
	return doc
}

func TestCollegeSearchParser(t *testing.T) {
	html := `
	<html><body>
	<table>
	  <thead><tr><th>Rank</th><th>Something Else</th></tr></thead>
	  <tbody><tr><td>1</td><td>ignored</td></tr></tbody>
	</table>
	<table>
	  <thead><tr><th>College Name</th><th>MHT CET Cutoff Percentile</th></tr></thead>
	  <tbody>
	    <tr><td>VJTI,   Mumbai</td><td>98.76 percentile</td></tr>
	    <tr><td>COEP Pune</td><td>around 97.21</td></tr>
	    <tr><td>No Score College</td><td>TBA</td></tr>
	    <tr><td>Short Row</td></tr>
	  </tbody>
	</table>
	</body></html>`

	p := &CollegeSearchParser{}
	got := p.Parse(mustDoc(t, html), "https://example.com/cutoffs")

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}
	if got[0].College != "VJTI, Mumbai" {
		t.Errorf("college = %q, want cleaned %q", got[0].College, "VJTI, Mumbai")
	}
	if got[0].CutoffPercentile != 98.76 {
		t.Errorf("percentile = %v, want 98.76", got[0].CutoffPercentile)
	}
	for _, c := range got {
		if c.Branch != BranchComputer {
			t.Errorf("branch = %q, want %q", c.Branch, BranchComputer)
		}
		if c.Category != "General" {
			t.Errorf("category = %q, want General", c.Category)
		}
		if c.Source != "https://example.com/cutoffs" {
			t.Errorf("source = %q", c.Source)
		}
	}
}

func TestCollegeSearchParserNoMatchingTable(t *testing.T) {
	p := &CollegeSearchParser{}
	got := p.Parse(mustDoc(t, `<html><body><p>no tables here</p></body></html>`), "u")
	if len(got) != 0 {
		t.Fatalf("expected no candidates, got %d", len(got))
	}
}

func TestCollegeDuniaParser(t *testing.T) {
	html := `
	<html><body>
	<div id="cutoff">
	<table><tbody>
	  <tr><td><a href="/c/vjti">VJTI Mumbai, B.Tech Computer Engineering</a></td><td>99.1</td></tr>
	  <tr><td><a href="/c/coep">COEP Pune, B.Tech Mechanical Engineering</a></td><td>94</td></tr>
	  <tr><td>Plain text row, B.Tech Civil</td><td>90.0</td></tr>
	  <tr><td><a href="/c/x">Some College</a></td><td>no number</td></tr>
	</tbody></table>
	</div>
	</body></html>`

	p := &CollegeDuniaParser{}
	got := p.Parse(mustDoc(t, html), "https://example.com/dunia")

	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d: %+v", len(got), got)
	}

	if got[0].College != "VJTI Mumbai" {
		t.Errorf("college = %q, want %q", got[0].College, "VJTI Mumbai")
	}
	if got[0].Branch != BranchComputer {
		t.Errorf("branch = %q, want %q", got[0].Branch, BranchComputer)
	}
	if got[0].CutoffPercentile != 99.1 {
		t.Errorf("percentile = %v, want 99.1", got[0].CutoffPercentile)
	}

	if got[1].Branch != BranchMechanical {
		t.Errorf("branch = %q, want %q", got[1].Branch, BranchMechanical)
	}
	if got[1].CutoffPercentile != 94 {
		t.Errorf("percentile = %v, want 94", got[1].CutoffPercentile)
	}
}

func TestCollegeDuniaParserNoCutoffContainer(t *testing.T) {
	p := &CollegeDuniaParser{}
	got := p.Parse(mustDoc(t, `<html><body><table><tbody><tr><td><a>X, B.Tech IT</a></td><td>95</td></tr></tbody></table></body></html>`), "u")
	if len(got) != 0 {
		t.Fatalf("expected no candidates without #cutoff container, got %d", len(got))
	}
}
