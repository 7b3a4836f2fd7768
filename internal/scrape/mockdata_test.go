package scrape

import "testing"

func TestGenerateMockData(t *testing.T) {
	data := GenerateMockData()

	want := len(mockColleges) * len(mockBranches)
	if len(data) != want {
		t.Fatalf("expected %d records, got %d", want, len(data))
	}

	for _, c := range data {
		if c.CutoffPercentile < 85.0 || c.CutoffPercentile > 99.9 {
			t.Errorf("%s / %s: percentile %v out of [85.0, 99.9]", c.College, c.Branch, c.CutoffPercentile)
		}
		if c.Source != MockSource {
			t.Errorf("source = %q, want %q", c.Source, MockSource)
		}
		if c.Category != "General" {
			t.Errorf("category = %q, want General", c.Category)
		}
	}
}

func TestBasePercentileTiers(t *testing.T) {
	elite := basePercentile("College of Engineering, Pune (CoEP)", BranchCivil)
	mid := basePercentile("Walchand College of Engineering, Sangli", BranchCivil)
	rest := basePercentile("Thadomal Shahani Engineering College, Mumbai", BranchCivil)

	if !(elite > mid && mid > rest) {
		t.Errorf("tier ordering broken: elite=%v mid=%v rest=%v", elite, mid, rest)
	}

	// Branch demand bonuses on a fixed college.
	cs := basePercentile("Thadomal Shahani Engineering College, Mumbai", BranchComputer)
	it := basePercentile("Thadomal Shahani Engineering College, Mumbai", BranchIT)
	entc := basePercentile("Thadomal Shahani Engineering College, Mumbai", BranchEnTC)
	if !(cs > it && it > entc && entc > rest) {
		t.Errorf("branch bonus ordering broken: cs=%v it=%v entc=%v civil=%v", cs, it, entc, rest)
	}
}
