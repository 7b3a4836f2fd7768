package dataset

// CutoffRecord is a single admission cutoff entry. One record describes
// the last-admitted percentile for a (college, branch, category) triple.
type CutoffRecord struct {
	College          string  `json:"college"`
	Branch           string  `json:"branch"`
	Category         string  `json:"category"`
	CutoffPercentile float64 `json:"cutoff_percentile"`
	Source           string  `json:"source"`
}
