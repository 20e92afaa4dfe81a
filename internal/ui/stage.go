package ui

import "ytcatalog/internal/progress"

// stageLine is one row of the progress view, created the first time a stage
// reports and finished once a later stage starts.
type stageLine struct {
	stage  progress.Stage
	status string
	count  int
	total  int
	done   bool
}

// percent returns the completed fraction, or -1 when the total is unknown.
func (s stageLine) percent() float64 {
	if s.total <= 0 {
		return -1
	}
	p := float64(s.count) / float64(s.total)
	if p > 1 {
		p = 1
	}
	return p
}
