package entities

import "math"

// Progress is a derived view of a learned set against its catalog.
type Progress struct {
	Count   int
	Total   int
	Percent int
}

// NewProgress computes the percentage, which is zero for an empty catalog.
func NewProgress(count, total int) Progress {
	p := Progress{Count: count, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(count) / float64(total) * 100))
	}
	return p
}
