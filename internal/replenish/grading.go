// internal/replenish/grading.go
package replenish

import "github.com/andresuchdata/reposia/internal/domain"

// gradeWindowSize is the number of trailing calendar months the grading
// rules look at.
const gradeWindowSize = 5

// GradeWindow holds the sold quantities of the five most recent months,
// oldest first. Histories shorter than five months are padded with leading
// zeros, which is exactly how a product with no earlier sales behaves.
type GradeWindow [gradeWindowSize]float64

// TrailingWindow extracts the grading window from a monthly series.
func TrailingWindow(quantities []float64) GradeWindow {
	var w GradeWindow
	offset := gradeWindowSize - len(quantities)
	if offset < 0 {
		quantities = quantities[len(quantities)-gradeWindowSize:]
		offset = 0
	}
	for i, q := range quantities {
		w[offset+i] = q
	}
	return w
}

// GradeOf scores the sales regularity of a five-month window. Rules are
// evaluated in priority order and the first match wins:
//
//	3: the last three months all have sales.
//	2: at least two of the last three months have sales.
//	1: at least three of the five months have sales and no two
//	   chronologically adjacent months are both zero.
//	0: otherwise.
func GradeOf(w GradeWindow) domain.Grade {
	lastThreeNonzero := 0
	for _, q := range w[2:] {
		if q != 0 {
			lastThreeNonzero++
		}
	}
	if lastThreeNonzero == 3 {
		return domain.GradeContinual
	}
	if lastThreeNonzero >= 2 {
		return domain.GradeFrequent
	}

	nonzero := 0
	for _, q := range w {
		if q != 0 {
			nonzero++
		}
	}
	if nonzero >= 3 && !hasAdjacentZeroPair(w) {
		return domain.GradeSparse
	}
	return domain.GradeNone
}

// hasAdjacentZeroPair reports whether any two consecutive months sum to
// zero, the sliding pairwise check that disqualifies grade 1.
func hasAdjacentZeroPair(w GradeWindow) bool {
	for i := 0; i < len(w)-1; i++ {
		if w[i]+w[i+1] == 0 {
			return true
		}
	}
	return false
}
