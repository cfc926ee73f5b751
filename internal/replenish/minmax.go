// internal/replenish/minmax.go
package replenish

import (
	"math"

	"github.com/andresuchdata/reposia/internal/domain"
)

// MinMaxInput is the per-row input of the min/max band calculation.
type MinMaxInput struct {
	Grade        domain.Grade
	AvgLastTwo   float64
	AvgLastThree float64
	SafetyStock  float64
}

// ComputeMinMax derives the minimum and maximum stock targets for one row.
//
// The minimum projects ten days of demand from the three-month average
// (spread over 20 working days for grade 3 products, 30 for grade 2) and
// never drops below the configured safety stock. Grade 0 and 1 products
// hold safety stock only.
//
// The maximum adds headroom above the minimum for products that actually
// move, and is clamped so that max >= min always holds.
func ComputeMinMax(in MinMaxInput) (minStock, maxStock int) {
	var dailyAvg float64
	switch in.Grade {
	case domain.GradeContinual:
		dailyAvg = in.AvgLastThree / 20
	case domain.GradeFrequent:
		dailyAvg = in.AvgLastThree / 30
	default:
		dailyAvg = 0
	}

	target := dailyAvg * 10
	minStock = int(math.Ceil(math.Max(target, in.SafetyStock)))

	var computedMax int
	switch {
	case in.AvgLastThree <= 1:
		computedMax = minStock
	case in.Grade == domain.GradeContinual:
		computedMax = int(math.Ceil(float64(minStock) + in.AvgLastThree))
	case in.Grade == domain.GradeFrequent:
		computedMax = int(math.Ceil(float64(minStock) + 0.5*in.AvgLastTwo))
	default:
		computedMax = 0
	}

	maxStock = computedMax
	if maxStock <= minStock {
		maxStock = minStock
	}
	return minStock, maxStock
}
