package replenish

import (
	"fmt"
	"testing"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestComputeMinMax(t *testing.T) {
	tests := []struct {
		name    string
		in      MinMaxInput
		wantMin int
		wantMax int
	}{
		{
			name:    "grade 3 spreads three-month average over 20 days",
			in:      MinMaxInput{Grade: domain.GradeContinual, AvgLastTwo: 40, AvgLastThree: 40},
			wantMin: 20, // ceil(40/20*10)
			wantMax: 60, // ceil(20+40)
		},
		{
			name:    "grade 2 spreads three-month average over 30 days",
			in:      MinMaxInput{Grade: domain.GradeFrequent, AvgLastTwo: 30, AvgLastThree: 30},
			wantMin: 10, // ceil(30/30*10)
			wantMax: 25, // ceil(10+0.5*30)
		},
		{
			name:    "grade 1 holds safety stock only",
			in:      MinMaxInput{Grade: domain.GradeSparse, AvgLastTwo: 5, AvgLastThree: 6, SafetyStock: 4},
			wantMin: 4,
			wantMax: 4, // computed max 0 clamped up to min
		},
		{
			name:    "grade 0 with no safety stock yields empty band",
			in:      MinMaxInput{Grade: domain.GradeNone, AvgLastThree: 2},
			wantMin: 0,
			wantMax: 0,
		},
		{
			name:    "safety stock floors the minimum",
			in:      MinMaxInput{Grade: domain.GradeContinual, AvgLastTwo: 4, AvgLastThree: 4, SafetyStock: 15},
			wantMin: 15,
			wantMax: 19, // ceil(15+4)
		},
		{
			name:    "negligible demand collapses max onto min",
			in:      MinMaxInput{Grade: domain.GradeContinual, AvgLastTwo: 1, AvgLastThree: 1, SafetyStock: 3},
			wantMin: 3,
			wantMax: 3,
		},
		{
			name:    "fractional daily average rounds the minimum up",
			in:      MinMaxInput{Grade: domain.GradeContinual, AvgLastTwo: 7, AvgLastThree: 7},
			wantMin: 4,  // ceil(7/20*10) = ceil(3.5)
			wantMax: 11, // ceil(4+7)
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotMin, gotMax := ComputeMinMax(tt.in)
			assert.Equal(t, tt.wantMin, gotMin, "min")
			assert.Equal(t, tt.wantMax, gotMax, "max")
		})
	}
}

// The band must stay well formed for any combination of grade, averages and
// safety stock the pipeline can produce.
func TestComputeMinMaxBandIsWellFormed(t *testing.T) {
	grades := []domain.Grade{domain.GradeNone, domain.GradeSparse, domain.GradeFrequent, domain.GradeContinual}
	averages := []float64{0, 0.5, 1, 2, 7, 30, 123}
	safeties := []float64{0, 1, 8, 50}

	for _, grade := range grades {
		for _, avg2 := range averages {
			for _, avg3 := range averages {
				for _, seg := range safeties {
					in := MinMaxInput{Grade: grade, AvgLastTwo: avg2, AvgLastThree: avg3, SafetyStock: seg}
					name := fmt.Sprintf("g%d_a2_%v_a3_%v_s%v", grade, avg2, avg3, seg)
					t.Run(name, func(t *testing.T) {
						minStock, maxStock := ComputeMinMax(in)
						assert.GreaterOrEqual(t, maxStock, minStock)
						assert.GreaterOrEqual(t, minStock, 0)
						assert.GreaterOrEqual(t, float64(minStock), seg)
					})
				}
			}
		}
	}
}
