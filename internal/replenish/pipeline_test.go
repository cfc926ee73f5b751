package replenish

import (
	"testing"
	"time"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildInput() Input {
	history := make([]SalesRecord, 0, 5)
	for m := time.January; m <= time.May; m++ {
		history = append(history, SalesRecord{
			GroupID:  "100",
			IssuedAt: day(2026, m, 10),
			Quantity: "40",
		})
	}

	return Input{
		Branch:   domain.NewBranchID("101"),
		Lookback: domain.LookbackQuarter,
		Stock: []StockRecord{
			{GroupID: "100", Description: "FILTRO OLEO", ProductCode: "F-100", OnHand: "3"},
			{GroupID: "100", Description: "FILTRO OLEO ALT", ProductCode: "F-100B", OnHand: "2"},
			{GroupID: "200", Description: "CORREIA", ProductCode: "C-200", OnHand: "10"},
		},
		Incoming: []IncomingRecord{
			{GroupID: "100", Quantity: "2"},
		},
		History: history,
		Params: []ParamRecord{
			{GroupID: "100"},
			{GroupID: "200", SafetyStock: 2},
			{GroupID: "200", SafetyStock: 4}, // duplicate; higher floor wins
		},
	}
}

func TestBuild(t *testing.T) {
	report := Build(buildInput())
	require.NotNil(t, report)
	assert.Equal(t, domain.BranchID("0101"), report.Branch)
	require.Len(t, report.Rows, 2)

	fast := report.Rows[0]
	assert.Equal(t, "100", fast.GroupID)
	assert.Equal(t, "FILTRO OLEO", fast.Description)
	assert.Equal(t, "F-100", fast.ProductCode)
	assert.InDelta(t, 5, fast.StockOnHand, 1e-9)
	assert.InDelta(t, 2, fast.QuantityIncoming, 1e-9)
	assert.InDelta(t, 200, fast.TotalSum, 1e-9)
	assert.Equal(t, 40, fast.AvgLastTwoMonths)
	assert.Equal(t, 40, fast.AvgLastThree)
	assert.Equal(t, domain.GradeContinual, fast.Grade)
	assert.Equal(t, 20, fast.Min)
	assert.Equal(t, 60, fast.Max)
	assert.Equal(t, 53, fast.Suggestion) // 60 - (5 on hand + 2 incoming)

	slow := report.Rows[1]
	assert.Equal(t, "200", slow.GroupID)
	assert.Equal(t, domain.GradeNone, slow.Grade)
	assert.InDelta(t, 4, slow.SafetyStock, 1e-9) // deduped to the higher floor
	assert.Equal(t, 4, slow.Min)
	assert.Equal(t, 4, slow.Max)
	assert.Equal(t, 0, slow.Suggestion) // 10 on hand covers the band
}

func TestBuildInvalidLookback(t *testing.T) {
	in := buildInput()
	in.Lookback = domain.Lookback(5)

	report := Build(in)
	require.NotNil(t, report)
	assert.True(t, report.Empty())
}

func TestBuildNoStock(t *testing.T) {
	in := buildInput()
	in.Stock = nil

	report := Build(in)
	require.NotNil(t, report)
	assert.True(t, report.Empty())
}

// Build is a pure function of its input: running it twice must produce
// identical reports with no shared mutation.
func TestBuildDeterministic(t *testing.T) {
	in := buildInput()
	first := Build(in)
	second := Build(in)
	assert.Equal(t, first, second)
}

func TestPositiveSuggestions(t *testing.T) {
	report := Build(buildInput())
	rows := PositiveSuggestions(report)
	require.Len(t, rows, 1)
	assert.Equal(t, "100", rows[0].GroupID)

	assert.Nil(t, PositiveSuggestions(nil))
	assert.Empty(t, PositiveSuggestions(&domain.ReplenishmentReport{}))
}

func TestJoinPeriodMetrics(t *testing.T) {
	rows := Build(buildInput()).Rows
	sales := []SalesAggregate{
		{GroupID: "100", SalesCount: 5, DemandSum: 200, AverageDemand: 67},
	}
	costs := []OrderCostAggregate{
		{GroupID: "100", Count: 2, AverageCost: decimal.RequireFromString("12.34")},
	}

	joined := JoinPeriodMetrics(rows, sales, costs)
	require.Len(t, joined, 2)

	assert.Equal(t, 5, joined[0].SalesCount)
	assert.InDelta(t, 200, joined[0].DemandSum, 1e-9)
	assert.Equal(t, 67, joined[0].AverageDemand)
	assert.True(t, joined[0].AverageCost.Equal(decimal.RequireFromString("12.34")))

	// Group 200 had no window activity; its metrics stay zero.
	assert.Equal(t, 0, joined[1].SalesCount)
	assert.InDelta(t, 0, joined[1].DemandSum, 1e-9)
	assert.True(t, joined[1].AverageCost.IsZero())
}
