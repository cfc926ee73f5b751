// internal/domain/report.go
package domain

import "github.com/shopspring/decimal"

// ReplenishmentRow is one line of the final report: everything the pipeline
// derived for a (product group, branch) pair in a single run.
type ReplenishmentRow struct {
	GroupID          string         `json:"group_id"`
	Branch           BranchID       `json:"branch"`
	Description      string         `json:"description"`
	ProductCode      string         `json:"product_code"`
	StockOnHand      float64        `json:"stock_on_hand"`
	QuantityIncoming float64        `json:"quantity_incoming"`
	TotalSum         float64        `json:"total_sum"`
	AvgLastTwoMonths int            `json:"avg_last_two_months"`
	AvgLastThree     int            `json:"avg_last_three_months"`
	Grade            Grade          `json:"grade"`
	SafetyStock      float64        `json:"safety_stock"`
	DoNotBuy         int            `json:"do_not_buy"`
	Min              int            `json:"min"`
	Max              int            `json:"max"`
	Suggestion       int            `json:"suggestion"`
	Indicator        StockIndicator `json:"stock_indicator,omitempty"`
}

// PeriodMetrics carries the lookback-window aggregates joined onto the
// replenishment rows for the inventory analysis report.
type PeriodMetrics struct {
	SalesCount    int             `json:"sales_period_count"`
	DemandSum     float64         `json:"demand_period_sum"`
	AverageDemand int             `json:"average_demand"`
	AverageCost   decimal.Decimal `json:"average_cost"`
}

// AnalysisRow is a replenishment row enriched with period metrics.
type AnalysisRow struct {
	ReplenishmentRow
	PeriodMetrics
}

// ReplenishmentReport is the report-sink payload for one branch run.
type ReplenishmentReport struct {
	Branch   BranchID           `json:"branch"`
	Lookback Lookback           `json:"lookback_months"`
	Rows     []ReplenishmentRow `json:"rows"`
}

// Empty reports whether the run produced no rows. An unrecognized lookback
// selector ends up here: callers get an empty report, never an error.
func (r *ReplenishmentReport) Empty() bool {
	return r == nil || len(r.Rows) == 0
}

// AnalysisReport is the inventory analysis payload for one branch and period.
type AnalysisReport struct {
	Branch   BranchID      `json:"branch"`
	Lookback Lookback      `json:"lookback_months"`
	Rows     []AnalysisRow `json:"rows"`
}
