// internal/replenish/types.go
package replenish

import (
	"time"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/shopspring/decimal"
)

// SalesRecord is one sales transaction row as delivered by the raw-data
// source. Numeric fields arrive as strings and are coerced during
// aggregation; a value that fails to parse is treated as missing, not zero.
type SalesRecord struct {
	GroupID  string
	Branch   domain.BranchID
	DocCode  string
	IssuedAt time.Time
	Quantity string
}

// OrderRecord is one received-order transaction row with its unit price.
type OrderRecord struct {
	GroupID string
	Branch  domain.BranchID
	Price   string
}

// StockRecord is one on-hand inventory row per SKU; multiple SKUs roll up
// into the same product group.
type StockRecord struct {
	GroupID     string
	Branch      domain.BranchID
	Description string
	ProductCode string
	OnHand      string
}

// IncomingRecord is one open purchase-order row not yet received.
type IncomingRecord struct {
	GroupID  string
	Branch   domain.BranchID
	Quantity string
}

// ParamRecord carries the manually maintained parameters for a product
// group: safety stock floor and the do-not-buy override.
type ParamRecord struct {
	GroupID     string
	SafetyStock float64
	DoNotBuy    int
}

// SalesAggregate summarizes sales transactions for a product group over
// the lookback window.
type SalesAggregate struct {
	GroupID       string
	SalesCount    int
	DemandSum     float64
	AverageDemand int
}

// OrderCostAggregate summarizes received-order prices for a product group.
type OrderCostAggregate struct {
	GroupID     string
	Count       int
	CostSum     decimal.Decimal
	AverageCost decimal.Decimal
}

// MonthlyPivot buckets sold quantity by calendar month per product group.
// Months is the explicit column schema, oldest to newest and contiguous:
// a month inside the window with no transactions is present with zero
// quantities rather than absent.
type MonthlyPivot struct {
	Months []domain.MonthKey
	Rows   []PivotRow
}

// PivotRow is one product group's monthly series plus its derived scalars.
type PivotRow struct {
	GroupID          string
	Quantities       []float64 // aligned with MonthlyPivot.Months
	TotalSum         float64
	AvgLastTwoMonths int
	AvgLastThree     int
	Grade            domain.Grade
}

// Lookup returns the pivot row for a group, if present.
func (p *MonthlyPivot) Lookup(groupID string) (PivotRow, bool) {
	for _, row := range p.Rows {
		if row.GroupID == groupID {
			return row, true
		}
	}
	return PivotRow{}, false
}
