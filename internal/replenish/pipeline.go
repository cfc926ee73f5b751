// internal/replenish/pipeline.go
package replenish

import (
	"sort"
	"strings"

	"github.com/andresuchdata/reposia/internal/domain"
)

// Input is everything one branch run needs from the external sources.
// All slices are raw transaction-level rows; the pipeline owns every
// aggregation and join from here on.
type Input struct {
	Branch   domain.BranchID
	Lookback domain.Lookback

	Stock    []StockRecord
	Incoming []IncomingRecord
	History  []SalesRecord
	Params   []ParamRecord
}

// stockAggregate is the per-group rollup of on-hand stock. Description and
// product code take the first occurrence, mirroring how interchangeable
// SKUs share their group metadata.
type stockAggregate struct {
	groupID     string
	description string
	productCode string
	onHand      float64
}

// Build runs the full replenishment pipeline for one branch and returns a
// fresh report. Each stage produces a new table from its input; nothing is
// mutated after creation. An invalid lookback selector yields an empty
// report rather than an error.
func Build(in Input) *domain.ReplenishmentReport {
	report := &domain.ReplenishmentReport{
		Branch:   in.Branch,
		Lookback: in.Lookback,
	}
	if !in.Lookback.Valid() {
		return report
	}

	stock := aggregateStock(in.Stock)
	if len(stock) == 0 {
		return report
	}

	incoming := aggregateIncoming(in.Incoming)
	pivot := BuildMonthlyPivot(in.History)
	params := dedupParams(in.Params)

	rows := make([]domain.ReplenishmentRow, 0, len(stock))
	for _, base := range stock {
		row := domain.ReplenishmentRow{
			GroupID:     base.groupID,
			Branch:      in.Branch,
			Description: base.description,
			ProductCode: base.productCode,
			StockOnHand: base.onHand,
		}

		// Left joins: groups missing from a side get zero defaults.
		row.QuantityIncoming = incoming[base.groupID]
		if pr, ok := pivot.Lookup(base.groupID); ok {
			row.TotalSum = pr.TotalSum
			row.AvgLastTwoMonths = pr.AvgLastTwoMonths
			row.AvgLastThree = pr.AvgLastThree
			row.Grade = pr.Grade
		}
		if p, ok := params[base.groupID]; ok {
			row.SafetyStock = p.SafetyStock
			row.DoNotBuy = p.DoNotBuy
		}

		row.Min, row.Max = ComputeMinMax(MinMaxInput{
			Grade:        row.Grade,
			AvgLastTwo:   float64(row.AvgLastTwoMonths),
			AvgLastThree: float64(row.AvgLastThree),
			SafetyStock:  row.SafetyStock,
		})
		row.Suggestion = SuggestPurchase(SuggestionInput{
			DoNotBuy:         row.DoNotBuy,
			StockOnHand:      row.StockOnHand,
			QuantityIncoming: row.QuantityIncoming,
			Min:              row.Min,
			Max:              row.Max,
		})

		rows = append(rows, row)
	}

	report.Rows = rows
	return report
}

// PositiveSuggestions filters a report down to the rows that actually ask
// for a purchase, which is what the display consumers show.
func PositiveSuggestions(report *domain.ReplenishmentReport) []domain.ReplenishmentRow {
	if report == nil {
		return nil
	}
	out := make([]domain.ReplenishmentRow, 0)
	for _, row := range report.Rows {
		if row.Suggestion > 0 {
			out = append(out, row)
		}
	}
	return out
}

// JoinPeriodMetrics left-joins the lookback-window aggregates onto the
// replenishment rows for the inventory analysis report. Groups without
// sales or order activity in the window keep zero-valued metrics.
func JoinPeriodMetrics(rows []domain.ReplenishmentRow, sales []SalesAggregate, costs []OrderCostAggregate) []domain.AnalysisRow {
	salesByGroup := make(map[string]SalesAggregate, len(sales))
	for _, s := range sales {
		salesByGroup[s.GroupID] = s
	}
	costsByGroup := make(map[string]OrderCostAggregate, len(costs))
	for _, c := range costs {
		costsByGroup[c.GroupID] = c
	}

	out := make([]domain.AnalysisRow, 0, len(rows))
	for _, row := range rows {
		ar := domain.AnalysisRow{ReplenishmentRow: row}
		if s, ok := salesByGroup[row.GroupID]; ok {
			ar.SalesCount = s.SalesCount
			ar.DemandSum = s.DemandSum
			ar.AverageDemand = s.AverageDemand
		}
		if c, ok := costsByGroup[row.GroupID]; ok {
			ar.AverageCost = c.AverageCost
		}
		out = append(out, ar)
	}
	return out
}

func aggregateStock(records []StockRecord) []stockAggregate {
	byGroup := make(map[string]*stockAggregate)
	order := make([]string, 0)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" {
			continue
		}
		agg, ok := byGroup[group]
		if !ok {
			agg = &stockAggregate{
				groupID:     group,
				description: rec.Description,
				productCode: rec.ProductCode,
			}
			byGroup[group] = agg
			order = append(order, group)
		}
		if qty, ok := coerceNumeric(rec.OnHand); ok {
			agg.onHand += qty
		}
	}

	sort.Strings(order)
	result := make([]stockAggregate, 0, len(order))
	for _, group := range order {
		result = append(result, *byGroup[group])
	}
	return result
}

func aggregateIncoming(records []IncomingRecord) map[string]float64 {
	byGroup := make(map[string]float64)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" {
			continue
		}
		if qty, ok := coerceNumeric(rec.Quantity); ok {
			byGroup[group] += qty
		}
	}
	return byGroup
}

// dedupParams keeps one parameter row per group. When the sheet carries
// duplicates the row with the highest safety stock wins.
func dedupParams(records []ParamRecord) map[string]ParamRecord {
	byGroup := make(map[string]ParamRecord)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" {
			continue
		}
		if existing, ok := byGroup[group]; ok && existing.SafetyStock >= rec.SafetyStock {
			continue
		}
		rec.GroupID = group
		byGroup[group] = rec
	}
	return byGroup
}
