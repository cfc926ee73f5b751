// internal/replenish/metrics.go
package replenish

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/andresuchdata/reposia/internal/domain"
	"github.com/shopspring/decimal"
)

// coerceNumeric parses a raw numeric field from the source. The second
// return value is false when the field is empty or unparseable: such
// values are excluded from sums entirely instead of counting as zero.
func coerceNumeric(raw string) (float64, bool) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ceilDiv returns ceil(sum/n) as an int, with a zero guard on n.
func ceilDiv(sum float64, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(sum / float64(n)))
}

// AggregateSales rolls raw sales transactions up to one row per product
// group: transaction count, demand sum and the monthly demand average over
// the lookback period. An invalid lookback yields no rows; so does empty
// input.
func AggregateSales(records []SalesRecord, lookback domain.Lookback) []SalesAggregate {
	if !lookback.Valid() {
		return nil
	}

	byGroup := make(map[string]*SalesAggregate)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" {
			continue
		}
		agg, ok := byGroup[group]
		if !ok {
			agg = &SalesAggregate{GroupID: group}
			byGroup[group] = agg
		}
		// Every transaction row counts, even when its quantity is missing.
		agg.SalesCount++
		if qty, ok := coerceNumeric(rec.Quantity); ok {
			agg.DemandSum += qty
		}
	}

	result := make([]SalesAggregate, 0, len(byGroup))
	for _, agg := range byGroup {
		agg.AverageDemand = ceilDiv(agg.DemandSum, lookback.Months())
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupID < result[j].GroupID })
	return result
}

// AggregateOrderCosts rolls received-order rows up to one row per product
// group with the period cost sum and the average unit cost rounded to two
// decimal places.
func AggregateOrderCosts(records []OrderRecord) []OrderCostAggregate {
	byGroup := make(map[string]*OrderCostAggregate)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" {
			continue
		}
		agg, ok := byGroup[group]
		if !ok {
			agg = &OrderCostAggregate{GroupID: group}
			byGroup[group] = agg
		}
		agg.Count++
		price := strings.TrimSpace(rec.Price)
		if price == "" {
			continue
		}
		if d, err := decimal.NewFromString(price); err == nil {
			agg.CostSum = agg.CostSum.Add(d)
		}
	}

	result := make([]OrderCostAggregate, 0, len(byGroup))
	for _, agg := range byGroup {
		if agg.Count > 0 {
			agg.AverageCost = agg.CostSum.DivRound(decimal.NewFromInt(int64(agg.Count)), 2)
		}
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].GroupID < result[j].GroupID })
	return result
}

// BuildMonthlyPivot buckets sold quantities by calendar month per product
// group. The column schema spans every month from the earliest to the
// latest transaction date, so interior months without sales appear as
// explicit zeros. Derived scalars and the grade are filled per row.
func BuildMonthlyPivot(records []SalesRecord) MonthlyPivot {
	type cell struct {
		month domain.MonthKey
		qty   float64
	}

	var (
		first, last domain.MonthKey
		haveMonths  bool
	)
	cells := make(map[string][]cell)
	for _, rec := range records {
		group := strings.TrimSpace(rec.GroupID)
		if group == "" || rec.IssuedAt.IsZero() {
			continue
		}
		qty, ok := coerceNumeric(rec.Quantity)
		if !ok {
			qty = 0
		}
		month := domain.MonthKeyOf(rec.IssuedAt)
		cells[group] = append(cells[group], cell{month: month, qty: qty})

		if !haveMonths {
			first, last = month, month
			haveMonths = true
			continue
		}
		if month.Before(first) {
			first = month
		}
		if last.Before(month) {
			last = month
		}
	}

	if !haveMonths {
		return MonthlyPivot{}
	}

	months := []domain.MonthKey{first}
	for m := first; m != last; m = m.Next() {
		months = append(months, m.Next())
	}
	index := make(map[domain.MonthKey]int, len(months))
	for i, m := range months {
		index[m] = i
	}

	groups := make([]string, 0, len(cells))
	for group := range cells {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	rows := make([]PivotRow, 0, len(groups))
	for _, group := range groups {
		quantities := make([]float64, len(months))
		for _, c := range cells[group] {
			quantities[index[c.month]] += c.qty
		}

		row := PivotRow{
			GroupID:    group,
			Quantities: quantities,
		}
		for _, q := range quantities {
			row.TotalSum += q
		}
		row.AvgLastTwoMonths = ceilOfTrailingMean(quantities, 2)
		row.AvgLastThree = ceilOfTrailingMean(quantities, 3)
		row.Grade = GradeOf(TrailingWindow(quantities))
		rows = append(rows, row)
	}

	return MonthlyPivot{Months: months, Rows: rows}
}

// ceilOfTrailingMean averages the most recent n populated month slots and
// rounds up. Shorter histories average over however many slots exist.
func ceilOfTrailingMean(quantities []float64, n int) int {
	if len(quantities) == 0 {
		return 0
	}
	if n > len(quantities) {
		n = len(quantities)
	}
	var sum float64
	for _, q := range quantities[len(quantities)-n:] {
		sum += q
	}
	return int(math.Ceil(sum / float64(n)))
}
