// internal/domain/types.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

// BranchID is the canonical identifier of a stocking branch (filial).
// The ERP is inconsistent about zero padding, so every raw code is
// normalized to the fixed 4-digit form at the ingestion boundary and
// compared only in that form afterwards.
type BranchID string

// NewBranchID normalizes a raw branch code to its 4-digit canonical form.
// Codes longer than 4 digits are kept as-is after trimming.
func NewBranchID(raw string) BranchID {
	code := strings.TrimSpace(raw)
	for len(code) < 4 {
		code = "0" + code
	}
	return BranchID(code)
}

func (b BranchID) String() string {
	return string(b)
}

// Grade scores how regular a product group's recent sales are.
// It is recomputed on every run and never persisted as ground truth.
type Grade int

const (
	GradeNone      Grade = 0
	GradeSparse    Grade = 1
	GradeFrequent  Grade = 2
	GradeContinual Grade = 3
)

// Lookback is the user-facing history selector, expressed in months.
type Lookback int

const (
	LookbackQuarter  Lookback = 3
	LookbackHalfYear Lookback = 6
	LookbackYear     Lookback = 12
	LookbackTwoYears Lookback = 24
)

var lookbackDays = map[Lookback]int{
	LookbackQuarter:  89,
	LookbackHalfYear: 182,
	LookbackYear:     365,
	LookbackTwoYears: 730,
}

// Days maps the selector to the number of days queried from the source.
// Unrecognized selectors map to 0, which callers must treat as "no data".
func (l Lookback) Days() int {
	return lookbackDays[l]
}

// Valid reports whether the selector is one of the supported periods.
func (l Lookback) Valid() bool {
	return l.Days() > 0
}

// Months returns the selector value as a month count for demand averaging.
func (l Lookback) Months() int {
	return int(l)
}

// ParseLookback parses the "3 meses" style labels used by report consumers.
func ParseLookback(s string) (Lookback, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	s = strings.TrimSuffix(s, "meses")
	s = strings.TrimSpace(s)
	switch s {
	case "3":
		return LookbackQuarter, true
	case "6":
		return LookbackHalfYear, true
	case "12":
		return LookbackYear, true
	case "24":
		return LookbackTwoYears, true
	}
	return 0, false
}

// MonthKey identifies a calendar month bucket in a monthly pivot.
// Pivot columns carry an explicit ordered schema of MonthKeys so that
// month buckets never have to be detected by value sniffing.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthKeyOf truncates a timestamp to its calendar month.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey{Year: t.Year(), Month: t.Month()}
}

// Next returns the following calendar month.
func (m MonthKey) Next() MonthKey {
	if m.Month == time.December {
		return MonthKey{Year: m.Year + 1, Month: time.January}
	}
	return MonthKey{Year: m.Year, Month: m.Month + 1}
}

// Before reports whether m is chronologically earlier than other.
func (m MonthKey) Before(other MonthKey) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// StockIndicator is the cached categorical stock-health label kept per
// (product group, branch) in the snapshot.
type StockIndicator string

const (
	IndicatorNoBuy      StockIndicator = "NB" // manual do-not-buy anywhere in the group
	IndicatorActive     StockIndicator = "EN" // actively selling (grade 2 or 3)
	IndicatorSafetyOnly StockIndicator = "EB" // slow mover held only by safety stock
	IndicatorNoMovement StockIndicator = "NE" // slow mover with no safety stock
	IndicatorUnset      StockIndicator = ""   // no rule applied
)
