package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBranchID(t *testing.T) {
	tests := []struct {
		raw  string
		want BranchID
	}{
		{"101", "0101"},
		{"0101", "0101"},
		{"1", "0001"},
		{" 101 ", "0101"},
		{"10101", "10101"},
		{"", "0000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewBranchID(tt.raw), "raw=%q", tt.raw)
	}
}

func TestLookbackDays(t *testing.T) {
	assert.Equal(t, 89, LookbackQuarter.Days())
	assert.Equal(t, 182, LookbackHalfYear.Days())
	assert.Equal(t, 365, LookbackYear.Days())
	assert.Equal(t, 730, LookbackTwoYears.Days())
	assert.Equal(t, 0, Lookback(0).Days())
	assert.Equal(t, 0, Lookback(5).Days())
}

func TestLookbackValid(t *testing.T) {
	assert.True(t, LookbackQuarter.Valid())
	assert.False(t, Lookback(0).Valid())
	assert.False(t, Lookback(9).Valid())
}

func TestParseLookback(t *testing.T) {
	tests := []struct {
		in   string
		want Lookback
		ok   bool
	}{
		{"3", LookbackQuarter, true},
		{"3 meses", LookbackQuarter, true},
		{"6 Meses", LookbackHalfYear, true},
		{" 12 ", LookbackYear, true},
		{"24 meses", LookbackTwoYears, true},
		{"", 0, false},
		{"5", 0, false},
		{"tres meses", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseLookback(tt.in)
		assert.Equal(t, tt.ok, ok, "in=%q", tt.in)
		assert.Equal(t, tt.want, got, "in=%q", tt.in)
	}
}

func TestMonthKey(t *testing.T) {
	jan := MonthKey{Year: 2026, Month: time.January}
	dec := MonthKey{Year: 2025, Month: time.December}

	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, MonthKey{Year: 2026, Month: time.February}, jan.Next())
	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.False(t, jan.Before(jan))
	assert.Equal(t, "2025-12", dec.String())

	ts := time.Date(2026, time.August, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, MonthKey{Year: 2026, Month: time.August}, MonthKeyOf(ts))
}
