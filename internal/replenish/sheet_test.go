package replenish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeGroupCode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"101", "101"},
		{"101.0", "101"},
		{"101,0", "101"},
		{" 101.0 ", "101"},
		{"100.6", "101"}, // sheet rounding artifact, round half up
		{"ABC-1", "ABC-1"},
		{"", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeGroupCode(tt.raw), "raw=%q", tt.raw)
	}
}

func TestParseSheetNumber(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"4", 4},
		{"4.5", 4.5},
		{"4,5", 4.5},
		{" 1 ", 1},
		{"", 0},
		{"n/a", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, ParseSheetNumber(tt.raw), 1e-9, "raw=%q", tt.raw)
	}
}
