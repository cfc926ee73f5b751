// internal/replenish/sheet.go
package replenish

import (
	"math"
	"strconv"
	"strings"
)

// NormalizeGroupCode turns sheet-mangled group codes ("101.0", "101,0")
// back into their plain integer string form. Values that never were
// numeric are kept verbatim.
func NormalizeGroupCode(raw string) string {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return v
	}
	return strconv.FormatInt(int64(math.Round(f)), 10)
}

// ParseSheetNumber reads a sheet numeric with an optional comma decimal
// separator, defaulting to zero when missing or unparseable.
func ParseSheetNumber(raw string) float64 {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
	if err != nil {
		return 0
	}
	return f
}
