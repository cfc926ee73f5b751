// internal/replenish/suggestion.go
package replenish

import "math"

// SuggestionInput is the per-row input of the purchase suggestion rule.
type SuggestionInput struct {
	DoNotBuy         int
	StockOnHand      float64
	QuantityIncoming float64
	Min              int
	Max              int
}

// SuggestPurchase computes the suggested order quantity for one row.
//
// The manual do-not-buy flag suppresses the suggestion outright. Otherwise
// available stock (on hand plus incoming) is compared against the minimum:
// at or above it nothing is bought, below it the order tops the position up
// to the maximum. A stale maximum below the available position would yield
// a negative quantity; that case is clamped to zero.
func SuggestPurchase(in SuggestionInput) int {
	if in.DoNotBuy == 1 {
		return 0
	}

	available := in.StockOnHand + in.QuantityIncoming
	if available >= float64(in.Min) {
		return 0
	}

	suggestion := float64(in.Max) - available
	if suggestion < 0 {
		return 0
	}
	return int(math.Ceil(suggestion))
}
