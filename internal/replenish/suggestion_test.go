package replenish

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuggestPurchase(t *testing.T) {
	tests := []struct {
		name string
		in   SuggestionInput
		want int
	}{
		{
			name: "tops available stock up to the maximum",
			in:   SuggestionInput{Min: 10, Max: 20, StockOnHand: 3, QuantityIncoming: 2},
			want: 15,
		},
		{
			name: "available at the minimum buys nothing",
			in:   SuggestionInput{Min: 10, Max: 20, StockOnHand: 7, QuantityIncoming: 3},
			want: 0,
		},
		{
			name: "available above the minimum buys nothing",
			in:   SuggestionInput{Min: 10, Max: 20, StockOnHand: 25},
			want: 0,
		},
		{
			name: "do-not-buy overrides everything else",
			in:   SuggestionInput{DoNotBuy: 1, Min: 10, Max: 20, StockOnHand: 0},
			want: 0,
		},
		{
			name: "stale maximum below available clamps to zero",
			in:   SuggestionInput{Min: 10, Max: 4, StockOnHand: 6},
			want: 0,
		},
		{
			name: "fractional stock rounds the order up",
			in:   SuggestionInput{Min: 10, Max: 20, StockOnHand: 2.5},
			want: 18,
		},
		{
			name: "empty band with no stock buys nothing",
			in:   SuggestionInput{Min: 0, Max: 0, StockOnHand: 0},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SuggestPurchase(tt.in))
		})
	}
}

func TestSuggestPurchaseNeverNegative(t *testing.T) {
	stocks := []float64{0, 1, 5.5, 12, 100}
	incomings := []float64{0, 2, 30}
	for _, onHand := range stocks {
		for _, incoming := range incomings {
			for _, max := range []int{0, 3, 10, 50} {
				got := SuggestPurchase(SuggestionInput{Min: 10, Max: max, StockOnHand: onHand, QuantityIncoming: incoming})
				assert.GreaterOrEqual(t, got, 0)
			}
		}
	}
}
