package engine

import (
	"strings"

	"partquote/core/types"
)

// NewRequest builds a request from raw caller values. Quantity and target
// price arrive as untyped form strings.
func NewRequest(text string, quantity, targetPrice string) types.QuoteRequest {
	return types.QuoteRequest{
		Text:        types.RecognizedText(text),
		Quantity:    ParseQuantity(quantity),
		TargetPrice: ParseTargetPrice(targetPrice),
	}
}

// ParseQuantity reads the leading decimal digits of raw (after optional
// whitespace and a single '+' sign). Anything that does not yield a positive integer becomes 1.
func ParseQuantity(raw string) int {
	s := strings.TrimLeft(raw, " \t\r\n")
	s = strings.TrimPrefix(s, "+")
	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > maxQuantity {
			return 1
		}
	}
	if digits == 0 || n < 1 {
		return 1
	}
	return n
}

// maxQuantity keeps the product far from int overflow
const maxQuantity = 1_000_000_000

// ParseTargetPrice returns nil for an empty value, otherwise raw unchanged
func ParseTargetPrice(raw string) *string {
	if raw == "" {
		return nil
	}
	return &raw
}
