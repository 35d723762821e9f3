// Package tokenizer estimates token counts and enforces the per-run token budget.
package tokenizer

import (
	"math"
	"unicode/utf8"
)

// charactersPerToken is the fixed ratio used by Estimate.
const charactersPerToken = 4.0

// Estimate approximates the number of model tokens in text as round(characters/4),
// with halves rounded up. It is the only token computation in codedigest.
func Estimate(text string) int {
	characterCount := utf8.RuneCountInString(text)
	return int(math.Floor(float64(characterCount)/charactersPerToken + 0.5))
}
