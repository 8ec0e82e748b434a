// Package measure extracts plausible physical dimensions from recognized text.
package measure

import (
	"regexp"
	"strconv"

	"partquote/core/determinism"
	"partquote/core/types"
)

// Default plausible range in millimeters. Smaller values are treated as page
// numbers or noise, larger ones as prices or unit artifacts.
const (
	DefaultMin = 5.0
	DefaultMax = 1500.0
)

// numberPattern matches an unsigned integer or decimal with one fractional part
var numberPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Range is the inclusive interval of accepted values
type Range struct {
	Min float64
	Max float64
}

// DefaultRange returns [5, 1500]
func DefaultRange() Range {
	return Range{Min: DefaultMin, Max: DefaultMax}
}

// Contains reports whether v lies inside the range (inclusive)
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Extractor turns recognized text into a MeasurementSet
type Extractor struct {
	rng Range
}

// NewExtractor creates an extractor for the given range
func NewExtractor(rng Range) *Extractor {
	return &Extractor{rng: rng}
}

// Range returns the configured range
func (e *Extractor) Range() Range {
	return e.rng
}

// Extract scans text for numbers, keeps those in range and sorts them
// descending. An empty or short result is not an error; callers check
// Sufficient on the returned set.
func (e *Extractor) Extract(text types.RecognizedText) types.MeasurementSet {
	tokens := numberPattern.FindAllString(string(text), -1)

	values := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			continue
		}
		if e.rng.Contains(v) {
			values = append(values, v)
		}
	}

	determinism.SortSlice(values, func(a, b float64) bool { return a > b })
	return types.NewMeasurementSet(values)
}
