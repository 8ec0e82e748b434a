// Package weight converts a classified volume into a mass and applies the
// oversize guard.
package weight

import "partquote/core/types"

// Densities provides the density of each material
type Densities interface {
	Density(m types.Material) float64
}

// Result is the computed mass of a part
type Result struct {
	WeightKg float64

	// Oversized is set when WeightKg exceeds the configured limit
	Oversized bool
}

// Calculator computes weights against a density table
type Calculator struct {
	densities Densities
	maxKg     float64
}

// NewCalculator creates a calculator. Parts heavier than maxKg are flagged.
func NewCalculator(densities Densities, maxKg float64) *Calculator {
	return &Calculator{densities: densities, maxKg: maxKg}
}

// Calculate returns volume × density(material)
func (c *Calculator) Calculate(volume float64, material types.Material) Result {
	w := volume * c.densities.Density(material)
	return Result{WeightKg: w, Oversized: w > c.maxKg}
}
