// Package shape classifies a part's geometry from its governing dimensions.
//
// Classification is an ordered rule list: the first rule whose predicate holds
// decides the shape and its volume formula. The predicates overlap, so the
// order of Rules is part of the contract.
package shape

import (
	"math"

	"partquote/core/types"
)

// VolumeScale converts the mm product into the unit the densities expect
const VolumeScale = 1000.0

// Elongation is the x1/x2 ratio above which a part is a profile
const Elongation = 3.0

// BlockTolerance is the absolute difference under which dimensions count as similar
const BlockTolerance = 100.0

// Input is what a rule sees
type Input struct {
	Dims types.Dimensions

	// Count is the number of measurements in the original set
	Count int
}

// Rule is one branch of the decision procedure
type Rule struct {
	Shape   types.Shape
	Matches func(in Input) bool
	Volume  func(d types.Dimensions) float64
}

// Classification is the chosen shape with its volume
type Classification struct {
	Shape  types.Shape
	Volume float64
}

func boxVolume(d types.Dimensions) float64 {
	return d.X1 * d.X2 * d.X3 / VolumeScale
}

// Rules is the decision procedure in priority order
var Rules = []Rule{
	{
		Shape: types.ShapeProfile,
		Matches: func(in Input) bool {
			return in.Dims.X1 > Elongation*in.Dims.X2
		},
		Volume: func(d types.Dimensions) float64 {
			return d.X2 * d.X3 * d.X1 / VolumeScale
		},
	},
	{
		Shape: types.ShapePlate,
		Matches: func(in Input) bool {
			return math.Abs(in.Dims.X1-in.Dims.X2) < BlockTolerance &&
				math.Abs(in.Dims.X2-in.Dims.X3) < BlockTolerance
		},
		Volume: boxVolume,
	},
	{
		Shape: types.ShapeCylinder,
		Matches: func(in Input) bool {
			return in.Count == types.MinMeasurements
		},
		// x2 is the diameter, x1 the length
		Volume: func(d types.Dimensions) float64 {
			radius := d.X2 / 2
			return math.Pi * radius * radius * d.X1 / VolumeScale
		},
	},
	{
		Shape:   types.ShapeStandard,
		Matches: func(Input) bool { return true },
		Volume:  boxVolume,
	},
}

// Classify picks the first matching rule for a sufficient measurement set.
// An insufficient set yields ShapeUnknown with zero volume.
func Classify(set types.MeasurementSet) Classification {
	if !set.Sufficient() {
		return Classification{Shape: types.ShapeUnknown}
	}

	in := Input{Dims: set.Dimensions(), Count: set.Len()}
	for _, rule := range Rules {
		if rule.Matches(in) {
			return Classification{Shape: rule.Shape, Volume: rule.Volume(in.Dims)}
		}
	}

	// Unreachable while the last rule matches everything
	return Classification{Shape: types.ShapeUnknown}
}
