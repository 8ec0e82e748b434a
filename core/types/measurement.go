package types

// DefaultThirdDimension is used for x3 when only two measurements exist
const DefaultThirdDimension = 10.0

// MinMeasurements is the smallest set that can be classified
const MinMeasurements = 2

// MeasurementSet is the filtered list of plausible dimensions in millimeters,
// sorted descending. The backing slice is never exposed.
type MeasurementSet struct {
	values []float64
}

// NewMeasurementSet wraps values that are already filtered and sorted.
// The slice is copied.
func NewMeasurementSet(values []float64) MeasurementSet {
	cp := make([]float64, len(values))
	copy(cp, values)
	return MeasurementSet{values: cp}
}

// Len returns the number of measurements
func (m MeasurementSet) Len() int {
	return len(m.values)
}

// At returns the i-th largest measurement
func (m MeasurementSet) At(i int) float64 {
	return m.values[i]
}

// Values returns a copy of the measurements
func (m MeasurementSet) Values() []float64 {
	cp := make([]float64, len(m.values))
	copy(cp, m.values)
	return cp
}

// Sufficient reports whether the set can be classified
func (m MeasurementSet) Sufficient() bool {
	return len(m.values) >= MinMeasurements
}

// Dimensions returns the governing values x1 >= x2 >= x3.
// Must only be called on a sufficient set.
func (m MeasurementSet) Dimensions() Dimensions {
	d := Dimensions{X1: m.values[0], X2: m.values[1], X3: DefaultThirdDimension}
	if len(m.values) > 2 {
		d.X3 = m.values[2]
	}
	return d
}

// Dimensions are the three governing measurements of a part
type Dimensions struct {
	X1 float64
	X2 float64
	X3 float64
}
