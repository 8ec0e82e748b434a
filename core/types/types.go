// Package types - Values flowing through the dimension-to-quote pipeline
// Every value here is created once per request and never mutated afterwards.
package types

// RecognizedText is the raw text returned by OCR for a dimension sheet
type RecognizedText string

// String returns the raw text
func (t RecognizedText) String() string {
	return string(t)
}

// Currency represents a currency code
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}

// Shape is the geometric model used to compute a part's volume
type Shape string

const (
	// ShapeProfile is a long thin bar or tube
	ShapeProfile Shape = "Profil/Rohr"

	// ShapePlate is a near-cubic block or slab
	ShapePlate Shape = "Platte/Klotz"

	// ShapeCylinder is a round bar described by length and diameter
	ShapeCylinder Shape = "Zylinder"

	// ShapeStandard is the generic box fallback
	ShapeStandard Shape = "Standard"

	// ShapeUnknown is used before classification
	ShapeUnknown Shape = "unbekannt"
)

// String returns the wire label
func (s Shape) String() string {
	return string(s)
}

// Material identifies the raw material of a part
type Material string

const (
	MaterialSteel     Material = "stahl"
	MaterialAluminum  Material = "aluminium"
	MaterialStainless Material = "edelstahl"
	MaterialBrass     Material = "messing"
	MaterialCopper    Material = "kupfer"
)

// String returns the wire identifier
func (m Material) String() string {
	return string(m)
}

// AllMaterials lists every supported material in a stable order
func AllMaterials() []Material {
	return []Material{
		MaterialSteel,
		MaterialAluminum,
		MaterialStainless,
		MaterialBrass,
		MaterialCopper,
	}
}

// Valid reports whether m is a supported material
func (m Material) Valid() bool {
	for _, known := range AllMaterials() {
		if m == known {
			return true
		}
	}
	return false
}

// QuoteRequest is everything the core needs for one quote
type QuoteRequest struct {
	// Text is the recognized text
	Text RecognizedText

	// Quantity is the requested number of parts (always >= 1)
	Quantity int

	// TargetPrice is echoed unchanged, nil when absent
	TargetPrice *string
}
