package output

import (
	"encoding/json"
	"io"

	"partquote/core/determinism"
	"partquote/core/types"
)

// Field order of the structs below is the wire order.

// InsufficientWire is the body for a quote without enough dimensions
type InsufficientWire struct {
	Hinweis string `json:"hinweis"`
}

// OversizedWire is the body for a part above the weight limit
type OversizedWire struct {
	Form     string  `json:"form"`
	X1       float64 `json:"x1"`
	X2       float64 `json:"x2"`
	X3       float64 `json:"x3"`
	Material string  `json:"material"`
	Gewicht  string  `json:"gewicht"`
	Hinweis  string  `json:"hinweis"`
}

// OverpricedWire is the body for a part above the price ceiling
type OverpricedWire struct {
	Form     string  `json:"form"`
	X1       float64 `json:"x1"`
	X2       float64 `json:"x2"`
	X3       float64 `json:"x3"`
	Material string  `json:"material"`
	Gewicht  string  `json:"gewicht"`
	Preis    string  `json:"preis"`
	Hinweis  string  `json:"hinweis"`
}

// PricedWire is the body for a complete quote
type PricedWire struct {
	Form             string  `json:"form"`
	Material         string  `json:"material"`
	X1               float64 `json:"x1"`
	X2               float64 `json:"x2"`
	X3               float64 `json:"x3"`
	Gewicht          string  `json:"gewicht"`
	LaufzeitMin      string  `json:"laufzeit_min"`
	Materialkosten   string  `json:"materialkosten"`
	EinzelpreisFinal string  `json:"einzelpreis_final"`
	Zielpreis        *string `json:"zielpreis"`
	Stueckzahl       int     `json:"stueckzahl"`
}

// Wire converts q into its flat wire struct
func Wire(q types.Quote) interface{} {
	switch v := q.(type) {
	case *types.Insufficient:
		return InsufficientWire{Hinweis: v.Note}

	case *types.NeedsReview:
		if v.Reason == types.ReasonOverpriced && v.UnitPrice != nil {
			return OverpricedWire{
				Form:     v.Shape.String(),
				X1:       v.Dimensions.X1,
				X2:       v.Dimensions.X2,
				X3:       v.Dimensions.X3,
				Material: v.Material.String(),
				Gewicht:  determinism.FormatFixed(v.WeightKg, 2),
				Preis:    v.UnitPrice.StringFixed(2),
				Hinweis:  v.Note,
			}
		}
		return OversizedWire{
			Form:     v.Shape.String(),
			X1:       v.Dimensions.X1,
			X2:       v.Dimensions.X2,
			X3:       v.Dimensions.X3,
			Material: v.Material.String(),
			Gewicht:  determinism.FormatFixed(v.WeightKg, 2),
			Hinweis:  v.Note,
		}

	case *types.Priced:
		return PricedWire{
			Form:             v.Shape.String(),
			Material:         v.Material.String(),
			X1:               v.Dimensions.X1,
			X2:               v.Dimensions.X2,
			X3:               v.Dimensions.X3,
			Gewicht:          determinism.FormatFixed(v.WeightKg, 2),
			LaufzeitMin:      v.MachiningMinutes.StringFixed(1),
			Materialkosten:   v.MaterialCost.StringFixed(2),
			EinzelpreisFinal: v.UnitPrice.StringFixed(2),
			Zielpreis:        v.TargetPrice,
			Stueckzahl:       v.Quantity,
		}
	}

	panic("output: unhandled quote type")
}

// JSONFormatter renders the wire object
type JSONFormatter struct {
	// Indent pretty-prints when set
	Indent bool
}

// Format returns FormatJSON
func (JSONFormatter) Format() Format { return FormatJSON }

// Render writes the wire object followed by a newline
func (f JSONFormatter) Render(w io.Writer, q types.Quote) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(Wire(q))
}

// Marshal returns the compact wire encoding of q
func Marshal(q types.Quote) ([]byte, error) {
	return json.Marshal(Wire(q))
}
