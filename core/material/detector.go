// Package material infers a part's material from keywords in recognized text.
package material

import (
	"strings"

	"partquote/core/types"
)

// Cue maps a set of keywords to a material
type Cue struct {
	Material types.Material
	Keywords []string
}

// Cues are checked in order; the first cue with any matching keyword wins.
// Aluminum is listed first so "alu" beats "edelstahl" when both appear.
var Cues = []Cue{
	{Material: types.MaterialAluminum, Keywords: []string{"alu", "6082"}},
	{Material: types.MaterialStainless, Keywords: []string{"edelstahl", "1.4301"}},
	{Material: types.MaterialBrass, Keywords: []string{"messing", "ms58"}},
	{Material: types.MaterialCopper, Keywords: []string{"kupfer"}},
}

// Fallback is used when no cue matches
const Fallback = types.MaterialSteel

// Detection is the detected material and the keyword that decided it
type Detection struct {
	Material types.Material

	// Keyword is empty when the fallback was used
	Keyword string
}

// Detect returns the material for text. It never fails.
func Detect(text types.RecognizedText) Detection {
	lower := strings.ToLower(string(text))
	for _, cue := range Cues {
		for _, kw := range cue.Keywords {
			if strings.Contains(lower, kw) {
				return Detection{Material: cue.Material, Keyword: kw}
			}
		}
	}
	return Detection{Material: Fallback}
}
