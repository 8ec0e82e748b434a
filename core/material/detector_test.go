package material

import (
	"testing"

	"partquote/core/types"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected types.Material
		keyword  string
	}{
		{"no cue defaults to steel", "Welle 200 x 40", types.MaterialSteel, ""},
		{"aluminum keyword", "Werkstoff: Aluminium", types.MaterialAluminum, "alu"},
		{"aluminum alloy code", "EN AW-6082 T6", types.MaterialAluminum, "6082"},
		{"stainless keyword", "EDELSTAHL gebürstet", types.MaterialStainless, "edelstahl"},
		{"stainless number", "Werkstoff 1.4301", types.MaterialStainless, "1.4301"},
		{"brass keyword", "Messing blank", types.MaterialBrass, "messing"},
		{"brass code", "CuZn39Pb3 (Ms58)", types.MaterialBrass, "ms58"},
		{"copper keyword", "Kupfer E-Cu", types.MaterialCopper, "kupfer"},
		{"aluminum wins over stainless", "Edelstahl oder Alu", types.MaterialAluminum, "alu"},
		{"stainless wins over brass", "messing / edelstahl", types.MaterialStainless, "edelstahl"},
		{"brass wins over copper", "Kupfer, Messing", types.MaterialBrass, "messing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(types.RecognizedText(tt.text))
			if got.Material != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got.Material)
			}
			if got.Keyword != tt.keyword {
				t.Errorf("expected keyword %q, got %q", tt.keyword, got.Keyword)
			}
		})
	}
}

func TestCuesCoverEveryMaterial(t *testing.T) {
	seen := map[types.Material]bool{Fallback: true}
	for _, cue := range Cues {
		if len(cue.Keywords) == 0 {
			t.Errorf("cue for %s has no keywords", cue.Material)
		}
		seen[cue.Material] = true
	}
	for _, m := range types.AllMaterials() {
		if !seen[m] {
			t.Errorf("material %s is unreachable", m)
		}
	}
}
