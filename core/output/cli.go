package output

import (
	"fmt"
	"io"
	"strings"

	"partquote/core/determinism"
	"partquote/core/types"
)

const tableWidth = 60

// CLIFormatter renders a boxed summary table
type CLIFormatter struct{}

// Format returns FormatCLI
func (CLIFormatter) Format() Format { return FormatCLI }

// Render writes a human-readable summary of q
func (CLIFormatter) Render(w io.Writer, q types.Quote) error {
	t := &table{w: w}
	t.rule("┌", "┐")
	t.title("PART QUOTE")
	t.rule("├", "┤")

	switch v := q.(type) {
	case *types.Insufficient:
		t.row("Dimensions found", fmt.Sprintf("%d", v.Found))

	case *types.NeedsReview:
		t.part(v.Shape, v.Material, v.Dimensions, v.Volume, v.WeightKg)
		if v.UnitPrice != nil {
			t.row("Unit price", v.UnitPrice.String())
		}

	case *types.Priced:
		t.part(v.Shape, v.Material, v.Dimensions, v.Volume, v.WeightKg)
		t.row("Machining time", v.MachiningMinutes.StringFixed(1)+" min")
		t.row("Material cost", v.MaterialCost.String())
		t.row("Machining cost", v.MachiningCost.String())
		t.row("Setup + programming", v.FixedCost.String())
		t.rule("├", "┤")
		t.row("Quantity", fmt.Sprintf("%d", v.Quantity))
		if v.TargetPrice != nil {
			t.row("Target price", *v.TargetPrice)
		}
		t.row("UNIT PRICE", v.UnitPrice.String())
	}

	if note := q.Advisory(); note != "" {
		t.rule("├", "┤")
		t.title(note)
	}
	t.rule("└", "┘")
	return t.err
}

type table struct {
	w   io.Writer
	err error
}

func (t *table) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func (t *table) rule(left, right string) {
	t.printf("%s%s%s\n", left, strings.Repeat("─", tableWidth+2), right)
}

func (t *table) title(s string) {
	t.printf("│ %-*s │\n", tableWidth, truncate(s, tableWidth))
}

func (t *table) row(label, value string) {
	t.printf("│ %-30s %*s │\n", truncate(label, 30), tableWidth-31, truncate(value, tableWidth-31))
}

func (t *table) part(s types.Shape, m types.Material, d types.Dimensions, volume, weightKg float64) {
	t.row("Shape", s.String())
	t.row("Material", m.String())
	t.row("Dimensions (mm)", fmt.Sprintf("%g x %g x %g", d.X1, d.X2, d.X3))
	t.row("Volume", determinism.FormatFixed(volume, 2))
	t.row("Weight (kg)", determinism.FormatFixed(weightKg, 2))
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
