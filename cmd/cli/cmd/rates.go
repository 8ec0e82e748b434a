// Package cmd - rates command
package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"partquote/core/output"
	"partquote/core/types"
	"partquote/core/ui"
	"partquote/internal/errors"
)

var ratesFormat string

// ratesCmd prints the active rate card
var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Print the active rate card",
	Args:  cobra.NoArgs,
	RunE:  runRates,
}

func init() {
	ratesCmd.Flags().StringVarP(&ratesFormat, "format", "f", "cli", "output format (cli, json)")
	rootCmd.AddCommand(ratesCmd)
}

func runRates(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	card := eng.RateCard()
	spec := card.Spec()
	out := cmd.OutOrStdout()

	switch output.Format(ratesFormat) {
	case output.FormatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	case output.FormatCLI, "":
	default:
		return errors.NotSupported("output format " + ratesFormat)
	}

	w := ui.NewAutoWriter(out)
	w.Header("Rate card " + card.ContentHash().String())

	materials := w.NewTable("MATERIAL", "DENSITY", "PRICE/KG")
	for _, m := range types.AllMaterials() {
		rate, _ := card.Material(m)
		materials.AddRow(string(m), fmt.Sprintf("%g", rate.Density), rate.PricePerKg.StringFixed(2)+" "+spec.Currency)
	}
	materials.Render()
	w.Println("")

	costs := w.NewTable("COST", "VALUE")
	costs.AddRow("Machining", fmt.Sprintf("%g min/kg at %g %s/h", spec.MachiningMinutesPerKg, spec.HourlyRate, spec.Currency))
	costs.AddRow("Setup + programming", card.FixedCost().StringFixed(2)+" "+spec.Currency)
	costs.AddRow("Margin", fmt.Sprintf("x%g", spec.Margin))
	costs.AddRow("Review above", fmt.Sprintf("%g kg or %g %s per unit", spec.MaxWeightKg, spec.MaxUnitPrice, spec.Currency))
	costs.Render()
	return nil
}
