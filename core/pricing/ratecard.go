// Package pricing turns a part's weight into a guarded unit price.
//
// All constants live in a RateCard that is built once and never mutated,
// so the estimator stays a pure function of its inputs.
package pricing

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"partquote/core/determinism"
	"partquote/core/types"
	"partquote/internal/errors"
)

// MaterialSpec is the configurable form of a material rate
type MaterialSpec struct {
	// Density in g/cm³ (used as kg per volume unit)
	Density float64 `json:"density"`

	// PricePerKg is the raw material price
	PricePerKg float64 `json:"price_per_kg"`
}

// RateCardSpec is the plain, serializable form of a RateCard
type RateCardSpec struct {
	Currency              string                  `json:"currency"`
	Materials             map[string]MaterialSpec `json:"materials"`
	MachiningMinutesPerKg float64                 `json:"machining_minutes_per_kg"`
	HourlyRate            float64                 `json:"hourly_rate"`
	SetupCost             float64                 `json:"setup_cost"`
	ProgrammingCost       float64                 `json:"programming_cost"`
	Margin                float64                 `json:"margin"`
	MaxWeightKg           float64                 `json:"max_weight_kg"`
	MaxUnitPrice          float64                 `json:"max_unit_price"`
}

// DefaultRateCardSpec returns the shop's standard rates
func DefaultRateCardSpec() RateCardSpec {
	return RateCardSpec{
		Currency: string(types.CurrencyEUR),
		Materials: map[string]MaterialSpec{
			string(types.MaterialAluminum):  {Density: 2.7, PricePerKg: 7},
			string(types.MaterialStainless): {Density: 7.9, PricePerKg: 6.5},
			string(types.MaterialSteel):     {Density: 7.85, PricePerKg: 1.5},
			string(types.MaterialBrass):     {Density: 8.4, PricePerKg: 8},
			string(types.MaterialCopper):    {Density: 8.9, PricePerKg: 10},
		},
		MachiningMinutesPerKg: 2,
		HourlyRate:            35,
		SetupCost:             60,
		ProgrammingCost:       30,
		Margin:                1.15,
		MaxWeightKg:           50,
		MaxUnitPrice:          10000,
	}
}

// MaterialRate is the density and price of one material
type MaterialRate struct {
	Density    float64
	PricePerKg decimal.Decimal
}

// RateCard is IMMUTABLE after creation.
type RateCard struct {
	currency              string
	materials             map[types.Material]MaterialRate
	machiningMinutesPerKg decimal.Decimal
	hourlyRate            decimal.Decimal
	setupCost             decimal.Decimal
	programmingCost       decimal.Decimal
	margin                decimal.Decimal
	maxWeightKg           float64
	maxUnitPrice          decimal.Decimal
	contentHash           determinism.ContentHash
}

// NewRateCard validates spec and builds a RateCard. Every supported
// material must have a positive density.
func NewRateCard(spec RateCardSpec) (*RateCard, error) {
	if spec.Currency == "" {
		spec.Currency = string(types.CurrencyEUR)
	}

	card := &RateCard{
		currency:              spec.Currency,
		materials:             make(map[types.Material]MaterialRate, len(spec.Materials)),
		machiningMinutesPerKg: decimal.NewFromFloat(spec.MachiningMinutesPerKg),
		hourlyRate:            decimal.NewFromFloat(spec.HourlyRate),
		setupCost:             decimal.NewFromFloat(spec.SetupCost),
		programmingCost:       decimal.NewFromFloat(spec.ProgrammingCost),
		margin:                decimal.NewFromFloat(spec.Margin),
		maxWeightKg:           spec.MaxWeightKg,
		maxUnitPrice:          decimal.NewFromFloat(spec.MaxUnitPrice),
	}

	for name, ms := range spec.Materials {
		m := types.Material(name)
		if !m.Valid() {
			return nil, errors.Newf(errors.TypeConfig, "unknown material in rate card: %s", name)
		}
		if ms.Density <= 0 {
			return nil, errors.Newf(errors.TypeConfig, "material %s: density must be positive", name)
		}
		if ms.PricePerKg < 0 {
			return nil, errors.Newf(errors.TypeConfig, "material %s: price must not be negative", name)
		}
		card.materials[m] = MaterialRate{
			Density:    ms.Density,
			PricePerKg: decimal.NewFromFloat(ms.PricePerKg),
		}
	}

	for _, m := range types.AllMaterials() {
		if _, ok := card.materials[m]; !ok {
			return nil, errors.Newf(errors.TypeConfig, "rate card has no entry for material %s", m)
		}
	}

	switch {
	case spec.MachiningMinutesPerKg < 0, spec.HourlyRate < 0, spec.SetupCost < 0, spec.ProgrammingCost < 0:
		return nil, errors.New(errors.TypeConfig, "machining and fixed costs must not be negative")
	case spec.Margin <= 0:
		return nil, errors.New(errors.TypeConfig, "margin factor must be positive")
	case spec.MaxWeightKg <= 0:
		return nil, errors.New(errors.TypeConfig, "max_weight_kg must be positive")
	case spec.MaxUnitPrice <= 0:
		return nil, errors.New(errors.TypeConfig, "max_unit_price must be positive")
	}

	data, err := json.Marshal(card.Spec())
	if err != nil {
		return nil, errors.Internal("failed to hash rate card", err)
	}
	card.contentHash = determinism.ComputeHash(data)

	return card, nil
}

// DefaultRateCard returns the standard rate card
func DefaultRateCard() *RateCard {
	card, err := NewRateCard(DefaultRateCardSpec())
	if err != nil {
		panic(fmt.Sprintf("default rate card is invalid: %v", err))
	}
	return card
}

// Currency returns the currency code
func (c *RateCard) Currency() string {
	return c.currency
}

// Density returns the density of m. Satisfies weight.Densities.
func (c *RateCard) Density(m types.Material) float64 {
	return c.materials[m].Density
}

// Material returns the full rate for m
func (c *RateCard) Material(m types.Material) (MaterialRate, bool) {
	rate, ok := c.materials[m]
	return rate, ok
}

// MaxWeightKg returns the oversize threshold
func (c *RateCard) MaxWeightKg() float64 {
	return c.maxWeightKg
}

// MaxUnitPrice returns the price ceiling
func (c *RateCard) MaxUnitPrice() decimal.Decimal {
	return c.maxUnitPrice
}

// FixedCost returns setup plus programming cost
func (c *RateCard) FixedCost() decimal.Decimal {
	return c.setupCost.Add(c.programmingCost)
}

// ContentHash identifies the rates this card was built from
func (c *RateCard) ContentHash() determinism.ContentHash {
	return c.contentHash
}

// Spec returns the serializable form of the card
func (c *RateCard) Spec() RateCardSpec {
	spec := RateCardSpec{
		Currency:              c.currency,
		Materials:             make(map[string]MaterialSpec, len(c.materials)),
		MachiningMinutesPerKg: c.machiningMinutesPerKg.InexactFloat64(),
		HourlyRate:            c.hourlyRate.InexactFloat64(),
		SetupCost:             c.setupCost.InexactFloat64(),
		ProgrammingCost:       c.programmingCost.InexactFloat64(),
		Margin:                c.margin.InexactFloat64(),
		MaxWeightKg:           c.maxWeightKg,
		MaxUnitPrice:          c.maxUnitPrice.InexactFloat64(),
	}
	for m, rate := range c.materials {
		spec.Materials[string(m)] = MaterialSpec{
			Density:    rate.Density,
			PricePerKg: rate.PricePerKg.InexactFloat64(),
		}
	}
	return spec
}
