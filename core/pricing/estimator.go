package pricing

import (
	"github.com/shopspring/decimal"

	"partquote/core/determinism"
	"partquote/core/types"
)

var minutesPerHour = decimal.NewFromInt(60)

// Breakdown is the full cost calculation for one part
type Breakdown struct {
	WeightKg         float64
	Quantity         int
	MachiningMinutes decimal.Decimal
	MachiningHours   decimal.Decimal
	MaterialCost     determinism.Money
	MachiningCost    determinism.Money
	FixedCost        determinism.Money
	RawUnitPrice     determinism.Money
	UnitPrice        determinism.Money

	// Overpriced is set when UnitPrice exceeds the card's ceiling
	Overpriced bool
}

// Estimator computes breakdowns from a RateCard
type Estimator struct {
	card *RateCard
}

// NewEstimator creates an estimator bound to card
func NewEstimator(card *RateCard) *Estimator {
	return &Estimator{card: card}
}

// RateCard returns the card in use
func (e *Estimator) RateCard() *RateCard {
	return e.card
}

// Estimate prices one part of the given weight. Quantities below 1 are
// treated as 1.
func (e *Estimator) Estimate(weightKg float64, material types.Material, quantity int) Breakdown {
	if quantity < 1 {
		quantity = 1
	}

	currency := e.card.currency
	rate := e.card.materials[material]
	weight := decimal.NewFromFloat(weightKg)

	materialCost := determinism.NewMoneyFromDecimal(weight.Mul(rate.PricePerKg), currency)

	minutes := weight.Mul(e.card.machiningMinutesPerKg)
	hours := minutes.Div(minutesPerHour)
	machiningCost := determinism.NewMoneyFromDecimal(hours.Mul(e.card.hourlyRate), currency)

	fixedCost := determinism.NewMoneyFromDecimal(e.card.FixedCost(), currency)

	raw := materialCost.Add(machiningCost).Add(fixedCost).Div(decimal.NewFromInt(int64(quantity)))
	final := raw.Mul(e.card.margin)

	return Breakdown{
		WeightKg:         weightKg,
		Quantity:         quantity,
		MachiningMinutes: minutes,
		MachiningHours:   hours,
		MaterialCost:     materialCost,
		MachiningCost:    machiningCost,
		FixedCost:        fixedCost,
		RawUnitPrice:     raw,
		UnitPrice:        final,
		Overpriced:       final.GreaterThan(e.card.maxUnitPrice),
	}
}
