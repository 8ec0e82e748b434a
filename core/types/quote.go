package types

import (
	"github.com/shopspring/decimal"

	"partquote/core/determinism"
)

// Advisory notes attached to quotes that need a human
const (
	NoteInsufficient = "Nicht genügend Maße erkannt."
	NoteOversized    = "Bauteil zu groß – bitte manuell prüfen"
	NoteOverpriced   = "Preis zu hoch – bitte manuell prüfen"
)

// Outcome identifies which quote variant was produced
type Outcome string

const (
	OutcomeInsufficient Outcome = "insufficient"
	OutcomeNeedsReview  Outcome = "needs_review"
	OutcomePriced       Outcome = "priced"
)

// Quote is the result of one pipeline run. It is one of
// *Insufficient, *NeedsReview or *Priced.
type Quote interface {
	// Outcome returns the variant tag
	Outcome() Outcome

	// Advisory returns the review note, empty for priced quotes
	Advisory() string

	sealed()
}

// Insufficient is returned when fewer than two plausible dimensions were found
type Insufficient struct {
	Note string

	// Found is the number of plausible measurements that survived filtering
	Found int
}

func (q *Insufficient) Outcome() Outcome { return OutcomeInsufficient }
func (q *Insufficient) Advisory() string { return q.Note }
func (q *Insufficient) sealed()          {}

// ReviewReason explains why pricing was withheld
type ReviewReason string

const (
	// ReasonOversized means the weight exceeded the size guard
	ReasonOversized ReviewReason = "oversized"

	// ReasonOverpriced means the unit price exceeded the price ceiling
	ReasonOverpriced ReviewReason = "overpriced"
)

// NeedsReview is a partial quote that a human has to check
type NeedsReview struct {
	Reason     ReviewReason
	Shape      Shape
	Dimensions Dimensions
	Material   Material
	Volume     float64
	WeightKg   float64

	// UnitPrice is only set for ReasonOverpriced
	UnitPrice *determinism.Money

	Note string
}

func (q *NeedsReview) Outcome() Outcome { return OutcomeNeedsReview }
func (q *NeedsReview) Advisory() string { return q.Note }
func (q *NeedsReview) sealed()          {}

// Priced is a complete, automatically accepted quote
type Priced struct {
	Shape            Shape
	Dimensions       Dimensions
	Material         Material
	Volume           float64
	WeightKg         float64
	MachiningMinutes decimal.Decimal
	MaterialCost     determinism.Money
	MachiningCost    determinism.Money
	FixedCost        determinism.Money
	UnitPrice        determinism.Money
	TargetPrice      *string
	Quantity         int
}

func (q *Priced) Outcome() Outcome { return OutcomePriced }
func (q *Priced) Advisory() string { return "" }
func (q *Priced) sealed()          {}
