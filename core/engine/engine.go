// Package engine runs the dimension-to-quote pipeline.
// HTTP and CLI are thin wrappers around this engine.
//
// The pipeline is a pure function of its request: no shared mutable state,
// no blocking, no retries. An Engine is safe for concurrent use.
package engine

import (
	"go.uber.org/zap"

	"partquote/core/material"
	"partquote/core/measure"
	"partquote/core/pricing"
	"partquote/core/shape"
	"partquote/core/types"
	"partquote/core/weight"
	"partquote/internal/logging"
)

// Engine is the primary API for quoting.
type Engine struct {
	extractor  *measure.Extractor
	calculator *weight.Calculator
	estimator  *pricing.Estimator
	logger     *zap.Logger
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the logger used for outcome tracing
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New creates an engine for the given measurement range and rate card
func New(rng measure.Range, card *pricing.RateCard, opts ...Option) *Engine {
	e := &Engine{
		extractor:  measure.NewExtractor(rng),
		calculator: weight.NewCalculator(card, card.MaxWeightKg()),
		estimator:  pricing.NewEstimator(card),
		logger:     logging.Logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("component", "engine"))
	return e
}

// NewDefault creates an engine with the default range and rate card
func NewDefault(opts ...Option) *Engine {
	return New(measure.DefaultRange(), pricing.DefaultRateCard(), opts...)
}

// RateCard returns the rate card in use
func (e *Engine) RateCard() *pricing.RateCard {
	return e.estimator.RateCard()
}

// Quote runs every stage in order and stops at the first guard that trips.
func (e *Engine) Quote(req types.QuoteRequest) types.Quote {
	q := e.quote(req)
	e.logger.Debug("quote computed",
		zap.String("outcome", string(q.Outcome())),
		zap.String("advisory", q.Advisory()),
	)
	return q
}

func (e *Engine) quote(req types.QuoteRequest) types.Quote {
	// Stage 1: measurements
	set := e.extractor.Extract(req.Text)
	if !set.Sufficient() {
		return &types.Insufficient{Note: types.NoteInsufficient, Found: set.Len()}
	}

	// Stage 2: shape and volume
	class := shape.Classify(set)
	dims := set.Dimensions()

	// Stage 3: material, independent of the measurements
	mat := material.Detect(req.Text).Material

	// Stage 4: weight and the oversize guard
	w := e.calculator.Calculate(class.Volume, mat)
	if w.Oversized {
		return &types.NeedsReview{
			Reason:     types.ReasonOversized,
			Shape:      class.Shape,
			Dimensions: dims,
			Material:   mat,
			Volume:     class.Volume,
			WeightKg:   w.WeightKg,
			Note:       types.NoteOversized,
		}
	}

	// Stage 5: cost and the price ceiling
	b := e.estimator.Estimate(w.WeightKg, mat, req.Quantity)
	if b.Overpriced {
		price := b.UnitPrice
		return &types.NeedsReview{
			Reason:     types.ReasonOverpriced,
			Shape:      class.Shape,
			Dimensions: dims,
			Material:   mat,
			Volume:     class.Volume,
			WeightKg:   w.WeightKg,
			UnitPrice:  &price,
			Note:       types.NoteOverpriced,
		}
	}

	return &types.Priced{
		Shape:            class.Shape,
		Dimensions:       dims,
		Material:         mat,
		Volume:           class.Volume,
		WeightKg:         w.WeightKg,
		MachiningMinutes: b.MachiningMinutes,
		MaterialCost:     b.MaterialCost,
		MachiningCost:    b.MachiningCost,
		FixedCost:        b.FixedCost,
		UnitPrice:        b.UnitPrice,
		TargetPrice:      req.TargetPrice,
		Quantity:         b.Quantity,
	}
}
