package pricing

import (
	"testing"

	"partquote/core/types"
	"partquote/internal/errors"
)

func TestDefaultRateCard(t *testing.T) {
	card := DefaultRateCard()

	densities := map[types.Material]float64{
		types.MaterialAluminum:  2.7,
		types.MaterialStainless: 7.9,
		types.MaterialSteel:     7.85,
		types.MaterialBrass:     8.4,
		types.MaterialCopper:    8.9,
	}
	for m, expected := range densities {
		if got := card.Density(m); got != expected {
			t.Errorf("%s: expected density %v, got %v", m, expected, got)
		}
	}

	if s := card.FixedCost().String(); s != "90" {
		t.Errorf("expected fixed cost 90, got %s", s)
	}
	if card.MaxWeightKg() != 50 {
		t.Errorf("expected max weight 50, got %v", card.MaxWeightKg())
	}
	if s := card.MaxUnitPrice().String(); s != "10000" {
		t.Errorf("expected max unit price 10000, got %s", s)
	}
	if card.Currency() != "EUR" {
		t.Errorf("expected EUR, got %s", card.Currency())
	}
}

func TestNewRateCardValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RateCardSpec)
	}{
		{"missing material", func(s *RateCardSpec) { delete(s.Materials, "kupfer") }},
		{"unknown material", func(s *RateCardSpec) { s.Materials["titan"] = MaterialSpec{Density: 4.5, PricePerKg: 30} }},
		{"zero density", func(s *RateCardSpec) { s.Materials["stahl"] = MaterialSpec{Density: 0, PricePerKg: 1.5} }},
		{"negative price", func(s *RateCardSpec) { s.Materials["stahl"] = MaterialSpec{Density: 7.85, PricePerKg: -1} }},
		{"zero margin", func(s *RateCardSpec) { s.Margin = 0 }},
		{"negative setup", func(s *RateCardSpec) { s.SetupCost = -5 }},
		{"zero weight limit", func(s *RateCardSpec) { s.MaxWeightKg = 0 }},
		{"zero price ceiling", func(s *RateCardSpec) { s.MaxUnitPrice = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := DefaultRateCardSpec()
			tt.mutate(&spec)

			_, err := NewRateCard(spec)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.IsType(err, errors.TypeConfig) {
				t.Errorf("expected config error, got %v", err)
			}
		})
	}
}

func TestRateCardContentHash(t *testing.T) {
	a := DefaultRateCard()
	b := DefaultRateCard()
	if a.ContentHash() != b.ContentHash() {
		t.Error("identical specs produced different hashes")
	}

	spec := DefaultRateCardSpec()
	spec.HourlyRate = 40
	c, err := NewRateCard(spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ContentHash() == c.ContentHash() {
		t.Error("different hourly rates produced the same hash")
	}
}

func TestRateCardSpecRoundTrip(t *testing.T) {
	card := DefaultRateCard()
	again, err := NewRateCard(card.Spec())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ContentHash() != again.ContentHash() {
		t.Error("rebuilding from Spec() changed the card")
	}
}
