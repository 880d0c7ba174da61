package strategy

import (
	"testing"

	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

func TestStrategyManagerRegistersAll(t *testing.T) {
	m := NewStrategyManager(&config.TradingConfig{})

	all := m.All()
	if len(all) != len(models.AllStrategies()) {
		t.Fatalf("registered %d strategies, want %d", len(all), len(models.AllStrategies()))
	}
	for i, id := range models.AllStrategies() {
		if all[i].ID() != id {
			t.Fatalf("All()[%d] = %s, want %s", i, all[i].ID(), id)
		}
	}
}

func TestStrategyManagerDisables(t *testing.T) {
	m := NewStrategyManager(&config.TradingConfig{
		Strategies: map[models.StrategyID]config.StrategyParams{
			models.StrategyTPS: {Disabled: true},
		},
	})

	if len(m.All()) != len(models.AllStrategies())-1 {
		t.Fatalf("registered %d strategies, want %d", len(m.All()), len(models.AllStrategies())-1)
	}
	if _, err := m.Evaluator(models.StrategyTPS); err == nil {
		t.Fatal("expected an error looking up a disabled strategy")
	}
	if _, err := m.Evaluator(models.StrategyR3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStrategyManagerUnknownLookup(t *testing.T) {
	m := NewStrategyManager(&config.TradingConfig{})
	if _, err := m.Evaluator("bogus"); err == nil {
		t.Fatal("expected an error for an unregistered id")
	}
}

func TestStrategyManagerAppliesOverrides(t *testing.T) {
	m := NewStrategyManager(&config.TradingConfig{
		Strategies: map[models.StrategyID]config.StrategyParams{
			models.StrategyTPS: {MaxTranches: 2, SizeFractions: []float64{0.4, 0.6}},
		},
	})

	ev, err := m.Evaluator(models.StrategyTPS)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ev.MaxTranches() != 2 {
		t.Fatalf("MaxTranches() = %d, want 2", ev.MaxTranches())
	}
	if ev.SizeFraction(1) != 0.6 {
		t.Fatalf("SizeFraction(1) = %v, want 0.6", ev.SizeFraction(1))
	}
	// Indices past the list reuse the final fraction.
	if ev.SizeFraction(5) != 0.6 {
		t.Fatalf("SizeFraction(5) = %v, want 0.6", ev.SizeFraction(5))
	}
}
