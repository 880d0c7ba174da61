package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// Evaluator is the shared capability of the seven rule sets. Evaluate sees the
// bar and snapshot history up to and including the current bar, plus the
// current position, and returns at most one signal for the bar (nil for none).
// Exit signals take precedence over entries and scale-ins.
type Evaluator interface {
	ID() models.StrategyID
	MaxTranches() int
	SizeFraction(trancheIndex int) float64
	Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal
}

// Two-unit strategies split a full position into equal halves.
var twoUnitFractions = []float64{0.5, 0.5}

func uptrend(s indicators.Snapshot) bool {
	return s.HasSMA200 && s.Close > s.SMA200
}

func downtrend(s indicators.Snapshot) bool {
	return s.HasSMA200 && s.Close < s.SMA200
}

func entrySignal(side, reason string) *models.Signal {
	return &models.Signal{Side: side, Kind: models.SignalEntry, TrancheIndex: 0, Reason: reason}
}

func scaleSignal(side string, trancheIndex int, reason string) *models.Signal {
	return &models.Signal{Side: side, Kind: models.SignalScaleIn, TrancheIndex: trancheIndex, Reason: reason}
}

func exitSignal(side, reason string) *models.Signal {
	return &models.Signal{Side: side, Kind: models.SignalExit, Reason: reason}
}

// threshold reads an override by key, falling back to the book default.
func threshold(overrides map[string]float64, key string, def float64) float64 {
	if v, ok := overrides[key]; ok {
		return v
	}
	return def
}

// fractionAt returns the size fraction for a tranche index, reusing the last
// configured fraction if the index runs past the list.
func fractionAt(fractions []float64, idx int) float64 {
	if len(fractions) == 0 {
		return 0
	}
	if idx >= len(fractions) {
		return fractions[len(fractions)-1]
	}
	return fractions[idx]
}
