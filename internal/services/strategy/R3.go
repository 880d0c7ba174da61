package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// R3Strategy trades a three-day 2-period RSI slide: the RSI must fall on three
// consecutive closes starting from under 60 and finish under 10 in an uptrend.
// A second unit is added if price closes under the first entry. Exit when RSI2
// crosses 70. Shorts mirror with a three-day rise from above 40 ending above
// 90, exiting under 30.
type R3Strategy struct {
	maxTranches int
	fractions   []float64

	longStartBelow  float64
	longEntry       float64
	longExit        float64
	shortStartAbove float64
	shortEntry      float64
	shortExit       float64
}

func NewR3Strategy(params config.StrategyParams) *R3Strategy {
	s := &R3Strategy{
		maxTranches:     2,
		fractions:       twoUnitFractions,
		longStartBelow:  threshold(params.Thresholds, "long_start_below", 60),
		longEntry:       threshold(params.Thresholds, "long_entry", 10),
		longExit:        threshold(params.Thresholds, "long_exit", 70),
		shortStartAbove: threshold(params.Thresholds, "short_start_above", 40),
		shortEntry:      threshold(params.Thresholds, "short_entry", 90),
		shortExit:       threshold(params.Thresholds, "short_exit", 30),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *R3Strategy) ID() models.StrategyID { return models.StrategyR3 }

func (s *R3Strategy) MaxTranches() int { return s.maxTranches }

func (s *R3Strategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *R3Strategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
	n := len(snaps)
	if n == 0 {
		return nil
	}
	cur := snaps[n-1]

	if pos.IsOpen() {
		if cur.HasRSI2 {
			if pos.Side == models.SideLong && cur.RSI2 > s.longExit {
				return exitSignal(pos.Side, "RSI2 above exit level")
			}
			if pos.Side == models.SideShort && cur.RSI2 < s.shortExit {
				return exitSignal(pos.Side, "RSI2 below exit level")
			}
		}
		if len(pos.Tranches) < s.maxTranches {
			if pos.Side == models.SideLong && cur.Close < pos.FirstEntryPrice() {
				return scaleSignal(pos.Side, len(pos.Tranches), "close below first entry")
			}
			if pos.Side == models.SideShort && cur.Close > pos.FirstEntryPrice() {
				return scaleSignal(pos.Side, len(pos.Tranches), "close above first entry")
			}
		}
		return nil
	}

	// Entry needs three consecutive RSI2 readings.
	if n < 3 || !cur.HasRSI2 || !snaps[n-2].HasRSI2 || !snaps[n-3].HasRSI2 {
		return nil
	}
	r0, r1, r2 := cur.RSI2, snaps[n-2].RSI2, snaps[n-3].RSI2

	fell := r0 < r1 && r1 < r2
	if uptrend(cur) && fell && r2 < s.longStartBelow && r0 < s.longEntry {
		return entrySignal(models.SideLong, "RSI2 fell 3 days into oversold")
	}

	rose := r0 > r1 && r1 > r2
	if downtrend(cur) && rose && r2 > s.shortStartAbove && r0 > s.shortEntry {
		return entrySignal(models.SideShort, "RSI2 rose 3 days into overbought")
	}
	return nil
}
