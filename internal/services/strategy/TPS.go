package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// TPSStrategy is Time-Price-Scale-in: a 10% starter unit after two consecutive
// closes with RSI2 under 25 in an uptrend, then 20/30/40% tranches whenever a
// later close undercuts the most recent entry. Everything exits when RSI2
// crosses 70. Shorts mirror above 75, scaling on closes over the last entry
// and exiting under 30.
type TPSStrategy struct {
	maxTranches int
	fractions   []float64

	longEntry  float64
	longExit   float64
	shortEntry float64
	shortExit  float64
}

func NewTPSStrategy(params config.StrategyParams) *TPSStrategy {
	s := &TPSStrategy{
		maxTranches: 4,
		fractions:   []float64{0.10, 0.20, 0.30, 0.40},
		longEntry:   threshold(params.Thresholds, "long_entry", 25),
		longExit:    threshold(params.Thresholds, "long_exit", 70),
		shortEntry:  threshold(params.Thresholds, "short_entry", 75),
		shortExit:   threshold(params.Thresholds, "short_exit", 30),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *TPSStrategy) ID() models.StrategyID { return models.StrategyTPS }

func (s *TPSStrategy) MaxTranches() int { return s.maxTranches }

func (s *TPSStrategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *TPSStrategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
	n := len(snaps)
	if n == 0 {
		return nil
	}
	cur := snaps[n-1]

	if pos.IsOpen() {
		// Exits are checked before any scale-in.
		if cur.HasRSI2 {
			if pos.Side == models.SideLong && cur.RSI2 > s.longExit {
				return exitSignal(pos.Side, "RSI2 above exit level")
			}
			if pos.Side == models.SideShort && cur.RSI2 < s.shortExit {
				return exitSignal(pos.Side, "RSI2 below exit level")
			}
		}
		if len(pos.Tranches) < s.maxTranches {
			if pos.Side == models.SideLong && uptrend(cur) && cur.Close < pos.LastEntryPrice() {
				return scaleSignal(pos.Side, len(pos.Tranches), "close below last entry")
			}
			if pos.Side == models.SideShort && downtrend(cur) && cur.Close > pos.LastEntryPrice() {
				return scaleSignal(pos.Side, len(pos.Tranches), "close above last entry")
			}
		}
		return nil
	}

	// The starter tranche needs RSI2 stretched for two consecutive closes.
	if n < 2 || !cur.HasRSI2 || !snaps[n-2].HasRSI2 {
		return nil
	}
	prev := snaps[n-2]

	if uptrend(cur) && cur.RSI2 < s.longEntry && prev.RSI2 < s.longEntry {
		return entrySignal(models.SideLong, "RSI2 below entry level 2 days")
	}
	if downtrend(cur) && cur.RSI2 > s.shortEntry && prev.RSI2 > s.shortEntry {
		return entrySignal(models.SideShort, "RSI2 above entry level 2 days")
	}
	return nil
}
