package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// RSI2575Strategy trades 4-period RSI extremes: long under 25 in an uptrend
// with an aggressive second unit under 20, exit above 55. Shorts mirror at
// 75/80/45.
type RSI2575Strategy struct {
	maxTranches int
	fractions   []float64

	longEntry  float64
	longScale  float64
	longExit   float64
	shortEntry float64
	shortScale float64
	shortExit  float64
}

func NewRSI2575Strategy(params config.StrategyParams) *RSI2575Strategy {
	s := &RSI2575Strategy{
		maxTranches: 2,
		fractions:   twoUnitFractions,
		longEntry:   threshold(params.Thresholds, "long_entry", 25),
		longScale:   threshold(params.Thresholds, "long_scale_in", 20),
		longExit:    threshold(params.Thresholds, "long_exit", 55),
		shortEntry:  threshold(params.Thresholds, "short_entry", 75),
		shortScale:  threshold(params.Thresholds, "short_scale_in", 80),
		shortExit:   threshold(params.Thresholds, "short_exit", 45),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *RSI2575Strategy) ID() models.StrategyID { return models.StrategyRSI2575 }

func (s *RSI2575Strategy) MaxTranches() int { return s.maxTranches }

func (s *RSI2575Strategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *RSI2575Strategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
	n := len(snaps)
	if n == 0 {
		return nil
	}
	cur := snaps[n-1]
	if !cur.HasRSI4 {
		return nil
	}

	if pos.IsOpen() {
		if pos.Side == models.SideLong && cur.RSI4 > s.longExit {
			return exitSignal(pos.Side, "RSI4 above exit level")
		}
		if pos.Side == models.SideShort && cur.RSI4 < s.shortExit {
			return exitSignal(pos.Side, "RSI4 below exit level")
		}
		if len(pos.Tranches) < s.maxTranches {
			if pos.Side == models.SideLong && uptrend(cur) && cur.RSI4 < s.longScale {
				return scaleSignal(pos.Side, len(pos.Tranches), "aggressive RSI4 entry")
			}
			if pos.Side == models.SideShort && downtrend(cur) && cur.RSI4 > s.shortScale {
				return scaleSignal(pos.Side, len(pos.Tranches), "aggressive RSI4 entry")
			}
		}
		return nil
	}

	if uptrend(cur) && cur.RSI4 < s.longEntry {
		return entrySignal(models.SideLong, "RSI4 oversold in uptrend")
	}
	if downtrend(cur) && cur.RSI4 > s.shortEntry {
		return entrySignal(models.SideShort, "RSI4 overbought in downtrend")
	}
	return nil
}
