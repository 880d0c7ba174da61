package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// RSI106Strategy is RSI 10/6 and its short mirror RSI 90/94: long when the
// 2-period RSI closes under 10 in an uptrend, second unit under 6, exit when
// the close recrosses the 5-day SMA. Shorts enter above 90, add above 94 and
// exit under the 5-day SMA.
type RSI106Strategy struct {
	maxTranches int
	fractions   []float64

	longEntry  float64
	longScale  float64
	shortEntry float64
	shortScale float64
}

func NewRSI106Strategy(params config.StrategyParams) *RSI106Strategy {
	s := &RSI106Strategy{
		maxTranches: 2,
		fractions:   twoUnitFractions,
		longEntry:   threshold(params.Thresholds, "long_entry", 10),
		longScale:   threshold(params.Thresholds, "long_scale_in", 6),
		shortEntry:  threshold(params.Thresholds, "short_entry", 90),
		shortScale:  threshold(params.Thresholds, "short_scale_in", 94),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *RSI106Strategy) ID() models.StrategyID { return models.StrategyRSI106 }

func (s *RSI106Strategy) MaxTranches() int { return s.maxTranches }

func (s *RSI106Strategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *RSI106Strategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
	n := len(snaps)
	if n == 0 {
		return nil
	}
	cur := snaps[n-1]

	if pos.IsOpen() {
		if cur.HasSMA5 {
			if pos.Side == models.SideLong && cur.Close > cur.SMA5 {
				return exitSignal(pos.Side, "close above SMA5")
			}
			if pos.Side == models.SideShort && cur.Close < cur.SMA5 {
				return exitSignal(pos.Side, "close below SMA5")
			}
		}
		if cur.HasRSI2 && len(pos.Tranches) < s.maxTranches {
			if pos.Side == models.SideLong && uptrend(cur) && cur.RSI2 < s.longScale {
				return scaleSignal(pos.Side, len(pos.Tranches), "RSI2 at second-entry level")
			}
			if pos.Side == models.SideShort && downtrend(cur) && cur.RSI2 > s.shortScale {
				return scaleSignal(pos.Side, len(pos.Tranches), "RSI2 at second-entry level")
			}
		}
		return nil
	}

	if !cur.HasRSI2 {
		return nil
	}
	if uptrend(cur) && cur.RSI2 < s.longEntry {
		return entrySignal(models.SideLong, "RSI2 oversold in uptrend")
	}
	if downtrend(cur) && cur.RSI2 > s.shortEntry {
		return entrySignal(models.SideShort, "RSI2 overbought in downtrend")
	}
	return nil
}
