package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// PercentBStrategy trades the Bollinger %b indicator: enter after three
// consecutive closes with %b under 0.2 in an uptrend, add a unit on any later
// day %b stays under 0.2, exit when %b crosses 0.8. Shorts mirror above 0.8
// and exit under 0.2.
type PercentBStrategy struct {
	maxTranches int
	fractions   []float64

	lowerBand float64
	upperBand float64
}

func NewPercentBStrategy(params config.StrategyParams) *PercentBStrategy {
	s := &PercentBStrategy{
		maxTranches: 2,
		fractions:   twoUnitFractions,
		lowerBand:   threshold(params.Thresholds, "lower_band", 0.2),
		upperBand:   threshold(params.Thresholds, "upper_band", 0.8),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *PercentBStrategy) ID() models.StrategyID { return models.StrategyPercentB }

func (s *PercentBStrategy) MaxTranches() int { return s.maxTranches }

func (s *PercentBStrategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *PercentBStrategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
	n := len(snaps)
	if n == 0 {
		return nil
	}
	cur := snaps[n-1]
	if !cur.HasPercentB {
		return nil
	}

	if pos.IsOpen() {
		if pos.Side == models.SideLong && cur.PercentB > s.upperBand {
			return exitSignal(pos.Side, "%b above upper threshold")
		}
		if pos.Side == models.SideShort && cur.PercentB < s.lowerBand {
			return exitSignal(pos.Side, "%b below lower threshold")
		}
		if len(pos.Tranches) < s.maxTranches {
			if pos.Side == models.SideLong && cur.PercentB < s.lowerBand {
				return scaleSignal(pos.Side, len(pos.Tranches), "%b still below lower threshold")
			}
			if pos.Side == models.SideShort && cur.PercentB > s.upperBand {
				return scaleSignal(pos.Side, len(pos.Tranches), "%b still above upper threshold")
			}
		}
		return nil
	}

	if n < 3 || !snaps[n-2].HasPercentB || !snaps[n-3].HasPercentB {
		return nil
	}
	b0, b1, b2 := cur.PercentB, snaps[n-2].PercentB, snaps[n-3].PercentB

	if uptrend(cur) && b0 < s.lowerBand && b1 < s.lowerBand && b2 < s.lowerBand {
		return entrySignal(models.SideLong, "%b below lower threshold 3 days")
	}
	if downtrend(cur) && b0 > s.upperBand && b1 > s.upperBand && b2 > s.upperBand {
		return entrySignal(models.SideShort, "%b above upper threshold 3 days")
	}
	return nil
}
