package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// ThreeDayHLStrategy implements the 3-Day High/Low rules: enter a pullback of
// three consecutive lower highs and lower lows below the 5-day SMA (mirrored
// for shorts), scale in once if price moves through the first entry, exit on
// the close crossing back over the 5-day SMA.
type ThreeDayHLStrategy struct {
	maxTranches int
	fractions   []float64
}

func NewThreeDayHLStrategy(params config.StrategyParams) *ThreeDayHLStrategy {
	s := &ThreeDayHLStrategy{
		maxTranches: 2,
		fractions:   twoUnitFractions,
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *ThreeDayHLStrategy) ID() models.StrategyID { return models.StrategyThreeDayHL }

func (s *ThreeDayHLStrategy) MaxTranches() int { return s.maxTranches }

func (s *ThreeDayHLStrategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *ThreeDayHLStrategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
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

	// Entry needs the current bar plus three prior highs/lows.
	if n < 4 || !cur.HasSMA5 {
		return nil
	}
	b0, b1, b2, b3 := bars[n-1], bars[n-2], bars[n-3], bars[n-4]

	lowerHighs := b0.High < b1.High && b1.High < b2.High && b2.High < b3.High
	lowerLows := b0.Low < b1.Low && b1.Low < b2.Low && b2.Low < b3.Low
	if uptrend(cur) && cur.Close < cur.SMA5 && lowerHighs && lowerLows {
		return entrySignal(models.SideLong, "3 days of lower highs and lows below SMA5")
	}

	higherHighs := b0.High > b1.High && b1.High > b2.High && b2.High > b3.High
	higherLows := b0.Low > b1.Low && b1.Low > b2.Low && b2.Low > b3.Low
	if downtrend(cur) && cur.Close > cur.SMA5 && higherHighs && higherLows {
		return entrySignal(models.SideShort, "3 days of higher highs and lows above SMA5")
	}
	return nil
}
