package strategy

import (
	"github.com/signhoff/7-ETF-Strategies/config"
	"github.com/signhoff/7-ETF-Strategies/internal/models"
	"github.com/signhoff/7-ETF-Strategies/internal/services/indicators"
)

// MDDMDUStrategy is Multiple Days Down / Multiple Days Up: go long when at
// least four of the last five daily closes moved lower and the close sits
// under the 5-day SMA in an uptrend; exit when the close recrosses the 5-day
// SMA. A second unit is added if price closes through the first entry. Shorts
// mirror on up days.
type MDDMDUStrategy struct {
	maxTranches int
	fractions   []float64

	lookback int
	minMoves int
}

func NewMDDMDUStrategy(params config.StrategyParams) *MDDMDUStrategy {
	s := &MDDMDUStrategy{
		maxTranches: 2,
		fractions:   twoUnitFractions,
		lookback:    5,
		minMoves:    int(threshold(params.Thresholds, "min_moves", 4)),
	}
	if params.MaxTranches > 0 {
		s.maxTranches = params.MaxTranches
	}
	if len(params.SizeFractions) > 0 {
		s.fractions = params.SizeFractions
	}
	return s
}

func (s *MDDMDUStrategy) ID() models.StrategyID { return models.StrategyMDDMDU }

func (s *MDDMDUStrategy) MaxTranches() int { return s.maxTranches }

func (s *MDDMDUStrategy) SizeFraction(idx int) float64 { return fractionAt(s.fractions, idx) }

func (s *MDDMDUStrategy) Evaluate(bars []models.Bar, snaps []indicators.Snapshot, pos *models.Position) *models.Signal {
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

	// Entry counts the last lookback daily changes, so it needs lookback+1 closes.
	if n < s.lookback+1 || !cur.HasSMA5 {
		return nil
	}
	down, up := 0, 0
	for i := n - s.lookback; i < n; i++ {
		if bars[i].Close < bars[i-1].Close {
			down++
		} else if bars[i].Close > bars[i-1].Close {
			up++
		}
	}

	if uptrend(cur) && cur.Close < cur.SMA5 && down >= s.minMoves {
		return entrySignal(models.SideLong, "multiple days down below SMA5")
	}
	if downtrend(cur) && cur.Close > cur.SMA5 && up >= s.minMoves {
		return entrySignal(models.SideShort, "multiple days up above SMA5")
	}
	return nil
}
