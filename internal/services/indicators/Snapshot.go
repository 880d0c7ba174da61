package indicators

import (
	"time"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

// Snapshot carries the per-bar indicator values the strategies read. Each
// value has a companion flag; a false flag means the indicator is still in
// warm-up (or the bands collapsed) and must be treated as no-signal.
type Snapshot struct {
	Date  time.Time
	Close float64

	SMA5     float64
	SMA200   float64
	RSI2     float64
	RSI4     float64
	PercentB float64

	HasSMA5     bool
	HasSMA200   bool
	HasRSI2     bool
	HasRSI4     bool
	HasPercentB bool
}

const (
	smaShortWindow = 5
	bbandsWindow   = 20
	bbandsDev      = 2.0
)

// Engine computes one Snapshot per bar. Pure function of the input history;
// published snapshots are never mutated.
type Engine struct {
	sma         *SMAService
	rsi         *RSIService
	bbands      *BBandsService
	trendWindow int
}

// NewEngine builds an indicator engine with the given trend-filter window
// (200 by default upstream).
func NewEngine(trendWindow int) *Engine {
	return &Engine{
		sma:         NewSMAService(),
		rsi:         NewRSIService(),
		bbands:      NewBBandsService(),
		trendWindow: trendWindow,
	}
}

// TrendWindow reports the configured trend-filter SMA window.
func (e *Engine) TrendWindow() int {
	return e.trendWindow
}

// Compute returns one snapshot per bar, aligned by index.
func (e *Engine) Compute(bars []models.Bar) []Snapshot {
	closes := make([]float64, len(bars))
	for i := range bars {
		closes[i] = bars[i].Close
	}

	sma5, sma5From := e.sma.Calculate(closes, smaShortWindow)
	smaTrend, trendFrom := e.sma.Calculate(closes, e.trendWindow)
	rsi2, rsi2From := e.rsi.Calculate(closes, 2)
	rsi4, rsi4From := e.rsi.Calculate(closes, 4)
	pctB, pctBValid := e.bbands.CalculatePercentB(closes, bbandsWindow, bbandsDev)

	snaps := make([]Snapshot, len(bars))
	for i := range bars {
		snaps[i] = Snapshot{
			Date:        bars[i].Date,
			Close:       closes[i],
			SMA5:        sma5[i],
			SMA200:      smaTrend[i],
			RSI2:        rsi2[i],
			RSI4:        rsi4[i],
			PercentB:    pctB[i],
			HasSMA5:     i >= sma5From,
			HasSMA200:   i >= trendFrom,
			HasRSI2:     i >= rsi2From,
			HasRSI4:     i >= rsi4From,
			HasPercentB: pctBValid[i],
		}
	}
	return snaps
}
