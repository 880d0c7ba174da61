package backtest

import (
	"time"

	"github.com/signhoff/7-ETF-Strategies/internal/models"
)

// EquityPoint is one mark-to-market reading of the pair's account value.
// Drawdown is running peak equity minus current equity.
type EquityPoint struct {
	Date     time.Time
	Equity   float64
	Drawdown float64
}

// PairResult is the full outcome of one (ticker, strategy) simulation: the
// trade log of closed positions, the equity curve, any still-open position at
// the end of the series, and summary metrics.
type PairResult struct {
	Ticker     string
	StrategyID models.StrategyID

	Trades       []models.Trade
	EquityCurve  []EquityPoint
	OpenPosition *models.Position

	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	WinRate       float64
	AveragePnL    float64
	MaxDrawdown   float64
	FinalEquity   float64
	SharpeRatio   float64
}

// Results aggregates pair results sorted by (ticker, strategy) so reports are
// independent of worker completion order.
type Results struct {
	Pairs []PairResult
}

// Config bounds one backtest run.
type Config struct {
	InitialEquity float64
	MaxGapDays    int
	Workers       int
}
